package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/articlio/internal/config"
	"github.com/magabrotheeeer/articlio/internal/models"
)

func setupTestCache(t *testing.T) *Cache {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		Password:     "",
		DB:           0,
		User:         "",
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	return cache
}

func TestSetAndGet(t *testing.T) {
	cache := setupTestCache(t)

	expected := models.Article{
		ID:       "article-1",
		OwnerUID: "user-1",
		Title:    "Hello",
		Body:     "World",
		Author:   "Ada",
	}
	err := cache.Set("article:article-1", expected, time.Minute)
	require.NoError(t, err)

	var actual models.Article
	found, err := cache.Get("article:article-1", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestGetNotFound(t *testing.T) {
	cache := setupTestCache(t)

	var out models.Article
	found, err := cache.Get("no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache := setupTestCache(t)

	require.NoError(t, cache.Set("article:gone", models.Article{ID: "gone"}, time.Minute))
	require.NoError(t, cache.Invalidate("article:gone"))

	var out models.Article
	found, err := cache.Get("article:gone", &out)
	require.NoError(t, err)
	assert.False(t, found)
}
