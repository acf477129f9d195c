package repository

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/articlio/internal/migrations"
	"github.com/magabrotheeeer/articlio/internal/models"
)

func setupStorage(t *testing.T) *Storage {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx)
	require.NoError(t, err)

	storage, err := New(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { storage.DB.Close() })

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath))

	return storage
}

func mustCreateUser(t *testing.T, s *Storage, name, username string) string {
	t.Helper()
	uid, err := s.CreateUser(context.Background(), models.User{
		Name:         name,
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
	})
	require.NoError(t, err)
	return uid
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	storage := setupStorage(t)
	ctx := context.Background()

	mustCreateUser(t, storage, "Ada", "ada")

	_, err := storage.CreateUser(ctx, models.User{
		Name:         "Another Ada",
		Email:        "other@example.com",
		Username:     "ada",
		PasswordHash: "hash",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUserExists))
}

func TestCreateUser_ConcurrentSameUsername(t *testing.T) {
	storage := setupStorage(t)
	ctx := context.Background()

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = storage.CreateUser(ctx, models.User{
				Name:         "Racer",
				Email:        "racer@example.com",
				Username:     "racer",
				PasswordHash: "hash",
			})
		}(i)
	}
	wg.Wait()

	var created, duplicates int
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, ErrUserExists):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, created, "exactly one concurrent registration must win")
	assert.Equal(t, attempts-1, duplicates)
}

func TestGetUserByUsername(t *testing.T) {
	storage := setupStorage(t)
	ctx := context.Background()

	uid := mustCreateUser(t, storage, "Ada", "ada")

	user, err := storage.GetUserByUsername(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, uid, user.UID)
	assert.Equal(t, "Ada", user.Name)
	assert.False(t, user.RegisteredAt.IsZero())

	_, err = storage.GetUserByUsername(ctx, "Ada")
	assert.True(t, errors.Is(err, ErrNotFound), "username match must be case-sensitive")

	_, err = storage.GetUserByUsername(ctx, "nobody")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestArticleLifecycle(t *testing.T) {
	storage := setupStorage(t)
	ctx := context.Background()

	adaUID := mustCreateUser(t, storage, "Ada", "ada")
	bobUID := mustCreateUser(t, storage, "Bob", "bob")

	created, err := storage.CreateArticle(ctx, models.Article{
		OwnerUID: adaUID,
		Title:    "Hello",
		Body:     "World",
		Author:   "Ada",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.False(t, created.PostedAt.IsZero())

	got, err := storage.GetArticleByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, adaUID, got.OwnerUID)
	assert.Equal(t, "Ada", got.Author)

	// Фильтр по владельцу — только точные совпадения
	adaArticles, err := storage.ListArticlesByOwner(ctx, adaUID)
	require.NoError(t, err)
	require.Len(t, adaArticles, 1)

	bobArticles, err := storage.ListArticlesByOwner(ctx, bobUID)
	require.NoError(t, err)
	assert.Empty(t, bobArticles)

	all, err := storage.ListAllArticles(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	count, err := storage.UpdateArticle(ctx, created.ID, "New title", "New body")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	updated, err := storage.GetArticleByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, "New body", updated.Body)
	assert.Equal(t, got.OwnerUID, updated.OwnerUID)
	assert.Equal(t, got.Author, updated.Author)
	assert.Equal(t, got.PostedAt.UTC(), updated.PostedAt.UTC())

	count, err = storage.DeleteArticle(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = storage.GetArticleByID(ctx, created.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	count, err = storage.UpdateArticle(ctx, created.ID, "x", "y")
	require.NoError(t, err)
	assert.Zero(t, count, "update of missing article affects no rows")
}
