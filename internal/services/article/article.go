// Package services содержит бизнес-логику для работы со статьями:
// публичные списки, личный кабинет владельца и операции, доступные
// только владельцу статьи.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/articlio/internal/lib/sl"
	"github.com/magabrotheeeer/articlio/internal/models"
	"github.com/magabrotheeeer/articlio/internal/storage/repository"
)

// Ошибки уровня сервиса статей.
var (
	// ErrUnauthorized возвращается, когда операция требует сессии, а личность не разрешена.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden возвращается, когда статья существует, но принадлежит другому пользователю.
	ErrForbidden = errors.New("forbidden: not the owner")
	// ErrNotFound возвращается, когда статья с указанным идентификатором отсутствует.
	ErrNotFound = errors.New("article not found")
)

// Ключи маршрутизации событий жизненного цикла статьи.
const (
	EventArticleCreated = "article.created"
	EventArticleUpdated = "article.updated"
	EventArticleDeleted = "article.deleted"
)

// ArticleRepository определяет методы для работы со статьями в хранилище.
type ArticleRepository interface {
	// CreateArticle сохраняет статью и возвращает запись со сгенерированным ID.
	CreateArticle(ctx context.Context, article models.Article) (*models.Article, error)
	// GetArticleByID возвращает статью по ID.
	GetArticleByID(ctx context.Context, id string) (*models.Article, error)
	// ListAllArticles возвращает все статьи без фильтрации.
	ListAllArticles(ctx context.Context) ([]*models.Article, error)
	// ListArticlesByOwner возвращает статьи, принадлежащие пользователю.
	ListArticlesByOwner(ctx context.Context, ownerUID string) ([]*models.Article, error)
	// UpdateArticle обновляет заголовок и текст, возвращает число строк.
	UpdateArticle(ctx context.Context, id, title, body string) (int, error)
	// DeleteArticle удаляет статью, возвращает число строк.
	DeleteArticle(ctx context.Context, id string) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// EventPublisher публикует события жизненного цикла статей для внешних
// потребителей. Ошибки публикации не срывают запрос, только логируются.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// ArticleService реализует бизнес-логику работы со статьями,
// включая проверку владения, кеширование и публикацию событий.
type ArticleService struct {
	repo   ArticleRepository
	cache  Cache
	events EventPublisher
	log    *slog.Logger
}

// NewArticleService создает новый экземпляр ArticleService.
func NewArticleService(repo ArticleRepository, cache Cache, events EventPublisher, log *slog.Logger) *ArticleService {
	return &ArticleService{
		repo:   repo,
		cache:  cache,
		events: events,
		log:    log,
	}
}

// ListPublic возвращает все статьи. Публичный список не фильтруется.
func (s *ArticleService) ListPublic(ctx context.Context) ([]*models.Article, error) {
	return s.repo.ListAllArticles(ctx)
}

// ListMy возвращает статьи владельца для личного кабинета.
// Анонимный вызов отклоняется до обращения к хранилищу.
func (s *ArticleService) ListMy(ctx context.Context, identity *models.Identity) ([]*models.Article, error) {
	if identity == nil {
		return nil, ErrUnauthorized
	}
	return s.repo.ListArticlesByOwner(ctx, identity.UID)
}

// Create публикует новую статью от имени владельца сессии. Поле author —
// снимок отображаемого имени на момент публикации.
func (s *ArticleService) Create(ctx context.Context, identity *models.Identity, req models.DummyArticle) (*models.Article, error) {
	if identity == nil {
		return nil, ErrUnauthorized
	}

	article := models.Article{
		OwnerUID: identity.UID,
		Title:    req.Title,
		Body:     req.Body,
		Author:   identity.Name,
	}
	created, err := s.repo.CreateArticle(ctx, article)
	if err != nil {
		return nil, err
	}

	s.log.Info("created new article", slog.String("id", created.ID))
	s.cacheSet(created)
	s.publish(EventArticleCreated, created)

	return created, nil
}

// Read возвращает статью по идентификатору, используя кеш или хранилище.
func (s *ArticleService) Read(ctx context.Context, id string) (*models.Article, error) {
	var result *models.Article
	cacheKey := fmt.Sprintf("article:%s", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("cache lookup failed", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.GetArticleByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.cacheSet(result)
	return result, nil
}

// Update изменяет заголовок и текст статьи. Доступно только владельцу:
// чужая статья — ErrForbidden, отсутствующая — ErrNotFound. Поля owner_uid,
// author и posted_at не меняются никогда.
func (s *ArticleService) Update(ctx context.Context, identity *models.Identity, id string, req models.DummyArticle) (*models.Article, error) {
	if identity == nil {
		return nil, ErrUnauthorized
	}

	article, err := s.repo.GetArticleByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if article.OwnerUID != identity.UID {
		return nil, ErrForbidden
	}

	if _, err = s.repo.UpdateArticle(ctx, id, req.Title, req.Body); err != nil {
		return nil, err
	}
	article.Title = req.Title
	article.Body = req.Body

	s.log.Info("updated article", slog.String("id", id))
	s.cacheSet(article)
	s.publish(EventArticleUpdated, article)

	return article, nil
}

// Remove удаляет статью. Проверка владения та же, что и в Update: удалять
// статью по чужому идентификатору нельзя.
func (s *ArticleService) Remove(ctx context.Context, identity *models.Identity, id string) error {
	if identity == nil {
		return ErrUnauthorized
	}

	article, err := s.repo.GetArticleByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if article.OwnerUID != identity.UID {
		return ErrForbidden
	}

	cacheKey := fmt.Sprintf("article:%s", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), sl.Err(err))
	}

	if _, err = s.repo.DeleteArticle(ctx, id); err != nil {
		return err
	}

	s.log.Info("deleted article", slog.String("id", id))
	s.publish(EventArticleDeleted, article)

	return nil
}

func (s *ArticleService) cacheSet(article *models.Article) {
	cacheKey := fmt.Sprintf("article:%s", article.ID)
	if err := s.cache.Set(cacheKey, article, time.Hour); err != nil {
		s.log.Warn("failed to cache article", slog.String("key", cacheKey), sl.Err(err))
	}
}

func (s *ArticleService) publish(routingKey string, article *models.Article) {
	if err := s.events.Publish(routingKey, article); err != nil {
		s.log.Warn("failed to publish event", slog.String("routing_key", routingKey), sl.Err(err))
	}
}
