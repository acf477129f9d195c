package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/articlio/internal/models"
)

// CreateArticle вставляет новую статью и возвращает сохранённую запись
// со сгенерированным идентификатором и датой публикации.
func (s *Storage) CreateArticle(ctx context.Context, article models.Article) (*models.Article, error) {
	const op = "storage.CreateArticle"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	article.ID = uuid.NewString()
	article.PostedAt = time.Now().UTC()

	query := `INSERT INTO articles (id, owner_uid, title, body, author, posted_at)
			  VALUES ($1, $2, $3, $4, $5, $6);`
	if _, err := s.DB.ExecContext(ctx, query,
		article.ID, article.OwnerUID, article.Title, article.Body,
		article.Author, article.PostedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &article, nil
}

// GetArticleByID возвращает статью по её идентификатору.
func (s *Storage) GetArticleByID(ctx context.Context, id string) (*models.Article, error) {
	const op = "storage.GetArticleByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, owner_uid, title, body, author, posted_at
			  FROM articles
			  WHERE id = $1`
	a := &models.Article{}
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&a.ID, &a.OwnerUID, &a.Title, &a.Body,
		&a.Author, &a.PostedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// ListAllArticles возвращает список всех статей без фильтрации.
func (s *Storage) ListAllArticles(ctx context.Context) ([]*models.Article, error) {
	const op = "storage.ListAllArticles"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, owner_uid, title, body, author, posted_at
			  FROM articles
			  ORDER BY posted_at DESC`
	return s.listArticles(ctx, op, query)
}

// ListArticlesByOwner возвращает статьи, принадлежащие пользователю.
// Фильтр по владельцу — точное совпадение owner_uid, опущенное в запрос.
func (s *Storage) ListArticlesByOwner(ctx context.Context, ownerUID string) ([]*models.Article, error) {
	const op = "storage.ListArticlesByOwner"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, owner_uid, title, body, author, posted_at
			  FROM articles
			  WHERE owner_uid = $1
			  ORDER BY posted_at DESC`
	return s.listArticles(ctx, op, query, ownerUID)
}

// UpdateArticle обновляет заголовок и текст статьи. Поля owner_uid, author
// и posted_at из этого запроса недостижимы. Возвращает количество
// обновлённых строк; 0 означает отсутствие статьи.
func (s *Storage) UpdateArticle(ctx context.Context, id, title, body string) (int, error) {
	const op = "storage.UpdateArticle"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE articles
			  SET title = $1, body = $2
			  WHERE id = $3`
	res, err := s.DB.ExecContext(ctx, query, title, body, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(count), nil
}

// DeleteArticle удаляет статью по идентификатору и возвращает количество
// удалённых строк.
func (s *Storage) DeleteArticle(ctx context.Context, id string) (int, error) {
	const op = "storage.DeleteArticle"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM articles WHERE id = $1`
	res, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(count), nil
}

func (s *Storage) listArticles(ctx context.Context, op, query string, args ...any) ([]*models.Article, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Article
	for rows.Next() {
		var a models.Article
		if err = rows.Scan(&a.ID, &a.OwnerUID, &a.Title, &a.Body,
			&a.Author, &a.PostedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
