// Package remove реализует HTTP-обработчик для удаления статей.
//
// Удаление доступно только владельцу статьи и проверяется так же,
// как обновление.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/articlio/internal/http/middlewarectx"
	"github.com/magabrotheeeer/articlio/internal/http/response"
	"github.com/magabrotheeeer/articlio/internal/lib/sl"
	"github.com/magabrotheeeer/articlio/internal/models"
	services "github.com/magabrotheeeer/articlio/internal/services/article"
)

// Handler обрабатывает HTTP-запросы на удаление статьи.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис статей
}

// Service описывает интерфейс удаления статьи.
type Service interface {
	Remove(ctx context.Context, identity *models.Identity, id string) error
}

// New создает новый экземпляр Handler с указанными логгером и сервисом статей.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удаление статьи
// @Description Удаляет статью. Доступно только владельцу.
// @Tags Articles
// @Security BearerAuth
// @Produce  json
// @Param id path string true "Идентификатор статьи"
// @Success 200 {object} response.Response "Статья удалена"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Статья принадлежит другому пользователю"
// @Failure 404 {object} response.ErrorResponse "Статья не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/articles/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	identity := middlewarectx.IdentityFromContext(r.Context())

	if err := h.service.Remove(r.Context(), identity, id); err != nil {
		switch {
		case errors.Is(err, services.ErrUnauthorized):
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized, please log in"))
		case errors.Is(err, services.ErrForbidden):
			log.Info("remove forbidden", slog.String("id", id))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("article belongs to another user"))
		case errors.Is(err, services.ErrNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("article not found"))
		default:
			log.Error("failed to remove article", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal service error"))
		}
		return
	}

	log.Info("article removed", slog.String("id", id))
	render.JSON(w, r, response.OK())
}
