// Package read реализует HTTP-обработчик для просмотра отдельной статьи.
//
// Чтение публичное: сессия не требуется.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/articlio/internal/http/response"
	"github.com/magabrotheeeer/articlio/internal/lib/sl"
	"github.com/magabrotheeeer/articlio/internal/models"
	services "github.com/magabrotheeeer/articlio/internal/services/article"
)

// Handler обрабатывает HTTP-запросы на чтение статьи.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис статей
}

// Service описывает интерфейс чтения статьи.
type Service interface {
	Read(ctx context.Context, id string) (*models.Article, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Чтение статьи
// @Description Возвращает статью по идентификатору. Авторизация не требуется.
// @Tags Articles
// @Produce  json
// @Param id path string true "Идентификатор статьи"
// @Success 200 {object} map[string]any "Статья"
// @Failure 404 {object} response.ErrorResponse "Статья не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /articles/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	article, err := h.service.Read(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("article not found"))
			return
		}
		log.Error("failed to read article", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	log.Info("article read", slog.String("id", article.ID))
	render.JSON(w, r, response.OKWithData(article))
}
