// Package listpublic реализует HTTP-обработчик публичной ленты статей.
package listpublic

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/articlio/internal/http/response"
	"github.com/magabrotheeeer/articlio/internal/lib/sl"
	"github.com/magabrotheeeer/articlio/internal/models"
)

// Handler обрабатывает HTTP-запросы на получение ленты всех статей.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис статей
}

// Service описывает интерфейс получения публичной ленты.
type Service interface {
	ListPublic(ctx context.Context) ([]*models.Article, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Лента статей
// @Description Возвращает все опубликованные статьи, новые первыми. Авторизация не требуется.
// @Tags Articles
// @Produce  json
// @Success 200 {object} map[string]any "Список статей"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /articles [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.listpublic"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	articles, err := h.service.ListPublic(r.Context())
	if err != nil {
		log.Error("failed to list articles", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	log.Info("articles listed", slog.Int("count", len(articles)))
	render.JSON(w, r, response.OKWithData(articles))
}
