// Package listmy реализует HTTP-обработчик личной ленты статей.
//
// Возвращаются только статьи текущего пользователя, чужие записи
// в выборку не попадают.
package listmy

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/articlio/internal/http/middlewarectx"
	"github.com/magabrotheeeer/articlio/internal/http/response"
	"github.com/magabrotheeeer/articlio/internal/lib/sl"
	"github.com/magabrotheeeer/articlio/internal/models"
	services "github.com/magabrotheeeer/articlio/internal/services/article"
)

// Handler обрабатывает HTTP-запросы на получение статей текущего пользователя.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис статей
}

// Service описывает интерфейс получения личной ленты.
type Service interface {
	ListMy(ctx context.Context, identity *models.Identity) ([]*models.Article, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Мои статьи
// @Description Возвращает статьи текущего пользователя.
// @Tags Articles
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} map[string]any "Список статей"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/articles [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.listmy"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	identity := middlewarectx.IdentityFromContext(r.Context())

	articles, err := h.service.ListMy(r.Context(), identity)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized, please log in"))
			return
		}
		log.Error("failed to list user articles", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	log.Info("user articles listed", slog.Int("count", len(articles)))
	render.JSON(w, r, response.OKWithData(articles))
}
