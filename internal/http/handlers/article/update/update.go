// Package update реализует HTTP-обработчик для редактирования статей.
//
// Идентификатор статьи берется из URL, новое содержимое — из тела запроса.
// Редактировать статью может только её владелец.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/articlio/internal/http/middlewarectx"
	"github.com/magabrotheeeer/articlio/internal/http/response"
	"github.com/magabrotheeeer/articlio/internal/lib/sl"
	"github.com/magabrotheeeer/articlio/internal/models"
	services "github.com/magabrotheeeer/articlio/internal/services/article"
)

// Handler обрабатывает HTTP-запросы на обновление статьи.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис статей
	validate *validator.Validate // Валидатор для проверки входных данных
}

// Service описывает интерфейс обновления статьи.
type Service interface {
	Update(ctx context.Context, identity *models.Identity, id string, req models.DummyArticle) (*models.Article, error)
}

// New создает новый экземпляр Handler с указанными логгером и сервисом статей.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновление статьи
// @Description Перезаписывает заголовок и текст статьи. Доступно только владельцу.
// @Tags Articles
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param id path string true "Идентификатор статьи"
// @Param request body models.DummyArticle true "Новые данные статьи"
// @Success 200 {object} map[string]any "Обновленная статья"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Статья принадлежит другому пользователю"
// @Failure 404 {object} response.ErrorResponse "Статья не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/articles/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	var req models.DummyArticle
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("id", id))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	identity := middlewarectx.IdentityFromContext(r.Context())

	article, err := h.service.Update(r.Context(), identity, id, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnauthorized):
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized, please log in"))
		case errors.Is(err, services.ErrForbidden):
			log.Info("update forbidden", slog.String("id", id))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("article belongs to another user"))
		case errors.Is(err, services.ErrNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("article not found"))
		default:
			log.Error("failed to update article", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal service error"))
		}
		return
	}

	log.Info("article updated", slog.String("id", article.ID))
	render.JSON(w, r, response.OKWithData(article))
}
