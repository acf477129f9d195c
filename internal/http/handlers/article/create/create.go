// Package create реализует HTTP-обработчик для публикации новых статей.
//
// Обработчик декодирует JSON-запрос, валидирует поля и делегирует создание
// статьи сервису. Владелец и отображаемый автор берутся из текущей сессии.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/articlio/internal/http/middlewarectx"
	"github.com/magabrotheeeer/articlio/internal/http/response"
	"github.com/magabrotheeeer/articlio/internal/lib/sl"
	"github.com/magabrotheeeer/articlio/internal/models"
	services "github.com/magabrotheeeer/articlio/internal/services/article"
)

// Handler обрабатывает HTTP-запросы на создание статьи.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис статей
	validate *validator.Validate // Валидатор для проверки входных данных
}

// Service описывает интерфейс создания статьи.
type Service interface {
	Create(ctx context.Context, identity *models.Identity, req models.DummyArticle) (*models.Article, error)
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
// @Summary Создание статьи
// @Description Публикует новую статью от имени текущего пользователя.
// @Tags Articles
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param request body models.DummyArticle true "Данные статьи"
// @Success 200 {object} map[string]any "Созданная статья"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/articles [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyArticle
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("title", req.Title))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	identity := middlewarectx.IdentityFromContext(r.Context())

	article, err := h.service.Create(r.Context(), identity, req)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized, please log in"))
			return
		}
		log.Error("failed to create article", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	log.Info("article created", slog.String("id", article.ID))
	render.JSON(w, r, response.OKWithData(article))
}
