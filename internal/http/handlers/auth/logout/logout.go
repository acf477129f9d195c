// Package logout реализует HTTP-обработчик для завершения пользовательских сессий.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/articlio/internal/http/middlewarectx"
	"github.com/magabrotheeeer/articlio/internal/http/response"
)

// Handler обрабатывает HTTP-запросы на выход из системы.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис аутентификации
}

// Service описывает интерфейс завершения сессии.
type Service interface {
	Logout(token string)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Выход пользователя
// @Description Завершает текущую сессию. Повторный вызов безопасен.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response "Сессия завершена"
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	// Выход без живой сессии не ошибка: повторный logout и logout с
	// протухшим токеном отвечают так же, как успешный.
	if token := middlewarectx.TokenFromRequest(r); token != "" {
		h.service.Logout(token)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middlewarectx.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	log.Info("logout complete")
	render.JSON(w, r, response.OK())
}
