// Package middlewarectx содержит HTTP middleware для разрешения серверной сессии.
//
// SessionMiddleware извлекает сессионный токен из заголовка Authorization
// или cookie, разрешает его в личность пользователя через менеджер сессий
// и кладёт личность в контекст запроса для дальнейшего использования
// в обработчиках.
//
// Анонимные запросы получают HTTP 401 Unauthorized до какого-либо
// обращения к хранилищу.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/articlio/internal/http/response"
	"github.com/magabrotheeeer/articlio/internal/lib/sl"
	"github.com/magabrotheeeer/articlio/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// IdentityKey — ключ для личности пользователя в контексте.
const IdentityKey Key = "identity"

// SessionCookieName — имя cookie, в которой клиент может предъявлять токен.
const SessionCookieName = "session_token"

// SessionResolver описывает интерфейс разрешения токена в личность.
type SessionResolver interface {
	Resolve(token string) (*models.Identity, error)
}

// TokenFromRequest извлекает сессионный токен из запроса: сначала из
// заголовка Authorization (Bearer), затем из cookie. Пустая строка
// означает анонимный запрос.
func TokenFromRequest(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// IdentityFromContext возвращает личность текущего запроса или nil
// для анонимного вызова.
func IdentityFromContext(ctx context.Context) *models.Identity {
	identity, ok := ctx.Value(IdentityKey).(*models.Identity)
	if !ok {
		return nil
	}
	return identity
}

// SessionMiddleware возвращает HTTP middleware, который разрешает
// сессионный токен запроса в личность пользователя.
//
// Если сессия жива, личность добавляется в контекст запроса,
// иначе возвращается ошибка с HTTP статусом 401 Unauthorized.
func SessionMiddleware(sessions SessionResolver, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token := TokenFromRequest(r)
			if token == "" {
				log.Info("anonymous request to protected endpoint")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized, please log in"))
				return
			}

			identity, err := sessions.Resolve(token)
			if err != nil {
				log.Info("invalid or expired session", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized, please log in"))
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
