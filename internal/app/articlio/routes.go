package articlio

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/articlio/internal/http/handlers/article/create"
	"github.com/magabrotheeeer/articlio/internal/http/handlers/article/listmy"
	"github.com/magabrotheeeer/articlio/internal/http/handlers/article/listpublic"
	"github.com/magabrotheeeer/articlio/internal/http/handlers/article/read"
	"github.com/magabrotheeeer/articlio/internal/http/handlers/article/remove"
	"github.com/magabrotheeeer/articlio/internal/http/handlers/article/update"
	"github.com/magabrotheeeer/articlio/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/articlio/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/articlio/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/articlio/internal/http/handlers/health"
	"github.com/magabrotheeeer/articlio/internal/http/middlewarectx"
	articleservice "github.com/magabrotheeeer/articlio/internal/services/article"
	authservice "github.com/magabrotheeeer/articlio/internal/services/auth"
	"github.com/magabrotheeeer/articlio/internal/session"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, auth *authservice.AuthService, articles *articleservice.ArticleService, sessions *session.Manager) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/register", register.New(logger, auth).ServeHTTP)
			r.Post("/login", login.New(logger, auth).ServeHTTP)
		})
		r.Post("/logout", logout.New(logger, auth).ServeHTTP)
		r.Get("/articles", listpublic.New(logger, articles).ServeHTTP)
		r.Get("/articles/{id}", read.New(logger, articles).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с проверкой сессии
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(sessions, logger))
			r.Get("/users/articles", listmy.New(logger, articles).ServeHTTP)
			r.Post("/users/articles", create.New(logger, articles).ServeHTTP)
			r.Put("/users/articles/{id}", update.New(logger, articles).ServeHTTP)
			r.Delete("/users/articles/{id}", remove.New(logger, articles).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
