// Package articlio собирает сервис публикации статей: хранилище, кеш,
// брокер событий, менеджер сессий, бизнес-сервисы и HTTP-сервер.
package articlio

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/articlio/internal/cache"
	"github.com/magabrotheeeer/articlio/internal/config"
	"github.com/magabrotheeeer/articlio/internal/migrations"
	"github.com/magabrotheeeer/articlio/internal/rabbitmq"
	"github.com/magabrotheeeer/articlio/internal/session"
	articleservice "github.com/magabrotheeeer/articlio/internal/services/article"
	authservice "github.com/magabrotheeeer/articlio/internal/services/auth"
	"github.com/magabrotheeeer/articlio/internal/storage/repository"
)

type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *repository.Storage
	sessions *session.Manager
	rabbit   *amqp.Connection
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	rabbitConn, err := rabbitmq.Connect(cfg.RabbitConnection.URL, 5, 3*time.Second)
	if err != nil {
		return nil, err
	}
	rabbitCh, err := rabbitmq.SetupChannel(rabbitConn, cfg.RabbitConnection.Exchange, rabbitmq.GetArticleQueues())
	if err != nil {
		return nil, err
	}
	publisher := rabbitmq.NewPublisher(rabbitCh, cfg.RabbitConnection.Exchange)

	tokenMaker := session.NewTokenMaker(cfg.Session.SecretKey, cfg.Session.SessionTTL)
	sessions := session.NewManager(tokenMaker, cfg.Session.SessionTTL)

	authService := authservice.NewAuthService(db, sessions, logger)
	articleService := articleservice.NewArticleService(db, cacheRedis, publisher, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, authService, articleService, sessions)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		sessions: sessions,
		rabbit:   rabbitConn,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.sessions.Close()
		if cerr := a.rabbit.Close(); cerr != nil {
			a.logger.Error("failed to close rabbitmq connection", slog.Any("err", cerr))
		}
		if cerr := a.db.DB.Close(); cerr != nil {
			a.logger.Error("failed to close database connection", slog.Any("err", cerr))
		}
		return err
	}
}
