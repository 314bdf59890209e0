package proxycatalog

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/nvpn/proxy-catalog/internal/cache"
	"github.com/nvpn/proxy-catalog/internal/config"
	"github.com/nvpn/proxy-catalog/internal/lib/jwt"
	"github.com/nvpn/proxy-catalog/internal/migrations"
	authservice "github.com/nvpn/proxy-catalog/internal/services/auth"
	catalogservice "github.com/nvpn/proxy-catalog/internal/services/catalog"
	subservice "github.com/nvpn/proxy-catalog/internal/services/subscription"
	"github.com/nvpn/proxy-catalog/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и подключения к хранилищу и кешу.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New подключается к PostgreSQL и Redis, применяет миграции,
// собирает сервисы и маршруты.
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
	// Миграции могли изменить каталог: кешированные списки устарели.
	for _, key := range []string{"proxies:all", "proxies:free"} {
		if err = cacheRedis.Invalidate(key); err != nil {
			logger.Warn("failed to invalidate catalog cache", slog.String("key", key), slog.Any("err", err))
		}
	}

	jwtMaker := jwt.NewJWTMaker(cfg.SecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	catalogService := catalogservice.NewCatalogService(db, cacheRedis, logger)
	subscriptionService := subservice.NewSubscriptionService(db, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, authService, catalogService, subscriptionService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и корректно останавливает его при отмене контекста.
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
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close storage", slog.Any("err", closeErr))
		}
		if closeErr := a.cache.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close cache", slog.Any("err", closeErr))
		}
		return err
	}
}
