// Package server assembles the API server: storage, migrations, cache,
// services, router and the HTTP listener with graceful shutdown.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/afrikanet/satellite-console/internal/cache"
	"github.com/afrikanet/satellite-console/internal/config"
	"github.com/afrikanet/satellite-console/internal/lib/jwt"
	"github.com/afrikanet/satellite-console/internal/lifecycle"
	"github.com/afrikanet/satellite-console/internal/migrations"
	alertservice "github.com/afrikanet/satellite-console/internal/services/alert"
	authservice "github.com/afrikanet/satellite-console/internal/services/auth"
	subservice "github.com/afrikanet/satellite-console/internal/services/subscription"
	"github.com/afrikanet/satellite-console/internal/storage"
)

// App owns the server's long-lived resources.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
}

// New builds the App: connects storage and cache, applies migrations,
// seeds the default admin and registers the routes.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
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

	window := lifecycle.Window(cfg.Lifecycle.WarningWindowDays)
	jwtMaker := jwt.NewJWTMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL)

	authService := authservice.New(db, jwtMaker, logger)
	if err := authService.EnsureDefaultAdmin(ctx); err != nil {
		return nil, err
	}
	subscriptionService := subservice.New(db, cacheRedis, window, logger)
	alertService := alertservice.New(db, cacheRedis, window, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, db, authService, subscriptionService, alertService)

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

// Run serves until the context is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting", slog.String("address", a.server.Addr))
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
		_ = a.db.DB.Close()
		_ = a.cache.Db.Close()
		return err
	}
}
