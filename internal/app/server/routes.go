package server

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/afrikanet/satellite-console/internal/config"
	alertlist "github.com/afrikanet/satellite-console/internal/http/handlers/alerts/list"
	"github.com/afrikanet/satellite-console/internal/http/handlers/auth/login"
	"github.com/afrikanet/satellite-console/internal/http/handlers/auth/me"
	"github.com/afrikanet/satellite-console/internal/http/handlers/auth/register"
	"github.com/afrikanet/satellite-console/internal/http/handlers/dashboard/revenuechart"
	"github.com/afrikanet/satellite-console/internal/http/handlers/dashboard/stats"
	"github.com/afrikanet/satellite-console/internal/http/handlers/health"
	"github.com/afrikanet/satellite-console/internal/http/handlers/subscription/create"
	sublist "github.com/afrikanet/satellite-console/internal/http/handlers/subscription/list"
	"github.com/afrikanet/satellite-console/internal/http/handlers/subscription/remove"
	"github.com/afrikanet/satellite-console/internal/http/handlers/subscription/update"
	"github.com/afrikanet/satellite-console/internal/http/middlewarectx"
	alertservice "github.com/afrikanet/satellite-console/internal/services/alert"
	authservice "github.com/afrikanet/satellite-console/internal/services/auth"
	subservice "github.com/afrikanet/satellite-console/internal/services/subscription"
	"github.com/afrikanet/satellite-console/internal/storage"
)

// RegisterRoutes registers every route of the API.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	db *storage.Storage,
	authService *authservice.Service,
	subscriptionService *subservice.Service,
	alertService *alertservice.Service,
) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api", func(r chi.Router) {
		// Open endpoints
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger, db).ServeHTTP)

		// Bearer-token group
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AuthMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger, cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
			r.Get("/me", me.New(logger).ServeHTTP)
			r.Get("/dashboard/stats", stats.New(logger, alertService).ServeHTTP)
			r.Get("/dashboard/revenue-chart", revenuechart.New(logger, alertService).ServeHTTP)
			r.Get("/alerts", alertlist.New(logger, alertService).ServeHTTP)
			r.Get("/subscriptions", sublist.New(logger, subscriptionService).ServeHTTP)
			r.Post("/subscriptions", create.New(logger, subscriptionService).ServeHTTP)
			r.Put("/subscriptions/{id}", update.New(logger, subscriptionService).ServeHTTP)
			r.Delete("/subscriptions/{id}", remove.New(logger, subscriptionService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
