// Package stats implements the GET /dashboard/stats handler.
package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/afrikanet/satellite-console/internal/http/response"
	"github.com/afrikanet/satellite-console/internal/lib/sl"
	"github.com/afrikanet/satellite-console/internal/models"
)

// Handler serves the dashboard snapshot.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the dashboard contract of the handler.
type Service interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

// New creates a stats Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Dashboard statistics
// @Description Returns the aggregate snapshot: totals, revenue, breakdowns.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} models.DashboardStats "Snapshot"
// @Failure 401 {object} response.Detail "Not authenticated"
// @Failure 500 {object} response.Detail "Aggregation failure"
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.stats"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	stats, err := h.service.Stats(r.Context())
	if err != nil {
		log.Error("failed to compute dashboard stats", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not compute dashboard stats"))
		return
	}

	render.JSON(w, r, stats)
}
