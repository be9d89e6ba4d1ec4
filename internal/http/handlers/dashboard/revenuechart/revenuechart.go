// Package revenuechart implements the GET /dashboard/revenue-chart handler
// serving the per-month revenue series.
package revenuechart

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

// Handler serves the revenue chart.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the dashboard contract of the handler.
type Service interface {
	RevenueChart(ctx context.Context) ([]models.RevenuePoint, error)
}

// New creates a revenuechart Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Revenue chart
// @Description Returns revenue aggregated per start month, oldest first.
// @Tags Dashboard
// @Produce json
// @Success 200 {array} models.RevenuePoint "Revenue series"
// @Failure 401 {object} response.Detail "Not authenticated"
// @Failure 500 {object} response.Detail "Aggregation failure"
// @Security BearerAuth
// @Router /dashboard/revenue-chart [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.revenuechart"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	points, err := h.service.RevenueChart(r.Context())
	if err != nil {
		log.Error("failed to build revenue chart", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build revenue chart"))
		return
	}
	if points == nil {
		points = []models.RevenuePoint{}
	}

	render.JSON(w, r, points)
}
