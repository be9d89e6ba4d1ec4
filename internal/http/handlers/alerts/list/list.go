// Package list implements the GET /alerts handler. The feed is recomputed
// on every request from the subscriptions currently expiring or expired.
package list

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

// Handler serves the alert feed.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the alert contract of the handler.
type Service interface {
	List(ctx context.Context) ([]models.Alert, error)
}

// New creates an alerts list Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Alert feed
// @Description Returns the current expiration alerts, most urgent first.
// @Tags Alerts
// @Produce json
// @Success 200 {array} models.Alert "Alerts"
// @Failure 401 {object} response.Detail "Not authenticated"
// @Failure 500 {object} response.Detail "Feed failure"
// @Security BearerAuth
// @Router /alerts [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.alerts.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	alerts, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to build alert feed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list alerts"))
		return
	}

	log.Info("alerts listed", slog.Int("count", len(alerts)))
	render.JSON(w, r, alerts)
}
