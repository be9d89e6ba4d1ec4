// Package list implements the GET /subscriptions handler. Every record is
// returned with its status classified as of the request time.
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

// Handler serves the subscription list.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the subscription contract of the handler.
type Service interface {
	List(ctx context.Context) ([]*models.Subscription, error)
}

// New creates a list Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary List subscriptions
// @Description Returns every subscription with its derived lifecycle status.
// @Tags Subscriptions
// @Produce json
// @Success 200 {array} models.Subscription "Subscriptions"
// @Failure 401 {object} response.Detail "Not authenticated"
// @Failure 500 {object} response.Detail "Listing failure"
// @Security BearerAuth
// @Router /subscriptions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	subs, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list subscriptions", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list subscriptions"))
		return
	}
	if subs == nil {
		subs = []*models.Subscription{}
	}

	log.Info("subscriptions listed", slog.Int("count", len(subs)))
	render.JSON(w, r, subs)
}
