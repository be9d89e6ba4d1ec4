// Package remove implements the DELETE /subscriptions/{id} handler.
// A successful delete answers 204 with an empty body.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/afrikanet/satellite-console/internal/http/response"
	"github.com/afrikanet/satellite-console/internal/lib/sl"
	subscriptionsvc "github.com/afrikanet/satellite-console/internal/services/subscription"
)

// Handler serves subscription removal.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service is the subscription contract of the handler.
type Service interface {
	Remove(ctx context.Context, id string) error
}

// New creates a remove Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Delete a subscription
// @Description Removes a subscription by id.
// @Tags Subscriptions
// @Produce json
// @Param id path string true "Subscription id"
// @Success 204 "Deleted"
// @Failure 401 {object} response.Detail "Not authenticated"
// @Failure 404 {object} response.Detail "Unknown subscription id"
// @Failure 500 {object} response.Detail "Removal failure"
// @Security BearerAuth
// @Router /subscriptions/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	if err := h.service.Remove(r.Context(), id); err != nil {
		if errors.Is(err, subscriptionsvc.ErrNotFound) {
			log.Info("subscription not found", slog.String("id", id))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("subscription not found"))
			return
		}
		log.Error("failed to remove subscription", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove subscription"))
		return
	}

	log.Info("subscription removed", slog.String("id", id))
	w.WriteHeader(http.StatusNoContent)
}
