// Package update implements the PUT /subscriptions/{id} handler.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/afrikanet/satellite-console/internal/http/response"
	"github.com/afrikanet/satellite-console/internal/lib/sl"
	"github.com/afrikanet/satellite-console/internal/models"
	subscriptionsvc "github.com/afrikanet/satellite-console/internal/services/subscription"
)

// Handler serves subscription updates.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the subscription contract of the handler.
type Service interface {
	Update(ctx context.Context, id string, entry models.SubscriptionEntry) (*models.Subscription, error)
}

// New creates an update Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Update a subscription
// @Description Replaces the editable attributes and rederives end_date and status.
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param id path string true "Subscription id"
// @Param request body models.SubscriptionEntry true "Subscription data"
// @Success 200 {object} models.Subscription "Updated record"
// @Failure 400 {object} response.Detail "Malformed JSON"
// @Failure 401 {object} response.Detail "Not authenticated"
// @Failure 404 {object} response.Detail "Unknown subscription id"
// @Failure 422 {object} response.Detail "Validation failure"
// @Failure 500 {object} response.Detail "Update failure"
// @Security BearerAuth
// @Router /subscriptions/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	var entry models.SubscriptionEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(entry); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	sub, err := h.service.Update(r.Context(), id, entry)
	if err != nil {
		switch {
		case errors.Is(err, subscriptionsvc.ErrNotFound):
			log.Info("subscription not found", slog.String("id", id))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("subscription not found"))
		case errors.Is(err, subscriptionsvc.ErrInvalidStartDate):
			log.Error("invalid start date", sl.Err(err))
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("start_date must be an RFC3339 instant or a YYYY-MM-DD date"))
		default:
			log.Error("failed to update subscription", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update subscription"))
		}
		return
	}

	log.Info("subscription updated", slog.String("id", id))
	render.JSON(w, r, sub)
}
