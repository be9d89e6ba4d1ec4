// Package create implements the POST /subscriptions handler.
//
// The handler validates the entry, hands it to the subscription service and
// answers with the created record, end date and status already derived by
// the server.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/afrikanet/satellite-console/internal/http/response"
	"github.com/afrikanet/satellite-console/internal/lib/sl"
	"github.com/afrikanet/satellite-console/internal/models"
	subscriptionsvc "github.com/afrikanet/satellite-console/internal/services/subscription"
)

// Handler serves subscription creation.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service is the subscription contract of the handler.
type Service interface {
	Create(ctx context.Context, entry models.SubscriptionEntry) (*models.Subscription, error)
}

// New creates a create Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Create a subscription
// @Description Stores a new subscription. end_date and status are derived by the server.
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param request body models.SubscriptionEntry true "Subscription data"
// @Success 201 {object} models.Subscription "Created record"
// @Failure 400 {object} response.Detail "Malformed JSON"
// @Failure 401 {object} response.Detail "Not authenticated"
// @Failure 422 {object} response.Detail "Validation failure"
// @Failure 500 {object} response.Detail "Creation failure"
// @Security BearerAuth
// @Router /subscriptions [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	sub, err := h.service.Create(r.Context(), entry)
	if err != nil {
		if errors.Is(err, subscriptionsvc.ErrInvalidStartDate) {
			log.Error("invalid start date", sl.Err(err))
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("start_date must be an RFC3339 instant or a YYYY-MM-DD date"))
			return
		}
		log.Error("failed to create subscription", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create subscription"))
		return
	}

	log.Info("subscription created", slog.String("id", sub.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, sub)
}
