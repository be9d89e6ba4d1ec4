// Package me implements the GET /me handler returning the account behind
// the bearer token. The console uses it to validate a restored session.
package me

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/afrikanet/satellite-console/internal/http/middlewarectx"
	"github.com/afrikanet/satellite-console/internal/http/response"
)

// Handler serves the current-account lookup.
type Handler struct {
	log *slog.Logger
}

// New creates a me Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Current account
// @Description Returns the staff account of the presented bearer token.
// @Tags Auth
// @Produce json
// @Success 200 {object} models.User "Authenticated account"
// @Failure 401 {object} response.Detail "Not authenticated"
// @Security BearerAuth
// @Router /me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user := middlewarectx.UserFromContext(r.Context())
	if user == nil {
		log.Error("user not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("not authenticated"))
		return
	}

	render.JSON(w, r, user)
}
