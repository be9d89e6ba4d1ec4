// Package health implements the readiness probe.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/afrikanet/satellite-console/internal/http/response"
	"github.com/afrikanet/satellite-console/internal/lib/sl"
)

// Handler serves the health check.
type Handler struct {
	log    *slog.Logger
	pinger Pinger
}

// Pinger reports whether the database connection is alive.
type Pinger interface {
	CheckDatabaseReady(ctx context.Context) error
}

// New creates a health Handler.
func New(log *slog.Logger, pinger Pinger) *Handler {
	return &Handler{log: log, pinger: pinger}
}

// ServeHTTP godoc
// @Summary Health check
// @Description Reports service and database readiness.
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Ready"
// @Failure 503 {object} response.Detail "Database unreachable"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	if err := h.pinger.CheckDatabaseReady(r.Context()); err != nil {
		h.log.Error("database not ready", slog.String("op", op), sl.Err(err))
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("database unavailable"))
		return
	}

	render.JSON(w, r, map[string]string{"status": "ok"})
}
