// Package middlewarectx contains the HTTP middleware of the API: bearer
// token verification and rate limiting.
//
// AuthMiddleware checks the Authorization header, resolves the token to a
// staff account and puts the account and its role into the request context
// for the handlers. Verification failures answer 401 with a detail body.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/afrikanet/satellite-console/internal/http/response"
	"github.com/afrikanet/satellite-console/internal/lib/sl"
	"github.com/afrikanet/satellite-console/internal/models"
)

// Key is the type of the request context keys.
type Key string

const (
	// User keys the authenticated *models.User in the context.
	User Key = "user"
	// Role keys the authenticated role in the context.
	Role Key = "role"
)

// Service resolves a bearer token to a staff account.
type Service interface {
	VerifyToken(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware returns a middleware enforcing a valid bearer token.
func AuthMiddleware(auth Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AuthMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("not authenticated"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			user, err := auth.VerifyToken(r.Context(), tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}
			ctx := context.WithValue(r.Context(), User, user)
			ctx = context.WithValue(ctx, Role, user.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated account placed by
// AuthMiddleware, or nil outside an authenticated request.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(User).(*models.User)
	return user
}
