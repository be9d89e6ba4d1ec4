// Package session owns the console's authentication state: the bearer
// token, its durable file copy and the verified account identity. The
// Store is the sole writer of session state and serializes its own
// mutations.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/afrikanet/satellite-console/internal/console/api"
	"github.com/afrikanet/satellite-console/internal/lib/sl"
	"github.com/afrikanet/satellite-console/internal/models"
)

// Client is the API contract of the Store.
type Client interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
}

// Result is the outcome of a login attempt. Failures carry a
// human-readable reason for inline rendering, never an error value.
type Result struct {
	Success bool
	Error   string
}

// Store manages the session lifecycle.
type Store struct {
	mu     sync.Mutex
	keeper *Keeper
	vault  *Vault
	client Client
	log    *slog.Logger

	user *models.User
}

// NewStore creates a Store over the given keeper, vault and API client.
func NewStore(keeper *Keeper, vault *Vault, client Client, log *slog.Logger) *Store {
	return &Store{
		keeper: keeper,
		vault:  vault,
		client: client,
		log:    log,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *models.User `json:"user"`
}

// Restore rehydrates the session from the persisted token. A stored token
// is only a candidate until /me accepts it; any rejection tears the
// session down silently, since an absent or stale token is the normal
// "not logged in" path, not an error.
func (s *Store) Restore(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.vault.Load()
	if err != nil {
		s.log.Warn("failed to read persisted token", sl.Err(err))
		return false
	}
	if token == "" {
		return false
	}

	s.keeper.Set(token)
	var user models.User
	if err := s.client.Get(ctx, "/me", &user); err != nil {
		s.log.Info("persisted token rejected, clearing session", sl.Err(err))
		s.teardown()
		return false
	}

	s.user = &user
	s.log.Info("session restored", slog.String("username", user.Username))
	return true
}

// Login submits the credentials. On success the token is attached to all
// subsequent requests and persisted durably. Failures return a Result with
// the server's detail message when one exists.
func (s *Store) Login(ctx context.Context, username, password string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	var resp loginResponse
	err := s.client.Post(ctx, "/login", loginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		var authErr *api.AuthError
		if errors.As(err, &authErr) {
			return Result{Error: authErr.Detail}
		}
		s.log.Error("login request failed", sl.Err(err))
		return Result{Error: "could not reach the server"}
	}

	s.keeper.Set(resp.AccessToken)
	s.user = resp.User
	if err := s.vault.Save(resp.AccessToken); err != nil {
		// The session still works, it just will not survive a restart.
		s.log.Warn("failed to persist token", sl.Err(err))
	}

	s.log.Info("logged in", slog.String("username", username))
	return Result{Success: true}
}

// Logout clears the session. The credential is detached synchronously
// before return, so no later request can carry a stale token. Idempotent.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teardown()
}

// teardown must be called with mu held.
func (s *Store) teardown() {
	s.keeper.Clear()
	s.user = nil
	if err := s.vault.Remove(); err != nil {
		s.log.Warn("failed to remove persisted token", sl.Err(err))
	}
}

// User returns the verified account, nil when unauthenticated.
func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Authenticated reports whether a verified session is held.
func (s *Store) Authenticated() bool {
	return s.User() != nil
}
