// Package subscriptions is the console's CRUD facade over the remote
// subscription collection.
//
// The repository keeps a cached copy of the last fetched list and
// re-fetches after every successful mutation, so the UI always shows the
// server-computed end_date and status. It holds no optimistic lock: two
// concurrent edits of the same record overwrite each other, last writer
// wins, which is acceptable for a single-operator console.
package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/afrikanet/satellite-console/internal/console/api"
	"github.com/afrikanet/satellite-console/internal/lib/sl"
	"github.com/afrikanet/satellite-console/internal/models"
)

// ValidationError reports required fields left empty. It is raised before
// any network call so the form can render it inline.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required fields are empty: %s", strings.Join(e.Fields, ", "))
}

// Client is the API contract of the repository.
type Client interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// Repository manages the subscription collection.
type Repository struct {
	client Client
	log    *slog.Logger

	mu    sync.RWMutex
	items []models.Subscription
}

// New creates a Repository.
func New(client Client, log *slog.Logger) *Repository {
	return &Repository{client: client, log: log}
}

// List fetches the full collection, in server order, and refreshes the
// cached copy.
func (r *Repository) List(ctx context.Context) ([]models.Subscription, error) {
	var items []models.Subscription
	if err := r.client.Get(ctx, "/subscriptions", &items); err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.items = items
	r.mu.Unlock()
	return items, nil
}

// Items returns the cached copy of the last fetch.
func (r *Repository) Items() []models.Subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]models.Subscription, len(r.items))
	copy(items, r.items)
	return items
}

// Create submits a new subscription and re-fetches the list.
func (r *Repository) Create(ctx context.Context, entry models.SubscriptionEntry) error {
	prepared, err := r.prepare(entry)
	if err != nil {
		return err
	}
	var created models.Subscription
	if err := r.client.Post(ctx, "/subscriptions", prepared, &created); err != nil {
		return err
	}
	return r.refetch(ctx)
}

// Update replaces the editable attributes of id and re-fetches the list.
// A stale id surfaces as api.NotFoundError; the re-fetch still runs so the
// cached list reconciles with the server.
func (r *Repository) Update(ctx context.Context, id string, entry models.SubscriptionEntry) error {
	prepared, err := r.prepare(entry)
	if err != nil {
		return err
	}
	var updated models.Subscription
	if err := r.client.Put(ctx, "/subscriptions/"+id, prepared, &updated); err != nil {
		r.refetchOnMiss(ctx, err)
		return err
	}
	return r.refetch(ctx)
}

// Delete removes id and re-fetches the list. The caller is responsible for
// confirming the destructive action with the operator first.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, "/subscriptions/"+id); err != nil {
		r.refetchOnMiss(ctx, err)
		return err
	}
	return r.refetch(ctx)
}

// prepare validates the required fields and normalizes the start date to a
// canonical transmission form.
func (r *Repository) prepare(entry models.SubscriptionEntry) (models.SubscriptionEntry, error) {
	var missing []string
	if strings.TrimSpace(entry.ClientName) == "" {
		missing = append(missing, "client_name")
	}
	if strings.TrimSpace(entry.Phone) == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return entry, &ValidationError{Fields: missing}
	}

	normalized, err := NormalizeStartDate(entry.StartDate)
	if err != nil {
		return entry, err
	}
	entry.StartDate = normalized
	return entry, nil
}

// NormalizeStartDate converts a date-only or RFC3339 input to start of day
// UTC, RFC3339, the single representation sent over the wire.
func NormalizeStartDate(raw string) (string, error) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		t, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return "", fmt.Errorf("unrecognized start date %q", raw)
		}
	}
	t = t.UTC()
	startOfDay := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return startOfDay.Format(time.RFC3339), nil
}

func (r *Repository) refetch(ctx context.Context) error {
	if _, err := r.List(ctx); err != nil {
		// The mutation itself succeeded; stale cache is the lesser problem.
		r.log.Warn("failed to refresh subscription list", sl.Err(err))
	}
	return nil
}

// refetchOnMiss reconciles the cached list after a NotFoundError: the
// record is gone server-side and should vanish locally too.
func (r *Repository) refetchOnMiss(ctx context.Context, err error) {
	if !isNotFound(err) {
		return
	}
	if _, listErr := r.List(ctx); listErr != nil {
		r.log.Warn("failed to reconcile subscription list", sl.Err(listErr))
	}
}

func isNotFound(err error) bool {
	var nfErr *api.NotFoundError
	return errors.As(err, &nfErr)
}
