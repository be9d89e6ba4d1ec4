// Package subscription contains the business logic of the subscription
// registry: create, update, remove and list with server-derived end dates
// and lifecycle statuses.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/afrikanet/satellite-console/internal/cache"
	"github.com/afrikanet/satellite-console/internal/lib/sl"
	"github.com/afrikanet/satellite-console/internal/lifecycle"
	"github.com/afrikanet/satellite-console/internal/models"
)

var (
	// ErrNotFound is returned when a mutation targets an id that no
	// longer exists.
	ErrNotFound = errors.New("subscription not found")
	// ErrInvalidStartDate is returned when the start date cannot be
	// parsed as an RFC3339 instant or a plain date.
	ErrInvalidStartDate = errors.New("invalid start_date")
)

// Repository describes the storage contract of the subscription registry.
type Repository interface {
	CreateSubscription(ctx context.Context, sub models.Subscription) (string, error)
	UpdateSubscription(ctx context.Context, sub models.Subscription, id string) (int, error)
	RemoveSubscription(ctx context.Context, id string) (int, error)
	ListSubscriptions(ctx context.Context) ([]*models.Subscription, error)
}

// Invalidator drops cached projections that a mutation makes stale.
type Invalidator interface {
	Invalidate(key string) error
}

// Service implements the subscription operations on top of a Repository.
type Service struct {
	repo          Repository
	cache         Invalidator
	warningWindow time.Duration
	log           *slog.Logger

	now func() time.Time
}

// New creates a subscription Service with the given warning window.
func New(repo Repository, cache Invalidator, warningWindow time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:          repo,
		cache:         cache,
		warningWindow: warningWindow,
		log:           log,
		now:           time.Now,
	}
}

// Create stores a new subscription. The end date is derived from the start
// date plus the duration in calendar months; the client never supplies it.
func (s *Service) Create(ctx context.Context, entry models.SubscriptionEntry) (*models.Subscription, error) {
	const op = "subscription.Create"
	sub, err := s.fromEntry(entry)
	if err != nil {
		return nil, err
	}
	id, err := s.repo.CreateSubscription(ctx, *sub)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sub.ID = id
	sub.CreatedAt = s.now()
	sub.Status = lifecycle.Classify(sub.EndDate, s.now(), s.warningWindow)
	s.invalidateStats()
	return sub, nil
}

// Update replaces the editable attributes of a subscription and rederives
// its end date. A stale id yields ErrNotFound.
func (s *Service) Update(ctx context.Context, id string, entry models.SubscriptionEntry) (*models.Subscription, error) {
	const op = "subscription.Update"
	sub, err := s.fromEntry(entry)
	if err != nil {
		return nil, err
	}
	affected, err := s.repo.UpdateSubscription(ctx, *sub, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	sub.ID = id
	sub.Status = lifecycle.Classify(sub.EndDate, s.now(), s.warningWindow)
	s.invalidateStats()
	return sub, nil
}

// Remove deletes a subscription by id. A stale id yields ErrNotFound.
func (s *Service) Remove(ctx context.Context, id string) error {
	const op = "subscription.Remove"
	affected, err := s.repo.RemoveSubscription(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	s.invalidateStats()
	return nil
}

// List returns every subscription with its status classified as of now.
func (s *Service) List(ctx context.Context) ([]*models.Subscription, error) {
	const op = "subscription.List"
	subs, err := s.repo.ListSubscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	now := s.now()
	for _, sub := range subs {
		sub.Status = lifecycle.Classify(sub.EndDate, now, s.warningWindow)
	}
	return subs, nil
}

// fromEntry builds a Subscription from a validated entry: the start date is
// parsed and the end date derived.
func (s *Service) fromEntry(entry models.SubscriptionEntry) (*models.Subscription, error) {
	startDate, err := ParseStartDate(entry.StartDate)
	if err != nil {
		return nil, err
	}
	return &models.Subscription{
		ClientName:     entry.ClientName,
		Phone:          entry.Phone,
		Technology:     entry.Technology,
		Plan:           entry.Plan,
		Bandwidth:      entry.Bandwidth,
		Frequency:      entry.Frequency,
		Amount:         entry.Amount,
		DurationMonths: entry.DurationMonths,
		StartDate:      startDate,
		EndDate:        lifecycle.EndDate(startDate, entry.DurationMonths),
	}, nil
}

// ParseStartDate accepts either an RFC3339 instant or a bare 2006-01-02
// date, in UTC.
func ParseStartDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidStartDate, raw)
	}
	return t, nil
}

func (s *Service) invalidateStats() {
	if err := s.cache.Invalidate(cache.KeyDashboardStats); err != nil {
		s.log.Warn("failed to invalidate stats cache", sl.Err(err))
	}
}
