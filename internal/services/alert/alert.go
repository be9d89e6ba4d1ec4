// Package alert builds the alert feed and the dashboard aggregates. Alerts
// are a read projection over subscriptions currently expiring or expired:
// nothing is persisted, the feed is recomputed on every fetch and an alert
// vanishes as soon as its subscription reclassifies to active.
package alert

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/afrikanet/satellite-console/internal/cache"
	"github.com/afrikanet/satellite-console/internal/lib/sl"
	"github.com/afrikanet/satellite-console/internal/lifecycle"
	"github.com/afrikanet/satellite-console/internal/models"
)

// statsCacheTTL bounds how stale a cached dashboard snapshot may get even
// without an invalidating write.
const statsCacheTTL = 30 * time.Second

// Reader describes the storage reads the projection is built from.
type Reader interface {
	ListNonActive(ctx context.Context, horizon time.Time) ([]*models.Subscription, error)
	CountStats(ctx context.Context, now, horizon time.Time) (*models.DashboardStats, error)
	RevenueByMonth(ctx context.Context) ([]models.RevenuePoint, error)
}

// CacheClient is the cache contract for the dashboard snapshot.
type CacheClient interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
}

// Service computes the alert feed and dashboard stats.
type Service struct {
	reader        Reader
	cache         CacheClient
	warningWindow time.Duration
	log           *slog.Logger

	now func() time.Time
}

// New creates an alert Service with the given warning window.
func New(reader Reader, cache CacheClient, warningWindow time.Duration, log *slog.Logger) *Service {
	return &Service{
		reader:        reader,
		cache:         cache,
		warningWindow: warningWindow,
		log:           log,
		now:           time.Now,
	}
}

// List returns the current alert feed, most urgent first. The alert id
// reuses the subscription id: the projection is 1:1 with the non-active
// subscriptions and needs no identity of its own.
func (s *Service) List(ctx context.Context) ([]models.Alert, error) {
	const op = "alert.List"
	now := s.now()
	subs, err := s.reader.ListNonActive(ctx, now.Add(s.warningWindow))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	alerts := make([]models.Alert, 0, len(subs))
	for _, sub := range subs {
		status := lifecycle.Classify(sub.EndDate, now, s.warningWindow)
		alerts = append(alerts, models.Alert{
			ID:             sub.ID,
			SubscriptionID: sub.ID,
			ClientName:     sub.ClientName,
			Message:        Message(sub, status),
			AlertType:      status,
			CreatedAt:      now,
		})
	}
	return alerts, nil
}

// Message renders the operator-facing alert text in French, as shown in
// the console feed and sent in notification mails.
func Message(sub *models.Subscription, status string) string {
	date := sub.EndDate.Format("02/01/2006")
	if status == models.StatusExpired {
		return fmt.Sprintf("Abonnement %s (%s) a expiré le %s", sub.ClientName, sub.Frequency, date)
	}
	return fmt.Sprintf("Abonnement %s (%s) expire le %s", sub.ClientName, sub.Frequency, date)
}

// Stats returns the dashboard snapshot, served from the Redis cache when a
// fresh copy exists. Cache failures degrade to a direct read.
func (s *Service) Stats(ctx context.Context) (*models.DashboardStats, error) {
	const op = "alert.Stats"
	var cached models.DashboardStats
	found, err := s.cache.Get(cache.KeyDashboardStats, &cached)
	if err != nil {
		s.log.Warn("stats cache read failed", sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	now := s.now()
	stats, err := s.reader.CountStats(ctx, now, now.Add(s.warningWindow))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(cache.KeyDashboardStats, stats, statsCacheTTL); err != nil {
		s.log.Warn("stats cache write failed", sl.Err(err))
	}
	return stats, nil
}

// RevenueChart returns per-month revenue, oldest month first.
func (s *Service) RevenueChart(ctx context.Context) ([]models.RevenuePoint, error) {
	const op = "alert.RevenueChart"
	points, err := s.reader.RevenueByMonth(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return points, nil
}
