// Package scheduler periodically scans the registry for subscriptions
// entering the warning window or expiring outright and publishes one alert
// event per transition to the alerts exchange.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/afrikanet/satellite-console/internal/lib/sl"
	"github.com/afrikanet/satellite-console/internal/lifecycle"
	"github.com/afrikanet/satellite-console/internal/models"
	alertsvc "github.com/afrikanet/satellite-console/internal/services/alert"
)

// Reader lists the subscriptions inside the alert horizon.
type Reader interface {
	ListNonActive(ctx context.Context, horizon time.Time) ([]*models.Subscription, error)
}

// Publisher sends an alert event with the given routing key. The routing
// keys match the lifecycle statuses, expiring and expired.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// Service runs the periodic expiration scan.
type Service struct {
	reader        Reader
	publisher     Publisher
	warningWindow time.Duration
	log           *slog.Logger

	// published remembers the last status announced per subscription so a
	// rescan does not repeat an event until the status changes again. The
	// memory is per process: a restart re-announces current states once.
	published map[string]string

	now func() time.Time
}

// New creates a scheduler Service.
func New(reader Reader, publisher Publisher, warningWindow time.Duration, log *slog.Logger) *Service {
	return &Service{
		reader:        reader,
		publisher:     publisher,
		warningWindow: warningWindow,
		log:           log,
		published:     make(map[string]string),
		now:           time.Now,
	}
}

// Run scans immediately and then on every tick of interval until the
// context is cancelled.
func (s *Service) Run(ctx context.Context, interval time.Duration) error {
	const op = "scheduler.Run"
	if err := s.Scan(ctx); err != nil {
		s.log.Error("expiration scan failed", sl.Err(err))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", op, ctx.Err())
		case <-ticker.C:
			if err := s.Scan(ctx); err != nil {
				s.log.Error("expiration scan failed", sl.Err(err))
			}
		}
	}
}

// Scan publishes one event per subscription whose status differs from the
// last announced one.
func (s *Service) Scan(ctx context.Context) error {
	const op = "scheduler.Scan"
	now := s.now()
	subs, err := s.reader.ListNonActive(ctx, now.Add(s.warningWindow))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var sent int
	for _, sub := range subs {
		status := lifecycle.Classify(sub.EndDate, now, s.warningWindow)
		if s.published[sub.ID] == status {
			continue
		}
		event := models.Alert{
			ID:             sub.ID,
			SubscriptionID: sub.ID,
			ClientName:     sub.ClientName,
			Message:        alertsvc.Message(sub, status),
			AlertType:      status,
			CreatedAt:      now,
		}
		if err := s.publisher.Publish(status, event); err != nil {
			s.log.Error("failed to publish alert event",
				slog.String("subscription_id", sub.ID), sl.Err(err))
			continue
		}
		s.published[sub.ID] = status
		sent++
	}

	s.log.Info("expiration scan finished",
		slog.Int("candidates", len(subs)), slog.Int("published", sent))
	return nil
}
