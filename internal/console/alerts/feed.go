// Package alerts is the console's read-only view of the alert feed. The
// feed is a server-side projection: nothing here creates or dismisses an
// alert, it disappears when the underlying subscription reclassifies.
package alerts

import (
	"context"

	"github.com/afrikanet/satellite-console/internal/models"
)

// Client is the API contract of the feed.
type Client interface {
	Get(ctx context.Context, path string, out any) error
}

// Feed reads the current alerts.
type Feed struct {
	client Client
}

// New creates a Feed.
func New(client Client) *Feed {
	return &Feed{client: client}
}

// List fetches the full feed, most urgent first as served.
func (f *Feed) List(ctx context.Context) ([]models.Alert, error) {
	var alerts []models.Alert
	if err := f.client.Get(ctx, "/alerts", &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// Summary fetches the feed and returns at most n entries, for the
// dashboard excerpt.
func (f *Feed) Summary(ctx context.Context, n int) ([]models.Alert, error) {
	alerts, err := f.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(alerts) > n {
		alerts = alerts[:n]
	}
	return alerts, nil
}
