// Package dashboard reads the aggregate snapshot for the console's main
// view. Each fetch is an immutable value object; nothing is cached across
// fetches.
package dashboard

import (
	"context"

	"github.com/afrikanet/satellite-console/internal/models"
)

// Client is the API contract of the reader.
type Client interface {
	Get(ctx context.Context, path string, out any) error
}

// Reader fetches dashboard data.
type Reader struct {
	client Client
}

// New creates a Reader.
func New(client Client) *Reader {
	return &Reader{client: client}
}

// Stats fetches the current snapshot.
func (r *Reader) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	if err := r.client.Get(ctx, "/dashboard/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// RevenueChart fetches the per-month revenue series.
func (r *Reader) RevenueChart(ctx context.Context) ([]models.RevenuePoint, error) {
	var points []models.RevenuePoint
	if err := r.client.Get(ctx, "/dashboard/revenue-chart", &points); err != nil {
		return nil, err
	}
	return points, nil
}
