package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/afrikanet/satellite-console/internal/models"
)

// CountStats computes the dashboard aggregates in a single query. The status
// buckets use the same date arithmetic as the lifecycle classifier: expired
// at or before now, expiring within the warning window, active beyond it.
func (s *Storage) CountStats(ctx context.Context, now, horizon time.Time) (*models.DashboardStats, error) {
	const op = "storage.CountStats"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	stats := &models.DashboardStats{}
	query := `SELECT COUNT(*),
			      COALESCE(SUM(amount) FILTER (WHERE end_date > $2), 0),
			      COUNT(*) FILTER (WHERE end_date > $2),
			      COUNT(*) FILTER (WHERE end_date > $1 AND end_date <= $2),
			      COUNT(*) FILTER (WHERE end_date <= $1)
			  FROM subscriptions`
	err := s.DB.QueryRowContext(ctx, query, now, horizon).Scan(
		&stats.TotalSubscribers, &stats.MonthlyRevenue, &stats.StatusBreakdown.Active,
		&stats.StatusBreakdown.Expiring, &stats.StatusBreakdown.Expired)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	stats.ActiveSubscriptions = stats.StatusBreakdown.Active
	stats.UrgentAlerts = stats.StatusBreakdown.Expiring + stats.StatusBreakdown.Expired

	techQuery := `SELECT technology, COUNT(*)
			  FROM subscriptions
			  GROUP BY technology
			  ORDER BY technology`
	rows, err := s.DB.QueryContext(ctx, techQuery)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var tc models.TechnologyCount
		if err := rows.Scan(&tc.Technology, &tc.Count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		stats.TechnologyBreakdown = append(stats.TechnologyBreakdown, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}

// RevenueByMonth aggregates subscription revenue per start month, oldest
// first, for the dashboard revenue chart.
func (s *Storage) RevenueByMonth(ctx context.Context) ([]models.RevenuePoint, error) {
	const op = "storage.RevenueByMonth"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT to_char(start_date, 'YYYY-MM') AS month, SUM(amount)
			  FROM subscriptions
			  GROUP BY month
			  ORDER BY month`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []models.RevenuePoint
	for rows.Next() {
		var point models.RevenuePoint
		if err := rows.Scan(&point.Month, &point.Revenue); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, point)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
