package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/afrikanet/satellite-console/internal/models"
)

// CreateSubscription inserts a new subscription record and returns its
// server-assigned id. EndDate must already be derived by the caller.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (string, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (client_name, phone, technology, plan, bandwidth,
			      frequency, amount, duration_months, start_date, end_date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		sub.ClientName, sub.Phone, sub.Technology, sub.Plan, sub.Bandwidth,
		sub.Frequency, sub.Amount, sub.DurationMonths, sub.StartDate, sub.EndDate).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// UpdateSubscription replaces the editable attributes of a record and
// returns the number of affected rows. Zero rows means the id is stale.
func (s *Storage) UpdateSubscription(ctx context.Context, sub models.Subscription, id string) (int, error) {
	const op = "storage.UpdateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET client_name = $1, phone = $2, technology = $3, plan = $4, bandwidth = $5,
			      frequency = $6, amount = $7, duration_months = $8, start_date = $9, end_date = $10
			  WHERE id = $11`
	result, err := s.DB.ExecContext(ctx, query,
		sub.ClientName, sub.Phone, sub.Technology, sub.Plan, sub.Bandwidth,
		sub.Frequency, sub.Amount, sub.DurationMonths, sub.StartDate, sub.EndDate, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveSubscription deletes a record by id and returns the number of
// deleted rows. Zero rows means the id is stale.
func (s *Storage) RemoveSubscription(ctx context.Context, id string) (int, error) {
	const op = "storage.RemoveSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListSubscriptions returns every subscription record ordered by creation
// time. Status is not selected: it is derived by the service on read.
func (s *Storage) ListSubscriptions(ctx context.Context) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, client_name, phone, technology, plan, bandwidth,
			      frequency, amount, duration_months, start_date, end_date, created_at
			  FROM subscriptions
			  ORDER BY created_at, id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.Subscription
	for rows.Next() {
		var sub models.Subscription
		if err := rows.Scan(&sub.ID, &sub.ClientName, &sub.Phone, &sub.Technology, &sub.Plan,
			&sub.Bandwidth, &sub.Frequency, &sub.Amount, &sub.DurationMonths,
			&sub.StartDate, &sub.EndDate, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListNonActive returns subscriptions whose end date falls at or before the
// given horizon, most urgent first. With horizon = now + warning window this
// is exactly the set of expiring and expired records the alert projection
// and the notification scheduler work from.
func (s *Storage) ListNonActive(ctx context.Context, horizon time.Time) ([]*models.Subscription, error) {
	const op = "storage.ListNonActive"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, client_name, phone, technology, plan, bandwidth,
			      frequency, amount, duration_months, start_date, end_date, created_at
			  FROM subscriptions
			  WHERE end_date <= $1
			  ORDER BY end_date, id`
	rows, err := s.DB.QueryContext(ctx, query, horizon)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.Subscription
	for rows.Next() {
		var sub models.Subscription
		if err := rows.Scan(&sub.ID, &sub.ClientName, &sub.Phone, &sub.Technology, &sub.Plan,
			&sub.Bandwidth, &sub.Frequency, &sub.Amount, &sub.DurationMonths,
			&sub.StartDate, &sub.EndDate, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
