package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/afrikanet/satellite-console/internal/models"
)

// TestDataFactory seeds records for integration tests.
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory creates a factory over a test database.
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser inserts a staff account.
func (f *TestDataFactory) CreateUser(t *testing.T, username, email, fullName, passwordHash, role string) string {
	t.Helper()
	var uid string
	err := f.storage.DB.QueryRow(`INSERT INTO users (username, email, full_name, password_hash, role)
		VALUES ($1, $2, $3, $4, $5) RETURNING uid`,
		username, email, fullName, passwordHash, role).Scan(&uid)
	require.NoError(t, err)
	return uid
}

// CreateSubscription inserts a subscription record with a precomputed end date.
func (f *TestDataFactory) CreateSubscription(t *testing.T, clientName, technology, plan string,
	amount, durationMonths int, startDate, endDate time.Time) string {
	t.Helper()
	var id string
	err := f.storage.DB.QueryRow(`INSERT INTO subscriptions
		(client_name, phone, technology, plan, bandwidth, frequency, amount, duration_months, start_date, end_date)
		VALUES ($1, '+242066000000', $2, $3, '100Mbps', 'Ka-band', $4, $5, $6, $7) RETURNING id`,
		clientName, technology, plan, amount, durationMonths, startDate, endDate).Scan(&id)
	require.NoError(t, err)
	return id
}

// SubscriptionRow reads back a record for verification.
func (f *TestDataFactory) SubscriptionRow(t *testing.T, id string) *models.Subscription {
	t.Helper()
	var sub models.Subscription
	err := f.storage.DB.QueryRow(`SELECT id, client_name, phone, technology, plan, bandwidth,
		frequency, amount, duration_months, start_date, end_date, created_at
		FROM subscriptions WHERE id = $1`, id).
		Scan(&sub.ID, &sub.ClientName, &sub.Phone, &sub.Technology, &sub.Plan, &sub.Bandwidth,
			&sub.Frequency, &sub.Amount, &sub.DurationMonths, &sub.StartDate, &sub.EndDate, &sub.CreatedAt)
	require.NoError(t, err)
	return &sub
}

const testSchema = `
CREATE EXTENSION IF NOT EXISTS "pgcrypto";

CREATE TABLE users (
    uid UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    username TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL UNIQUE,
    full_name TEXT NOT NULL DEFAULT '',
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'operator',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE subscriptions (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    client_name TEXT NOT NULL,
    phone TEXT NOT NULL,
    technology TEXT NOT NULL,
    plan TEXT NOT NULL,
    bandwidth TEXT NOT NULL,
    frequency TEXT NOT NULL,
    amount INT NOT NULL,
    duration_months INT NOT NULL,
    start_date TIMESTAMPTZ NOT NULL,
    end_date TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// setupTestDatabase starts a disposable PostgreSQL container and applies the
// schema. The returned cleanup terminates the container.
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	t.Helper()
	ctx := context.Background()

	pgPort := nat.Port("5432/tcp")
	container, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort(pgPort),
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(3*time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	port, err := container.MappedPort(ctx, pgPort)
	require.NoError(t, err, "failed to get mapped port")

	host, err := container.Host(ctx)
	require.NoError(t, err)

	connStr := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())

	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil && storage.DB.Ping() == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	_, err = storage.DB.Exec(testSchema)
	require.NoError(t, err, "failed to apply schema")

	cleanup := func() {
		_ = storage.DB.Close()
		_ = container.Terminate(ctx)
	}
	return storage, cleanup
}
