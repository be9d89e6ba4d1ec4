package alert

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/afrikanet/satellite-console/internal/lifecycle"
	"github.com/afrikanet/satellite-console/internal/models"
)

type ReaderMock struct{ mock.Mock }

func (m *ReaderMock) ListNonActive(ctx context.Context, horizon time.Time) ([]*models.Subscription, error) {
	args := m.Called(ctx, horizon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

func (m *ReaderMock) CountStats(ctx context.Context, now, horizon time.Time) (*models.DashboardStats, error) {
	args := m.Called(ctx, now, horizon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardStats), args.Error(1)
}

func (m *ReaderMock) RevenueByMonth(ctx context.Context) ([]models.RevenuePoint, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RevenuePoint), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	if args.Bool(0) {
		*(result.(*models.DashboardStats)) = args.Get(2).(models.DashboardStats)
	}
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func newService(reader *ReaderMock, c *CacheMock) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(reader, c, lifecycle.Window(30), log)
}

func TestList_ProjectsNonActiveSubscriptions(t *testing.T) {
	now := time.Date(2024, 6, 25, 0, 0, 0, 0, time.UTC)
	reader := new(ReaderMock)
	reader.On("ListNonActive", mock.Anything, now.Add(30*24*time.Hour)).Return([]*models.Subscription{
		{ID: "old", ClientName: "Clinique du Plateau", Frequency: "C-band",
			EndDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "soon", ClientName: "Hotel Sawa", Frequency: "Ku-band",
			EndDate: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)},
	}, nil)

	svc := newService(reader, new(CacheMock))
	svc.now = func() time.Time { return now }

	alerts, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	assert.Equal(t, "old", alerts[0].ID)
	assert.Equal(t, "old", alerts[0].SubscriptionID)
	assert.Equal(t, models.StatusExpired, alerts[0].AlertType)
	assert.Equal(t, "Abonnement Clinique du Plateau (C-band) a expiré le 01/06/2024", alerts[0].Message)

	assert.Equal(t, models.StatusExpiring, alerts[1].AlertType)
	assert.Equal(t, "Abonnement Hotel Sawa (Ku-band) expire le 01/07/2024", alerts[1].Message)
}

func TestList_EmptyFeed(t *testing.T) {
	reader := new(ReaderMock)
	reader.On("ListNonActive", mock.Anything, mock.Anything).Return([]*models.Subscription{}, nil)

	svc := newService(reader, new(CacheMock))
	alerts, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestStats_CacheMissThenStore(t *testing.T) {
	reader := new(ReaderMock)
	c := new(CacheMock)
	stats := &models.DashboardStats{TotalSubscribers: 4, UrgentAlerts: 2}

	c.On("Get", "dashboard:stats", mock.Anything).Return(false, nil)
	reader.On("CountStats", mock.Anything, mock.Anything, mock.Anything).Return(stats, nil)
	c.On("Set", "dashboard:stats", stats, statsCacheTTL).Return(nil)

	svc := newService(reader, c)
	got, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stats, got)
	c.AssertExpectations(t)
}

func TestStats_CacheHitSkipsStorage(t *testing.T) {
	reader := new(ReaderMock)
	c := new(CacheMock)
	cached := models.DashboardStats{TotalSubscribers: 7}

	c.On("Get", "dashboard:stats", mock.Anything).Return(true, nil, cached)

	svc := newService(reader, c)
	got, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, got.TotalSubscribers)
	reader.AssertNotCalled(t, "CountStats")
}

func TestRevenueChart(t *testing.T) {
	reader := new(ReaderMock)
	reader.On("RevenueByMonth", mock.Anything).Return([]models.RevenuePoint{
		{Month: "2024-01", Revenue: 500000},
		{Month: "2024-02", Revenue: 750000},
	}, nil)

	svc := newService(reader, new(CacheMock))
	points, err := svc.RevenueChart(context.Background())
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "2024-01", points[0].Month)
}
