package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/afrikanet/satellite-console/internal/models"
)

type ClientMock struct{ mock.Mock }

func (m *ClientMock) Get(ctx context.Context, path string, out any) error {
	args := m.Called(ctx, path, out)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	switch v := out.(type) {
	case *models.DashboardStats:
		*v = models.DashboardStats{TotalSubscribers: 12, UrgentAlerts: 3}
	case *[]models.RevenuePoint:
		*v = []models.RevenuePoint{{Month: "2024-01", Revenue: 500000}}
	}
	return nil
}

func TestStats(t *testing.T) {
	client := new(ClientMock)
	client.On("Get", mock.Anything, "/dashboard/stats", mock.Anything).Return(nil)

	stats, err := New(client).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, stats.TotalSubscribers)
	assert.Equal(t, 3, stats.UrgentAlerts)
}

func TestRevenueChart(t *testing.T) {
	client := new(ClientMock)
	client.On("Get", mock.Anything, "/dashboard/revenue-chart", mock.Anything).Return(nil)

	points, err := New(client).RevenueChart(context.Background())
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "2024-01", points[0].Month)
}

func TestStats_Failure(t *testing.T) {
	client := new(ClientMock)
	client.On("Get", mock.Anything, "/dashboard/stats", mock.Anything).
		Return(errors.New("connection refused"))

	_, err := New(client).Stats(context.Background())
	assert.Error(t, err)
}
