package scheduler

import (
	"context"
	"errors"
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

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(routingKey string, message any) error {
	args := m.Called(routingKey, message)
	return args.Error(0)
}

func newService(reader *ReaderMock, pub *PublisherMock, now time.Time) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := New(reader, pub, lifecycle.Window(30), log)
	svc.now = func() time.Time { return now }
	return svc
}

func TestScan_PublishesPerStatus(t *testing.T) {
	now := time.Date(2024, 6, 25, 0, 0, 0, 0, time.UTC)
	reader := new(ReaderMock)
	pub := new(PublisherMock)
	reader.On("ListNonActive", mock.Anything, mock.Anything).Return([]*models.Subscription{
		{ID: "a", ClientName: "Hotel Sawa", EndDate: now.AddDate(0, 0, 5)},
		{ID: "b", ClientName: "Clinique", EndDate: now.AddDate(0, 0, -2)},
	}, nil)
	pub.On("Publish", models.StatusExpiring, mock.MatchedBy(func(ev any) bool {
		return ev.(models.Alert).SubscriptionID == "a"
	})).Return(nil)
	pub.On("Publish", models.StatusExpired, mock.MatchedBy(func(ev any) bool {
		return ev.(models.Alert).SubscriptionID == "b"
	})).Return(nil)

	svc := newService(reader, pub, now)
	require.NoError(t, svc.Scan(context.Background()))
	pub.AssertExpectations(t)
}

func TestScan_DoesNotRepeatUnchangedStatus(t *testing.T) {
	now := time.Date(2024, 6, 25, 0, 0, 0, 0, time.UTC)
	reader := new(ReaderMock)
	pub := new(PublisherMock)
	reader.On("ListNonActive", mock.Anything, mock.Anything).Return([]*models.Subscription{
		{ID: "a", ClientName: "Hotel Sawa", EndDate: now.AddDate(0, 0, 5)},
	}, nil)
	pub.On("Publish", models.StatusExpiring, mock.Anything).Return(nil).Once()

	svc := newService(reader, pub, now)
	require.NoError(t, svc.Scan(context.Background()))
	require.NoError(t, svc.Scan(context.Background()))
	pub.AssertExpectations(t)
}

func TestScan_RepublishesOnTransition(t *testing.T) {
	reader := new(ReaderMock)
	pub := new(PublisherMock)
	end := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	reader.On("ListNonActive", mock.Anything, mock.Anything).Return([]*models.Subscription{
		{ID: "a", ClientName: "Hotel Sawa", EndDate: end},
	}, nil)
	pub.On("Publish", models.StatusExpiring, mock.Anything).Return(nil).Once()
	pub.On("Publish", models.StatusExpired, mock.Anything).Return(nil).Once()

	svc := newService(reader, pub, end.AddDate(0, 0, -5))
	require.NoError(t, svc.Scan(context.Background()))

	svc.now = func() time.Time { return end.AddDate(0, 0, 1) }
	require.NoError(t, svc.Scan(context.Background()))
	pub.AssertExpectations(t)
}

func TestScan_PublishErrorKeepsEventPending(t *testing.T) {
	now := time.Date(2024, 6, 25, 0, 0, 0, 0, time.UTC)
	reader := new(ReaderMock)
	pub := new(PublisherMock)
	reader.On("ListNonActive", mock.Anything, mock.Anything).Return([]*models.Subscription{
		{ID: "a", ClientName: "Hotel Sawa", EndDate: now.AddDate(0, 0, 5)},
	}, nil)
	pub.On("Publish", models.StatusExpiring, mock.Anything).Return(errors.New("channel closed")).Once()
	pub.On("Publish", models.StatusExpiring, mock.Anything).Return(nil).Once()

	svc := newService(reader, pub, now)
	require.NoError(t, svc.Scan(context.Background()))
	// The failed event is retried on the next scan.
	require.NoError(t, svc.Scan(context.Background()))
	pub.AssertExpectations(t)
}

func TestScan_ReaderError(t *testing.T) {
	reader := new(ReaderMock)
	reader.On("ListNonActive", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	svc := newService(reader, new(PublisherMock), time.Now())
	assert.Error(t, svc.Scan(context.Background()))
}
