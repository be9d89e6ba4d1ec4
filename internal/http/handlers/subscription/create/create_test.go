package create

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/afrikanet/satellite-console/internal/models"
	subscriptionsvc "github.com/afrikanet/satellite-console/internal/services/subscription"
)

type ServiceMock struct{ mock.Mock }

func (m *ServiceMock) Create(ctx context.Context, entry models.SubscriptionEntry) (*models.Subscription, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func validBody() string {
	return `{
		"client_name": "Hotel Sawa",
		"phone": "+237 699 11 22 33",
		"technology": "Starlink",
		"plan": "Starlink Business",
		"bandwidth": "100Mbps",
		"frequency": "Ku-band",
		"amount": 250000,
		"duration_months": 6,
		"start_date": "2024-01-01T00:00:00Z"
	}`
}

func TestCreateHandler(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	created := &models.Subscription{
		ID:         "sub-1",
		ClientName: "Hotel Sawa",
		EndDate:    time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		Status:     models.StatusActive,
	}

	cases := []struct {
		name       string
		body       string
		mockSetup  func(m *ServiceMock)
		wantStatus int
		wantDetail string
	}{
		{
			name: "success",
			body: validBody(),
			mockSetup: func(m *ServiceMock) {
				m.On("Create", mock.Anything, mock.Anything).Return(created, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "malformed json",
			body:       `{"client_name": `,
			mockSetup:  func(_ *ServiceMock) {},
			wantStatus: http.StatusBadRequest,
			wantDetail: "invalid request body",
		},
		{
			name:       "unknown technology",
			body:       strings.Replace(validBody(), "Starlink", "Fiber", 1),
			mockSetup:  func(_ *ServiceMock) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantDetail: "field Technology must be one of: Starlink VSAT",
		},
		{
			name:       "invalid duration",
			body:       strings.Replace(validBody(), `"duration_months": 6`, `"duration_months": 7`, 1),
			mockSetup:  func(_ *ServiceMock) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantDetail: "field DurationMonths must be one of: 1 3 6 12",
		},
		{
			name: "unparseable start date",
			body: strings.Replace(validBody(), "2024-01-01T00:00:00Z", "01/01/2024", 1),
			mockSetup: func(m *ServiceMock) {
				m.On("Create", mock.Anything, mock.Anything).
					Return(nil, subscriptionsvc.ErrInvalidStartDate)
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantDetail: "start_date must be an RFC3339 instant or a YYYY-MM-DD date",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service := new(ServiceMock)
			tc.mockSetup(service)

			req := httptest.NewRequest(http.MethodPost, "/subscriptions", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			New(log, service).ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus == http.StatusCreated {
				var got models.Subscription
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Equal(t, "sub-1", got.ID)
				assert.Equal(t, models.StatusActive, got.Status)
				return
			}
			assert.Contains(t, rec.Body.String(), tc.wantDetail)
		})
	}
}
