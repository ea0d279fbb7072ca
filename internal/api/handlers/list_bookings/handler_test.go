package list_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MovingService/internal/service/bookings"
	"github.com/m04kA/SMC-MovingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-MovingService/pkg/logger"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) ListBookings(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingListResponse), args.Error(1)
}

func TestToServiceRequest(t *testing.T) {
	req, err := ToServiceRequest("confirmed", "", "2025-10-01", "2025-10-31", "true")
	require.NoError(t, err)

	assert.Equal(t, "confirmed", *req.Status)
	assert.Equal(t, "2025-10-01", req.StartDate.Format("2006-01-02"))
	assert.Equal(t, "2025-10-31", req.EndDate.Format("2006-01-02"))
	assert.True(t, req.IncludeInactive)

	req, err = ToServiceRequest("", "2025-10-15", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, req.StartDate, req.EndDate)
	assert.Nil(t, req.Status)

	_, err = ToServiceRequest("", "2025-10-15", "2025-10-01", "", "")
	assert.Error(t, err)

	_, err = ToServiceRequest("", "", "01.10.2025", "", "")
	assert.Error(t, err)

	_, err = ToServiceRequest("", "", "", "", "maybe")
	assert.Error(t, err)
}

func TestHandler_Handle(t *testing.T) {
	svc := new(MockBookingService)
	svc.On("ListBookings", mock.Anything, mock.MatchedBy(func(r *models.ListBookingsRequest) bool {
		return r.Status != nil && *r.Status == "pending" && !r.IncludeInactive
	})).Return(&models.BookingListResponse{Bookings: []models.BookingResponse{{ID: 1}, {ID: 2}}}, nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings?status=pending", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"bookings":[`)
	svc.AssertExpectations(t)
}

func TestHandler_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"reversed range", bookings.ErrInvalidTimeRange, http.StatusBadRequest},
		{"unknown status", bookings.ErrInvalidInput, http.StatusBadRequest},
		{"internal", bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockBookingService)
			svc.On("ListBookings", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			NewHandler(svc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
