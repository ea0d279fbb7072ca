package get_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-MovingService/internal/service/bookings"
	"github.com/m04kA/SMC-MovingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-MovingService/pkg/logger"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

func (m *MockBookingService) GetByReference(ctx context.Context, reference string) (*models.BookingResponse, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

func serve(svc *MockBookingService, key string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings/{bookingId}", NewHandler(svc, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+key, nil))
	return rec
}

func TestHandler_ByID(t *testing.T) {
	svc := new(MockBookingService)
	svc.On("GetByID", mock.Anything, int64(42)).Return(&models.BookingResponse{ID: 42, Reference: "NF-1A2B3C4D"}, nil)

	rec := serve(svc, "42")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"reference":"NF-1A2B3C4D"`)
	svc.AssertNotCalled(t, "GetByReference", mock.Anything, mock.Anything)
}

func TestHandler_ByReference(t *testing.T) {
	svc := new(MockBookingService)
	svc.On("GetByReference", mock.Anything, "nf-1a2b3c4d").Return(&models.BookingResponse{ID: 42}, nil)

	rec := serve(svc, "nf-1a2b3c4d")

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		setup      func(svc *MockBookingService)
		wantStatus int
	}{
		{"not a number", "abc", func(*MockBookingService) {}, http.StatusBadRequest},
		{"zero id", "0", func(*MockBookingService) {}, http.StatusBadRequest},
		{
			name: "not found",
			key:  "7",
			setup: func(svc *MockBookingService) {
				svc.On("GetByID", mock.Anything, int64(7)).Return(nil, fmt.Errorf("%w: id=7", bookings.ErrBookingNotFound))
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "internal",
			key:  "NF-00000000",
			setup: func(svc *MockBookingService) {
				svc.On("GetByReference", mock.Anything, "NF-00000000").Return(nil, bookings.ErrInternal)
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockBookingService)
			tt.setup(svc)

			rec := serve(svc, tt.key)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
