package update_rates

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-MovingService/internal/service/rates"
	"github.com/m04kA/SMC-MovingService/internal/service/rates/models"
	"github.com/m04kA/SMC-MovingService/pkg/logger"
)

type MockRatesService struct {
	mock.Mock
}

func (m *MockRatesService) Update(ctx context.Context, req *models.UpdateRatesRequest) (*models.RatesResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RatesResponse), args.Error(1)
}

func perform(svc *MockRatesService, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec,
		httptest.NewRequest(http.MethodPut, "/api/v1/pricing/rates", strings.NewReader(body)))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	svc := new(MockRatesService)
	svc.On("Update", mock.Anything, mock.MatchedBy(func(r *models.UpdateRatesRequest) bool {
		return r.VolumeRate != nil && *r.VolumeRate == 260 && r.MinimumHours == nil
	})).Return(&models.RatesResponse{Version: 2, VolumeRate: 260, IsActive: true}, nil)

	rec := perform(svc, `{"volume_rate":260}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"version":2`)
	assert.Contains(t, rec.Body.String(), `"volume_rate":260`)
}

func TestHandler_InvalidRates(t *testing.T) {
	svc := new(MockRatesService)
	svc.On("Update", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: minimum_hours must be at least 1", rates.ErrInvalidInput))

	rec := perform(svc, `{"minimum_hours":0}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{
		"success": false,
		"error": "invalid rate table",
		"details": ["invalid rate table: minimum_hours must be at least 1"]
	}`, rec.Body.String())
}

func TestHandler_InternalError(t *testing.T) {
	svc := new(MockRatesService)
	svc.On("Update", mock.Anything, mock.Anything).Return(nil, rates.ErrInternal)

	rec := perform(svc, `{"volume_rate":260}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
