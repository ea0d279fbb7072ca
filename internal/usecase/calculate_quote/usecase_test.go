package calculate_quote

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	"github.com/m04kA/SMC-MovingService/pkg/logger"
	"github.com/m04kA/SMC-MovingService/pkg/ptr"
)

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) IncPriceCalculation(kind, result string) {
	m.Called(kind, result)
}

func TestUseCase_Execute(t *testing.T) {
	metrics := new(MockMetrics)
	metrics.On("IncPriceCalculation", "quote", "ok").Once()
	uc := NewUseCase(domain.DefaultQuoteRates(), metrics, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{
		Volume:       ptr.Ptr(20.0),
		DistanceKm:   100,
		ElevatorFrom: "stairs",
		FloorsFrom:   2,
		ApartmentSqm: 50,
		PackingHelp:  true,
		MoveCleaning: true,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(9670), resp.Quote.Total)
	assert.Equal(t, 10, resp.Quote.ComboDiscountPercent)
	metrics.AssertExpectations(t)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	metrics := new(MockMetrics)
	metrics.On("IncPriceCalculation", "quote", "invalid").Once()
	uc := NewUseCase(domain.DefaultQuoteRates(), metrics, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{
		DistanceKm: -5,
		ElevatorTo: "escalator",
		HeavyItems: -1,
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"volume"}, verr.Missing)
	assert.Contains(t, verr.Violations, "distance_km must not be negative")
	assert.Contains(t, verr.Violations, "heavy_items must not be negative")
	assert.Len(t, verr.Violations, 3)
	metrics.AssertExpectations(t)
}
