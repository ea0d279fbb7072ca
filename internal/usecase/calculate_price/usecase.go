package calculate_price

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-MovingService/internal/service/pricing"
	"github.com/m04kA/SMC-MovingService/pkg/validation"
)

const metricKind = "estimate"

// UseCase предварительный расчет стоимости переезда без создания бронирования
type UseCase struct {
	rates     RatesProvider
	metrics   MetricsRecorder
	validator *validation.Validator
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(rates RatesProvider, metrics MetricsRecorder, logger Logger) *UseCase {
	return &UseCase{
		rates:     rates,
		metrics:   metrics,
		validator: validation.New(),
		logger:    logger,
	}
}

// Execute рассчитывает стоимость по действующим тарифам
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	res, err := uc.validator.Struct(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if !res.OK() {
		uc.metrics.IncPriceCalculation(metricKind, "invalid")
		verr := &ValidationError{Missing: res.Missing, Violations: res.Violations}
		uc.logger.Warn("CalculatePrice: validation failed: %v", verr)
		return nil, verr
	}

	rates, err := uc.rates.Active(ctx)
	if err != nil {
		uc.logger.Error("CalculatePrice: failed to get rates: %v", err)
		return nil, fmt.Errorf("%w: failed to get rates: %v", ErrInternal, err)
	}

	move := req.toDomain()
	breakdown, err := pricing.NewEstimator(rates).ComputePrice(move)
	if err != nil {
		uc.metrics.IncPriceCalculation(metricKind, "invalid")
		uc.logger.Warn("CalculatePrice: price calculation rejected input: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	uc.metrics.IncPriceCalculation(metricKind, "ok")
	uc.logger.Info("CalculatePrice: volume=%.2f, total=%d, rate_version=%d", move.Volume, breakdown.Total, breakdown.RateVersion)

	return &Response{Move: move, Breakdown: breakdown}, nil
}
