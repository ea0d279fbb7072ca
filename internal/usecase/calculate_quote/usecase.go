package calculate_quote

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	"github.com/m04kA/SMC-MovingService/internal/service/pricing"
	"github.com/m04kA/SMC-MovingService/pkg/validation"
)

const metricKind = "quote"

// UseCase расчет детальной сметы по ступенчатой модели
type UseCase struct {
	quoter    *pricing.Quoter
	metrics   MetricsRecorder
	validator *validation.Validator
	logger    Logger
}

// NewUseCase создает новый экземпляр use case с параметрами модели rates
func NewUseCase(rates domain.QuoteRates, metrics MetricsRecorder, logger Logger) *UseCase {
	return &UseCase{
		quoter:    pricing.NewQuoter(rates),
		metrics:   metrics,
		validator: validation.New(),
		logger:    logger,
	}
}

// Execute рассчитывает смету
func (uc *UseCase) Execute(_ context.Context, req *Request) (*Response, error) {
	res, err := uc.validator.Struct(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if !res.OK() {
		uc.metrics.IncPriceCalculation(metricKind, "invalid")
		verr := &ValidationError{Missing: res.Missing, Violations: res.Violations}
		uc.logger.Warn("CalculateQuote: validation failed: %v", verr)
		return nil, verr
	}

	quote, err := uc.quoter.ComputeQuote(req.toDomain())
	if err != nil {
		uc.metrics.IncPriceCalculation(metricKind, "invalid")
		uc.logger.Warn("CalculateQuote: quote rejected input: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	uc.metrics.IncPriceCalculation(metricKind, "ok")
	uc.logger.Info("CalculateQuote: volume=%.2f, distance=%.1f, total=%d", *req.Volume, req.DistanceKm, quote.Total)

	return &Response{Quote: quote}, nil
}
