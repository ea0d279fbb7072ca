package get_available_dates

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-MovingService/internal/domain"
)

// UseCase use case для получения свободных бригад по датам
type UseCase struct {
	bookingRepo  BookingRepository
	opts         Options
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, opts Options, logger Logger) *UseCase {
	if opts.DailyCapacity <= 0 {
		opts.DailyCapacity = domain.DefaultDailyCapacity
	}

	return &UseCase{
		bookingRepo:  bookingRepo,
		opts:         opts,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения загрузки по датам
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	from, to := dateOnly(req.From), dateOnly(req.To)

	uc.logger.Info("GetAvailableDates: from=%s, to=%s", from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	// 1. Валидация периода
	if err := validateRange(from, to); err != nil {
		uc.logger.Warn("GetAvailableDates: validation failed: %v", err)
		return nil, err
	}

	// 2. Считаем активные бронирования по датам одним запросом
	counts, err := uc.bookingRepo.CountActiveByDate(ctx, from, to)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to count bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
	}

	// 3. Вычисляем свободные бригады
	dates := buildDates(from, to, uc.timeProvider.Now(), counts, uc.opts)

	uc.logger.Info("GetAvailableDates: built %d dates, %d with bookings", len(dates), len(counts))

	return &Response{From: from, To: to, Dates: dates}, nil
}
