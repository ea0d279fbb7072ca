package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	"github.com/m04kA/SMC-MovingService/internal/infra/cache"
	"github.com/m04kA/SMC-MovingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-MovingService/internal/service/pricing"
	"github.com/m04kA/SMC-MovingService/pkg/ptr"
	"github.com/m04kA/SMC-MovingService/pkg/types"
	"github.com/m04kA/SMC-MovingService/pkg/validation"
)

// UseCase use case для создания бронирования переезда
type UseCase struct {
	bookingRepo   BookingRepository
	customerRepo  CustomerRepository
	rates         RatesProvider
	guard         DuplicateGuard // nil - защита от дублей выключена
	notifier      Notifier       // nil - уведомления выключены
	metrics       MetricsRecorder
	txManager     TransactionManager
	validator     *validation.Validator
	opts          Options
	timeProvider  TimeProvider
	referenceFunc func() string
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	rates RatesProvider,
	guard DuplicateGuard,
	notifier Notifier,
	metrics MetricsRecorder,
	txManager TransactionManager,
	opts Options,
	logger Logger,
) *UseCase {
	if opts.DailyCapacity <= 0 {
		opts.DailyCapacity = domain.DefaultDailyCapacity
	}

	return &UseCase{
		bookingRepo:   bookingRepo,
		customerRepo:  customerRepo,
		rates:         rates,
		guard:         guard,
		notifier:      notifier,
		metrics:       metrics,
		txManager:     txManager,
		validator:     validation.New(),
		opts:          opts,
		timeProvider:  &RealTimeProvider{},
		referenceFunc: newReference,
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка загрузки дня и запись выполняются в сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных (все нарушения сразу)
	normalizeRequest(req)
	if err := validateRequest(uc.validator, req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: email=%s, date=%s, volume=%.2f", req.CustomerEmail, req.MovingDate, *req.Volume)

	movingDate, err := time.Parse(domain.DateFormat, req.MovingDate)
	if err != nil {
		return nil, &ValidationError{Violations: []string{"moving_date must match format " + domain.DateFormat}}
	}

	moveTime := types.TimeString(domain.DefaultMoveTime)
	if req.MoveTime != "" {
		moveTime = types.TimeString(req.MoveTime)
	}

	// 2. Проверяем дату
	now := uc.timeProvider.Now()
	if err := validateDate(movingDate, now, uc.opts.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 3. Подавляем повторные отправки той же заявки
	fingerprint := cache.Fingerprint(req.CustomerEmail, req.CustomerPhone, req.MovingDate, req.FromAddress, req.ToAddress)
	claimed, duplicated := uc.claimSubmission(ctx, fingerprint)
	if duplicated {
		uc.metrics.IncDuplicateSubmission()
		uc.logger.Info("CreateBooking: duplicate submission for email=%s suppressed", req.CustomerEmail)
		return &Response{Duplicated: true}, nil
	}

	booking, err := uc.create(ctx, req, movingDate, moveTime)
	if err != nil {
		if claimed {
			uc.releaseSubmission(fingerprint)
		}
		return nil, err
	}

	uc.metrics.IncBookingCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%d, reference=%s, total=%d",
		booking.ID, booking.Reference, booking.TotalPrice)

	// 6. Уведомления не влияют на результат
	uc.notify(ctx, booking)

	return &Response{
		BookingID:      booking.ID,
		Reference:      booking.Reference,
		CustomerID:     booking.CustomerID,
		MovingDate:     booking.MovingDate,
		MoveTime:       booking.MoveTime,
		Status:         string(booking.Status),
		TotalPrice:     booking.TotalPrice,
		EstimatedHours: booking.EstimatedHours,
		Breakdown:      booking.Breakdown,
		CreatedAt:      booking.CreatedAt,
	}, nil
}

// create рассчитывает цену и сохраняет клиента и бронирование
func (uc *UseCase) create(ctx context.Context, req *Request, movingDate time.Time, moveTime types.TimeString) (*domain.Booking, error) {
	// 4. Расчет стоимости по действующим тарифам
	rates, err := uc.rates.Active(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get rates: %v", err)
		return nil, fmt.Errorf("%w: failed to get rates: %v", ErrInternal, err)
	}

	breakdown, err := pricing.NewEstimator(rates).ComputePrice(toMoveRequest(req))
	if err != nil {
		uc.metrics.IncPriceCalculation("booking", "invalid")
		uc.logger.Warn("CreateBooking: price calculation rejected input: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	uc.metrics.IncPriceCalculation("booking", "ok")

	var result *domain.Booking

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем активные бронирования на дату с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetByFilter(txCtx, domain.BookingsFilter{
			StartDate:       &movingDate,
			EndDate:         &movingDate,
			IncludeInactive: false,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		booked := countActiveBookings(bookings)
		if booked >= uc.opts.DailyCapacity {
			uc.logger.Warn("CreateBooking: date %s fully booked, %d/%d crews taken",
				req.MovingDate, booked, uc.opts.DailyCapacity)
			return ErrDateFullyBooked
		}

		uc.logger.Info("CreateBooking: date %s available, %d/%d crews taken",
			req.MovingDate, booked, uc.opts.DailyCapacity)

		// 5.2. Создаем или обновляем клиента
		customer, err := uc.customerRepo.Upsert(txCtx, &domain.Customer{
			Name:  req.CustomerName,
			Email: req.CustomerEmail,
			Phone: optional(req.CustomerPhone),
			Type:  customerType(req.CustomerType),
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to upsert customer: %v", err)
			return fmt.Errorf("%w: failed to upsert customer: %v", ErrInternal, err)
		}

		// 5.3. Создаем бронирование с денормализацией данных клиента
		booking := &domain.Booking{
			Reference:      uc.referenceFunc(),
			CustomerID:     customer.ID,
			CustomerName:   customer.Name,
			CustomerEmail:  customer.Email,
			CustomerPhone:  optional(req.CustomerPhone),
			MovingDate:     movingDate,
			MoveTime:       moveTime,
			FromAddress:    req.FromAddress,
			ToAddress:      req.ToAddress,
			Move:           toMoveRequest(req),
			Breakdown:      breakdown,
			RateVersion:    breakdown.RateVersion,
			TotalPrice:     breakdown.Total,
			EstimatedHours: breakdown.EstimatedHours,
			Status:         domain.StatusPending,
			Notes:          optional(req.Notes),
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrDateFullyBooked) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction error: %v", err)
		return nil, fmt.Errorf("%w: transaction error: %v", ErrInternal, err)
	}

	return result, nil
}

// claimSubmission занимает отпечаток заявки
// Ошибка Redis не блокирует прием заявки
func (uc *UseCase) claimSubmission(ctx context.Context, fingerprint string) (claimed, duplicated bool) {
	if uc.guard == nil || uc.opts.DuplicateWindow <= 0 {
		return false, false
	}

	ok, err := uc.guard.Acquire(ctx, fingerprint, uc.opts.DuplicateWindow)
	if err != nil {
		uc.logger.Warn("CreateBooking: duplicate guard unavailable, proceeding: %v", err)
		return false, false
	}
	return ok, !ok
}

func (uc *UseCase) releaseSubmission(fingerprint string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := uc.guard.Release(ctx, fingerprint); err != nil {
		uc.logger.Warn("CreateBooking: failed to release submission fingerprint: %v", err)
	}
}

func (uc *UseCase) notify(ctx context.Context, booking *domain.Booking) {
	if uc.notifier == nil {
		return
	}

	err := uc.notifier.SendBookingReceived(ctx, notifier.BookingReceived{
		BookingID:      booking.ID,
		Reference:      booking.Reference,
		CustomerName:   booking.CustomerName,
		Email:          booking.CustomerEmail,
		Phone:          ptr.Deref(booking.CustomerPhone, ""),
		MovingDate:     booking.MovingDate.Format(domain.DateFormat),
		MoveTime:       booking.MoveTime.String(),
		Volume:         booking.Move.Volume,
		TotalPrice:     booking.TotalPrice,
		EstimatedHours: booking.EstimatedHours,
	})
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to send notification for booking id=%d: %v", booking.ID, err)
	}
}

func customerType(value string) domain.CustomerType {
	if value == string(domain.CustomerCompany) {
		return domain.CustomerCompany
	}
	return domain.CustomerPrivate
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
