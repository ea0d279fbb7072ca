package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	"github.com/m04kA/SMC-MovingService/internal/integrations/notifier"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	Upsert(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
}

// RatesProvider источник действующих тарифов
type RatesProvider interface {
	Active(ctx context.Context) (domain.RateTable, error)
}

// DuplicateGuard защита от повторной отправки заявки
type DuplicateGuard interface {
	Acquire(ctx context.Context, fingerprint string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, fingerprint string) error
}

// Notifier клиент сервиса уведомлений
type Notifier interface {
	SendBookingReceived(ctx context.Context, n notifier.BookingReceived) error
}

// MetricsRecorder бизнес-метрики
type MetricsRecorder interface {
	IncBookingCreated()
	IncDuplicateSubmission()
	IncPriceCalculation(kind, result string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
