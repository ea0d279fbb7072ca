package domain

import (
	"time"

	"github.com/m04kA/SMC-MovingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending             BookingStatus = "pending"
	StatusConfirmed           BookingStatus = "confirmed"
	StatusInProgress          BookingStatus = "in_progress"
	StatusCompleted           BookingStatus = "completed"
	StatusCancelledByCustomer BookingStatus = "cancelled_by_customer"
	StatusCancelledByCompany  BookingStatus = "cancelled_by_company"
	StatusNoShow              BookingStatus = "no_show"
)

// Booking заявка клиента на переезд с рассчитанной стоимостью
type Booking struct {
	ID         int64
	Reference  string // NF-XXXXXXXX, показывается клиенту
	CustomerID int64

	// Denormalized customer data for history
	CustomerName  string
	CustomerEmail string
	CustomerPhone *string

	MovingDate  time.Time
	MoveTime    types.TimeString
	FromAddress string
	ToAddress   string

	Move           MoveRequest
	Breakdown      PriceBreakdown
	RateVersion    int64
	TotalPrice     int64
	EstimatedHours int

	Status BookingStatus
	Notes  *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies a crew on its moving date
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status.in(CancellableStatuses)
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByCustomer || b.Status == StatusCancelledByCompany
}

// IsActive returns false for cancelled and no-show statuses
func (s BookingStatus) IsActive() bool {
	for _, inactive := range InactiveStatuses {
		if s == inactive {
			return false
		}
	}
	return true
}

// IsTerminal returns true if the status can no longer change
func (s BookingStatus) IsTerminal() bool {
	return s.IsValid() && !s.in(OpenStatuses)
}

func (s BookingStatus) in(statuses []BookingStatus) bool {
	for _, candidate := range statuses {
		if s == candidate {
			return true
		}
	}
	return false
}

// IsValid проверяет, что статус входит в список известных
func (s BookingStatus) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	CustomerID      *int64         // Фильтр по клиенту (опционально)
	StartDate       *time.Time     // Начало периода по дате переезда (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные и no-show
}
