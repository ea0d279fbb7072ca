package create_booking

import (
	"errors"
	"strings"
)

var (
	// ErrValidation возвращается, когда запрос не прошел валидацию (см. ValidationError)
	ErrValidation = errors.New("create_booking: validation failed")

	// ErrInvalidInput возвращается, когда калькулятор отклонил параметры переезда
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidDate возвращается при дате переезда в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid moving date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrDateFullyBooked возвращается, когда на дату заняты все бригады
	ErrDateFullyBooked = errors.New("create_booking: moving date is fully booked")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// ValidationError все нарушения, найденные за один проход валидации
type ValidationError struct {
	Missing    []string // незаполненные обязательные поля
	Violations []string // ошибки формата и диапазона
}

func (e *ValidationError) Error() string {
	return "create_booking: validation failed: " + strings.Join(e.Details(), "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Details сообщения для клиента: сначала список незаполненных полей, затем остальные нарушения
func (e *ValidationError) Details() []string {
	details := make([]string, 0, len(e.Violations)+1)
	if len(e.Missing) > 0 {
		details = append(details, "missing required fields: "+strings.Join(e.Missing, ", "))
	}
	return append(details, e.Violations...)
}
