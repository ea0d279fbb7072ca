package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	"github.com/m04kA/SMC-MovingService/pkg/validation"
)

// normalizeRequest убирает пробелы по краям, чтобы "   " считалось незаполненным полем
func normalizeRequest(req *Request) {
	for _, s := range []*string{
		&req.CustomerName, &req.CustomerEmail, &req.CustomerPhone, &req.CustomerType,
		&req.MovingDate, &req.MoveTime, &req.FromAddress, &req.ToAddress, &req.Notes,
	} {
		*s = strings.TrimSpace(*s)
	}
	req.CustomerEmail = strings.ToLower(req.CustomerEmail)
}

// validateRequest валидирует входные данные запроса за один проход
func validateRequest(v *validation.Validator, req *Request) error {
	res, err := v.Struct(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if !res.OK() {
		return &ValidationError{Missing: res.Missing, Violations: res.Violations}
	}
	return nil
}

// toMoveRequest конвертирует поля запроса в параметры для калькулятора
func toMoveRequest(req *Request) domain.MoveRequest {
	move := domain.MoveRequest{
		ParkingDistance:    req.ParkingDistance,
		StairsFrom:         req.StairsFrom,
		StairsTo:           req.StairsTo,
		ElevatorFrom:       req.ElevatorFrom,
		ElevatorTo:         req.ElevatorTo,
		ElevatorBrokenFrom: req.ElevatorBrokenFrom,
		ElevatorBrokenTo:   req.ElevatorBrokenTo,
	}
	if req.Volume != nil {
		move.Volume = *req.Volume
	}
	if len(req.Materials) > 0 {
		move.Materials = make(domain.Materials, len(req.Materials))
		for kind, qty := range req.Materials {
			move.Materials[domain.MaterialKind(kind)] = qty
		}
	}
	return move
}

// validateDate проверяет, что дата подходит для бронирования
func validateDate(movingDate time.Time, now time.Time, advanceBookingDays int) error {
	// Проверяем, что дата не в прошлом
	if isDateInPast(movingDate, now) {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := dateOnly(now).AddDate(0, 0, advanceBookingDays)
	if dateOnly(movingDate).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// countActiveBookings подсчитывает бронирования, занимающие бригаду
func countActiveBookings(bookings []*domain.Booking) int {
	count := 0
	for _, booking := range bookings {
		if booking.IsActive() {
			count++
		}
	}
	return count
}

// newReference номер заявки вида NF-1A2B3C4D
func newReference() string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return domain.ReferencePrefix + strings.ToUpper(id[:8])
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	return dateOnly(date).Before(dateOnly(now))
}

// dateOnly обнуляет время, сохраняя календарную дату в UTC
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
