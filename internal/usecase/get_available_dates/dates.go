package get_available_dates

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-MovingService/internal/domain"
)

// validateRange проверяет границы периода
func validateRange(from, to time.Time) error {
	if to.Before(from) {
		return ErrInvalidRange
	}
	days := int(to.Sub(from).Hours()/24) + 1
	if days > domain.MaxAvailabilityRangeDays {
		return fmt.Errorf("%w: at most %d days, got %d", ErrRangeTooLarge, domain.MaxAvailabilityRangeDays, days)
	}
	return nil
}

// buildDates собирает загрузку по каждой дате периода
// Даты в прошлом и за пределами окна бронирования не имеют свободных бригад
func buildDates(from, to, now time.Time, counts map[string]int, opts Options) []domain.AvailableDate {
	today := dateOnly(now)
	var lastBookable time.Time
	if opts.AdvanceBookingDays > 0 {
		lastBookable = today.AddDate(0, 0, opts.AdvanceBookingDays)
	}

	result := make([]domain.AvailableDate, 0, int(to.Sub(from).Hours()/24)+1)
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		booked := counts[date.Format(domain.DateFormat)]

		available := opts.DailyCapacity - booked
		if available < 0 {
			available = 0
		}
		if date.Before(today) || (!lastBookable.IsZero() && date.After(lastBookable)) {
			available = 0
		}

		result = append(result, domain.AvailableDate{
			Date:           date,
			BookedMoves:    booked,
			AvailableCrews: available,
			TotalCrews:     opts.DailyCapacity,
		})
	}
	return result
}

// dateOnly обнуляет время, сохраняя календарную дату в UTC
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
