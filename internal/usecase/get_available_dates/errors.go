package get_available_dates

import "errors"

var (
	// ErrInvalidRange возвращается, когда конец периода раньше начала
	ErrInvalidRange = errors.New("get_available_dates: end date is before start date")

	// ErrRangeTooLarge возвращается, когда период длиннее MaxAvailabilityRangeDays
	ErrRangeTooLarge = errors.New("get_available_dates: date range is too large")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_dates: internal error")
)
