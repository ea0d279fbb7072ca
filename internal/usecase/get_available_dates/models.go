package get_available_dates

import (
	"time"

	"github.com/m04kA/SMC-MovingService/internal/domain"
)

// Request период, для которого запрашивается загрузка бригад (даты включительно)
type Request struct {
	From time.Time
	To   time.Time
}

// Response загрузка по каждой дате периода
type Response struct {
	From  time.Time
	To    time.Time
	Dates []domain.AvailableDate
}

// Options параметры загрузки
type Options struct {
	DailyCapacity      int
	AdvanceBookingDays int // 0 = без ограничений
}
