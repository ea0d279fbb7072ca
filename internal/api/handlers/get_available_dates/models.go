package get_available_dates

import (
	"time"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	getAvailableDates "github.com/m04kA/SMC-MovingService/internal/usecase/get_available_dates"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	From  string          `json:"from"`
	To    string          `json:"to"`
	Dates []AvailableDate `json:"dates"`
}

// AvailableDate загрузка бригад на дату
type AvailableDate struct {
	Date           string `json:"date"`
	BookedMoves    int    `json:"booked_moves"`
	AvailableCrews int    `json:"available_crews"`
	TotalCrews     int    `json:"total_crews"`
	FullyBooked    bool   `json:"fully_booked"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableDates.Response) *AvailabilityResponse {
	dates := make([]AvailableDate, len(resp.Dates))
	for i := range resp.Dates {
		d := &resp.Dates[i]
		dates[i] = AvailableDate{
			Date:           d.Date.Format(domain.DateFormat),
			BookedMoves:    d.BookedMoves,
			AvailableCrews: d.AvailableCrews,
			TotalCrews:     d.TotalCrews,
			FullyBooked:    d.IsFull(),
		}
	}

	return &AvailabilityResponse{
		From:  resp.From.Format(domain.DateFormat),
		To:    resp.To.Format(domain.DateFormat),
		Dates: dates,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров; без to период из одного дня
func ToUseCaseRequest(fromStr, toStr string) (*getAvailableDates.Request, error) {
	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		return nil, err
	}

	to := from
	if toStr != "" {
		to, err = time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, err
		}
	}

	return &getAvailableDates.Request{From: from, To: to}, nil
}
