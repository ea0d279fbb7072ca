package create_booking

import (
	"github.com/m04kA/SMC-MovingService/internal/domain"
	"github.com/m04kA/SMC-MovingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-MovingService/internal/usecase/create_booking"
)

const (
	msgBookingReceived = "Booking request received"
	msgAlreadyReceived = "Booking request already received"
)

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Success       bool                     `json:"success"`
	BookingID     int64                    `json:"booking_id"`
	Reference     string                   `json:"reference"`
	CustomerID    int64                    `json:"customer_id"`
	MovingDate    string                   `json:"moving_date"`
	MoveTime      string                   `json:"move_time"`
	Status        string                   `json:"status"`
	TotalPrice    int64                    `json:"total_price"`
	EstimatedTime int                      `json:"estimated_time"` // часы работы бригады
	RateVersion   int64                    `json:"rate_version"`
	Breakdown     models.BreakdownResponse `json:"breakdown"`
	Message       string                   `json:"message"`
}

// DuplicateResponse ответ на повторную отправку той же заявки
type DuplicateResponse struct {
	Success    bool   `json:"success"`
	Duplicated bool   `json:"duplicated"`
	Message    string `json:"message"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		Success:       true,
		BookingID:     resp.BookingID,
		Reference:     resp.Reference,
		CustomerID:    resp.CustomerID,
		MovingDate:    resp.MovingDate.Format(domain.DateFormat),
		MoveTime:      resp.MoveTime.String(),
		Status:        resp.Status,
		TotalPrice:    resp.TotalPrice,
		EstimatedTime: resp.EstimatedHours,
		RateVersion:   resp.Breakdown.RateVersion,
		Breakdown:     models.FromDomainBreakdown(resp.Breakdown),
		Message:       msgBookingReceived,
	}
}

func duplicateResponse() *DuplicateResponse {
	return &DuplicateResponse{Success: true, Duplicated: true, Message: msgAlreadyReceived}
}
