package cancel_booking

import (
	"github.com/m04kA/SMC-MovingService/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancelledBy string  `json:"cancelled_by"` // customer | company
	Reason      *string `json:"reason,omitempty"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Success   bool   `json:"success"`
	BookingID int64  `json:"booking_id"`
	Message   string `json:"message"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest() *models.CancelBookingRequest {
	reason := ""
	if r.Reason != nil {
		reason = *r.Reason
	}

	return &models.CancelBookingRequest{
		CancelledBy:        r.CancelledBy,
		CancellationReason: reason,
	}
}
