package calculate_price

import (
	"github.com/m04kA/SMC-MovingService/internal/service/bookings/models"
	calculatePrice "github.com/m04kA/SMC-MovingService/internal/usecase/calculate_price"
)

// PriceEstimateResponse HTTP response model
type PriceEstimateResponse struct {
	Move          models.MoveResponse      `json:"move"`
	Breakdown     models.BreakdownResponse `json:"breakdown"`
	TotalPrice    int64                    `json:"total_price"`
	EstimatedTime int                      `json:"estimated_time"`
	RateVersion   int64                    `json:"rate_version"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *calculatePrice.Response) *PriceEstimateResponse {
	return &PriceEstimateResponse{
		Move:          models.FromDomainMove(resp.Move),
		Breakdown:     models.FromDomainBreakdown(resp.Breakdown),
		TotalPrice:    resp.Breakdown.Total,
		EstimatedTime: resp.Breakdown.EstimatedHours,
		RateVersion:   resp.Breakdown.RateVersion,
	}
}
