package get_rates

import (
	"context"

	"github.com/m04kA/SMC-MovingService/internal/service/rates/models"
)

type RatesService interface {
	GetActive(ctx context.Context) (*models.RatesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
