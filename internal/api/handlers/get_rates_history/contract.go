package get_rates_history

import (
	"context"

	"github.com/m04kA/SMC-MovingService/internal/service/rates/models"
)

type RatesService interface {
	History(ctx context.Context) (*models.RatesHistoryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
