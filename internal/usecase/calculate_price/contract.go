package calculate_price

import (
	"context"

	"github.com/m04kA/SMC-MovingService/internal/domain"
)

// RatesProvider источник действующей таблицы тарифов
type RatesProvider interface {
	Active(ctx context.Context) (domain.RateTable, error)
}

// MetricsRecorder учет расчетов цены
type MetricsRecorder interface {
	IncPriceCalculation(kind, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
