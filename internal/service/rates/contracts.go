package rates

import (
	"context"

	"github.com/m04kA/SMC-MovingService/internal/domain"
)

// RatesRepository интерфейс репозитория версий тарифов
type RatesRepository interface {
	Create(ctx context.Context, rates *domain.RateTable) (*domain.RateTable, error)
	GetActive(ctx context.Context) (*domain.RateTable, error)
	GetHistory(ctx context.Context) ([]*domain.RateTable, error)
	DeactivateAll(ctx context.Context) error
}

// TxManager интерфейс для управления транзакциями
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
