package rates

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	ratesRepo "github.com/m04kA/SMC-MovingService/internal/infra/storage/rates"
	"github.com/m04kA/SMC-MovingService/internal/service/rates/models"
)

// Service сервис версий тарифов
type Service struct {
	ratesRepo RatesRepository
	txManager TxManager
	defaults  domain.RateTable
	logger    Logger
}

// NewService создает новый экземпляр сервиса тарифов
// defaults используются, пока в БД не опубликовано ни одной версии
func NewService(
	ratesRepo RatesRepository,
	txManager TxManager,
	defaults domain.RateTable,
	logger Logger,
) *Service {
	defaults.Version = 0
	defaults.IsActive = true

	return &Service{
		ratesRepo: ratesRepo,
		txManager: txManager,
		defaults:  defaults,
		logger:    logger,
	}
}

// Active возвращает действующие тарифы для расчета цены
func (s *Service) Active(ctx context.Context) (domain.RateTable, error) {
	rates, err := s.ratesRepo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, ratesRepo.ErrRatesNotFound) {
			return s.defaults, nil
		}
		s.logger.Error("Active: repository error: %v", err)
		return domain.RateTable{}, fmt.Errorf("%w: Active - repository error: %v", ErrInternal, err)
	}

	return *rates, nil
}

// GetActive получает действующие тарифы
func (s *Service) GetActive(ctx context.Context) (*models.RatesResponse, error) {
	s.logger.Info("GetActive: fetching active rate table")

	rates, err := s.Active(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetActive: active rate table version=%d", rates.Version)
	return models.FromDomainRates(&rates), nil
}

// History получает все опубликованные версии тарифов
func (s *Service) History(ctx context.Context) (*models.RatesHistoryResponse, error) {
	s.logger.Info("History: fetching rate table history")

	history, err := s.ratesRepo.GetHistory(ctx)
	if err != nil {
		s.logger.Error("History: repository error: %v", err)
		return nil, fmt.Errorf("%w: History - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("History: fetched %d versions", len(history))
	return models.FromDomainRatesList(history), nil
}

// Update публикует новую версию тарифов
// Поддерживает частичное обновление - непереданные поля копируются из активной версии.
// Предыдущая версия деактивируется в той же транзакции.
func (s *Service) Update(ctx context.Context, req *models.UpdateRatesRequest) (*models.RatesResponse, error) {
	s.logger.Info("Update: publishing new rate table version")

	if req.IsEmpty() {
		s.logger.Warn("Update: empty update request")
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	var created *domain.RateTable
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Берем активную версию (или значения по умолчанию) под блокировкой
		current, err := s.Active(txCtx)
		if err != nil {
			return err
		}

		// 2. Применяем изменения к копии и валидируем
		next := current
		req.ApplyToRates(&next)
		if err := validateRates(next); err != nil {
			return err
		}

		// 3. Деактивируем старую версию и сохраняем новую
		if err := s.ratesRepo.DeactivateAll(txCtx); err != nil {
			return fmt.Errorf("%w: Update - deactivate previous version: %v", ErrInternal, err)
		}

		next.ID = 0
		next.Version = current.Version + 1
		next.IsActive = true

		created, err = s.ratesRepo.Create(txCtx, &next)
		if err != nil {
			return fmt.Errorf("%w: Update - create version: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			s.logger.Warn("Update: validation failed: %v", err)
			return nil, err
		}
		if errors.Is(err, ErrInternal) {
			s.logger.Error("Update: %v", err)
			return nil, err
		}
		s.logger.Error("Update: transaction error: %v", err)
		return nil, fmt.Errorf("%w: Update - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: published rate table version=%d", created.Version)
	return models.FromDomainRates(created), nil
}

// validateRates проверяет значения тарифов
func validateRates(r domain.RateTable) error {
	amounts := []struct {
		name  string
		value float64
	}{
		{"volume_rate", r.VolumeRate},
		{"parking_rate_per_meter", r.ParkingRatePerMeter},
		{"no_elevator_surcharge", r.NoElevatorSurcharge},
		{"broken_elevator_surcharge", r.BrokenElevatorSurcharge},
		{"box_unit_price", r.BoxUnitPrice},
		{"tape_unit_price", r.TapeUnitPrice},
		{"bag_unit_price", r.BagUnitPrice},
	}
	for _, a := range amounts {
		if a.value < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidInput, a.name)
		}
	}

	if r.FreeDistanceThreshold < 0 {
		return fmt.Errorf("%w: free_distance_threshold must not be negative", ErrInvalidInput)
	}
	if r.NoElevatorFloorLimit < 0 {
		return fmt.Errorf("%w: no_elevator_floor_limit must not be negative", ErrInvalidInput)
	}
	if r.HoursPerCubicMeter <= 0 {
		return fmt.Errorf("%w: hours_per_cubic_meter must be positive", ErrInvalidInput)
	}
	if r.MinimumHours < 1 {
		return fmt.Errorf("%w: minimum_hours must be at least 1", ErrInvalidInput)
	}

	return nil
}
