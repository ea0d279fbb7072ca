package models

import (
	"time"

	"github.com/m04kA/SMC-MovingService/internal/domain"
)

// Request модели

// UpdateRatesRequest запрос на публикацию новой версии тарифов
// Все поля опциональны - непереданные значения берутся из активной версии
type UpdateRatesRequest struct {
	VolumeRate              *float64 `json:"volume_rate,omitempty"`
	FreeDistanceThreshold   *int     `json:"free_distance_threshold,omitempty"`
	ParkingRatePerMeter     *float64 `json:"parking_rate_per_meter,omitempty"`
	NoElevatorFloorLimit    *int     `json:"no_elevator_floor_limit,omitempty"`
	NoElevatorSurcharge     *float64 `json:"no_elevator_surcharge,omitempty"`
	BrokenElevatorSurcharge *float64 `json:"broken_elevator_surcharge,omitempty"`
	BoxUnitPrice            *float64 `json:"box_unit_price,omitempty"`
	TapeUnitPrice           *float64 `json:"tape_unit_price,omitempty"`
	BagUnitPrice            *float64 `json:"bag_unit_price,omitempty"`
	HoursPerCubicMeter      *float64 `json:"hours_per_cubic_meter,omitempty"`
	MinimumHours            *int     `json:"minimum_hours,omitempty"`
}

// IsEmpty true, если не передано ни одного поля
func (r *UpdateRatesRequest) IsEmpty() bool {
	return r.VolumeRate == nil && r.FreeDistanceThreshold == nil && r.ParkingRatePerMeter == nil &&
		r.NoElevatorFloorLimit == nil && r.NoElevatorSurcharge == nil && r.BrokenElevatorSurcharge == nil &&
		r.BoxUnitPrice == nil && r.TapeUnitPrice == nil && r.BagUnitPrice == nil &&
		r.HoursPerCubicMeter == nil && r.MinimumHours == nil
}

// ApplyToRates применяет переданные поля к тарифам
func (r *UpdateRatesRequest) ApplyToRates(rates *domain.RateTable) {
	applyFloat(&rates.VolumeRate, r.VolumeRate)
	applyInt(&rates.FreeDistanceThreshold, r.FreeDistanceThreshold)
	applyFloat(&rates.ParkingRatePerMeter, r.ParkingRatePerMeter)
	applyInt(&rates.NoElevatorFloorLimit, r.NoElevatorFloorLimit)
	applyFloat(&rates.NoElevatorSurcharge, r.NoElevatorSurcharge)
	applyFloat(&rates.BrokenElevatorSurcharge, r.BrokenElevatorSurcharge)
	applyFloat(&rates.BoxUnitPrice, r.BoxUnitPrice)
	applyFloat(&rates.TapeUnitPrice, r.TapeUnitPrice)
	applyFloat(&rates.BagUnitPrice, r.BagUnitPrice)
	applyFloat(&rates.HoursPerCubicMeter, r.HoursPerCubicMeter)
	applyInt(&rates.MinimumHours, r.MinimumHours)
}

func applyFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func applyInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// Response модели

// RatesResponse ответ с тарифами
type RatesResponse struct {
	Version                 int64      `json:"version"`
	VolumeRate              float64    `json:"volume_rate"`
	FreeDistanceThreshold   int        `json:"free_distance_threshold"`
	ParkingRatePerMeter     float64    `json:"parking_rate_per_meter"`
	NoElevatorFloorLimit    int        `json:"no_elevator_floor_limit"`
	NoElevatorSurcharge     float64    `json:"no_elevator_surcharge"`
	BrokenElevatorSurcharge float64    `json:"broken_elevator_surcharge"`
	BoxUnitPrice            float64    `json:"box_unit_price"`
	TapeUnitPrice           float64    `json:"tape_unit_price"`
	BagUnitPrice            float64    `json:"bag_unit_price"`
	HoursPerCubicMeter      float64    `json:"hours_per_cubic_meter"`
	MinimumHours            int        `json:"minimum_hours"`
	IsActive                bool       `json:"is_active"`
	CreatedAt               *time.Time `json:"created_at,omitempty"` // nil для тарифов по умолчанию
}

// RatesHistoryResponse ответ со списком версий
type RatesHistoryResponse struct {
	Versions []RatesResponse `json:"versions"`
}

// Методы конвертации

// FromDomainRates конвертирует domain модель в DTO
func FromDomainRates(r *domain.RateTable) *RatesResponse {
	if r == nil {
		return nil
	}

	resp := &RatesResponse{
		Version:                 r.Version,
		VolumeRate:              r.VolumeRate,
		FreeDistanceThreshold:   r.FreeDistanceThreshold,
		ParkingRatePerMeter:     r.ParkingRatePerMeter,
		NoElevatorFloorLimit:    r.NoElevatorFloorLimit,
		NoElevatorSurcharge:     r.NoElevatorSurcharge,
		BrokenElevatorSurcharge: r.BrokenElevatorSurcharge,
		BoxUnitPrice:            r.BoxUnitPrice,
		TapeUnitPrice:           r.TapeUnitPrice,
		BagUnitPrice:            r.BagUnitPrice,
		HoursPerCubicMeter:      r.HoursPerCubicMeter,
		MinimumHours:            r.MinimumHours,
		IsActive:                r.IsActive,
	}
	if !r.CreatedAt.IsZero() {
		createdAt := r.CreatedAt
		resp.CreatedAt = &createdAt
	}

	return resp
}

// FromDomainRatesList конвертирует список domain моделей в DTO
func FromDomainRatesList(list []*domain.RateTable) *RatesHistoryResponse {
	resp := &RatesHistoryResponse{
		Versions: make([]RatesResponse, 0, len(list)),
	}

	for _, r := range list {
		if item := FromDomainRates(r); item != nil {
			resp.Versions = append(resp.Versions, *item)
		}
	}

	return resp
}
