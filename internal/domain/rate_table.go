package domain

import "time"

// RateTable тарифы для расчета стоимости переезда
// Version 0 означает тарифы по умолчанию из конфигурации
type RateTable struct {
	ID      int64
	Version int64

	VolumeRate              float64 // за m³ (после RUT-вычета)
	FreeDistanceThreshold   int     // метры парковки без доплаты
	ParkingRatePerMeter     float64 // за каждый метр сверх порога
	NoElevatorFloorLimit    int     // этажи выше этого без лифта доплачиваются
	NoElevatorSurcharge     float64 // за каждый адрес выше NoElevatorFloorLimit без лифта
	BrokenElevatorSurcharge float64 // за каждый адрес со сломанным лифтом
	BoxUnitPrice            float64
	TapeUnitPrice           float64
	BagUnitPrice            float64
	HoursPerCubicMeter      float64
	MinimumHours            int

	IsActive  bool
	CreatedAt time.Time
}

// DefaultRateTable тарифы по умолчанию
func DefaultRateTable() RateTable {
	return RateTable{
		Version:                 0,
		VolumeRate:              240,
		FreeDistanceThreshold:   5,
		ParkingRatePerMeter:     99,
		NoElevatorFloorLimit:    2,
		NoElevatorSurcharge:     500,
		BrokenElevatorSurcharge: 300,
		BoxUnitPrice:            79,
		TapeUnitPrice:           99,
		BagUnitPrice:            20,
		HoursPerCubicMeter:      0.5,
		MinimumHours:            2,
		IsActive:                true,
	}
}

// UnitPrice цена единицы материала; false для неизвестного вида
func (r RateTable) UnitPrice(kind MaterialKind) (float64, bool) {
	switch kind {
	case MaterialBoxes:
		return r.BoxUnitPrice, true
	case MaterialTape:
		return r.TapeUnitPrice, true
	case MaterialPlasticBags:
		return r.BagUnitPrice, true
	default:
		return 0, false
	}
}
