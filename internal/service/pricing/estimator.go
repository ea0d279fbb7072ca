package pricing

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-MovingService/internal/domain"
)

// Estimator рассчитывает стоимость переезда по таблице тарифов
// Не имеет изменяемого состояния, безопасен для конкурентного использования
type Estimator struct {
	rates domain.RateTable
}

// NewEstimator создает калькулятор с переданными тарифами
func NewEstimator(rates domain.RateTable) *Estimator {
	return &Estimator{rates: rates}
}

// Rates возвращает тарифы калькулятора
func (e *Estimator) Rates() domain.RateTable {
	return e.rates
}

// ComputePrice рассчитывает PriceBreakdown для запроса
func (e *Estimator) ComputePrice(req domain.MoveRequest) (domain.PriceBreakdown, error) {
	if err := validateMove(req); err != nil {
		return domain.PriceBreakdown{}, err
	}

	r := e.rates
	volume := decimal.NewFromFloat(req.Volume)

	volumeCost := volume.Mul(decimal.NewFromFloat(r.VolumeRate))

	parkingFee := decimal.Zero
	if req.ParkingDistance > r.FreeDistanceThreshold {
		extra := decimal.NewFromInt(int64(req.ParkingDistance - r.FreeDistanceThreshold))
		parkingFee = extra.Mul(decimal.NewFromFloat(r.ParkingRatePerMeter))
	}

	stairsFee := decimal.Zero
	noElevator := decimal.NewFromFloat(r.NoElevatorSurcharge)
	broken := decimal.NewFromFloat(r.BrokenElevatorSurcharge)
	if req.StairsFrom > r.NoElevatorFloorLimit && !req.ElevatorFrom {
		stairsFee = stairsFee.Add(noElevator)
	}
	if req.StairsTo > r.NoElevatorFloorLimit && !req.ElevatorTo {
		stairsFee = stairsFee.Add(noElevator)
	}
	if req.ElevatorBrokenFrom {
		stairsFee = stairsFee.Add(broken)
	}
	if req.ElevatorBrokenTo {
		stairsFee = stairsFee.Add(broken)
	}

	materialsCost := decimal.Zero
	for _, kind := range domain.MaterialKinds {
		qty := req.Materials.Quantity(kind)
		if qty == 0 {
			continue
		}
		price, _ := r.UnitPrice(kind)
		materialsCost = materialsCost.Add(decimal.NewFromInt(int64(qty)).Mul(decimal.NewFromFloat(price)))
	}

	// Round округляет половину от нуля; для неотрицательных сумм это half-up
	sum := volumeCost.Add(parkingFee).Add(stairsFee).Add(materialsCost).Round(0)
	rawHours := volume.Mul(decimal.NewFromFloat(r.HoursPerCubicMeter)).Ceil()
	if err := checkRange("total", sum); err != nil {
		return domain.PriceBreakdown{}, err
	}
	if err := checkRange("estimated_hours", rawHours); err != nil {
		return domain.PriceBreakdown{}, err
	}

	subtotal := sum.IntPart()
	hours := int(rawHours.IntPart())
	if hours < r.MinimumHours {
		hours = r.MinimumHours
	}

	return domain.PriceBreakdown{
		VolumeCost:     money(volumeCost),
		ParkingFee:     money(parkingFee),
		StairsFee:      money(stairsFee),
		MaterialsCost:  money(materialsCost),
		Subtotal:       subtotal,
		Total:          subtotal,
		EstimatedHours: hours,
		RateVersion:    r.Version,
	}, nil
}

func validateMove(req domain.MoveRequest) error {
	switch {
	case math.IsNaN(req.Volume) || math.IsInf(req.Volume, 0):
		return invalid("volume", "must be a finite number")
	case req.Volume <= 0:
		return invalid("volume", "must be positive")
	case req.Volume > domain.MaxVolume:
		return invalid("volume", fmt.Sprintf("must be at most %d", domain.MaxVolume))
	case req.ParkingDistance < 0:
		return invalid("parking_distance", "must not be negative")
	case req.ParkingDistance > domain.MaxParkingDistance:
		return invalid("parking_distance", fmt.Sprintf("must be at most %d", domain.MaxParkingDistance))
	case req.StairsFrom < 0:
		return invalid("stairs_from", "must not be negative")
	case req.StairsTo < 0:
		return invalid("stairs_to", "must not be negative")
	case req.StairsFrom > domain.MaxFloor:
		return invalid("stairs_from", fmt.Sprintf("must be at most %d", domain.MaxFloor))
	case req.StairsTo > domain.MaxFloor:
		return invalid("stairs_to", fmt.Sprintf("must be at most %d", domain.MaxFloor))
	}

	kinds := make([]string, 0, len(req.Materials))
	for kind := range req.Materials {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)

	for _, kind := range kinds {
		if _, ok := domain.DefaultRateTable().UnitPrice(domain.MaterialKind(kind)); !ok {
			return invalid("materials", "contains unknown kind "+kind)
		}
		switch qty := req.Materials[domain.MaterialKind(kind)]; {
		case qty < 0:
			return invalid("materials."+kind, "must not be negative")
		case qty > domain.MaxMaterialQuantity:
			return invalid("materials."+kind, fmt.Sprintf("must be at most %d", domain.MaxMaterialQuantity))
		}
	}
	return nil
}

// maxAmount наибольшая сумма, которая переживает IntPart без переполнения
var maxAmount = decimal.NewFromInt(math.MaxInt64)

// checkRange отклоняет значения вне int64; сюда приводят только завышенные тарифы
func checkRange(field string, d decimal.Decimal) error {
	if d.Abs().GreaterThan(maxAmount) {
		return invalid(field, "exceeds supported range")
	}
	return nil
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
