package pricing

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-MovingService/internal/domain"
)

// Quoter рассчитывает детальную смету по ступенчатой модели цены за m³
type Quoter struct {
	rates domain.QuoteRates
}

// NewQuoter создает калькулятор сметы; ступени объемных скидок сортируются по убыванию объема
func NewQuoter(rates domain.QuoteRates) *Quoter {
	tiers := append([]domain.VolumeDiscountTier(nil), rates.VolumeDiscountTiers...)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].MinVolume > tiers[j].MinVolume })
	rates.VolumeDiscountTiers = tiers

	return &Quoter{rates: rates}
}

// ComputeQuote рассчитывает смету
func (q *Quoter) ComputeQuote(d domain.QuoteDetails) (domain.QuoteBreakdown, error) {
	if err := validateQuote(d); err != nil {
		return domain.QuoteBreakdown{}, err
	}

	r := q.rates
	volume := decimal.NewFromFloat(d.Volume)
	sqm := decimal.NewFromFloat(d.ApartmentSqm)

	// 1. Базовая цена по объему
	basePrice := volume.Mul(q.pricePerCubicMeter(volume))
	if minimum := dec(r.MinimumBasePrice); basePrice.LessThan(minimum) {
		basePrice = minimum
	}

	// 2. Расстояние: платно только сверх FreeDistanceKm, за всю дистанцию
	distanceFee := decimal.Zero
	if d.DistanceKm > r.FreeDistanceKm {
		perKm := r.RegionalRatePerKm
		if d.DistanceKm > r.RegionalMaxKm {
			perKm = r.LongDistanceRatePerKm
		}
		trucks := volume.Div(dec(r.TruckCapacity)).Ceil()
		factor := dec(r.ExtraTruckFactor)
		multiplier := trucks.Mul(factor).Add(decimal.NewFromInt(1).Sub(factor))
		distanceFee = dec(d.DistanceKm).Mul(dec(perKm)).Mul(multiplier)
	}

	// 3. Подъем на обоих адресах
	carryFrom := q.carryFee(d.ElevatorFrom, d.FloorsFrom, volume)
	carryTo := q.carryFee(d.ElevatorTo, d.FloorsTo, volume)

	// 4. Дополнительные услуги
	addOns := 0
	packing := decimal.Zero
	if d.PackingHelp {
		packing = sqm.Mul(dec(r.PackingRatePerSqm))
		addOns++
	}

	cleaning := decimal.Zero
	switch {
	case d.AllergyCleaning:
		cleaning = sqm.Mul(dec(r.AllergyCleaningRatePerSqm))
	case d.MoveCleaning:
		cleaning = sqm.Mul(dec(r.CleaningRatePerSqm))
	}
	if d.AllergyCleaning || d.MoveCleaning {
		addOns++
	}

	heavy := decimal.NewFromInt(int64(d.HeavyItems)).Mul(dec(r.HeavyItemFee))

	longCarry := decimal.Zero
	if d.LongCarry {
		meters := math.Min(d.LongCarryMeters, r.LongCarryMaxMeters)
		longCarry = dec(meters).Mul(dec(r.LongCarryRatePerMeter))
	}

	assembly := fixedFee(d.FurnitureAssembly, r.FurnitureAssemblyFee, &addOns)
	hanging := fixedFee(d.Hanging, r.HangingFee, &addOns)
	disposal := fixedFee(d.Disposal, r.DisposalFee, &addOns)

	boxes := decimal.NewFromInt(int64(d.MovingBoxes)).Mul(dec(r.MovingBoxPrice)).
		Add(decimal.NewFromInt(int64(d.WardrobeBoxes)).Mul(dec(r.WardrobeBoxPrice))).
		Add(decimal.NewFromInt(int64(d.PictureBoxes)).Mul(dec(r.PictureBoxPrice))).
		Add(decimal.NewFromInt(int64(d.MirrorBoxes)).Mul(dec(r.MirrorBoxPrice)))

	subtotal := decimal.Sum(basePrice, distanceFee, carryFrom, carryTo, packing, cleaning,
		heavy, longCarry, assembly, hanging, disposal, boxes)

	// 5. Комбо-скидка за количество доп. услуг, остальные скидки считаются от суммы после неё
	comboRate := dec(r.ComboDiscountPerService).Mul(decimal.NewFromInt(int64(addOns)))
	comboDiscount := subtotal.Mul(comboRate)
	subtotal = subtotal.Sub(comboDiscount)

	volumeDiscount := decimal.Zero
	for _, tier := range r.VolumeDiscountTiers {
		if d.Volume >= tier.MinVolume {
			volumeDiscount = subtotal.Mul(dec(tier.Discount))
			break
		}
	}

	keyCustomer := decimal.Zero
	if d.KeyCustomer {
		keyCustomer = subtotal.Mul(dec(r.KeyCustomerDiscount))
	}

	lowSeason := decimal.Zero
	if d.LowSeason {
		lowSeason = subtotal.Mul(dec(r.LowSeasonDiscount))
	}

	discounts := volumeDiscount.Add(keyCustomer).Add(lowSeason)
	total := subtotal.Sub(discounts)

	for _, amount := range []struct {
		field string
		value decimal.Decimal
	}{
		{"total", total},
		{"subtotal", subtotal.Add(comboDiscount)},
		{"total_discount", discounts.Add(comboDiscount)},
	} {
		if err := checkRange(amount.field, amount.value.Round(0)); err != nil {
			return domain.QuoteBreakdown{}, err
		}
	}

	return domain.QuoteBreakdown{
		Total:                whole(total),
		AddOnCount:           addOns,
		ComboDiscountPercent: int(whole(comboRate.Mul(decimal.NewFromInt(100)))),

		BasePrice:         whole(basePrice),
		DistanceFee:       whole(distanceFee),
		CarryFeeFrom:      whole(carryFrom),
		CarryFeeTo:        whole(carryTo),
		PackingCost:       whole(packing),
		CleaningCost:      whole(cleaning),
		HeavyItemsFee:     whole(heavy),
		LongCarryFee:      whole(longCarry),
		FurnitureAssembly: whole(assembly),
		Hanging:           whole(hanging),
		Disposal:          whole(disposal),
		BoxesCost:         whole(boxes),

		ComboDiscount:       whole(comboDiscount),
		VolumeDiscount:      whole(volumeDiscount),
		KeyCustomerDiscount: whole(keyCustomer),
		LowSeasonDiscount:   whole(lowSeason),
		TotalDiscount:       whole(discounts.Add(comboDiscount)),
	}, nil
}

// pricePerCubicMeter кусочно-линейная цена за m³
func (q *Quoter) pricePerCubicMeter(volume decimal.Decimal) decimal.Decimal {
	r := q.rates
	v := volume.InexactFloat64()

	switch {
	case v <= r.SmallMoveVolume:
		return dec(r.SmallMoveRate)
	case v >= r.LargeMoveVolume:
		return dec(r.LargeMoveRate)
	case v <= r.FirstBreakVolume:
		return interpolate(volume, r.SmallMoveVolume, r.SmallMoveRate, r.FirstBreakVolume, r.FirstBreakRate)
	case v <= r.SecondBreakVolume:
		return interpolate(volume, r.FirstBreakVolume, r.FirstBreakRate, r.SecondBreakVolume, r.SecondBreakRate)
	default:
		return interpolate(volume, r.SecondBreakVolume, r.SecondBreakRate, r.LargeMoveVolume, r.LargeMoveRate)
	}
}

// carryFee доплата за подъем; ElevatorNone не тарифицируется, как и большой лифт
func (q *Quoter) carryFee(elevator domain.ElevatorType, floors int, volume decimal.Decimal) decimal.Decimal {
	var rate float64
	switch elevator {
	case domain.ElevatorSmall:
		rate = q.rates.SmallElevatorRate
	case domain.ElevatorStairs:
		rate = q.rates.StairsRate
	default:
		return decimal.Zero
	}
	return volume.Mul(decimal.NewFromInt(int64(floors))).Mul(dec(rate))
}

func interpolate(x decimal.Decimal, x0, y0, x1, y1 float64) decimal.Decimal {
	slope := dec(y1 - y0).Div(dec(x1 - x0))
	return dec(y0).Add(slope.Mul(x.Sub(dec(x0))))
}

func fixedFee(enabled bool, fee float64, addOns *int) decimal.Decimal {
	if !enabled {
		return decimal.Zero
	}
	*addOns++
	return dec(fee)
}

func validateQuote(d domain.QuoteDetails) error {
	switch {
	case math.IsNaN(d.Volume) || math.IsInf(d.Volume, 0):
		return invalid("volume", "must be a finite number")
	case d.Volume <= 0:
		return invalid("volume", "must be positive")
	case d.Volume > domain.MaxVolume:
		return invalid("volume", fmt.Sprintf("must be at most %d", domain.MaxVolume))
	case math.IsNaN(d.DistanceKm) || math.IsInf(d.DistanceKm, 0) || d.DistanceKm < 0:
		return invalid("distance_km", "must be a non-negative number")
	case d.DistanceKm > domain.MaxDistanceKm:
		return invalid("distance_km", fmt.Sprintf("must be at most %d", domain.MaxDistanceKm))
	case d.ElevatorFrom != "" && !d.ElevatorFrom.IsValid():
		return invalid("elevator_from", "has unknown type "+string(d.ElevatorFrom))
	case d.ElevatorTo != "" && !d.ElevatorTo.IsValid():
		return invalid("elevator_to", "has unknown type "+string(d.ElevatorTo))
	case d.FloorsFrom < 0 || d.FloorsTo < 0:
		return invalid("floors", "must not be negative")
	case d.FloorsFrom > domain.MaxFloor || d.FloorsTo > domain.MaxFloor:
		return invalid("floors", fmt.Sprintf("must be at most %d", domain.MaxFloor))
	case math.IsNaN(d.ApartmentSqm) || math.IsInf(d.ApartmentSqm, 0) || d.ApartmentSqm < 0:
		return invalid("apartment_sqm", "must not be negative")
	case d.ApartmentSqm > domain.MaxApartmentSqm:
		return invalid("apartment_sqm", fmt.Sprintf("must be at most %d", domain.MaxApartmentSqm))
	case math.IsNaN(d.LongCarryMeters) || math.IsInf(d.LongCarryMeters, 0) || d.LongCarryMeters < 0:
		return invalid("long_carry_meters", "must not be negative")
	case d.LongCarryMeters > domain.MaxLongCarryMeters:
		return invalid("long_carry_meters", fmt.Sprintf("must be at most %d", domain.MaxLongCarryMeters))
	case d.HeavyItems < 0:
		return invalid("heavy_items", "must not be negative")
	case d.HeavyItems > domain.MaxHeavyItems:
		return invalid("heavy_items", fmt.Sprintf("must be at most %d", domain.MaxHeavyItems))
	case d.MovingBoxes < 0 || d.WardrobeBoxes < 0 || d.PictureBoxes < 0 || d.MirrorBoxes < 0:
		return invalid("boxes", "must not be negative")
	case d.MovingBoxes > domain.MaxMaterialQuantity || d.WardrobeBoxes > domain.MaxMaterialQuantity ||
		d.PictureBoxes > domain.MaxMaterialQuantity || d.MirrorBoxes > domain.MaxMaterialQuantity:
		return invalid("boxes", fmt.Sprintf("must be at most %d", domain.MaxMaterialQuantity))
	}
	return nil
}

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func whole(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}
