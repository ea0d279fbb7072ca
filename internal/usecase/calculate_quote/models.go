package calculate_quote

import "github.com/m04kA/SMC-MovingService/internal/domain"

// Request параметры детальной сметы
type Request struct {
	Volume     *float64 `json:"volume" validate:"required,gt=0,lte=10000"`
	DistanceKm float64  `json:"distance_km" validate:"gte=0,lte=10000"`

	ElevatorFrom string `json:"elevator_from" validate:"omitempty,oneof=none small large stairs"`
	FloorsFrom   int    `json:"floors_from" validate:"gte=0,lte=200"`
	ElevatorTo   string `json:"elevator_to" validate:"omitempty,oneof=none small large stairs"`
	FloorsTo     int    `json:"floors_to" validate:"gte=0,lte=200"`

	ApartmentSqm      float64 `json:"apartment_sqm" validate:"gte=0,lte=10000"`
	PackingHelp       bool    `json:"packing_help"`
	MoveCleaning      bool    `json:"move_cleaning"`
	AllergyCleaning   bool    `json:"allergy_cleaning"`
	HeavyItems        int     `json:"heavy_items" validate:"gte=0,lte=1000"`
	LongCarry         bool    `json:"long_carry"`
	LongCarryMeters   float64 `json:"long_carry_meters" validate:"gte=0,lte=10000"`
	KeyCustomer       bool    `json:"key_customer"`
	LowSeason         bool    `json:"low_season"`
	FurnitureAssembly bool    `json:"furniture_assembly"`
	Hanging           bool    `json:"hanging"`
	Disposal          bool    `json:"disposal"`

	MovingBoxes   int `json:"moving_boxes" validate:"gte=0,lte=100000"`
	WardrobeBoxes int `json:"wardrobe_boxes" validate:"gte=0,lte=100000"`
	PictureBoxes  int `json:"picture_boxes" validate:"gte=0,lte=100000"`
	MirrorBoxes   int `json:"mirror_boxes" validate:"gte=0,lte=100000"`
}

// Response рассчитанная смета
type Response struct {
	Quote domain.QuoteBreakdown
}

func (r *Request) toDomain() domain.QuoteDetails {
	details := domain.QuoteDetails{
		DistanceKm:        r.DistanceKm,
		ElevatorFrom:      domain.ElevatorType(r.ElevatorFrom),
		FloorsFrom:        r.FloorsFrom,
		ElevatorTo:        domain.ElevatorType(r.ElevatorTo),
		FloorsTo:          r.FloorsTo,
		ApartmentSqm:      r.ApartmentSqm,
		PackingHelp:       r.PackingHelp,
		MoveCleaning:      r.MoveCleaning,
		AllergyCleaning:   r.AllergyCleaning,
		HeavyItems:        r.HeavyItems,
		LongCarry:         r.LongCarry,
		LongCarryMeters:   r.LongCarryMeters,
		KeyCustomer:       r.KeyCustomer,
		LowSeason:         r.LowSeason,
		FurnitureAssembly: r.FurnitureAssembly,
		Hanging:           r.Hanging,
		Disposal:          r.Disposal,
		MovingBoxes:       r.MovingBoxes,
		WardrobeBoxes:     r.WardrobeBoxes,
		PictureBoxes:      r.PictureBoxes,
		MirrorBoxes:       r.MirrorBoxes,
	}
	if r.Volume != nil {
		details.Volume = *r.Volume
	}
	return details
}
