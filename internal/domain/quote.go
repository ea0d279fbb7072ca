package domain

// ElevatorType тип подъема на адресе (для детальной сметы)
type ElevatorType string

const (
	ElevatorNone   ElevatorType = "none"
	ElevatorSmall  ElevatorType = "small"
	ElevatorLarge  ElevatorType = "large"
	ElevatorStairs ElevatorType = "stairs"
)

// IsValid проверяет, что тип лифта известен
func (t ElevatorType) IsValid() bool {
	switch t {
	case ElevatorNone, ElevatorSmall, ElevatorLarge, ElevatorStairs:
		return true
	default:
		return false
	}
}

// QuoteDetails входные данные детальной сметы
type QuoteDetails struct {
	Volume     float64 // m³
	DistanceKm float64

	ElevatorFrom ElevatorType // пусто = large
	FloorsFrom   int
	ElevatorTo   ElevatorType
	FloorsTo     int

	ApartmentSqm      float64
	PackingHelp       bool
	MoveCleaning      bool
	AllergyCleaning   bool // заменяет обычную уборку
	HeavyItems        int
	LongCarry         bool
	LongCarryMeters   float64
	KeyCustomer       bool
	LowSeason         bool
	FurnitureAssembly bool
	Hanging           bool
	Disposal          bool

	MovingBoxes   int
	WardrobeBoxes int
	PictureBoxes  int
	MirrorBoxes   int
}

// QuoteRates параметры модели детальной сметы
type QuoteRates struct {
	MinimumBasePrice float64

	// Цена за m³: SmallMoveRate до SmallMoveVolume, LargeMoveRate от LargeMoveVolume,
	// между ними линейно через точки излома
	SmallMoveVolume   float64
	SmallMoveRate     float64
	FirstBreakVolume  float64
	FirstBreakRate    float64
	SecondBreakVolume float64
	SecondBreakRate   float64
	LargeMoveVolume   float64
	LargeMoveRate     float64

	FreeDistanceKm        float64
	RegionalMaxKm         float64
	RegionalRatePerKm     float64
	LongDistanceRatePerKm float64
	TruckCapacity         float64 // m³ на одну машину
	ExtraTruckFactor      float64 // множитель = trucks*ExtraTruckFactor + (1-ExtraTruckFactor)

	SmallElevatorRate float64 // за m³ и этаж
	StairsRate        float64 // за m³ и этаж

	PackingRatePerSqm         float64
	CleaningRatePerSqm        float64
	AllergyCleaningRatePerSqm float64
	HeavyItemFee              float64
	LongCarryRatePerMeter     float64
	LongCarryMaxMeters        float64
	FurnitureAssemblyFee      float64
	HangingFee                float64
	DisposalFee               float64

	MovingBoxPrice   float64
	WardrobeBoxPrice float64
	PictureBoxPrice  float64
	MirrorBoxPrice   float64

	ComboDiscountPerService float64 // доля, 0.05 = 5%
	VolumeDiscountTiers     []VolumeDiscountTier
	KeyCustomerDiscount     float64
	LowSeasonDiscount       float64
}

// VolumeDiscountTier скидка Discount при объеме от MinVolume
type VolumeDiscountTier struct {
	MinVolume float64
	Discount  float64
}

// DefaultQuoteRates параметры модели по умолчанию
func DefaultQuoteRates() QuoteRates {
	return QuoteRates{
		MinimumBasePrice: 1600,

		SmallMoveVolume:   5,
		SmallMoveRate:     320,
		FirstBreakVolume:  15,
		FirstBreakRate:    200,
		SecondBreakVolume: 40,
		SecondBreakRate:   144,
		LargeMoveVolume:   57,
		LargeMoveRate:     128,

		FreeDistanceKm:        50,
		RegionalMaxKm:         400,
		RegionalRatePerKm:     10.4,
		LongDistanceRatePerKm: 15.0,
		TruckCapacity:         19,
		ExtraTruckFactor:      0.7,

		SmallElevatorRate: 10,
		StairsRate:        20,

		PackingRatePerSqm:         44,
		CleaningRatePerSqm:        44,
		AllergyCleaningRatePerSqm: 65,
		HeavyItemFee:              800,
		LongCarryRatePerMeter:     80,
		LongCarryMaxMeters:        100,
		FurnitureAssemblyFee:      1500,
		HangingFee:                1200,
		DisposalFee:               1800,

		MovingBoxPrice:   20,
		WardrobeBoxPrice: 40,
		PictureBoxPrice:  60,
		MirrorBoxPrice:   75,

		ComboDiscountPerService: 0.05,
		VolumeDiscountTiers: []VolumeDiscountTier{
			{MinVolume: 100, Discount: 0.15},
			{MinVolume: 75, Discount: 0.10},
			{MinVolume: 50, Discount: 0.05},
		},
		KeyCustomerDiscount: 0.10,
		LowSeasonDiscount:   0.08,
	}
}

// QuoteBreakdown результат детальной сметы, все суммы в целых кронах
type QuoteBreakdown struct {
	Total                int64
	AddOnCount           int
	ComboDiscountPercent int

	BasePrice         int64
	DistanceFee       int64
	CarryFeeFrom      int64
	CarryFeeTo        int64
	PackingCost       int64
	CleaningCost      int64
	HeavyItemsFee     int64
	LongCarryFee      int64
	FurnitureAssembly int64
	Hanging           int64
	Disposal          int64
	BoxesCost         int64

	ComboDiscount       int64
	VolumeDiscount      int64
	KeyCustomerDiscount int64
	LowSeasonDiscount   int64
	TotalDiscount       int64 // включая ComboDiscount
}
