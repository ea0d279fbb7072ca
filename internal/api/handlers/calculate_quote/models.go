package calculate_quote

import (
	calculateQuote "github.com/m04kA/SMC-MovingService/internal/usecase/calculate_quote"
)

// QuoteResponse HTTP response model, суммы в целых кронах
type QuoteResponse struct {
	Total                int64 `json:"total"`
	AddOnCount           int   `json:"add_on_count"`
	ComboDiscountPercent int   `json:"combo_discount_percent"`

	Items     QuoteItems     `json:"items"`
	Discounts QuoteDiscounts `json:"discounts"`
}

// QuoteItems позиции сметы
type QuoteItems struct {
	BasePrice         int64 `json:"base_price"`
	DistanceFee       int64 `json:"distance_fee"`
	CarryFeeFrom      int64 `json:"carry_fee_from"`
	CarryFeeTo        int64 `json:"carry_fee_to"`
	PackingCost       int64 `json:"packing"`
	CleaningCost      int64 `json:"cleaning"`
	HeavyItemsFee     int64 `json:"heavy_items"`
	LongCarryFee      int64 `json:"long_carry"`
	FurnitureAssembly int64 `json:"furniture_assembly"`
	Hanging           int64 `json:"hanging"`
	Disposal          int64 `json:"disposal"`
	BoxesCost         int64 `json:"boxes"`
}

// QuoteDiscounts скидки сметы; Total включает комбо-скидку
type QuoteDiscounts struct {
	Combo       int64 `json:"combo"`
	Volume      int64 `json:"volume"`
	KeyCustomer int64 `json:"key_customer"`
	LowSeason   int64 `json:"low_season"`
	Total       int64 `json:"total"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *calculateQuote.Response) *QuoteResponse {
	q := resp.Quote
	return &QuoteResponse{
		Total:                q.Total,
		AddOnCount:           q.AddOnCount,
		ComboDiscountPercent: q.ComboDiscountPercent,
		Items: QuoteItems{
			BasePrice:         q.BasePrice,
			DistanceFee:       q.DistanceFee,
			CarryFeeFrom:      q.CarryFeeFrom,
			CarryFeeTo:        q.CarryFeeTo,
			PackingCost:       q.PackingCost,
			CleaningCost:      q.CleaningCost,
			HeavyItemsFee:     q.HeavyItemsFee,
			LongCarryFee:      q.LongCarryFee,
			FurnitureAssembly: q.FurnitureAssembly,
			Hanging:           q.Hanging,
			Disposal:          q.Disposal,
			BoxesCost:         q.BoxesCost,
		},
		Discounts: QuoteDiscounts{
			Combo:       q.ComboDiscount,
			Volume:      q.VolumeDiscount,
			KeyCustomer: q.KeyCustomerDiscount,
			LowSeason:   q.LowSeasonDiscount,
			Total:       q.TotalDiscount,
		},
	}
}
