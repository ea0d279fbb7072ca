package calculate_price

import "github.com/m04kA/SMC-MovingService/internal/domain"

// Request параметры переезда для предварительного расчета
type Request struct {
	Volume             *float64       `json:"volume" validate:"required,gt=0,lte=10000"`
	ParkingDistance    int            `json:"parking_distance" validate:"gte=0,lte=10000"`
	StairsFrom         int            `json:"stairs_from" validate:"gte=0,lte=200"`
	StairsTo           int            `json:"stairs_to" validate:"gte=0,lte=200"`
	ElevatorFrom       bool           `json:"elevator_from"`
	ElevatorTo         bool           `json:"elevator_to"`
	ElevatorBrokenFrom bool           `json:"elevator_broken_from"`
	ElevatorBrokenTo   bool           `json:"elevator_broken_to"`
	Materials          map[string]int `json:"materials" validate:"omitempty,dive,keys,oneof=boxes tape plastic_bags,endkeys,gte=0,lte=100000"`
}

// Response результат расчета; версия тарифов лежит в Breakdown.RateVersion
type Response struct {
	Move      domain.MoveRequest
	Breakdown domain.PriceBreakdown
}

func (r *Request) toDomain() domain.MoveRequest {
	move := domain.MoveRequest{
		ParkingDistance:    r.ParkingDistance,
		StairsFrom:         r.StairsFrom,
		StairsTo:           r.StairsTo,
		ElevatorFrom:       r.ElevatorFrom,
		ElevatorTo:         r.ElevatorTo,
		ElevatorBrokenFrom: r.ElevatorBrokenFrom,
		ElevatorBrokenTo:   r.ElevatorBrokenTo,
	}
	if r.Volume != nil {
		move.Volume = *r.Volume
	}
	if len(r.Materials) > 0 {
		move.Materials = make(domain.Materials, len(r.Materials))
		for kind, qty := range r.Materials {
			move.Materials[domain.MaterialKind(kind)] = qty
		}
	}
	return move
}
