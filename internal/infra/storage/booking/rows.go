package booking

import (
	"encoding/json"

	"github.com/m04kA/SMC-MovingService/internal/domain"
)

// moveDetailsRow JSONB колонка move_details (объем хранится отдельной колонкой)
type moveDetailsRow struct {
	ParkingDistance    int            `json:"parking_distance"`
	StairsFrom         int            `json:"stairs_from"`
	StairsTo           int            `json:"stairs_to"`
	ElevatorFrom       bool           `json:"elevator_from"`
	ElevatorTo         bool           `json:"elevator_to"`
	ElevatorBrokenFrom bool           `json:"elevator_broken_from"`
	ElevatorBrokenTo   bool           `json:"elevator_broken_to"`
	Materials          map[string]int `json:"materials,omitempty"`
}

// breakdownRow JSONB колонка price_breakdown
type breakdownRow struct {
	VolumeCost     float64 `json:"volume_cost"`
	ParkingFee     float64 `json:"parking_fee"`
	StairsFee      float64 `json:"stairs_fee"`
	MaterialsCost  float64 `json:"materials_cost"`
	Subtotal       int64   `json:"subtotal"`
	Total          int64   `json:"total"`
	EstimatedHours int     `json:"estimated_hours"`
}

func encodeMove(m domain.MoveRequest) ([]byte, error) {
	row := moveDetailsRow{
		ParkingDistance:    m.ParkingDistance,
		StairsFrom:         m.StairsFrom,
		StairsTo:           m.StairsTo,
		ElevatorFrom:       m.ElevatorFrom,
		ElevatorTo:         m.ElevatorTo,
		ElevatorBrokenFrom: m.ElevatorBrokenFrom,
		ElevatorBrokenTo:   m.ElevatorBrokenTo,
	}
	if len(m.Materials) > 0 {
		row.Materials = make(map[string]int, len(m.Materials))
		for kind, qty := range m.Materials {
			row.Materials[string(kind)] = qty
		}
	}
	return json.Marshal(row)
}

func decodeMove(data []byte, volume float64) (domain.MoveRequest, error) {
	var row moveDetailsRow
	if len(data) > 0 {
		if err := json.Unmarshal(data, &row); err != nil {
			return domain.MoveRequest{}, err
		}
	}

	move := domain.MoveRequest{
		Volume:             volume,
		ParkingDistance:    row.ParkingDistance,
		StairsFrom:         row.StairsFrom,
		StairsTo:           row.StairsTo,
		ElevatorFrom:       row.ElevatorFrom,
		ElevatorTo:         row.ElevatorTo,
		ElevatorBrokenFrom: row.ElevatorBrokenFrom,
		ElevatorBrokenTo:   row.ElevatorBrokenTo,
	}
	if len(row.Materials) > 0 {
		move.Materials = make(domain.Materials, len(row.Materials))
		for kind, qty := range row.Materials {
			move.Materials[domain.MaterialKind(kind)] = qty
		}
	}
	return move, nil
}

func encodeBreakdown(b domain.PriceBreakdown) ([]byte, error) {
	return json.Marshal(breakdownRow{
		VolumeCost:     b.VolumeCost,
		ParkingFee:     b.ParkingFee,
		StairsFee:      b.StairsFee,
		MaterialsCost:  b.MaterialsCost,
		Subtotal:       b.Subtotal,
		Total:          b.Total,
		EstimatedHours: b.EstimatedHours,
	})
}

func decodeBreakdown(data []byte, rateVersion int64) (domain.PriceBreakdown, error) {
	var row breakdownRow
	if len(data) > 0 {
		if err := json.Unmarshal(data, &row); err != nil {
			return domain.PriceBreakdown{}, err
		}
	}
	return domain.PriceBreakdown{
		VolumeCost:     row.VolumeCost,
		ParkingFee:     row.ParkingFee,
		StairsFee:      row.StairsFee,
		MaterialsCost:  row.MaterialsCost,
		Subtotal:       row.Subtotal,
		Total:          row.Total,
		EstimatedHours: row.EstimatedHours,
		RateVersion:    rateVersion,
	}, nil
}
