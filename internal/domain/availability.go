package domain

import "time"

// AvailableDate загрузка бригад на конкретную дату переезда
type AvailableDate struct {
	Date           time.Time
	BookedMoves    int
	AvailableCrews int
	TotalCrews     int
}

// IsFull returns true if no crews are left on this date
func (d *AvailableDate) IsFull() bool {
	return d.AvailableCrews <= 0
}
