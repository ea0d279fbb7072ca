package create_booking

import (
	"time"

	"github.com/m04kA/SMC-MovingService/internal/domain"
	"github.com/m04kA/SMC-MovingService/pkg/types"
)

// Request модель запроса на создание бронирования
// json теги задают имена полей в сообщениях валидации
type Request struct {
	CustomerName  string `json:"customer_name" validate:"required,max=200"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerPhone string `json:"customer_phone" validate:"omitempty,phone"`
	CustomerType  string `json:"customer_type" validate:"omitempty,oneof=private company"`

	MovingDate  string `json:"moving_date" validate:"required,datetime=2006-01-02"` // "2025-10-15"
	MoveTime    string `json:"move_time" validate:"omitempty,datetime=15:04"`       // по умолчанию "08:00"
	FromAddress string `json:"from_address" validate:"required,max=200"`
	ToAddress   string `json:"to_address" validate:"required,max=200"`
	Notes       string `json:"notes" validate:"max=1000"`

	Volume             *float64       `json:"volume" validate:"required,gt=0,gte=0.01,lte=10000"`
	ParkingDistance    int            `json:"parking_distance" validate:"gte=0,lte=10000"`
	StairsFrom         int            `json:"stairs_from" validate:"gte=0,lte=200"`
	StairsTo           int            `json:"stairs_to" validate:"gte=0,lte=200"`
	ElevatorFrom       bool           `json:"elevator_from"`
	ElevatorTo         bool           `json:"elevator_to"`
	ElevatorBrokenFrom bool           `json:"elevator_broken_from"`
	ElevatorBrokenTo   bool           `json:"elevator_broken_to"`
	Materials          map[string]int `json:"materials" validate:"omitempty,dive,keys,oneof=boxes tape plastic_bags,endkeys,gte=0,lte=100000"`
}

// Response модель ответа с созданным бронированием
type Response struct {
	Duplicated bool // true - повторная отправка, бронирование не создавалось

	BookingID      int64
	Reference      string
	CustomerID     int64
	MovingDate     time.Time
	MoveTime       types.TimeString
	Status         string
	TotalPrice     int64
	EstimatedHours int
	Breakdown      domain.PriceBreakdown
	CreatedAt      time.Time
}

// Options параметры приема заявок
type Options struct {
	DailyCapacity      int           // бригад в день
	AdvanceBookingDays int           // 0 = без ограничений
	DuplicateWindow    time.Duration // окно подавления повторных отправок
}
