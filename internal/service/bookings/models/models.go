package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-MovingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Стороны, от имени которых отменяется бронирование
const (
	CancelledByCustomer = "customer"
	CancelledByCompany  = "company"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	CancelledBy        string `json:"cancelled_by"` // customer | company
	CancellationReason string `json:"reason"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// GetCustomerBookingsRequest запрос на получение бронирований клиента
type GetCustomerBookingsRequest struct {
	CustomerID int64   `json:"customer_id"`
	Status     *string `json:"status,omitempty"`
}

// ListBookingsRequest запрос на получение бронирований с фильтрацией
type ListBookingsRequest struct {
	StartDate       *time.Time `json:"from,omitempty"`             // Начало периода (опционально)
	EndDate         *time.Time `json:"to,omitempty"`               // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`           // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"include_inactive,omitempty"` // Включить отмененные и no-show
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// MoveResponse параметры переезда
type MoveResponse struct {
	Volume             float64        `json:"volume"`
	ParkingDistance    int            `json:"parking_distance"`
	StairsFrom         int            `json:"stairs_from"`
	StairsTo           int            `json:"stairs_to"`
	ElevatorFrom       bool           `json:"elevator_from"`
	ElevatorTo         bool           `json:"elevator_to"`
	ElevatorBrokenFrom bool           `json:"elevator_broken_from"`
	ElevatorBrokenTo   bool           `json:"elevator_broken_to"`
	Materials          map[string]int `json:"materials"`
}

// BreakdownResponse расчет стоимости
type BreakdownResponse struct {
	VolumeCost     float64 `json:"volume_cost"`
	ParkingFee     float64 `json:"parking_fee"`
	StairsFee      float64 `json:"stairs_fee"`
	MaterialsCost  float64 `json:"materials_cost"`
	Subtotal       int64   `json:"subtotal"`
	Total          int64   `json:"total"`
	EstimatedHours int     `json:"estimated_hours"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64  `json:"id"`
	Reference  string `json:"reference"`
	CustomerID int64  `json:"customer_id"`

	// Денормализованные данные клиента
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	CustomerPhone *string `json:"customer_phone,omitempty"`

	MovingDate  string `json:"moving_date"` // "2025-10-15"
	MoveTime    string `json:"move_time"`   // "08:00"
	FromAddress string `json:"from_address"`
	ToAddress   string `json:"to_address"`

	Move           MoveResponse      `json:"move"`
	Breakdown      BreakdownResponse `json:"breakdown"`
	RateVersion    int64             `json:"rate_version"`
	TotalPrice     int64             `json:"total_price"`
	EstimatedHours int               `json:"estimated_hours"`
	Status         string            `json:"status"`
	Notes          *string           `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellation_reason,omitempty"`
	CancelledAt        *string `json:"cancelled_at,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBreakdown конвертирует расчет стоимости в DTO
func FromDomainBreakdown(b domain.PriceBreakdown) BreakdownResponse {
	return BreakdownResponse{
		VolumeCost:     b.VolumeCost,
		ParkingFee:     b.ParkingFee,
		StairsFee:      b.StairsFee,
		MaterialsCost:  b.MaterialsCost,
		Subtotal:       b.Subtotal,
		Total:          b.Total,
		EstimatedHours: b.EstimatedHours,
	}
}

// FromDomainMove конвертирует параметры переезда в DTO; все виды материалов присутствуют в ответе
func FromDomainMove(m domain.MoveRequest) MoveResponse {
	materials := make(map[string]int, len(domain.MaterialKinds))
	for _, kind := range domain.MaterialKinds {
		materials[string(kind)] = m.Materials.Quantity(kind)
	}

	return MoveResponse{
		Volume:             m.Volume,
		ParkingDistance:    m.ParkingDistance,
		StairsFrom:         m.StairsFrom,
		StairsTo:           m.StairsTo,
		ElevatorFrom:       m.ElevatorFrom,
		ElevatorTo:         m.ElevatorTo,
		ElevatorBrokenFrom: m.ElevatorBrokenFrom,
		ElevatorBrokenTo:   m.ElevatorBrokenTo,
		Materials:          materials,
	}
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		Reference:          b.Reference,
		CustomerID:         b.CustomerID,
		CustomerName:       b.CustomerName,
		CustomerEmail:      b.CustomerEmail,
		CustomerPhone:      b.CustomerPhone,
		MovingDate:         b.MovingDate.Format(domain.DateFormat),
		MoveTime:           b.MoveTime.String(),
		FromAddress:        b.FromAddress,
		ToAddress:          b.ToAddress,
		Move:               FromDomainMove(b.Move),
		Breakdown:          FromDomainBreakdown(b.Breakdown),
		RateVersion:        b.RateVersion,
		TotalPrice:         b.TotalPrice,
		EstimatedHours:     b.EstimatedHours,
		Status:             string(b.Status),
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
