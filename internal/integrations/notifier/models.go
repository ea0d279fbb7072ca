package notifier

// BookingReceived уведомление о новой заявке на переезд
type BookingReceived struct {
	BookingID      int64   `json:"booking_id"`
	Reference      string  `json:"reference"`
	CustomerName   string  `json:"customer_name"`
	Email          string  `json:"email,omitempty"`
	Phone          string  `json:"phone,omitempty"`
	MovingDate     string  `json:"moving_date"` // "2025-10-15"
	MoveTime       string  `json:"move_time"`   // "08:00"
	Volume         float64 `json:"volume"`
	TotalPrice     int64   `json:"total_price"`
	EstimatedHours int     `json:"estimated_hours"`
}

// ErrorResponse модель ошибки от сервиса уведомлений
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
