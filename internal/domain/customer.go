package domain

import "time"

// CustomerType тип клиента
type CustomerType string

const (
	CustomerPrivate CustomerType = "private"
	CustomerCompany CustomerType = "company"
)

// Customer клиент; email уникален и используется как ключ при повторных заявках
type Customer struct {
	ID        int64
	Name      string
	Email     string
	Phone     *string
	Type      CustomerType
	CreatedAt time.Time
	UpdatedAt time.Time
}
