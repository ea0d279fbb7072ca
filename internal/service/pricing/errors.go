package pricing

import (
	"errors"
	"fmt"
)

// ErrInvalidInput базовая ошибка некорректных входных данных калькулятора
var ErrInvalidInput = errors.New("pricing: invalid input")

// InvalidInputError некорректное числовое значение, дошедшее до калькулятора
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidInput.Error(), e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}
