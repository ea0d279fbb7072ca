package calculate_quote

import (
	"errors"
	"strings"
)

var (
	// ErrValidation возвращается, когда запрос не прошел валидацию (см. ValidationError)
	ErrValidation = errors.New("calculate_quote: validation failed")

	// ErrInvalidInput возвращается, когда калькулятор отклонил параметры сметы
	ErrInvalidInput = errors.New("calculate_quote: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("calculate_quote: internal error")
)

// ValidationError все нарушения, найденные за один проход валидации
type ValidationError struct {
	Missing    []string
	Violations []string
}

func (e *ValidationError) Error() string {
	return "calculate_quote: validation failed: " + strings.Join(e.Details(), "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Details сообщения для клиента
func (e *ValidationError) Details() []string {
	details := make([]string, 0, len(e.Violations)+1)
	if len(e.Missing) > 0 {
		details = append(details, "missing required fields: "+strings.Join(e.Missing, ", "))
	}
	return append(details, e.Violations...)
}
