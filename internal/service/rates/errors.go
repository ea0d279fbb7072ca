package rates

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных значениях тарифов
	ErrInvalidInput = errors.New("invalid rate table")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
