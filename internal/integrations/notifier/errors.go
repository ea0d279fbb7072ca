package notifier

import "errors"

var (
	// ErrMissingContact возвращается, когда у заявки нет ни email, ни телефона
	ErrMissingContact = errors.New("notifier client: booking has no contact information")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifier client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("notifier client: invalid response")
)
