package cache

import "errors"

var (
	// ErrUnavailable возвращается, когда Redis не отвечает
	ErrUnavailable = errors.New("cache: redis unavailable")
)
