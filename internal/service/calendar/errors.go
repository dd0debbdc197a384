package calendar

import "errors"

var (
	// ErrClosed возвращается, когда тенант закрыт в запрошенный день
	ErrClosed = errors.New("tenant is closed on the requested day")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("calendar: internal error")
)
