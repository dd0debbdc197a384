package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidState возвращается при недопустимом переходе статуса
	ErrInvalidState = errors.New("invalid booking state for this operation")

	// ErrAlreadyTerminal возвращается при попытке изменить отменённое
	// бронирование или неявку
	ErrAlreadyTerminal = errors.New("booking is already terminal")

	// ErrSlotNotAvailable возвращается, когда подтверждение проиграло
	// гонку сериализации. Клиент может безопасно повторить запрос
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
