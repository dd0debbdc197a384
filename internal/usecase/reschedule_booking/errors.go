package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrServiceNotFound возвращается, когда услуга бронирования
	// отсутствует в справочнике
	ErrServiceNotFound = errors.New("reschedule_booking: service not found")

	// ErrAlreadyTerminal возвращается при попытке перенести отменённое
	// бронирование или неявку
	ErrAlreadyTerminal = errors.New("reschedule_booking: booking is already terminal")

	// ErrOutsideBusinessHours возвращается, когда новый интервал выходит
	// за рабочие часы
	ErrOutsideBusinessHours = errors.New("reschedule_booking: slot is outside business hours")

	// ErrSlotNotAvailable возвращается, когда новый слот занят
	ErrSlotNotAvailable = errors.New("reschedule_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
