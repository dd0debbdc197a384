package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("create_booking: staff not found")

	// ErrServiceInactive возвращается для деактивированной услуги
	ErrServiceInactive = errors.New("create_booking: service is not active")

	// ErrStaffNotEligible возвращается, когда сотрудник не оказывает услугу
	// или деактивирован
	ErrStaffNotEligible = errors.New("create_booking: staff is not eligible for service")

	// ErrPastStartTime возвращается при попытке забронировать прошедшее время
	ErrPastStartTime = errors.New("create_booking: start time is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrTooLateToBook возвращается, когда бронирование нарушает minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrOutsideBusinessHours возвращается, когда интервал выходит за рабочие часы
	ErrOutsideBusinessHours = errors.New("create_booking: slot is outside business hours")

	// ErrSlotNotAvailable возвращается, когда слот занят или конкурирующая
	// запись выиграла гонку. Клиент может безопасно повторить запрос
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
