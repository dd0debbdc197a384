package get_available_slots

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrStaffNotFound возвращается, когда сотрудник не найден
	// или ни один сотрудник не оказывает услугу
	ErrStaffNotFound = errors.New("get_available_slots: staff not found")

	// ErrServiceInactive возвращается для деактивированной услуги
	ErrServiceInactive = errors.New("get_available_slots: service is not active")

	// ErrStaffNotEligible возвращается, когда сотрудник не оказывает услугу
	// или деактивирован
	ErrStaffNotEligible = errors.New("get_available_slots: staff is not eligible for service")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
