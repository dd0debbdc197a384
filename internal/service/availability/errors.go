package availability

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в справочнике
	ErrServiceNotFound = errors.New("availability: service not found")

	// ErrStaffNotFound возвращается, когда сотрудник не найден в справочнике
	ErrStaffNotFound = errors.New("availability: staff not found")

	// ErrServiceInactive возвращается для деактивированной услуги
	ErrServiceInactive = errors.New("availability: service is not active")

	// ErrStaffNotEligible возвращается, когда сотрудник не оказывает услугу
	// или деактивирован
	ErrStaffNotEligible = errors.New("availability: staff is not eligible for service")

	// ErrNoStaffForService возвращается, когда ни один активный сотрудник
	// не оказывает услугу
	ErrNoStaffForService = errors.New("availability: no active staff provides this service")

	// ErrNoEligibleStaff возвращается, когда ни один сотрудник не может
	// принять бронирование на запрошенный интервал
	ErrNoEligibleStaff = errors.New("availability: no eligible staff for slot")

	// ErrInternal возвращается при внутренних ошибках движка
	ErrInternal = errors.New("availability: internal error")
)
