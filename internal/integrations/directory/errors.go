package directory

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("directory: service not found")

	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("directory: staff member not found")

	// ErrTenantNotFound возвращается, когда тенант не найден
	ErrTenantNotFound = errors.New("directory: tenant not found")

	// ErrInvalidResponse возвращается при некорректном ответе DirectoryService
	ErrInvalidResponse = errors.New("directory: invalid response")

	// ErrInternal возвращается при сетевых и прочих внутренних ошибках
	ErrInternal = errors.New("directory: internal error")
)
