package directory

import "github.com/google/uuid"

// Service услуга тенанта (read-only справочные данные)
type Service struct {
	ID              uuid.UUID `json:"id"`
	TenantID        uuid.UUID `json:"tenantId"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"durationMinutes"`
	IsActive        bool      `json:"isActive"`
}

// Staff сотрудник тенанта (read-only справочные данные)
type Staff struct {
	ID         uuid.UUID   `json:"id"`
	TenantID   uuid.UUID   `json:"tenantId"`
	Name       string      `json:"name"`
	IsActive   bool        `json:"isActive"`
	ServiceIDs []uuid.UUID `json:"serviceIds"`
}

// ProvidesService возвращает true, если сотрудник оказывает услугу
func (s *Staff) ProvidesService(serviceID uuid.UUID) bool {
	for _, id := range s.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
