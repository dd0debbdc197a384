package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/coloradodev/cronos-booking/internal/domain"
)

// AvailabilityEngine интерфейс движка доступности
type AvailabilityEngine interface {
	ListAvailableSlots(ctx context.Context, tenantID, serviceID uuid.UUID, date time.Time, staffID *uuid.UUID) ([]domain.TimeSlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
