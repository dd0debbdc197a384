package calendar

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/coloradodev/cronos-booking/internal/domain"
)

// HoursRepository интерфейс репозитория рабочих часов
type HoursRepository interface {
	GetByTenantAndDay(ctx context.Context, tenantID uuid.UUID, day time.Weekday) (*domain.BusinessHours, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.BusinessHours, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
