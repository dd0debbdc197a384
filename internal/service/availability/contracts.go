package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/coloradodev/cronos-booking/internal/domain"
	"github.com/coloradodev/cronos-booking/internal/integrations/directory"
)

// Calendar интерфейс рабочего календаря тенанта
type Calendar interface {
	WindowFor(ctx context.Context, tenantID uuid.UUID, date time.Time) (*domain.DayWindow, error)
}

// ConflictChecker интерфейс проверки пересечений с активными бронированиями
type ConflictChecker interface {
	HasConflict(ctx context.Context, tenantID, staffID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error)
}

// DirectoryClient интерфейс клиента справочника услуг и сотрудников
type DirectoryClient interface {
	GetService(ctx context.Context, tenantID, serviceID uuid.UUID) (*directory.Service, error)
	GetStaff(ctx context.Context, tenantID, staffID uuid.UUID) (*directory.Staff, error)
	ListStaffForService(ctx context.Context, tenantID, serviceID uuid.UUID) ([]*directory.Staff, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
