package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/coloradodev/cronos-booking/internal/domain"
	"github.com/coloradodev/cronos-booking/internal/infra/events"
	"github.com/coloradodev/cronos-booking/internal/integrations/directory"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	HasConflict(ctx context.Context, tenantID, staffID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error)
}

// PolicyRepository интерфейс репозитория политик бронирования
type PolicyRepository interface {
	GetByTenant(ctx context.Context, tenantID uuid.UUID) (*domain.BookingPolicy, error)
}

// DirectoryClient интерфейс клиента справочника услуг и сотрудников
type DirectoryClient interface {
	GetService(ctx context.Context, tenantID, serviceID uuid.UUID) (*directory.Service, error)
}

// AvailabilityEngine интерфейс движка доступности
type AvailabilityEngine interface {
	PickStaffFor(ctx context.Context, tenantID, serviceID uuid.UUID, start, end time.Time) (*directory.Staff, error)
	EligibleStaffMember(ctx context.Context, tenantID, serviceID, staffID uuid.UUID) (*directory.Staff, error)
}

// Calendar интерфейс рабочего календаря тенанта
type Calendar interface {
	IsWithinWindow(ctx context.Context, tenantID uuid.UUID, start, end time.Time) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий бронирований
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, ev events.BookingEvent) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
