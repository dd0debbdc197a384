package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/coloradodev/cronos-booking/internal/domain"
	"github.com/coloradodev/cronos-booking/internal/infra/events"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByTenantAndID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Booking, error)
	HasConflict(ctx context.Context, tenantID, staffID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status domain.BookingStatus) error
	AppendNote(ctx context.Context, tenantID, id uuid.UUID, note string) error
	ListByTenant(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
