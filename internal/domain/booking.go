package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// transitions единая таблица допустимых переходов статусов.
// Любая проверка легальности перехода идет через неё, а не через
// разрозненные условия в сервисных методах
var transitions = map[BookingStatus]map[BookingStatus]bool{
	StatusPending: {
		StatusConfirmed: true,
		StatusCancelled: true,
	},
	StatusConfirmed: {
		StatusCancelled: true,
		StatusNoShow:    true,
	},
	// cancelled и no_show терминальные: переходов из них нет
	StatusCancelled: {},
	StatusNoShow:    {},
}

// IsValid returns true if the status is one of the known values
func (s BookingStatus) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo returns true if the transition s -> next is legal
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return transitions[s][next]
}

// IsTerminal returns true if no further transitions are permitted
func (s BookingStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// Booking represents a reservation of one staff member for one service
// over the half-open interval [StartTime, EndTime)
type Booking struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	ServiceID uuid.UUID
	StaffID   *uuid.UUID // nil until auto-assigned
	ClientID  *uuid.UUID // nil for guest bookings

	StartTime time.Time
	EndTime   time.Time
	Status    BookingStatus

	// Notes is an append-only trail of cancellation/reschedule reasons
	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking participates in the no-overlap
// invariant (pending or confirmed)
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if the booking reached a terminal status
func (b *Booking) IsTerminal() bool {
	return b.Status.IsTerminal()
}

// CanBeCancelled returns true if the booking can transition to cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status.CanTransitionTo(StatusCancelled)
}

// Overlaps reports whether the booking interval overlaps [start, end).
// Half-open semantics: intervals that merely touch do not overlap
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && start.Before(b.EndTime)
}

// BookingsFilter фильтр для выборки бронирований тенанта
type BookingsFilter struct {
	TenantID        uuid.UUID      // Обязательный параметр
	StaffID         *uuid.UUID     // Фильтр по сотруднику (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	StartFrom       *time.Time     // Начало периода (опционально)
	StartTo         *time.Time     // Конец периода (опционально)
	IncludeInactive bool           // Включать ли терминальные бронирования
}
