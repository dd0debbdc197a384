// Package events публикация событий жизненного цикла бронирований
// для коллабораторов (уведомления, аудит)
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Типы событий; используются как routing key при публикации
const (
	TypeBookingCreated     = "booking.created"
	TypeBookingConfirmed   = "booking.confirmed"
	TypeBookingCancelled   = "booking.cancelled"
	TypeBookingRescheduled = "booking.rescheduled"
	TypeBookingNoShow      = "booking.no_show"
)

// BookingEvent событие изменения состояния бронирования
type BookingEvent struct {
	Type       string     `json:"type"`
	TenantID   uuid.UUID  `json:"tenantId"`
	BookingID  uuid.UUID  `json:"bookingId"`
	ServiceID  uuid.UUID  `json:"serviceId"`
	StaffID    *uuid.UUID `json:"staffId,omitempty"`
	ClientID   *uuid.UUID `json:"clientId,omitempty"`
	StartTime  time.Time  `json:"startTime"`
	EndTime    time.Time  `json:"endTime"`
	Status     string     `json:"status"`
	OccurredAt time.Time  `json:"occurredAt"`
}

// Publisher интерфейс публикации событий бронирований
type Publisher interface {
	PublishBookingEvent(ctx context.Context, ev BookingEvent) error
	Close() error
}
