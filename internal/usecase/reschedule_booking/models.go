package reschedule_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/coloradodev/cronos-booking/internal/domain"
)

// Request модель запроса на перенос бронирования
type Request struct {
	TenantID     uuid.UUID // ID тенанта
	BookingID    uuid.UUID // ID бронирования
	NewStartTime time.Time // Новое начало слота
}

// Response модель ответа с перенесённым бронированием
type Response struct {
	ID        uuid.UUID  // ID бронирования
	TenantID  uuid.UUID  // ID тенанта
	ServiceID uuid.UUID  // ID услуги
	StaffID   *uuid.UUID // Сотрудник (не меняется при переносе)
	ClientID  *uuid.UUID // ID клиента
	StartTime time.Time  // Новое начало слота
	EndTime   time.Time  // Новый конец слота
	Status    string     // Статус бронирования (не меняется при переносе)
	Notes     *string    // Заметки
	CreatedAt time.Time  // Время создания
	UpdatedAt time.Time  // Время обновления
}

// fromDomainBooking конвертирует доменное бронирование в response
func fromDomainBooking(b *domain.Booking) *Response {
	return &Response{
		ID:        b.ID,
		TenantID:  b.TenantID,
		ServiceID: b.ServiceID,
		StaffID:   b.StaffID,
		ClientID:  b.ClientID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    string(b.Status),
		Notes:     b.Notes,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
