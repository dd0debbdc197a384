package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/coloradodev/cronos-booking/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	TenantID  uuid.UUID  // ID тенанта
	ServiceID uuid.UUID  // ID услуги
	StaffID   *uuid.UUID // Закреплённый сотрудник (опционально)
	ClientID  *uuid.UUID // ID клиента (опционально, walk-in без клиента)
	StartTime time.Time  // Начало слота
	Notes     *string    // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        uuid.UUID  // ID созданного бронирования
	TenantID  uuid.UUID  // ID тенанта
	ServiceID uuid.UUID  // ID услуги
	StaffID   *uuid.UUID // Назначенный сотрудник
	ClientID  *uuid.UUID // ID клиента
	StartTime time.Time  // Начало слота
	EndTime   time.Time  // Конец слота
	Status    string     // Статус бронирования
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
