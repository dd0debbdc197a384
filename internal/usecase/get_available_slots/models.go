package get_available_slots

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	TenantID  uuid.UUID  // ID тенанта
	ServiceID uuid.UUID  // ID услуги
	Date      time.Time  // Дата для получения слотов (без времени)
	StaffID   *uuid.UUID // Фильтр по сотруднику (опционально)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date      time.Time // Дата, на которую запрашивались слоты
	TenantID  uuid.UUID // ID тенанта
	ServiceID uuid.UUID // ID услуги
	Slots     []Slot    // Список доступных слотов
}

// Slot модель временного слота
type Slot struct {
	StartTime time.Time // Начало слота (включительно)
	EndTime   time.Time // Конец слота (не включительно)
}
