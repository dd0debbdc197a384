package get_available_slots

import (
	"github.com/google/uuid"

	"github.com/coloradodev/cronos-booking/internal/domain"
	getSlots "github.com/coloradodev/cronos-booking/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель временного слота
type SlotResponse struct {
	StartTime string `json:"startTime"` // "2025-10-15T10:00:00"
	EndTime   string `json:"endTime"`
}

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Date      string         `json:"date"` // "2025-10-15"
	TenantID  uuid.UUID      `json:"tenantId"`
	ServiceID uuid.UUID      `json:"serviceId"`
	Slots     []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime: s.StartTime.Format(domain.DateTimeFormat),
			EndTime:   s.EndTime.Format(domain.DateTimeFormat),
		})
	}

	return &SlotsResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		TenantID:  resp.TenantID,
		ServiceID: resp.ServiceID,
		Slots:     slots,
	}
}
