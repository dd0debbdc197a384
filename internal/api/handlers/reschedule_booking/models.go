package reschedule_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/coloradodev/cronos-booking/internal/domain"
	rescheduleBooking "github.com/coloradodev/cronos-booking/internal/usecase/reschedule_booking"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	NewStartTime string `json:"newStartTime"` // "2025-10-15T10:00:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        uuid.UUID  `json:"id"`
	TenantID  uuid.UUID  `json:"tenantId"`
	ServiceID uuid.UUID  `json:"serviceId"`
	StaffID   *uuid.UUID `json:"staffId,omitempty"`
	ClientID  *uuid.UUID `json:"clientId,omitempty"`
	StartTime string     `json:"startTime"`
	EndTime   string     `json:"endTime"`
	Status    string     `json:"status"`
	Notes     *string    `json:"notes,omitempty"`
	CreatedAt string     `json:"createdAt"`
	UpdatedAt string     `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(tenantID, bookingID uuid.UUID) (*rescheduleBooking.Request, error) {
	newStart, err := time.Parse(domain.DateTimeFormat, r.NewStartTime)
	if err != nil {
		return nil, fmt.Errorf("parse newStartTime: %w", err)
	}

	return &rescheduleBooking.Request{
		TenantID:     tenantID,
		BookingID:    bookingID,
		NewStartTime: newStart,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:        resp.ID,
		TenantID:  resp.TenantID,
		ServiceID: resp.ServiceID,
		StaffID:   resp.StaffID,
		ClientID:  resp.ClientID,
		StartTime: resp.StartTime.Format(domain.DateTimeFormat),
		EndTime:   resp.EndTime.Format(domain.DateTimeFormat),
		Status:    resp.Status,
		Notes:     resp.Notes,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
