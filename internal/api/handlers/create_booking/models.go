package create_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/coloradodev/cronos-booking/internal/domain"
	createBooking "github.com/coloradodev/cronos-booking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID uuid.UUID  `json:"serviceId"`
	StaffID   *uuid.UUID `json:"staffId,omitempty"`
	ClientID  *uuid.UUID `json:"clientId,omitempty"`
	StartTime string     `json:"startTime"` // "2025-10-15T10:00:00"
	Notes     *string    `json:"notes,omitempty"`
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
func (r *CreateBookingRequest) ToUseCaseRequest(tenantID uuid.UUID) (*createBooking.Request, error) {
	startTime, err := time.Parse(domain.DateTimeFormat, r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("parse startTime: %w", err)
	}

	return &createBooking.Request{
		TenantID:  tenantID,
		ServiceID: r.ServiceID,
		StaffID:   r.StaffID,
		ClientID:  r.ClientID,
		StartTime: startTime,
		Notes:     r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
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
