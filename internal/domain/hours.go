package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/coloradodev/cronos-booking/pkg/types"
)

// BusinessHours are the open/close wall-clock times of a tenant for one
// weekday. Unique per (TenantID, DayOfWeek). Invariant: if IsOpen is true,
// OpenTime < CloseTime. Mutated only by the business-hours collaborator;
// the engine reads them as reference data
type BusinessHours struct {
	TenantID  uuid.UUID
	DayOfWeek time.Weekday
	OpenTime  types.TimeString
	CloseTime types.TimeString
	IsOpen    bool
}

// DayWindow is the concrete open window of one calendar date.
// [Open, Close) in the tenant's local time
type DayWindow struct {
	Open  time.Time
	Close time.Time
}

// Contains reports whether [start, end) lies fully inside the window
func (w DayWindow) Contains(start, end time.Time) bool {
	return !start.Before(w.Open) && !end.After(w.Close)
}

// BookingPolicy per-tenant creation constraints.
// AdvanceBookingDays = 0 means no horizon limit
type BookingPolicy struct {
	TenantID                uuid.UUID
	AdvanceBookingDays      int
	MinBookingNoticeMinutes int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// HasAdvanceBookingLimit returns true if a booking horizon is configured
func (p *BookingPolicy) HasAdvanceBookingLimit() bool {
	return p.AdvanceBookingDays > 0
}

// DefaultBookingPolicy returns the policy applied to tenants without an
// explicit configuration
func DefaultBookingPolicy(tenantID uuid.UUID) *BookingPolicy {
	return &BookingPolicy{
		TenantID:                tenantID,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
	}
}
