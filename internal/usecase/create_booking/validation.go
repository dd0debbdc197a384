package create_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/coloradodev/cronos-booking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantID == uuid.Nil {
		return fmt.Errorf("%w: tenantId is required", ErrInvalidInput)
	}

	if req.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}

	if req.StaffID != nil && *req.StaffID == uuid.Nil {
		return fmt.Errorf("%w: staffId must not be empty", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateStartTime проверяет начало слота против текущего времени и
// политики тенанта: не в прошлом, не дальше горизонта бронирования,
// не позже минимального срока предупреждения
func validateStartTime(start, now time.Time, policy *domain.BookingPolicy) error {
	if !start.After(now) {
		return ErrPastStartTime
	}

	if policy.HasAdvanceBookingLimit() {
		maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
			AddDate(0, 0, policy.AdvanceBookingDays)
		startDate := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
		if startDate.After(maxDate) {
			return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, policy.AdvanceBookingDays)
		}
	}

	if policy.MinBookingNoticeMinutes > 0 {
		minStart := now.Add(time.Duration(policy.MinBookingNoticeMinutes) * time.Minute)
		if start.Before(minStart) {
			return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, policy.MinBookingNoticeMinutes)
		}
	}

	return nil
}
