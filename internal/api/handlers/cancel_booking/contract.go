package cancel_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/coloradodev/cronos-booking/internal/service/bookings/models"
)

type BookingService interface {
	Cancel(ctx context.Context, tenantID, bookingID uuid.UUID, req *models.CancelBookingRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
