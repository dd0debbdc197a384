package mark_no_show

import (
	"context"

	"github.com/google/uuid"

	"github.com/coloradodev/cronos-booking/internal/service/bookings/models"
)

type BookingService interface {
	MarkNoShow(ctx context.Context, tenantID, bookingID uuid.UUID) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
