package mark_no_show

import (
	"errors"
	"net/http"

	"github.com/coloradodev/cronos-booking/internal/api/handlers"
	"github.com/coloradodev/cronos-booking/internal/service/bookings"
)

const (
	msgInvalidTenantID  = "некорректный ID тенанта"
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgNotConfirmed     = "неявку можно отметить только для подтверждённого бронирования"
	msgAlreadyTerminal  = "бронирование уже завершено"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/tenants/{tenantId}/bookings/{bookingId}/no-show
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.PathUUID(r, "tenantId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/no-show - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/no-show - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.MarkNoShow(r.Context(), tenantID, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/no-show - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAlreadyTerminal):
			h.logger.Warn("POST /bookings/{id}/no-show - Booking terminal: booking_id=%s", bookingID)
			handlers.RespondInvalidState(w, msgAlreadyTerminal)

		case errors.Is(err, bookings.ErrInvalidState):
			h.logger.Warn("POST /bookings/{id}/no-show - Booking not confirmed: booking_id=%s", bookingID)
			handlers.RespondInvalidState(w, msgNotConfirmed)

		default:
			h.logger.Error("POST /bookings/{id}/no-show - Failed: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/no-show - Booking marked: booking_id=%s, tenant_id=%s", bookingID, tenantID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
