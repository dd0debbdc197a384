package confirm_booking

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
	msgNotPending       = "подтвердить можно только ожидающее бронирование"
	msgAlreadyTerminal  = "бронирование уже завершено"
	msgSlotNotAvailable = "слот бронирования больше недоступен"
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

// Handle POST /api/v1/tenants/{tenantId}/bookings/{bookingId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.PathUUID(r, "tenantId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/confirm - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/confirm - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.Confirm(r.Context(), tenantID, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/confirm - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAlreadyTerminal):
			h.logger.Warn("POST /bookings/{id}/confirm - Booking terminal: booking_id=%s", bookingID)
			handlers.RespondInvalidState(w, msgAlreadyTerminal)

		case errors.Is(err, bookings.ErrInvalidState):
			h.logger.Warn("POST /bookings/{id}/confirm - Booking not pending: booking_id=%s", bookingID)
			handlers.RespondInvalidState(w, msgNotPending)

		case errors.Is(err, bookings.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings/{id}/confirm - Slot not available: booking_id=%s", bookingID)
			handlers.RespondSlotNotAvailable(w, msgSlotNotAvailable)

		default:
			h.logger.Error("POST /bookings/{id}/confirm - Failed: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/confirm - Booking confirmed: booking_id=%s, tenant_id=%s", bookingID, tenantID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
