package reschedule_booking

import (
	"errors"
	"net/http"

	"github.com/coloradodev/cronos-booking/internal/api/handlers"
	rescheduleBooking "github.com/coloradodev/cronos-booking/internal/usecase/reschedule_booking"
)

const (
	msgInvalidTenantID      = "некорректный ID тенанта"
	msgInvalidBookingID     = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidStartTime     = "некорректный формат времени начала, ожидается YYYY-MM-DDTHH:MM:SS"
	msgNotFound             = "бронирование не найдено"
	msgServiceNotFound      = "услуга не найдена"
	msgAlreadyTerminal      = "бронирование уже завершено"
	msgSlotNotAvailable     = "выбранный временной слот недоступен"
	msgOutsideBusinessHours = "слот выходит за рабочие часы"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/tenants/{tenantId}/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.PathUUID(r, "tenantId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID, bookingID)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/reschedule - Invalid input: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/reschedule - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings/{id}/reschedule - Service not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, rescheduleBooking.ErrAlreadyTerminal):
			h.logger.Warn("POST /bookings/{id}/reschedule - Booking terminal: booking_id=%s", bookingID)
			handlers.RespondInvalidState(w, msgAlreadyTerminal)

		case errors.Is(err, rescheduleBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings/{id}/reschedule - Slot not available: booking_id=%s", bookingID)
			handlers.RespondSlotNotAvailable(w, msgSlotNotAvailable)

		case errors.Is(err, rescheduleBooking.ErrOutsideBusinessHours):
			h.logger.Warn("POST /bookings/{id}/reschedule - Outside business hours: booking_id=%s", bookingID)
			handlers.RespondBookingNotAllowed(w, msgOutsideBusinessHours)

		default:
			h.logger.Error("POST /bookings/{id}/reschedule - Failed: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/reschedule - Booking rescheduled: booking_id=%s, tenant_id=%s", bookingID, tenantID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
