package create_booking

import (
	"errors"
	"net/http"

	"github.com/coloradodev/cronos-booking/internal/api/handlers"
	createBooking "github.com/coloradodev/cronos-booking/internal/usecase/create_booking"
)

const (
	msgInvalidTenantID      = "некорректный ID тенанта"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidStartTime     = "некорректный формат времени начала, ожидается YYYY-MM-DDTHH:MM:SS"
	msgSlotNotAvailable     = "выбранный временной слот недоступен"
	msgServiceNotFound      = "услуга не найдена"
	msgStaffNotFound        = "сотрудник не найден"
	msgServiceInactive      = "услуга деактивирована"
	msgStaffNotEligible     = "сотрудник не оказывает эту услугу"
	msgPastStartTime        = "время начала уже прошло"
	msgDateTooFar           = "дата бронирования слишком далеко в будущем"
	msgTooLateToBook        = "слишком поздно для бронирования этого слота"
	msgOutsideBusinessHours = "слот выходит за рабочие часы"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/tenants/{tenantId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.PathUUID(r, "tenantId")
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: tenant_id=%s, service_id=%s", tenantID, req.ServiceID)
			handlers.RespondSlotNotAvailable(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: tenant_id=%s, service_id=%s", tenantID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrStaffNotFound):
			h.logger.Warn("POST /bookings - Staff not found: tenant_id=%s", tenantID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createBooking.ErrServiceInactive):
			h.logger.Warn("POST /bookings - Service inactive: tenant_id=%s, service_id=%s", tenantID, req.ServiceID)
			handlers.RespondBookingNotAllowed(w, msgServiceInactive)

		case errors.Is(err, createBooking.ErrStaffNotEligible):
			h.logger.Warn("POST /bookings - Staff not eligible: tenant_id=%s", tenantID)
			handlers.RespondBookingNotAllowed(w, msgStaffNotEligible)

		case errors.Is(err, createBooking.ErrPastStartTime):
			h.logger.Warn("POST /bookings - Start time in the past: tenant_id=%s", tenantID)
			handlers.RespondBookingNotAllowed(w, msgPastStartTime)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: tenant_id=%s", tenantID)
			handlers.RespondBookingNotAllowed(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: tenant_id=%s", tenantID)
			handlers.RespondBookingNotAllowed(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrOutsideBusinessHours):
			h.logger.Warn("POST /bookings - Outside business hours: tenant_id=%s", tenantID)
			handlers.RespondBookingNotAllowed(w, msgOutsideBusinessHours)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, tenant_id=%s", result.ID, tenantID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
