package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/coloradodev/cronos-booking/internal/api/handlers"
	"github.com/coloradodev/cronos-booking/internal/domain"
	getSlots "github.com/coloradodev/cronos-booking/internal/usecase/get_available_slots"
)

const (
	msgInvalidTenantID  = "некорректный ID тенанта"
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidStaffID   = "некорректный ID сотрудника"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgServiceNotFound  = "услуга не найдена"
	msgStaffNotFound    = "сотрудник не найден"
	msgServiceInactive  = "услуга деактивирована"
	msgStaffNotEligible = "сотрудник не оказывает эту услугу"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/slots?serviceId=...&date=YYYY-MM-DD&staffId=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.PathUUID(r, "tenantId")
	if err != nil {
		h.logger.Warn("GET /slots - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	serviceID, err := handlers.QueryUUID(r, "serviceId")
	if err != nil || serviceID == nil {
		h.logger.Warn("GET /slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	staffID, err := handlers.QueryUUID(r, "staffId")
	if err != nil {
		h.logger.Warn("GET /slots - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getSlots.Request{
		TenantID:  tenantID,
		ServiceID: *serviceID,
		Date:      date,
		StaffID:   staffID,
	})
	if err != nil {
		switch {
		case errors.Is(err, getSlots.ErrInvalidInput):
			h.logger.Warn("GET /slots - Invalid input: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getSlots.ErrServiceNotFound):
			h.logger.Warn("GET /slots - Service not found: tenant_id=%s, service_id=%s", tenantID, *serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getSlots.ErrStaffNotFound):
			h.logger.Warn("GET /slots - Staff not found: tenant_id=%s", tenantID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getSlots.ErrServiceInactive):
			h.logger.Warn("GET /slots - Service inactive: tenant_id=%s, service_id=%s", tenantID, *serviceID)
			handlers.RespondBookingNotAllowed(w, msgServiceInactive)

		case errors.Is(err, getSlots.ErrStaffNotEligible):
			h.logger.Warn("GET /slots - Staff not eligible: tenant_id=%s", tenantID)
			handlers.RespondBookingNotAllowed(w, msgStaffNotEligible)

		default:
			h.logger.Error("GET /slots - Failed to get slots: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots - %d slots returned: tenant_id=%s, service_id=%s", len(result.Slots), tenantID, *serviceID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
