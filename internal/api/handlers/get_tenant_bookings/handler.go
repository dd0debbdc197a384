package get_tenant_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/coloradodev/cronos-booking/internal/api/handlers"
	"github.com/coloradodev/cronos-booking/internal/domain"
	"github.com/coloradodev/cronos-booking/internal/service/bookings"
	"github.com/coloradodev/cronos-booking/internal/service/bookings/models"
)

const (
	msgInvalidTenantID = "некорректный ID тенанта"
	msgInvalidStaffID  = "некорректный ID сотрудника"
	msgInvalidPeriod   = "некорректный формат периода, ожидается YYYY-MM-DD"
	msgInvalidFilter   = "некорректные параметры фильтрации"
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

// Handle GET /api/v1/tenants/{tenantId}/bookings
// Query параметры: staffId, status, startFrom, startTo, includeInactive
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := handlers.PathUUID(r, "tenantId")
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	staffID, err := handlers.QueryUUID(r, "staffId")
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	req := &models.ListBookingsRequest{
		TenantID:        tenantID,
		StaffID:         staffID,
		IncludeInactive: r.URL.Query().Get("includeInactive") == "true",
	}

	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	for name, dst := range map[string]**time.Time{"startFrom": &req.StartFrom, "startTo": &req.StartTo} {
		if raw := r.URL.Query().Get(name); raw != "" {
			parsed, err := time.Parse(domain.DateFormat, raw)
			if err != nil {
				h.logger.Warn("GET /bookings - Invalid %s: %v", name, err)
				handlers.RespondBadRequest(w, msgInvalidPeriod)
				return
			}
			*dst = &parsed
		}
	}

	result, err := h.service.ListByTenant(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid filter: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /bookings - Failed to list bookings: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - %d bookings returned: tenant_id=%s", len(result.Bookings), tenantID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
