// Package get_available_slots use case получения доступных слотов.
// Чтение без блокировок: список может устареть между выдачей и
// попыткой бронирования, создание перепроверит слот атомарно
package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/coloradodev/cronos-booking/internal/domain"
	"github.com/coloradodev/cronos-booking/internal/service/availability"
)

// UseCase use case для получения доступных слотов
type UseCase struct {
	engine AvailabilityEngine
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(engine AvailabilityEngine, logger Logger) *UseCase {
	return &UseCase{
		engine: engine,
		logger: logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: tenant=%s, service=%s, date=%s",
		req.TenantID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем доступные слоты через движок доступности
	timeSlots, err := uc.engine.ListAvailableSlots(ctx, req.TenantID, req.ServiceID, req.Date, req.StaffID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrServiceNotFound):
			uc.logger.Warn("GetAvailableSlots: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		case errors.Is(err, availability.ErrServiceInactive):
			uc.logger.Warn("GetAvailableSlots: service id=%s is not active", req.ServiceID)
			return nil, ErrServiceInactive
		case errors.Is(err, availability.ErrStaffNotFound):
			uc.logger.Warn("GetAvailableSlots: staff not found for service id=%s", req.ServiceID)
			return nil, ErrStaffNotFound
		case errors.Is(err, availability.ErrNoStaffForService):
			uc.logger.Warn("GetAvailableSlots: no active staff for service id=%s", req.ServiceID)
			return nil, ErrStaffNotFound
		case errors.Is(err, availability.ErrStaffNotEligible):
			uc.logger.Warn("GetAvailableSlots: staff not eligible for service id=%s", req.ServiceID)
			return nil, ErrStaffNotEligible
		default:
			uc.logger.Error("GetAvailableSlots: engine error: %v", err)
			return nil, fmt.Errorf("%w: engine error: %v", ErrInternal, err)
		}
	}

	// 3. Конвертируем в response
	slots := make([]Slot, 0, len(timeSlots))
	for _, ts := range timeSlots {
		slots = append(slots, Slot{StartTime: ts.StartTime, EndTime: ts.EndTime})
	}

	uc.logger.Info("GetAvailableSlots: %d slots for tenant=%s, service=%s, date=%s",
		len(slots), req.TenantID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:      req.Date,
		TenantID:  req.TenantID,
		ServiceID: req.ServiceID,
		Slots:     slots,
	}, nil
}
