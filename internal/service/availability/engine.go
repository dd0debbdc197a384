// Package availability движок доступности: перечисляет свободные слоты
// и подбирает сотрудника под бронирование. Слот доступен, если хотя бы
// один подходящий сотрудник не имеет пересечений с активными бронированиями
package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/coloradodev/cronos-booking/internal/domain"
	"github.com/coloradodev/cronos-booking/internal/integrations/directory"
	"github.com/coloradodev/cronos-booking/internal/service/calendar"
)

// Engine движок доступности
type Engine struct {
	calendar  Calendar
	conflicts ConflictChecker
	directory DirectoryClient
	logger    Logger
}

// NewEngine создает новый экземпляр движка доступности
func NewEngine(
	cal Calendar,
	conflicts ConflictChecker,
	dir DirectoryClient,
	logger Logger,
) *Engine {
	return &Engine{
		calendar:  cal,
		conflicts: conflicts,
		directory: dir,
		logger:    logger,
	}
}

// ListAvailableSlots перечисляет свободные слоты тенанта на дату.
// Если staffID задан, учитывается только этот сотрудник; иначе слот
// считается свободным, когда свободен хотя бы один сотрудник услуги.
// Закрытый день даёт пустой список, а не ошибку
func (e *Engine) ListAvailableSlots(
	ctx context.Context,
	tenantID, serviceID uuid.UUID,
	date time.Time,
	staffID *uuid.UUID,
) ([]domain.TimeSlot, error) {
	e.logger.Info("ListAvailableSlots: tenant=%s service=%s date=%s", tenantID, serviceID, date.Format(domain.DateFormat))

	service, err := e.getActiveService(ctx, tenantID, serviceID)
	if err != nil {
		return nil, err
	}

	staff, err := e.eligibleStaff(ctx, tenantID, service, staffID)
	if err != nil {
		return nil, err
	}

	window, err := e.calendar.WindowFor(ctx, tenantID, date)
	if err != nil {
		if errors.Is(err, calendar.ErrClosed) {
			e.logger.Info("ListAvailableSlots: tenant=%s closed on %s", tenantID, date.Format(domain.DateFormat))
			return []domain.TimeSlot{}, nil
		}
		return nil, fmt.Errorf("%w: ListAvailableSlots - calendar error: %v", ErrInternal, err)
	}

	candidates := candidateSlots(*window, service.DurationMinutes)
	available := make([]domain.TimeSlot, 0, len(candidates))

	for _, slot := range candidates {
		free, err := e.anyStaffFree(ctx, tenantID, staff, slot.StartTime, slot.EndTime)
		if err != nil {
			return nil, err
		}
		if free {
			available = append(available, slot)
		}
	}

	e.logger.Info("ListAvailableSlots: tenant=%s service=%s date=%s: %d of %d slots available",
		tenantID, serviceID, date.Format(domain.DateFormat), len(available), len(candidates))
	return available, nil
}

// IsSlotBookable проверяет, можно ли забронировать слот с началом start:
// конец вычисляется из длительности услуги, слот должен лежать внутри
// рабочих часов и хотя бы один подходящий сотрудник должен быть свободен
func (e *Engine) IsSlotBookable(
	ctx context.Context,
	tenantID, serviceID uuid.UUID,
	start time.Time,
	staffID *uuid.UUID,
) (bool, error) {
	service, err := e.getActiveService(ctx, tenantID, serviceID)
	if err != nil {
		return false, err
	}

	end := start.Add(time.Duration(service.DurationMinutes) * time.Minute)

	window, err := e.calendar.WindowFor(ctx, tenantID, start)
	if err != nil {
		if errors.Is(err, calendar.ErrClosed) {
			return false, nil
		}
		return false, fmt.Errorf("%w: IsSlotBookable - calendar error: %v", ErrInternal, err)
	}
	if !window.Contains(start, end) {
		return false, nil
	}

	staff, err := e.eligibleStaff(ctx, tenantID, service, staffID)
	if err != nil {
		return false, err
	}

	return e.anyStaffFree(ctx, tenantID, staff, start, end)
}

// PickStaffFor подбирает сотрудника под интервал [start, end): первый
// в стабильном порядке справочника активный сотрудник услуги без
// пересечений. Если такого нет, возвращает ErrNoEligibleStaff
func (e *Engine) PickStaffFor(
	ctx context.Context,
	tenantID, serviceID uuid.UUID,
	start, end time.Time,
) (*directory.Staff, error) {
	service, err := e.getActiveService(ctx, tenantID, serviceID)
	if err != nil {
		return nil, err
	}

	staff, err := e.eligibleStaff(ctx, tenantID, service, nil)
	if err != nil {
		if errors.Is(err, ErrNoStaffForService) {
			return nil, ErrNoEligibleStaff
		}
		return nil, err
	}

	for _, member := range staff {
		conflict, err := e.conflicts.HasConflict(ctx, tenantID, member.ID, start, end, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: PickStaffFor - conflict check: %v", ErrInternal, err)
		}
		if !conflict {
			e.logger.Info("PickStaffFor: tenant=%s assigned staff=%s for %s", tenantID, member.ID, start.Format(time.RFC3339))
			return member, nil
		}
	}

	e.logger.Warn("PickStaffFor: tenant=%s no eligible staff for %s", tenantID, start.Format(time.RFC3339))
	return nil, ErrNoEligibleStaff
}

// EligibleStaffMember проверяет, что сотрудник активен и оказывает услугу.
// Используется при создании бронирования с закреплённым сотрудником
func (e *Engine) EligibleStaffMember(
	ctx context.Context,
	tenantID, serviceID, staffID uuid.UUID,
) (*directory.Staff, error) {
	member, err := e.directory.GetStaff(ctx, tenantID, staffID)
	if err != nil {
		if errors.Is(err, directory.ErrStaffNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("%w: EligibleStaffMember - directory error: %v", ErrInternal, err)
	}

	if !member.IsActive || !member.ProvidesService(serviceID) {
		return nil, ErrStaffNotEligible
	}

	return member, nil
}

// getActiveService получает услугу из справочника и проверяет её активность
func (e *Engine) getActiveService(ctx context.Context, tenantID, serviceID uuid.UUID) (*directory.Service, error) {
	service, err := e.directory.GetService(ctx, tenantID, serviceID)
	if err != nil {
		if errors.Is(err, directory.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("%w: getActiveService - directory error: %v", ErrInternal, err)
	}
	if !service.IsActive {
		return nil, ErrServiceInactive
	}
	return service, nil
}

// eligibleStaff возвращает сотрудников, среди которых ищется свободный.
// Порядок стабилен: закреплённый сотрудник или порядок справочника
func (e *Engine) eligibleStaff(
	ctx context.Context,
	tenantID uuid.UUID,
	service *directory.Service,
	staffID *uuid.UUID,
) ([]*directory.Staff, error) {
	if staffID != nil {
		member, err := e.EligibleStaffMember(ctx, tenantID, service.ID, *staffID)
		if err != nil {
			return nil, err
		}
		return []*directory.Staff{member}, nil
	}

	all, err := e.directory.ListStaffForService(ctx, tenantID, service.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: eligibleStaff - directory error: %v", ErrInternal, err)
	}

	active := make([]*directory.Staff, 0, len(all))
	for _, member := range all {
		if member.IsActive {
			active = append(active, member)
		}
	}
	if len(active) == 0 {
		return nil, ErrNoStaffForService
	}
	return active, nil
}

// anyStaffFree возвращает true, если хотя бы один сотрудник из списка
// не имеет пересечений с интервалом [start, end)
func (e *Engine) anyStaffFree(
	ctx context.Context,
	tenantID uuid.UUID,
	staff []*directory.Staff,
	start, end time.Time,
) (bool, error) {
	for _, member := range staff {
		conflict, err := e.conflicts.HasConflict(ctx, tenantID, member.ID, start, end, nil)
		if err != nil {
			return false, fmt.Errorf("%w: anyStaffFree - conflict check: %v", ErrInternal, err)
		}
		if !conflict {
			return true, nil
		}
	}
	return false, nil
}
