// Package calendar сервис рабочего календаря тенанта.
// Превращает недельное расписание рабочих часов в конкретные
// окна открытия на календарные даты
package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/coloradodev/cronos-booking/internal/domain"
	hoursRepo "github.com/coloradodev/cronos-booking/internal/infra/storage/hours"
)

// Service сервис рабочего календаря
type Service struct {
	hoursRepo HoursRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса календаря
func NewService(hoursRepo HoursRepository, logger Logger) *Service {
	return &Service{
		hoursRepo: hoursRepo,
		logger:    logger,
	}
}

// WindowFor возвращает окно открытия тенанта на календарную дату.
// Если день не сконфигурирован или помечен закрытым, возвращает ErrClosed
func (s *Service) WindowFor(ctx context.Context, tenantID uuid.UUID, date time.Time) (*domain.DayWindow, error) {
	bh, err := s.hoursRepo.GetByTenantAndDay(ctx, tenantID, date.Weekday())
	if err != nil {
		if errors.Is(err, hoursRepo.ErrHoursNotFound) {
			s.logger.Info("WindowFor: tenant=%s has no hours configured for %s", tenantID, date.Weekday())
			return nil, ErrClosed
		}
		s.logger.Error("WindowFor: repository error for tenant=%s: %v", tenantID, err)
		return nil, fmt.Errorf("%w: WindowFor - repository error: %v", ErrInternal, err)
	}

	if !bh.IsOpen {
		s.logger.Info("WindowFor: tenant=%s is closed on %s", tenantID, date.Weekday())
		return nil, ErrClosed
	}

	return &domain.DayWindow{
		Open:  bh.OpenTime.OnDate(date),
		Close: bh.CloseTime.OnDate(date),
	}, nil
}

// IsWithinWindow проверяет, что интервал [start, end) целиком лежит внутри
// окна открытия тенанта. Интервал должен начинаться и заканчиваться в одну
// календарную дату: записи через полночь не поддерживаются
func (s *Service) IsWithinWindow(ctx context.Context, tenantID uuid.UUID, start, end time.Time) (bool, error) {
	y1, m1, d1 := start.Date()
	y2, m2, d2 := end.Date()
	if y1 != y2 || m1 != m2 || d1 != d2 {
		return false, nil
	}

	window, err := s.WindowFor(ctx, tenantID, start)
	if err != nil {
		if errors.Is(err, ErrClosed) {
			return false, nil
		}
		return false, err
	}

	return window.Contains(start, end), nil
}

// WeekSchedule возвращает недельное расписание тенанта
func (s *Service) WeekSchedule(ctx context.Context, tenantID uuid.UUID) ([]*domain.BusinessHours, error) {
	schedule, err := s.hoursRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("WeekSchedule: repository error for tenant=%s: %v", tenantID, err)
		return nil, fmt.Errorf("%w: WeekSchedule - repository error: %v", ErrInternal, err)
	}
	return schedule, nil
}
