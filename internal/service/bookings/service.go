// Package bookings сервис жизненного цикла бронирований: подтверждение,
// отмена, неявка и чтение. Легальные переходы статусов задаёт domain,
// сервис лишь применяет их в транзакционных границах
package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/coloradodev/cronos-booking/internal/domain"
	"github.com/coloradodev/cronos-booking/internal/infra/events"
	bookingRepo "github.com/coloradodev/cronos-booking/internal/infra/storage/booking"
	"github.com/coloradodev/cronos-booking/internal/service/bookings/models"
	"github.com/coloradodev/cronos-booking/pkg/txmanager"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Confirm подтверждает бронирование: pending -> confirmed.
// Подтверждение сериализуется так же, как создание: статус меняется
// только после перепроверки конфликтов под блокировкой
func (s *Service) Confirm(ctx context.Context, tenantID, bookingID uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("Confirm: confirming booking id=%s for tenant=%s", bookingID, tenantID)

	var result *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getForUpdate(txCtx, tenantID, bookingID, "Confirm")
		if err != nil {
			return err
		}

		if booking.Status != domain.StatusPending {
			s.logger.Warn("Confirm: booking id=%s has status=%s, expected pending", bookingID, booking.Status)
			if booking.IsTerminal() {
				return ErrAlreadyTerminal
			}
			return ErrInvalidState
		}

		// Перепроверяем инвариант непересечения под блокировкой
		if booking.StaffID != nil {
			conflict, err := s.bookingRepo.HasConflict(txCtx, tenantID, *booking.StaffID, booking.StartTime, booking.EndTime, &booking.ID)
			if err != nil {
				s.logger.Error("Confirm: conflict check failed for booking id=%s: %v", bookingID, err)
				return fmt.Errorf("%w: Confirm - conflict check: %v", ErrInternal, err)
			}
			if conflict {
				s.logger.Warn("Confirm: booking id=%s lost its slot", bookingID)
				return ErrSlotNotAvailable
			}
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, tenantID, bookingID, domain.StatusConfirmed); err != nil {
			s.logger.Error("Confirm: failed to update status for booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: Confirm - update status: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusConfirmed
		result = booking
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			s.logger.Warn("Confirm: serialization conflict for booking id=%s", bookingID)
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	s.logger.Info("Confirm: successfully confirmed booking id=%s", bookingID)
	s.publish(ctx, events.TypeBookingConfirmed, result)

	return models.FromDomainBooking(result), nil
}

// Cancel отменяет бронирование из pending или confirmed.
// Причина отмены дописывается в заметки, история не перезаписывается
func (s *Service) Cancel(ctx context.Context, tenantID, bookingID uuid.UUID, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s for tenant=%s", bookingID, tenantID)

	if req != nil && req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	var result *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getForUpdate(txCtx, tenantID, bookingID, "Cancel")
		if err != nil {
			return err
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrAlreadyTerminal
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, tenantID, bookingID, domain.StatusCancelled); err != nil {
			s.logger.Error("Cancel: failed to update status for booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - update status: %v", ErrInternal, err)
		}

		if req != nil && req.Reason != nil && *req.Reason != "" {
			note := fmt.Sprintf("Cancellation reason: %s", *req.Reason)
			if err := s.bookingRepo.AppendNote(txCtx, tenantID, bookingID, note); err != nil {
				s.logger.Error("Cancel: failed to append note for booking id=%s: %v", bookingID, err)
				return fmt.Errorf("%w: Cancel - append note: %v", ErrInternal, err)
			}
			if booking.Notes != nil {
				combined := *booking.Notes + "\n" + note
				booking.Notes = &combined
			} else {
				booking.Notes = &note
			}
		}

		booking.Status = domain.StatusCancelled
		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%s", bookingID)
	s.publish(ctx, events.TypeBookingCancelled, result)

	return models.FromDomainBooking(result), nil
}

// MarkNoShow помечает неявку: confirmed -> no_show
func (s *Service) MarkNoShow(ctx context.Context, tenantID, bookingID uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("MarkNoShow: marking booking id=%s for tenant=%s", bookingID, tenantID)

	var result *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getForUpdate(txCtx, tenantID, bookingID, "MarkNoShow")
		if err != nil {
			return err
		}

		if booking.Status != domain.StatusConfirmed {
			s.logger.Warn("MarkNoShow: booking id=%s has status=%s, expected confirmed", bookingID, booking.Status)
			if booking.IsTerminal() {
				return ErrAlreadyTerminal
			}
			return ErrInvalidState
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, tenantID, bookingID, domain.StatusNoShow); err != nil {
			s.logger.Error("MarkNoShow: failed to update status for booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: MarkNoShow - update status: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusNoShow
		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("MarkNoShow: successfully marked booking id=%s", bookingID)
	s.publish(ctx, events.TypeBookingNoShow, result)

	return models.FromDomainBooking(result), nil
}

// GetByTenantAndID получает бронирование тенанта по ID
func (s *Service) GetByTenantAndID(ctx context.Context, tenantID, bookingID uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetByTenantAndID: fetching booking id=%s for tenant=%s", bookingID, tenantID)

	booking, err := s.bookingRepo.GetByTenantAndID(ctx, tenantID, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByTenantAndID: booking id=%s not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByTenantAndID: repository error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetByTenantAndID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// ListByTenant получает бронирования тенанта с фильтрацией по сотруднику,
// периоду и статусу
func (s *Service) ListByTenant(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListByTenant: fetching bookings for tenant=%s", req.TenantID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListByTenant: invalid filter for tenant=%s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListByTenant(ctx, filter)
	if err != nil {
		s.logger.Error("ListByTenant: repository error for tenant=%s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: ListByTenant - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByTenant: successfully fetched %d bookings for tenant=%s", len(bookings), req.TenantID)
	return models.FromDomainBookingList(bookings), nil
}

// getForUpdate получает бронирование внутри транзакции с общим маппингом ошибок
func (s *Service) getForUpdate(txCtx context.Context, tenantID, bookingID uuid.UUID, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByTenantAndID(txCtx, tenantID, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, bookingID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// publish публикует событие жизненного цикла. Ошибка доставки логируется,
// но не откатывает уже зафиксированный переход
func (s *Service) publish(ctx context.Context, eventType string, b *domain.Booking) {
	ev := events.BookingEvent{
		Type:       eventType,
		TenantID:   b.TenantID,
		BookingID:  b.ID,
		ServiceID:  b.ServiceID,
		StaffID:    b.StaffID,
		ClientID:   b.ClientID,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Status:     string(b.Status),
		OccurredAt: s.timeProvider.Now(),
	}
	if err := s.publisher.PublishBookingEvent(ctx, ev); err != nil {
		s.logger.Error("publish: failed to publish %s for booking id=%s: %v", eventType, b.ID, err)
	}
}
