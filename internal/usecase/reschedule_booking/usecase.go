// Package reschedule_booking use case переноса бронирования.
// Сотрудник при переносе не переназначается, поэтому критическая секция
// берётся по тому же (tenantId, staffId), что и при создании
package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coloradodev/cronos-booking/internal/domain"
	"github.com/coloradodev/cronos-booking/internal/infra/events"
	bookingRepo "github.com/coloradodev/cronos-booking/internal/infra/storage/booking"
	dirClient "github.com/coloradodev/cronos-booking/internal/integrations/directory"
	"github.com/coloradodev/cronos-booking/pkg/txmanager"
)

// UseCase use case для переноса бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	dirClient    DirectoryClient
	calendar     Calendar
	txManager    TransactionManager
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	dirClient DirectoryClient,
	calendar Calendar,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		dirClient:    dirClient,
		calendar:     calendar,
		txManager:    txManager,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case переноса бронирования.
// При любой ошибке бронирование остаётся без изменений
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: tenant=%s, booking=%s, newStart=%s",
		req.TenantID, req.BookingID, req.NewStartTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 2. Выполняем перенос в сериализуемой транзакции: чтение строки
	// берёт блокировку, проверка конфликта и обновление атомарны
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем бронирование с блокировкой
		booking, err := uc.bookingRepo.GetByTenantAndID(txCtx, req.TenantID, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RescheduleBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: repository error for booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: repository error: %v", ErrInternal, err)
		}

		// 2.2. Терминальные бронирования не переносятся
		if booking.IsTerminal() {
			uc.logger.Warn("RescheduleBooking: booking id=%s is terminal, status=%s", req.BookingID, booking.Status)
			return ErrAlreadyTerminal
		}

		// 2.3. Пересчитываем конец слота из длительности услуги
		service, err := uc.dirClient.GetService(txCtx, req.TenantID, booking.ServiceID)
		if err != nil {
			if errors.Is(err, dirClient.ErrServiceNotFound) {
				uc.logger.Warn("RescheduleBooking: service id=%s not found", booking.ServiceID)
				return ErrServiceNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get service id=%s: %v", booking.ServiceID, err)
			return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}

		newEnd := req.NewStartTime.Add(time.Duration(service.DurationMinutes) * time.Minute)

		// 2.4. Проверяем, что новый слот внутри рабочих часов
		within, err := uc.calendar.IsWithinWindow(txCtx, req.TenantID, req.NewStartTime, newEnd)
		if err != nil {
			uc.logger.Error("RescheduleBooking: calendar error for tenant=%s: %v", req.TenantID, err)
			return fmt.Errorf("%w: calendar error: %v", ErrInternal, err)
		}
		if !within {
			uc.logger.Warn("RescheduleBooking: slot outside business hours, tenant=%s start=%s",
				req.TenantID, req.NewStartTime.Format(time.RFC3339))
			return ErrOutsideBusinessHours
		}

		// 2.5. Проверяем конфликты, исключая само переносимое бронирование
		if booking.StaffID != nil {
			conflict, err := uc.bookingRepo.HasConflict(txCtx, req.TenantID, *booking.StaffID, req.NewStartTime, newEnd, &booking.ID)
			if err != nil {
				uc.logger.Error("RescheduleBooking: conflict check failed: %v", err)
				return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
			}
			if conflict {
				uc.logger.Warn("RescheduleBooking: slot taken for staff=%s at %s",
					*booking.StaffID, req.NewStartTime.Format(time.RFC3339))
				return ErrSlotNotAvailable
			}
		}

		// 2.6. Обновляем интервал на месте, статус не меняется
		if err := uc.bookingRepo.UpdateTimes(txCtx, req.TenantID, booking.ID, req.NewStartTime, newEnd); err != nil {
			uc.logger.Error("RescheduleBooking: failed to update times for booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update times: %v", ErrInternal, err)
		}

		booking.StartTime = req.NewStartTime
		booking.EndTime = newEnd
		result = booking
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("RescheduleBooking: serialization conflict for tenant=%s, slot treated as taken", req.TenantID)
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: successfully rescheduled booking id=%s", result.ID)

	uc.publishRescheduled(ctx, result)

	return fromDomainBooking(result), nil
}

// publishRescheduled публикует событие о переносе бронирования.
// Ошибка доставки логируется, но не откатывает перенос
func (uc *UseCase) publishRescheduled(ctx context.Context, b *domain.Booking) {
	ev := events.BookingEvent{
		Type:       events.TypeBookingRescheduled,
		TenantID:   b.TenantID,
		BookingID:  b.ID,
		ServiceID:  b.ServiceID,
		StaffID:    b.StaffID,
		ClientID:   b.ClientID,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Status:     string(b.Status),
		OccurredAt: uc.timeProvider.Now(),
	}
	if err := uc.publisher.PublishBookingEvent(ctx, ev); err != nil {
		uc.logger.Error("RescheduleBooking: failed to publish event for booking id=%s: %v", b.ID, err)
	}
}
