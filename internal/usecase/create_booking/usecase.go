// Package create_booking use case создания бронирования.
// Критическая секция (tenantId, staffId) реализована сериализуемой
// транзакцией: проверка конфликтов и вставка выполняются атомарно,
// проигравшая гонку запись получает retryable ошибку
package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/coloradodev/cronos-booking/internal/domain"
	"github.com/coloradodev/cronos-booking/internal/infra/events"
	policyRepo "github.com/coloradodev/cronos-booking/internal/infra/storage/policy"
	dirClient "github.com/coloradodev/cronos-booking/internal/integrations/directory"
	"github.com/coloradodev/cronos-booking/internal/service/availability"
	"github.com/coloradodev/cronos-booking/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	policyRepo   PolicyRepository
	dirClient    DirectoryClient
	engine       AvailabilityEngine
	calendar     Calendar
	txManager    TransactionManager
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	policyRepo PolicyRepository,
	dirClient DirectoryClient,
	engine AvailabilityEngine,
	calendar Calendar,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		policyRepo:   policyRepo,
		dirClient:    dirClient,
		engine:       engine,
		calendar:     calendar,
		txManager:    txManager,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: tenant=%s, service=%s, start=%s",
		req.TenantID, req.ServiceID, req.StartTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу из справочника
	service, err := uc.dirClient.GetService(ctx, req.TenantID, req.ServiceID)
	if err != nil {
		if errors.Is(err, dirClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Warn("CreateBooking: service id=%s is not active", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// 4. Вычисляем конец слота из длительности услуги
	endTime := req.StartTime.Add(time.Duration(service.DurationMinutes) * time.Minute)

	// 5. Получаем политику бронирования тенанта
	policy, err := uc.policyRepo.GetByTenant(ctx, req.TenantID)
	if err != nil {
		if !errors.Is(err, policyRepo.ErrPolicyNotFound) {
			uc.logger.Error("CreateBooking: failed to get policy for tenant=%s: %v", req.TenantID, err)
			return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
		}
		policy = domain.DefaultBookingPolicy(req.TenantID)
		uc.logger.Info("CreateBooking: using default policy for tenant=%s", req.TenantID)
	}

	// 6. Валидация начала слота против текущего времени и политики
	if err := validateStartTime(req.StartTime, now, policy); err != nil {
		uc.logger.Warn("CreateBooking: start time validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 7. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Проверяем, что слот внутри рабочих часов
		within, err := uc.calendar.IsWithinWindow(txCtx, req.TenantID, req.StartTime, endTime)
		if err != nil {
			uc.logger.Error("CreateBooking: calendar error for tenant=%s: %v", req.TenantID, err)
			return fmt.Errorf("%w: calendar error: %v", ErrInternal, err)
		}
		if !within {
			uc.logger.Warn("CreateBooking: slot outside business hours, tenant=%s start=%s",
				req.TenantID, req.StartTime.Format(time.RFC3339))
			return ErrOutsideBusinessHours
		}

		// 7.2. Определяем сотрудника: закреплённого проверяем на пригодность
		// и конфликты, иначе движок выбирает первого свободного
		staffID, err := uc.resolveStaff(txCtx, req, endTime)
		if err != nil {
			return err
		}

		// 7.3. Создаем бронирование в статусе pending
		booking := &domain.Booking{
			ID:        uuid.New(),
			TenantID:  req.TenantID,
			ServiceID: req.ServiceID,
			StaffID:   staffID,
			ClientID:  req.ClientID,
			StartTime: req.StartTime,
			EndTime:   endTime,
			Status:    domain.StatusPending,
			Notes:     req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Проигрыш в гонке сериализации эквивалентен занятому слоту
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CreateBooking: serialization conflict for tenant=%s, slot treated as taken", req.TenantID)
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	uc.publishCreated(ctx, result)

	return fromDomainBooking(result), nil
}

// resolveStaff определяет сотрудника для бронирования внутри транзакции
func (uc *UseCase) resolveStaff(txCtx context.Context, req *Request, endTime time.Time) (*uuid.UUID, error) {
	if req.StaffID != nil {
		if _, err := uc.engine.EligibleStaffMember(txCtx, req.TenantID, req.ServiceID, *req.StaffID); err != nil {
			switch {
			case errors.Is(err, availability.ErrStaffNotFound):
				uc.logger.Warn("CreateBooking: staff id=%s not found", *req.StaffID)
				return nil, ErrStaffNotFound
			case errors.Is(err, availability.ErrStaffNotEligible):
				uc.logger.Warn("CreateBooking: staff id=%s not eligible for service=%s", *req.StaffID, req.ServiceID)
				return nil, ErrStaffNotEligible
			default:
				uc.logger.Error("CreateBooking: staff eligibility check failed: %v", err)
				return nil, fmt.Errorf("%w: staff eligibility check failed: %v", ErrInternal, err)
			}
		}

		conflict, err := uc.bookingRepo.HasConflict(txCtx, req.TenantID, *req.StaffID, req.StartTime, endTime, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: conflict check failed: %v", err)
			return nil, fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}
		if conflict {
			uc.logger.Warn("CreateBooking: slot taken for staff=%s at %s", *req.StaffID, req.StartTime.Format(time.RFC3339))
			return nil, ErrSlotNotAvailable
		}

		return req.StaffID, nil
	}

	member, err := uc.engine.PickStaffFor(txCtx, req.TenantID, req.ServiceID, req.StartTime, endTime)
	if err != nil {
		if errors.Is(err, availability.ErrNoEligibleStaff) {
			uc.logger.Warn("CreateBooking: no free staff for tenant=%s at %s", req.TenantID, req.StartTime.Format(time.RFC3339))
			return nil, ErrSlotNotAvailable
		}
		uc.logger.Error("CreateBooking: staff selection failed: %v", err)
		return nil, fmt.Errorf("%w: staff selection failed: %v", ErrInternal, err)
	}

	staffID := member.ID
	return &staffID, nil
}

// publishCreated публикует событие о созданном бронировании.
// Ошибка доставки логируется, но не откатывает бронирование
func (uc *UseCase) publishCreated(ctx context.Context, b *domain.Booking) {
	ev := events.BookingEvent{
		Type:       events.TypeBookingCreated,
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
		uc.logger.Error("CreateBooking: failed to publish event for booking id=%s: %v", b.ID, err)
	}
}
