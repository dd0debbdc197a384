package reschedule_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coloradodev/cronos-booking/internal/domain"
	"github.com/coloradodev/cronos-booking/internal/infra/events"
	bookingRepo "github.com/coloradodev/cronos-booking/internal/infra/storage/booking"
	dirClient "github.com/coloradodev/cronos-booking/internal/integrations/directory"
)

type memBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*domain.Booking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: make(map[uuid.UUID]*domain.Booking)}
}

func (r *memBookingRepo) GetByTenantAndID(_ context.Context, tenantID, id uuid.UUID) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.TenantID != tenantID {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *memBookingRepo) HasConflict(_ context.Context, tenantID, staffID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.TenantID != tenantID || b.StaffID == nil || *b.StaffID != staffID {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if b.IsActive() && b.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memBookingRepo) UpdateTimes(_ context.Context, tenantID, id uuid.UUID, start, end time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.TenantID != tenantID {
		return bookingRepo.ErrBookingNotFound
	}
	b.StartTime = start
	b.EndTime = end
	return nil
}

func (r *memBookingRepo) put(b *domain.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[b.ID] = b
}

func (r *memBookingRepo) get(id uuid.UUID) *domain.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *r.bookings[id]
	return &copied
}

type fakeDirectory struct {
	service *dirClient.Service
}

func (f *fakeDirectory) GetService(_ context.Context, _, serviceID uuid.UUID) (*dirClient.Service, error) {
	if f.service == nil || f.service.ID != serviceID {
		return nil, dirClient.ErrServiceNotFound
	}
	return f.service, nil
}

type fakeCalendar struct {
	within bool
}

func (f *fakeCalendar) IsWithinWindow(context.Context, uuid.UUID, time.Time, time.Time) (bool, error) {
	return f.within, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type capturingPublisher struct {
	events []events.BookingEvent
}

func (p *capturingPublisher) PublishBookingEvent(_ context.Context, ev events.BookingEvent) error {
	p.events = append(p.events, ev)
	return nil
}

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

type fixture struct {
	tenantID  uuid.UUID
	serviceID uuid.UUID
	staffID   uuid.UUID
	day       time.Time
	repo      *memBookingRepo
	calendar  *fakeCalendar
	publisher *capturingPublisher
	uc        *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		tenantID:  uuid.New(),
		serviceID: uuid.New(),
		staffID:   uuid.New(),
		day:       time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		repo:      newMemBookingRepo(),
		calendar:  &fakeCalendar{within: true},
		publisher: &capturingPublisher{},
	}
	directory := &fakeDirectory{service: &dirClient.Service{
		ID:              f.serviceID,
		TenantID:        f.tenantID,
		DurationMinutes: 60,
		IsActive:        true,
	}}
	f.uc = NewUseCase(f.repo, directory, f.calendar, passthroughTxManager{}, f.publisher, testLogger{})
	return f
}

func (f *fixture) addBooking(startHour int, status domain.BookingStatus) *domain.Booking {
	staffID := f.staffID
	b := &domain.Booking{
		ID:        uuid.New(),
		TenantID:  f.tenantID,
		ServiceID: f.serviceID,
		StaffID:   &staffID,
		StartTime: f.day.Add(time.Duration(startHour) * time.Hour),
		EndTime:   f.day.Add(time.Duration(startHour+1) * time.Hour),
		Status:    status,
	}
	f.repo.put(b)
	return b
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()
	booking := f.addBooking(10, domain.StatusConfirmed)
	newStart := f.day.Add(14 * time.Hour)

	resp, err := f.uc.Execute(context.Background(), &Request{
		TenantID:     f.tenantID,
		BookingID:    booking.ID,
		NewStartTime: newStart,
	})
	require.NoError(t, err)

	assert.Equal(t, newStart, resp.StartTime)
	assert.Equal(t, newStart.Add(time.Hour), resp.EndTime)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	stored := f.repo.get(booking.ID)
	assert.Equal(t, newStart, stored.StartTime)
	assert.Equal(t, domain.StatusConfirmed, stored.Status)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.TypeBookingRescheduled, f.publisher.events[0].Type)
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{
		TenantID:     f.tenantID,
		BookingID:    uuid.New(),
		NewStartTime: f.day.Add(14 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_WrongTenant(t *testing.T) {
	f := newFixture()
	booking := f.addBooking(10, domain.StatusPending)

	_, err := f.uc.Execute(context.Background(), &Request{
		TenantID:     uuid.New(),
		BookingID:    booking.ID,
		NewStartTime: f.day.Add(14 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_TerminalBooking(t *testing.T) {
	f := newFixture()

	for _, status := range []domain.BookingStatus{domain.StatusCancelled, domain.StatusNoShow} {
		booking := f.addBooking(10, status)

		_, err := f.uc.Execute(context.Background(), &Request{
			TenantID:     f.tenantID,
			BookingID:    booking.ID,
			NewStartTime: f.day.Add(14 * time.Hour),
		})
		assert.ErrorIs(t, err, ErrAlreadyTerminal)
	}
}

func TestExecute_ConflictLeavesBookingUnchanged(t *testing.T) {
	f := newFixture()
	booking := f.addBooking(10, domain.StatusConfirmed)
	f.addBooking(14, domain.StatusPending)

	_, err := f.uc.Execute(context.Background(), &Request{
		TenantID:     f.tenantID,
		BookingID:    booking.ID,
		NewStartTime: f.day.Add(14 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Бронирование осталось на прежнем месте
	stored := f.repo.get(booking.ID)
	assert.Equal(t, booking.StartTime, stored.StartTime)
	assert.Equal(t, booking.EndTime, stored.EndTime)
	assert.Empty(t, f.publisher.events)
}

func TestExecute_ExcludesSelfFromConflictCheck(t *testing.T) {
	f := newFixture()
	booking := f.addBooking(10, domain.StatusConfirmed)

	// Сдвиг на полчаса пересекается со старым интервалом самого
	// бронирования; оно исключается из проверки конфликтов
	newStart := f.day.Add(10*time.Hour + 30*time.Minute)
	resp, err := f.uc.Execute(context.Background(), &Request{
		TenantID:     f.tenantID,
		BookingID:    booking.ID,
		NewStartTime: newStart,
	})
	require.NoError(t, err)
	assert.Equal(t, newStart, resp.StartTime)
}

func TestExecute_OutsideBusinessHours(t *testing.T) {
	f := newFixture()
	booking := f.addBooking(10, domain.StatusPending)
	f.calendar.within = false

	_, err := f.uc.Execute(context.Background(), &Request{
		TenantID:     f.tenantID,
		BookingID:    booking.ID,
		NewStartTime: f.day.Add(20 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrOutsideBusinessHours)

	stored := f.repo.get(booking.ID)
	assert.Equal(t, booking.StartTime, stored.StartTime)
}

func TestExecute_ValidationError(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{
		TenantID:  f.tenantID,
		BookingID: uuid.Nil,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
