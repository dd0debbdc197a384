package bookings

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
	"github.com/coloradodev/cronos-booking/internal/service/bookings/models"
	"github.com/coloradodev/cronos-booking/pkg/ptr"
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

func (r *memBookingRepo) UpdateStatus(_ context.Context, tenantID, id uuid.UUID, status domain.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.TenantID != tenantID {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (r *memBookingRepo) AppendNote(_ context.Context, tenantID, id uuid.UUID, note string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.TenantID != tenantID {
		return bookingRepo.ErrBookingNotFound
	}
	if b.Notes != nil {
		combined := *b.Notes + "\n" + note
		b.Notes = &combined
	} else {
		b.Notes = &note
	}
	return nil
}

func (r *memBookingRepo) ListByTenant(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.TenantID != filter.TenantID {
			continue
		}
		if !filter.IncludeInactive && b.IsTerminal() {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if filter.StaffID != nil && (b.StaffID == nil || *b.StaffID != *filter.StaffID) {
			continue
		}
		copied := *b
		result = append(result, &copied)
	}
	return result, nil
}

func (r *memBookingRepo) put(b *domain.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[b.ID] = b
}

func (r *memBookingRepo) status(id uuid.UUID) domain.BookingStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bookings[id].Status
}

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

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
	staffID   uuid.UUID
	day       time.Time
	repo      *memBookingRepo
	publisher *capturingPublisher
	svc       *Service
}

func newFixture() *fixture {
	f := &fixture{
		tenantID:  uuid.New(),
		staffID:   uuid.New(),
		day:       time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		repo:      newMemBookingRepo(),
		publisher: &capturingPublisher{},
	}
	f.svc = NewService(f.repo, passthroughTxManager{}, f.publisher, testLogger{})
	return f
}

func (f *fixture) addBooking(startHour int, status domain.BookingStatus) *domain.Booking {
	staffID := f.staffID
	b := &domain.Booking{
		ID:        uuid.New(),
		TenantID:  f.tenantID,
		ServiceID: uuid.New(),
		StaffID:   &staffID,
		StartTime: f.day.Add(time.Duration(startHour) * time.Hour),
		EndTime:   f.day.Add(time.Duration(startHour+1) * time.Hour),
		Status:    status,
	}
	f.repo.put(b)
	return b
}

func TestConfirm_Pending(t *testing.T) {
	f := newFixture()
	booking := f.addBooking(10, domain.StatusPending)

	resp, err := f.svc.Confirm(context.Background(), f.tenantID, booking.ID)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, domain.StatusConfirmed, f.repo.status(booking.ID))

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.TypeBookingConfirmed, f.publisher.events[0].Type)
}

func TestConfirm_NotPending(t *testing.T) {
	f := newFixture()

	confirmed := f.addBooking(10, domain.StatusConfirmed)
	_, err := f.svc.Confirm(context.Background(), f.tenantID, confirmed.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	cancelled := f.addBooking(12, domain.StatusCancelled)
	_, err = f.svc.Confirm(context.Background(), f.tenantID, cancelled.ID)
	assert.ErrorIs(t, err, ErrAlreadyTerminal)
}

func TestConfirm_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Confirm(context.Background(), f.tenantID, uuid.New())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_FromPendingAndConfirmed(t *testing.T) {
	f := newFixture()

	for i, status := range []domain.BookingStatus{domain.StatusPending, domain.StatusConfirmed} {
		booking := f.addBooking(9+2*i, status)

		resp, err := f.svc.Cancel(context.Background(), f.tenantID, booking.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	}
}

func TestCancel_AppendsReason(t *testing.T) {
	f := newFixture()
	existing := "Client asked for morning"
	booking := f.addBooking(10, domain.StatusPending)
	booking.Notes = &existing
	f.repo.put(booking)

	resp, err := f.svc.Cancel(context.Background(), f.tenantID, booking.ID, &models.CancelBookingRequest{
		Reason: ptr.Ptr("client sick"),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Notes)
	assert.Equal(t, "Client asked for morning\nCancellation reason: client sick", *resp.Notes)
}

func TestCancel_Terminal(t *testing.T) {
	f := newFixture()

	for _, status := range []domain.BookingStatus{domain.StatusCancelled, domain.StatusNoShow} {
		booking := f.addBooking(10, status)

		_, err := f.svc.Cancel(context.Background(), f.tenantID, booking.ID, nil)
		assert.ErrorIs(t, err, ErrAlreadyTerminal)
	}
	assert.Empty(t, f.publisher.events)
}

func TestMarkNoShow_Confirmed(t *testing.T) {
	f := newFixture()
	booking := f.addBooking(10, domain.StatusConfirmed)

	resp, err := f.svc.MarkNoShow(context.Background(), f.tenantID, booking.ID)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusNoShow), resp.Status)

	// Терминальный статус: дальнейшие переходы запрещены
	_, err = f.svc.Cancel(context.Background(), f.tenantID, booking.ID, nil)
	assert.ErrorIs(t, err, ErrAlreadyTerminal)
}

func TestMarkNoShow_Pending(t *testing.T) {
	f := newFixture()
	booking := f.addBooking(10, domain.StatusPending)

	_, err := f.svc.MarkNoShow(context.Background(), f.tenantID, booking.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, domain.StatusPending, f.repo.status(booking.ID))
}

func TestGetByTenantAndID_WrongTenant(t *testing.T) {
	f := newFixture()
	booking := f.addBooking(10, domain.StatusPending)

	_, err := f.svc.GetByTenantAndID(context.Background(), uuid.New(), booking.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListByTenant_ExcludesTerminalByDefault(t *testing.T) {
	f := newFixture()
	f.addBooking(9, domain.StatusPending)
	f.addBooking(11, domain.StatusConfirmed)
	f.addBooking(13, domain.StatusCancelled)

	resp, err := f.svc.ListByTenant(context.Background(), &models.ListBookingsRequest{TenantID: f.tenantID})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	all, err := f.svc.ListByTenant(context.Background(), &models.ListBookingsRequest{
		TenantID:        f.tenantID,
		IncludeInactive: true,
	})
	require.NoError(t, err)
	assert.Len(t, all.Bookings, 3)
}

func TestListByTenant_InvalidStatus(t *testing.T) {
	f := newFixture()

	_, err := f.svc.ListByTenant(context.Background(), &models.ListBookingsRequest{
		TenantID: f.tenantID,
		Status:   ptr.Ptr("sleeping"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
