package create_booking

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
	policyRepo "github.com/coloradodev/cronos-booking/internal/infra/storage/policy"
	dirClient "github.com/coloradodev/cronos-booking/internal/integrations/directory"
	"github.com/coloradodev/cronos-booking/internal/service/availability"
	"github.com/coloradodev/cronos-booking/pkg/txmanager"
)

// memBookingRepo потокобезопасный in-memory репозиторий для тестов
type memBookingRepo struct {
	mu       sync.Mutex
	bookings []*domain.Booking
}

func (r *memBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *b
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.bookings = append(r.bookings, &stored)
	return &stored, nil
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

func (r *memBookingRepo) active() []*domain.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.IsActive() {
			result = append(result, b)
		}
	}
	return result
}

// mutexTxManager эмулирует сериализуемые транзакции глобальным мьютексом:
// проверка конфликта и вставка выполняются атомарно
type mutexTxManager struct {
	mu sync.Mutex
}

func (m *mutexTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type failingTxManager struct{}

func (failingTxManager) DoSerializable(context.Context, func(ctx context.Context) error) error {
	return txmanager.ErrSerialization
}

type fakePolicyRepo struct {
	policy *domain.BookingPolicy
}

func (f *fakePolicyRepo) GetByTenant(_ context.Context, _ uuid.UUID) (*domain.BookingPolicy, error) {
	if f.policy == nil {
		return nil, policyRepo.ErrPolicyNotFound
	}
	return f.policy, nil
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

type fakeEngine struct {
	staff       *dirClient.Staff
	eligibleErr error
	pickErr     error
}

func (f *fakeEngine) PickStaffFor(context.Context, uuid.UUID, uuid.UUID, time.Time, time.Time) (*dirClient.Staff, error) {
	if f.pickErr != nil {
		return nil, f.pickErr
	}
	return f.staff, nil
}

func (f *fakeEngine) EligibleStaffMember(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) (*dirClient.Staff, error) {
	if f.eligibleErr != nil {
		return nil, f.eligibleErr
	}
	return f.staff, nil
}

type fakeCalendar struct {
	within bool
}

func (f *fakeCalendar) IsWithinWindow(context.Context, uuid.UUID, time.Time, time.Time) (bool, error) {
	return f.within, nil
}

type capturingPublisher struct {
	mu     sync.Mutex
	events []events.BookingEvent
}

func (p *capturingPublisher) PublishBookingEvent(_ context.Context, ev events.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

type fixture struct {
	tenantID  uuid.UUID
	serviceID uuid.UUID
	staffID   uuid.UUID
	now       time.Time
	repo      *memBookingRepo
	policy    *fakePolicyRepo
	directory *fakeDirectory
	engine    *fakeEngine
	calendar  *fakeCalendar
	publisher *capturingPublisher
	uc        *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		tenantID:  uuid.New(),
		serviceID: uuid.New(),
		staffID:   uuid.New(),
		now:       time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC),
		repo:      &memBookingRepo{},
		policy:    &fakePolicyRepo{},
		publisher: &capturingPublisher{},
		calendar:  &fakeCalendar{within: true},
	}
	f.directory = &fakeDirectory{service: &dirClient.Service{
		ID:              f.serviceID,
		TenantID:        f.tenantID,
		Name:            "Haircut",
		DurationMinutes: 60,
		IsActive:        true,
	}}
	f.engine = &fakeEngine{staff: &dirClient.Staff{
		ID:         f.staffID,
		TenantID:   f.tenantID,
		IsActive:   true,
		ServiceIDs: []uuid.UUID{f.serviceID},
	}}
	f.uc = NewUseCase(f.repo, f.policy, f.directory, f.engine, f.calendar, &mutexTxManager{}, f.publisher, testLogger{})
	f.uc.timeProvider = fixedTime{now: f.now}
	return f
}

func (f *fixture) request(start time.Time) *Request {
	staffID := f.staffID
	return &Request{
		TenantID:  f.tenantID,
		ServiceID: f.serviceID,
		StaffID:   &staffID,
		StartTime: start,
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()
	start := f.now.Add(2 * time.Hour)

	resp, err := f.uc.Execute(context.Background(), f.request(start))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, start, resp.StartTime)
	assert.Equal(t, start.Add(time.Hour), resp.EndTime)
	require.NotNil(t, resp.StaffID)
	assert.Equal(t, f.staffID, *resp.StaffID)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.TypeBookingCreated, f.publisher.events[0].Type)
}

func TestExecute_AutoAssignStaff(t *testing.T) {
	f := newFixture()
	req := f.request(f.now.Add(2 * time.Hour))
	req.StaffID = nil

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.StaffID)
	assert.Equal(t, f.staffID, *resp.StaffID)
}

func TestExecute_NoFreeStaff(t *testing.T) {
	f := newFixture()
	f.engine.pickErr = availability.ErrNoEligibleStaff
	req := f.request(f.now.Add(2 * time.Hour))
	req.StaffID = nil

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_ValidationError(t *testing.T) {
	f := newFixture()
	req := f.request(f.now.Add(2 * time.Hour))
	req.TenantID = uuid.Nil

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	f := newFixture()
	req := f.request(f.now.Add(2 * time.Hour))
	req.ServiceID = uuid.New()

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ServiceInactive(t *testing.T) {
	f := newFixture()
	f.directory.service.IsActive = false

	_, err := f.uc.Execute(context.Background(), f.request(f.now.Add(2*time.Hour)))
	assert.ErrorIs(t, err, ErrServiceInactive)
}

func TestExecute_StaffNotEligible(t *testing.T) {
	f := newFixture()
	f.engine.eligibleErr = availability.ErrStaffNotEligible

	_, err := f.uc.Execute(context.Background(), f.request(f.now.Add(2*time.Hour)))
	assert.ErrorIs(t, err, ErrStaffNotEligible)
}

func TestExecute_PastStartTime(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), f.request(f.now.Add(-time.Hour)))
	assert.ErrorIs(t, err, ErrPastStartTime)
}

func TestExecute_AdvanceBookingLimit(t *testing.T) {
	f := newFixture()
	f.policy.policy = &domain.BookingPolicy{TenantID: f.tenantID, AdvanceBookingDays: 7}

	_, err := f.uc.Execute(context.Background(), f.request(f.now.AddDate(0, 0, 10)))
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_MinBookingNotice(t *testing.T) {
	f := newFixture()
	f.policy.policy = &domain.BookingPolicy{TenantID: f.tenantID, MinBookingNoticeMinutes: 120}

	_, err := f.uc.Execute(context.Background(), f.request(f.now.Add(30*time.Minute)))
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_OutsideBusinessHours(t *testing.T) {
	f := newFixture()
	f.calendar.within = false

	_, err := f.uc.Execute(context.Background(), f.request(f.now.Add(2*time.Hour)))
	assert.ErrorIs(t, err, ErrOutsideBusinessHours)
}

func TestExecute_SlotTaken(t *testing.T) {
	f := newFixture()
	start := f.now.Add(2 * time.Hour)

	_, err := f.uc.Execute(context.Background(), f.request(start))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), f.request(start))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_AdjacentSlotsDoNotConflict(t *testing.T) {
	f := newFixture()
	start := f.now.Add(2 * time.Hour)

	_, err := f.uc.Execute(context.Background(), f.request(start))
	require.NoError(t, err)

	// Интервалы полуоткрытые: слот, начинающийся ровно в конец
	// предыдущего, не конфликтует
	_, err = f.uc.Execute(context.Background(), f.request(start.Add(time.Hour)))
	require.NoError(t, err)
}

func TestExecute_SerializationConflictMapped(t *testing.T) {
	f := newFixture()
	f.uc = NewUseCase(f.repo, f.policy, f.directory, f.engine, f.calendar, failingTxManager{}, f.publisher, testLogger{})
	f.uc.timeProvider = fixedTime{now: f.now}

	_, err := f.uc.Execute(context.Background(), f.request(f.now.Add(2*time.Hour)))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_ConcurrentSameSlot(t *testing.T) {
	f := newFixture()
	start := f.now.Add(2 * time.Hour)

	const attempts = 16
	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), f.request(start))
			results[i] = err
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, ErrSlotNotAvailable)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Len(t, f.repo.active(), 1)
}
