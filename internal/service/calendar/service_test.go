package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coloradodev/cronos-booking/internal/domain"
	hoursRepo "github.com/coloradodev/cronos-booking/internal/infra/storage/hours"
	"github.com/coloradodev/cronos-booking/pkg/types"
)

type fakeHoursRepo struct {
	hours map[time.Weekday]*domain.BusinessHours
}

func (f *fakeHoursRepo) GetByTenantAndDay(_ context.Context, _ uuid.UUID, day time.Weekday) (*domain.BusinessHours, error) {
	bh, ok := f.hours[day]
	if !ok {
		return nil, hoursRepo.ErrHoursNotFound
	}
	return bh, nil
}

func (f *fakeHoursRepo) ListByTenant(_ context.Context, _ uuid.UUID) ([]*domain.BusinessHours, error) {
	result := make([]*domain.BusinessHours, 0, len(f.hours))
	for _, bh := range f.hours {
		result = append(result, bh)
	}
	return result, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func mustTimeString(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func newTestService(t *testing.T, tenantID uuid.UUID) *Service {
	t.Helper()
	repo := &fakeHoursRepo{hours: map[time.Weekday]*domain.BusinessHours{
		time.Monday: {
			TenantID:  tenantID,
			DayOfWeek: time.Monday,
			OpenTime:  mustTimeString(t, "09:00"),
			CloseTime: mustTimeString(t, "17:00"),
			IsOpen:    true,
		},
		time.Sunday: {
			TenantID:  tenantID,
			DayOfWeek: time.Sunday,
			OpenTime:  mustTimeString(t, "09:00"),
			CloseTime: mustTimeString(t, "17:00"),
			IsOpen:    false,
		},
	}}
	return NewService(repo, noopLogger{})
}

func TestWindowFor_OpenDay(t *testing.T) {
	tenantID := uuid.New()
	svc := newTestService(t, tenantID)

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	window, err := svc.WindowFor(context.Background(), tenantID, monday)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC), window.Open)
	assert.Equal(t, time.Date(2026, 9, 7, 17, 0, 0, 0, time.UTC), window.Close)
}

func TestWindowFor_ClosedDay(t *testing.T) {
	tenantID := uuid.New()
	svc := newTestService(t, tenantID)

	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	_, err := svc.WindowFor(context.Background(), tenantID, sunday)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestWindowFor_UnconfiguredDay(t *testing.T) {
	tenantID := uuid.New()
	svc := newTestService(t, tenantID)

	tuesday := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
	_, err := svc.WindowFor(context.Background(), tenantID, tuesday)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestIsWithinWindow(t *testing.T) {
	tenantID := uuid.New()
	svc := newTestService(t, tenantID)
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{
			name:  "fully inside window",
			start: monday.Add(10 * time.Hour),
			end:   monday.Add(11 * time.Hour),
			want:  true,
		},
		{
			name:  "exactly the window",
			start: monday.Add(9 * time.Hour),
			end:   monday.Add(17 * time.Hour),
			want:  true,
		},
		{
			name:  "ends at close",
			start: monday.Add(16 * time.Hour),
			end:   monday.Add(17 * time.Hour),
			want:  true,
		},
		{
			name:  "starts before open",
			start: monday.Add(8*time.Hour + 30*time.Minute),
			end:   monday.Add(9*time.Hour + 30*time.Minute),
			want:  false,
		},
		{
			name:  "ends after close",
			start: monday.Add(16*time.Hour + 30*time.Minute),
			end:   monday.Add(17*time.Hour + 30*time.Minute),
			want:  false,
		},
		{
			name:  "crosses midnight",
			start: monday.Add(23 * time.Hour),
			end:   monday.Add(25 * time.Hour),
			want:  false,
		},
		{
			name:  "closed day",
			start: monday.AddDate(0, 0, -1).Add(10 * time.Hour),
			end:   monday.AddDate(0, 0, -1).Add(11 * time.Hour),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.IsWithinWindow(context.Background(), tenantID, tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
