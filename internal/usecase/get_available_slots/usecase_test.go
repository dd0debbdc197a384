package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coloradodev/cronos-booking/internal/domain"
	"github.com/coloradodev/cronos-booking/internal/service/availability"
)

type fakeEngine struct {
	slots []domain.TimeSlot
	err   error
}

func (f *fakeEngine) ListAvailableSlots(context.Context, uuid.UUID, uuid.UUID, time.Time, *uuid.UUID) ([]domain.TimeSlot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.slots, nil
}

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

func validRequest() *Request {
	return &Request{
		TenantID:  uuid.New(),
		ServiceID: uuid.New(),
		Date:      time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
	}
}

func TestExecute_Success(t *testing.T) {
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	engine := &fakeEngine{slots: []domain.TimeSlot{
		{StartTime: day.Add(9 * time.Hour), EndTime: day.Add(10 * time.Hour)},
		{StartTime: day.Add(11 * time.Hour), EndTime: day.Add(12 * time.Hour)},
	}}
	uc := NewUseCase(engine, testLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	assert.Equal(t, day.Add(9*time.Hour), resp.Slots[0].StartTime)
	assert.Equal(t, day.Add(10*time.Hour), resp.Slots[0].EndTime)
}

func TestExecute_EmptyDay(t *testing.T) {
	uc := NewUseCase(&fakeEngine{slots: []domain.TimeSlot{}}, testLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestExecute_EngineErrorsMapped(t *testing.T) {
	tests := []struct {
		name      string
		engineErr error
		wantErr   error
	}{
		{"service not found", availability.ErrServiceNotFound, ErrServiceNotFound},
		{"service inactive", availability.ErrServiceInactive, ErrServiceInactive},
		{"staff not found", availability.ErrStaffNotFound, ErrStaffNotFound},
		{"no staff for service", availability.ErrNoStaffForService, ErrStaffNotFound},
		{"staff not eligible", availability.ErrStaffNotEligible, ErrStaffNotEligible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(&fakeEngine{err: tt.engineErr}, testLogger{})
			_, err := uc.Execute(context.Background(), validRequest())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_ValidationError(t *testing.T) {
	uc := NewUseCase(&fakeEngine{}, testLogger{})

	req := validRequest()
	req.Date = time.Time{}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
