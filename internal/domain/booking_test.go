package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_Transitions(t *testing.T) {
	tests := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusNoShow, false},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
		{StatusNoShow, StatusCancelled, false},
		{StatusNoShow, StatusConfirmed, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestBookingStatus_Terminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusNoShow.IsTerminal())
}

func TestBookingStatus_IsValid(t *testing.T) {
	for _, s := range []BookingStatus{StatusPending, StatusConfirmed, StatusCancelled, StatusNoShow} {
		assert.True(t, s.IsValid())
	}
	assert.False(t, BookingStatus("completed").IsValid())
	assert.False(t, BookingStatus("").IsValid())
}

func TestBooking_IsActive(t *testing.T) {
	b := &Booking{Status: StatusPending}
	assert.True(t, b.IsActive())

	b.Status = StatusConfirmed
	assert.True(t, b.IsActive())

	b.Status = StatusCancelled
	assert.False(t, b.IsActive())

	b.Status = StatusNoShow
	assert.False(t, b.IsActive())
}

func TestBooking_Overlaps(t *testing.T) {
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	b := &Booking{
		StartTime: day.Add(10 * time.Hour),
		EndTime:   day.Add(11 * time.Hour),
	}

	// Частичное пересечение с обеих сторон
	assert.True(t, b.Overlaps(day.Add(10*time.Hour+30*time.Minute), day.Add(11*time.Hour+30*time.Minute)))
	assert.True(t, b.Overlaps(day.Add(9*time.Hour+30*time.Minute), day.Add(10*time.Hour+30*time.Minute)))

	// Вложенность
	assert.True(t, b.Overlaps(day.Add(9*time.Hour), day.Add(12*time.Hour)))
	assert.True(t, b.Overlaps(day.Add(10*time.Hour+15*time.Minute), day.Add(10*time.Hour+45*time.Minute)))

	// Полуоткрытые интервалы: касание границами не пересечение
	assert.False(t, b.Overlaps(day.Add(9*time.Hour), day.Add(10*time.Hour)))
	assert.False(t, b.Overlaps(day.Add(11*time.Hour), day.Add(12*time.Hour)))
}

func TestDayWindow_Contains(t *testing.T) {
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	w := DayWindow{Open: day.Add(9 * time.Hour), Close: day.Add(17 * time.Hour)}

	assert.True(t, w.Contains(day.Add(9*time.Hour), day.Add(10*time.Hour)))
	assert.True(t, w.Contains(day.Add(16*time.Hour), day.Add(17*time.Hour)))
	assert.False(t, w.Contains(day.Add(8*time.Hour), day.Add(10*time.Hour)))
	assert.False(t, w.Contains(day.Add(16*time.Hour+30*time.Minute), day.Add(17*time.Hour+30*time.Minute)))
}
