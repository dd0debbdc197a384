package domain

import "time"

// TimeSlot is a candidate bookable interval of exactly one service's
// duration. The interval is half-open: StartTime inclusive, EndTime exclusive
type TimeSlot struct {
	StartTime time.Time
	EndTime   time.Time
}

// Duration returns the slot length
func (s TimeSlot) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// Equal returns true if both boundaries match
func (s TimeSlot) Equal(other TimeSlot) bool {
	return s.StartTime.Equal(other.StartTime) && s.EndTime.Equal(other.EndTime)
}

// Overlaps reports whether two half-open intervals overlap
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	return s.StartTime.Before(other.EndTime) && other.StartTime.Before(s.EndTime)
}
