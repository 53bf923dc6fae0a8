package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeOfDay is a clock time expressed as minutes since midnight. Shifts are
// bounded within a single day; an overnight shift is stored as two bounded
// registrations by whoever creates it.
type TimeOfDay int

const minutesPerDay = 24 * 60

// ParseTimeOfDay parses "HH:MM" (24h clock).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time of day %q, expected HH:MM", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}

	return TimeOfDay(hour*60 + minute), nil
}

func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < minutesPerDay
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// ShiftInterval is a half-open [Start, End) clock interval within one day.
// Invariant: Start < End.
type ShiftInterval struct {
	Start TimeOfDay
	End   TimeOfDay
}

func NewShiftInterval(start, end TimeOfDay) (ShiftInterval, error) {
	if !start.Valid() || !end.Valid() {
		return ShiftInterval{}, fmt.Errorf("time of day out of range")
	}
	if start >= end {
		return ShiftInterval{}, fmt.Errorf("shift interval start %s must be before end %s", start, end)
	}
	return ShiftInterval{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open intervals share any minute. An
// interval ending exactly when another begins does NOT overlap. This is the
// sole correctness-critical primitive of conflict resolution; everything
// else is built on it.
func Overlaps(a, b ShiftInterval) bool {
	return a.Start < b.End && b.Start < a.End
}
