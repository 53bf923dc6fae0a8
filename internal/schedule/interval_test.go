package schedule_test

import (
	"testing"

	"go-hrpos/internal/schedule"

	"github.com/stretchr/testify/assert"
)

func mustInterval(t *testing.T, start, end string) schedule.ShiftInterval {
	t.Helper()
	s, err := schedule.ParseTimeOfDay(start)
	assert.NoError(t, err)
	e, err := schedule.ParseTimeOfDay(end)
	assert.NoError(t, err)
	iv, err := schedule.NewShiftInterval(s, e)
	assert.NoError(t, err)
	return iv
}

func TestParseTimeOfDay(t *testing.T) {
	v, err := schedule.ParseTimeOfDay("08:30")
	assert.NoError(t, err)
	assert.Equal(t, schedule.TimeOfDay(8*60+30), v)
	assert.Equal(t, "08:30", v.String())

	_, err = schedule.ParseTimeOfDay("24:00")
	assert.Error(t, err)
	_, err = schedule.ParseTimeOfDay("8h30")
	assert.Error(t, err)
	_, err = schedule.ParseTimeOfDay("12:60")
	assert.Error(t, err)
}

func TestNewShiftInterval_RejectsInverted(t *testing.T) {
	start, _ := schedule.ParseTimeOfDay("17:00")
	end, _ := schedule.ParseTimeOfDay("08:00")
	_, err := schedule.NewShiftInterval(start, end)
	assert.Error(t, err)

	_, err = schedule.NewShiftInterval(start, start)
	assert.Error(t, err)
}

func TestOverlaps_HalfOpenBoundary(t *testing.T) {
	morning := mustInterval(t, "08:00", "12:00")
	afternoon := mustInterval(t, "12:00", "17:00")
	late := mustInterval(t, "12:01", "17:00")
	oneOver := mustInterval(t, "08:00", "12:01")

	// back-to-back shifts do not overlap
	assert.False(t, schedule.Overlaps(morning, afternoon))
	// one shared minute does
	assert.True(t, schedule.Overlaps(oneOver, afternoon))
	assert.False(t, schedule.Overlaps(morning, late))
}

func TestOverlaps_Symmetry(t *testing.T) {
	cases := [][2]schedule.ShiftInterval{
		{mustInterval(t, "08:00", "12:00"), mustInterval(t, "10:00", "14:00")},
		{mustInterval(t, "08:00", "12:00"), mustInterval(t, "12:00", "17:00")},
		{mustInterval(t, "08:00", "17:00"), mustInterval(t, "09:00", "10:00")},
		{mustInterval(t, "06:00", "07:00"), mustInterval(t, "20:00", "22:00")},
	}

	for _, c := range cases {
		assert.Equal(t, schedule.Overlaps(c[0], c[1]), schedule.Overlaps(c[1], c[0]))
	}
}

func TestOverlaps_Containment(t *testing.T) {
	outer := mustInterval(t, "08:00", "17:00")
	inner := mustInterval(t, "10:00", "11:00")
	assert.True(t, schedule.Overlaps(outer, inner))
	assert.True(t, schedule.Overlaps(inner, outer))
}
