package schedule_test

import (
	"testing"
	"time"

	"go-hrpos/internal/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func makeReg(t *testing.T, employeeID uuid.UUID, shiftID uuid.UUID, shiftName, start, end string) schedule.ShiftRegistration {
	t.Helper()
	iv := mustInterval(t, start, end)
	return schedule.ShiftRegistration{
		ID:          uuid.New(),
		CompanyID:   uuid.New(),
		EmployeeID:  employeeID,
		ShiftID:     shiftID,
		ShiftName:   shiftName,
		ShiftDate:   time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		StartMinute: int(iv.Start),
		EndMinute:   int(iv.End),
		Status:      schedule.StatusPending,
	}
}

func TestWouldConflict(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()
	morningShift := uuid.New()
	middayShift := uuid.New()

	aliceMorning := makeReg(t, alice, morningShift, "Morning", "08:00", "12:00")
	aliceMidday := makeReg(t, alice, middayShift, "Midday", "10:00", "14:00")
	bobMidday := makeReg(t, bob, middayShift, "Midday", "10:00", "14:00")

	t.Run("same employee overlapping", func(t *testing.T) {
		res := schedule.WouldConflict(aliceMidday, []schedule.ShiftRegistration{aliceMorning})
		assert.True(t, res.Conflict)
		assert.Equal(t, "Morning", res.ShiftName)
		assert.Equal(t, aliceMorning.ID.String(), res.RegistrationID)
	})

	t.Run("different employee never conflicts", func(t *testing.T) {
		res := schedule.WouldConflict(bobMidday, []schedule.ShiftRegistration{aliceMorning})
		assert.False(t, res.Conflict)
	})

	t.Run("different date never conflicts", func(t *testing.T) {
		nextDay := aliceMidday
		nextDay.ShiftDate = nextDay.ShiftDate.AddDate(0, 0, 1)
		res := schedule.WouldConflict(nextDay, []schedule.ShiftRegistration{aliceMorning})
		assert.False(t, res.Conflict)
	})

	t.Run("back to back does not conflict", func(t *testing.T) {
		aliceAfternoon := makeReg(t, alice, middayShift, "Afternoon", "12:00", "17:00")
		res := schedule.WouldConflict(aliceAfternoon, []schedule.ShiftRegistration{aliceMorning})
		assert.False(t, res.Conflict)
	})
}

func TestApplySelection_FirstOfCollidingPairWins(t *testing.T) {
	alice := uuid.New()
	morningShift := uuid.New()
	middayShift := uuid.New()

	first := makeReg(t, alice, morningShift, "Morning", "08:00", "12:00")
	second := makeReg(t, alice, middayShift, "Midday", "10:00", "14:00")

	res := schedule.ApplySelection(
		[]schedule.ShiftRegistration{first, second},
		[]string{first.ID.String(), second.ID.String()},
	)

	assert.True(t, res.Selection[first.ID.String()])
	assert.False(t, res.Selection[second.ID.String()])
	if assert.Len(t, res.Skipped, 1) {
		assert.Equal(t, second.ID.String(), res.Skipped[0].RegistrationID)
		assert.Equal(t, "Morning", res.Skipped[0].ConflictsWith)
	}
}

func TestApplySelection_IgnoresUnknownIDs(t *testing.T) {
	alice := uuid.New()
	reg := makeReg(t, alice, uuid.New(), "Morning", "08:00", "12:00")

	res := schedule.ApplySelection(
		[]schedule.ShiftRegistration{reg},
		[]string{uuid.NewString(), reg.ID.String(), reg.ID.String()},
	)

	assert.Len(t, res.Selection, 1)
	assert.Empty(t, res.Skipped)
}

func TestSelectAllForShift_PickSkipsConflicts(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()
	morningShift := uuid.New()
	middayShift := uuid.New()

	aliceMorning := makeReg(t, alice, morningShift, "Morning", "08:00", "12:00")
	aliceMidday := makeReg(t, alice, middayShift, "Midday", "10:00", "14:00")
	bobMidday := makeReg(t, bob, middayShift, "Midday", "10:00", "14:00")
	regs := []schedule.ShiftRegistration{aliceMorning, aliceMidday, bobMidday}

	current := schedule.Selection{aliceMorning.ID.String(): true}

	res := schedule.SelectAllForShift(regs, current, middayShift.String(), true)

	// bob joins, alice is skipped because her morning shift overlaps
	assert.True(t, res.Selection[bobMidday.ID.String()])
	assert.False(t, res.Selection[aliceMidday.ID.String()])
	assert.True(t, res.Selection[aliceMorning.ID.String()])
	if assert.Len(t, res.Skipped, 1) {
		assert.Equal(t, alice.String(), res.Skipped[0].EmployeeID)
		assert.Equal(t, "Morning", res.Skipped[0].ConflictsWith)
	}
}

func TestSelectAllForShift_UnpickIsUnconditional(t *testing.T) {
	alice := uuid.New()
	middayShift := uuid.New()

	aliceMidday := makeReg(t, alice, middayShift, "Midday", "10:00", "14:00")
	regs := []schedule.ShiftRegistration{aliceMidday}
	current := schedule.Selection{aliceMidday.ID.String(): true}

	res := schedule.SelectAllForShift(regs, current, middayShift.String(), false)

	assert.False(t, res.Selection[aliceMidday.ID.String()])
	assert.Empty(t, res.Skipped)
}

func TestSelectAllForShift_DoesNotMutateInput(t *testing.T) {
	alice := uuid.New()
	middayShift := uuid.New()

	aliceMidday := makeReg(t, alice, middayShift, "Midday", "10:00", "14:00")
	current := schedule.Selection{}

	_ = schedule.SelectAllForShift([]schedule.ShiftRegistration{aliceMidday}, current, middayShift.String(), true)

	assert.Empty(t, current)
}
