package schedule

// Conflict resolution is pure: it works on plain registration values and an
// in-progress selection, performs no I/O, and never fails. A conflict only
// keeps the specific registration out of the approved set; the caller
// surfaces the skips.

// ConflictResult is the decision value for one candidate registration.
type ConflictResult struct {
	Conflict bool
	// first conflicting registration, for user feedback
	RegistrationID string
	ShiftName      string
}

// Selection is the set of registration IDs a manager intends to approve.
type Selection map[string]bool

func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for id, v := range s {
		if v {
			out[id] = true
		}
	}
	return out
}

// SkippedRegistration reports one registration that could not join the
// selection because its employee already holds an overlapping shift.
type SkippedRegistration struct {
	RegistrationID string `json:"registration_id"`
	EmployeeID     string `json:"employee_id"`
	ShiftName      string `json:"shift_name"`
	ConflictsWith  string `json:"conflicts_with"`
}

// SelectionResult is the updated selection plus everything that was skipped.
type SelectionResult struct {
	Selection Selection
	Skipped   []SkippedRegistration
}

// WouldConflict scans the already-selected registrations for one that puts
// the candidate's employee into an overlapping interval on the same date.
// Returns the first conflict found, or a zero ConflictResult.
func WouldConflict(candidate ShiftRegistration, selected []ShiftRegistration) ConflictResult {
	for _, other := range selected {
		if other.ID == candidate.ID {
			continue
		}
		if !candidate.SameSlot(other) {
			continue
		}
		if Overlaps(candidate.Interval(), other.Interval()) {
			return ConflictResult{
				Conflict:       true,
				RegistrationID: other.ID.String(),
				ShiftName:      other.ShiftName,
			}
		}
	}
	return ConflictResult{}
}

// ApplySelection walks the requested IDs in order and admits each
// registration whose employee has no overlapping registration already
// admitted. Order matters: the first of two colliding registrations wins.
func ApplySelection(regs []ShiftRegistration, requestedIDs []string) SelectionResult {
	byID := make(map[string]ShiftRegistration, len(regs))
	for _, r := range regs {
		byID[r.ID.String()] = r
	}

	result := SelectionResult{Selection: make(Selection)}
	var accepted []ShiftRegistration

	for _, id := range requestedIDs {
		reg, ok := byID[id]
		if !ok || result.Selection[id] {
			continue
		}

		if c := WouldConflict(reg, accepted); c.Conflict {
			result.Skipped = append(result.Skipped, SkippedRegistration{
				RegistrationID: id,
				EmployeeID:     reg.EmployeeID.String(),
				ShiftName:      reg.ShiftName,
				ConflictsWith:  c.ShiftName,
			})
			continue
		}

		result.Selection[id] = true
		accepted = append(accepted, reg)
	}

	return result
}

// SelectAllForShift is the bulk-select helper behind the "check the whole
// shift column" action. With pick=true every registration of the shift is
// added unless its employee already holds an overlapping selected shift
// (skips are reported, never fatal). With pick=false removal is
// unconditional: removing a registration can never create a conflict.
func SelectAllForShift(regs []ShiftRegistration, current Selection, shiftID string, pick bool) SelectionResult {
	result := SelectionResult{Selection: current.Clone()}

	if !pick {
		for _, r := range regs {
			if r.ShiftID.String() == shiftID {
				delete(result.Selection, r.ID.String())
			}
		}
		return result
	}

	var accepted []ShiftRegistration
	for _, r := range regs {
		if result.Selection[r.ID.String()] {
			accepted = append(accepted, r)
		}
	}

	for _, r := range regs {
		if r.ShiftID.String() != shiftID || result.Selection[r.ID.String()] {
			continue
		}

		if c := WouldConflict(r, accepted); c.Conflict {
			result.Skipped = append(result.Skipped, SkippedRegistration{
				RegistrationID: r.ID.String(),
				EmployeeID:     r.EmployeeID.String(),
				ShiftName:      r.ShiftName,
				ConflictsWith:  c.ShiftName,
			})
			continue
		}

		result.Selection[r.ID.String()] = true
		accepted = append(accepted, r)
	}

	return result
}
