package events

import "time"

const ShiftScheduleGeneratedTopic = "hr.shift.schedule.generated.v1"

// ShiftScheduleGeneratedEvent announces that an approval batch settled the
// schedule for one (branch, date): downstream attendance planning listens.
type ShiftScheduleGeneratedEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	CompanyID     string    `json:"company_id"`
	BranchID      string    `json:"branch_id"`
	ShiftDate     string    `json:"shift_date"`
	ApprovedCount int       `json:"approved_count"`
	RejectedCount int       `json:"rejected_count"`
	DecidedBy     string    `json:"decided_by"`
	OccurredAt    time.Time `json:"occurred_at"`
}
