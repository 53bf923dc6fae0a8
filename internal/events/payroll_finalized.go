package events

import "time"

const PayrollFinalizedTopic = "hr.payroll.finalized.v1"

// PayrollFinalizedEvent is queued once per finalized (month, branch) batch,
// in the same transaction that flips the rows.
type PayrollFinalizedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	CompanyID    string    `json:"company_id"`
	BranchID     string    `json:"branch_id"`
	Month        string    `json:"month"`
	PayslipCount int       `json:"payslip_count"`
	FinalizedBy  string    `json:"finalized_by"`
	OccurredAt   time.Time `json:"occurred_at"`
}
