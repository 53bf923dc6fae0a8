package payroll

type GenerateMonthlyRequest struct {
	Month    string `json:"month" binding:"required"`
	BranchID string `json:"branch_id" binding:"required,uuid"`
}

type ApplyEditRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value" binding:"required"`
}

type FinalizeMonthRequest struct {
	Month    string `json:"month" binding:"required"`
	BranchID string `json:"branch_id" binding:"required,uuid"`
}

type SkippedEmployee struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

type GenerateMonthlyResponse struct {
	Month            string            `json:"month"`
	BranchID         string            `json:"branch_id"`
	Generated        []PayslipResponse `json:"generated"`
	Skipped          []SkippedEmployee `json:"skipped,omitempty"`
	AlreadyFinalized []string          `json:"already_finalized,omitempty"`
}

type ApplyEditResponse struct {
	Payslip PayslipResponse `json:"payslip"`
	Clamps  []ClampEvent    `json:"clamps,omitempty"`
}

type FinalizeMonthResponse struct {
	Month     string `json:"month"`
	BranchID  string `json:"branch_id"`
	Finalized int    `json:"finalized"`
	TotalNet  int64  `json:"total_net"`
}

type UnfinalizeMonthResponse struct {
	Month    string `json:"month"`
	BranchID string `json:"branch_id"`
	Unlocked int    `json:"unlocked"`
}

type PayslipResponse struct {
	ID         string `json:"id"`
	CompanyID  string `json:"company_id"`
	BranchID   string `json:"branch_id"`
	EmployeeID string `json:"employee_id"`
	Month      string `json:"month"`

	PayType         string `json:"pay_type"`
	WorkDays        int    `json:"work_days"`
	ActualWorkDays  int    `json:"actual_work_days"`
	PaidLeaveDays   int    `json:"paid_leave_days"`
	UnpaidLeaveDays int    `json:"unpaid_leave_days"`
	OTHours         string `json:"ot_hours"`

	BaseSalary         int64 `json:"base_salary"`
	LunchAllowanceRate int64 `json:"lunch_allowance_rate"`
	LunchAllowance     int64 `json:"lunch_allowance"`
	TransportAllowance int64 `json:"transport_allowance"`
	PhoneAllowance     int64 `json:"phone_allowance"`
	OtherAllowance     int64 `json:"other_allowance"`
	KPIBonus           int64 `json:"kpi_bonus"`
	OTPay              int64 `json:"ot_pay"`
	Bonus              int64 `json:"bonus"`
	Penalty            int64 `json:"penalty"`

	GrossSalary        int64 `json:"gross_salary"`
	InsuranceBase      int64 `json:"insurance_base"`
	InsuranceDeduction int64 `json:"insurance_deduction"`
	PITDeduction       int64 `json:"pit_deduction"`
	NetSalary          int64 `json:"net_salary"`

	IsFinalized bool    `json:"is_finalized"`
	FinalizedAt *string `json:"finalized_at,omitempty"`
	FinalizedBy *string `json:"finalized_by,omitempty"`
	PayslipURL  *string `json:"payslip_url,omitempty"`
}

type BreakdownLine struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

type BreakdownResponse struct {
	PayslipID  string          `json:"payslip_id"`
	EmployeeID string          `json:"employee_id"`
	Month      string          `json:"month"`
	Earnings   []BreakdownLine `json:"earnings"`
	Deductions []BreakdownLine `json:"deductions"`
	Gross      int64           `json:"gross"`
	Net        int64           `json:"net"`
}
