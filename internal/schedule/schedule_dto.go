package schedule

type CreateRegistrationRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	BranchID   string `json:"branch_id" binding:"required"`
	ShiftID    string `json:"shift_id" binding:"required"`
	ShiftName  string `json:"shift_name" binding:"required"`
	ShiftDate  string `json:"shift_date" binding:"required"` // YYYY-MM-DD
	StartTime  string `json:"start_time" binding:"required"` // HH:MM
	EndTime    string `json:"end_time" binding:"required"`   // HH:MM
}

type RegistrationResponse struct {
	ID           string  `json:"id"`
	CompanyID    string  `json:"company_id"`
	BranchID     string  `json:"branch_id"`
	EmployeeID   string  `json:"employee_id"`
	ShiftID      string  `json:"shift_id"`
	ShiftName    string  `json:"shift_name"`
	ShiftDate    string  `json:"shift_date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	Status       string  `json:"status"`
	RegisteredAt string  `json:"registered_at"`
	DecidedBy    *string `json:"decided_by,omitempty"`
	DecidedAt    *string `json:"decided_at,omitempty"`
}

type GetRegistrationsFilterRequest struct {
	BranchID  string `form:"branch_id"`
	ShiftDate string `form:"shift_date"`
	Status    string `form:"status"`
}

type ApproveBatchRequest struct {
	BranchID    string   `json:"branch_id" binding:"required"`
	ShiftDate   string   `json:"shift_date" binding:"required"`
	SelectedIDs []string `json:"selected_ids"`
}

type ApproveBatchResponse struct {
	BranchID  string                 `json:"branch_id"`
	ShiftDate string                 `json:"shift_date"`
	Approved  []RegistrationResponse `json:"approved"`
	Rejected  []RegistrationResponse `json:"rejected"`
	Conflicts []SkippedRegistration  `json:"conflicts"`
}

type SelectShiftRequest struct {
	BranchID    string   `json:"branch_id" binding:"required"`
	ShiftDate   string   `json:"shift_date" binding:"required"`
	ShiftID     string   `json:"shift_id" binding:"required"`
	SelectedIDs []string `json:"selected_ids"`
	Pick        *bool    `json:"pick" binding:"required"`
}

type SelectShiftResponse struct {
	SelectedIDs []string              `json:"selected_ids"`
	Skipped     []SkippedRegistration `json:"skipped"`
}
