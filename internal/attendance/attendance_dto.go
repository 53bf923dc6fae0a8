package attendance

type ClockInRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Source    string   `json:"source"`
	Notes     *string  `json:"notes"`
}

type ClockOutRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Notes     *string  `json:"notes"`
}

type AttendanceResponse struct {
	ID            string   `json:"id"`
	CompanyID     string   `json:"company_id"`
	BranchID      string   `json:"branch_id"`
	EmployeeID    string   `json:"employee_id"`
	WorkDate      string   `json:"work_date"`
	ClockIn       string   `json:"clock_in"`
	ClockOut      *string  `json:"clock_out,omitempty"`
	WorkedHours   string   `json:"worked_hours"`
	OvertimeHours string   `json:"overtime_hours"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	Status        string   `json:"status"`
	Source        string   `json:"source"`
	Notes         *string  `json:"notes,omitempty"`
}

type MonthlyAggregateResponse struct {
	EmployeeID       string `json:"employee_id"`
	Month            string `json:"month"`
	ActualWorkDays   int    `json:"actual_work_days"`
	PaidLeaveDays    int    `json:"paid_leave_days"`
	UnpaidLeaveDays  int    `json:"unpaid_leave_days"`
	TotalHoursWorked string `json:"total_hours_worked"`
	OvertimeHours    string `json:"overtime_hours"`
}
