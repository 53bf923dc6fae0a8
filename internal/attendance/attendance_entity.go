package attendance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Attendance struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID     uuid.UUID       `gorm:"column:company_id;type:uuid;not null;index"`
	BranchID      uuid.UUID       `gorm:"column:branch_id;type:uuid;not null;index"`
	EmployeeID    uuid.UUID       `gorm:"column:employee_id;type:uuid;not null;index"`
	WorkDate      time.Time       `gorm:"column:work_date;type:date;not null;index"`
	ClockIn       time.Time       `gorm:"column:clock_in;type:timestamptz;not null"`
	ClockOut      *time.Time      `gorm:"column:clock_out;type:timestamptz"`
	WorkedHours   decimal.Decimal `gorm:"column:worked_hours;type:numeric(6,2);not null;default:0"`
	OvertimeHours decimal.Decimal `gorm:"column:overtime_hours;type:numeric(6,2);not null;default:0"`
	Latitude      *float64        `gorm:"column:latitude"`
	Longitude     *float64        `gorm:"column:longitude"`
	Status        string          `gorm:"column:status;type:varchar(20);not null;default:PRESENT"`
	Source        string          `gorm:"column:source;type:varchar(30);not null;default:MANUAL"`
	Notes         *string         `gorm:"column:notes;type:text"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"column:deleted_at;index"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// MonthlyAggregate is one employee's attendance and leave totals for a pay
// month. Payroll consumes it as-is and never reaches into attendance rows.
type MonthlyAggregate struct {
	EmployeeID       string
	Month            string
	ActualWorkDays   int
	PaidLeaveDays    int
	UnpaidLeaveDays  int
	TotalHoursWorked decimal.Decimal
	OvertimeHours    decimal.Decimal
}
