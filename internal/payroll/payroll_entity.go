package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payslip is one employee's pay computation for one month. Financials are
// stored in the currency's smallest unit (whole VND) to avoid floating error;
// only hour counts carry decimals. Line values (base, allowances, bonus,
// penalty, OT) are editable while the row is a draft; gross, insurance, PIT
// and net are always re-derived from them and never hand-set. Once finalized
// the row is immutable until an explicit unfinalize.
type Payslip struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_payslip_period,unique"`
	BranchID   uuid.UUID `gorm:"type:uuid;not null;index:idx_payslip_period,unique"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_payslip_period,unique"`

	// Month is the pay period in "YYYY-MM" form.
	Month string `gorm:"type:varchar(7);not null;index:idx_payslip_period,unique"`

	PayType         string          `gorm:"type:varchar(20);not null"`
	WorkDays        int             `gorm:"not null;default:0"`
	ActualWorkDays  int             `gorm:"not null;default:0"`
	PaidLeaveDays   int             `gorm:"not null;default:0"`
	UnpaidLeaveDays int             `gorm:"not null;default:0"`
	OTHours         decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0"`

	BaseSalary         int64 `gorm:"type:bigint;not null;default:0"`
	LunchAllowanceRate int64 `gorm:"type:bigint;not null;default:0"`
	LunchAllowance     int64 `gorm:"type:bigint;not null;default:0"`
	TransportAllowance int64 `gorm:"type:bigint;not null;default:0"`
	PhoneAllowance     int64 `gorm:"type:bigint;not null;default:0"`
	OtherAllowance     int64 `gorm:"type:bigint;not null;default:0"`
	KPIBonus           int64 `gorm:"type:bigint;not null;default:0"`
	OTHourlyRate       int64 `gorm:"type:bigint;not null;default:0"`
	OTPay              int64 `gorm:"type:bigint;not null;default:0"`
	Bonus              int64 `gorm:"type:bigint;not null;default:0"`
	Penalty            int64 `gorm:"type:bigint;not null;default:0"`

	GrossSalary        int64 `gorm:"type:bigint;not null;default:0"`
	InsuranceBase      int64 `gorm:"type:bigint;not null;default:0"`
	InsuranceDeduction int64 `gorm:"type:bigint;not null;default:0"`
	PITDeduction       int64 `gorm:"type:bigint;not null;default:0"`
	NetSalary          int64 `gorm:"type:bigint;not null;default:0"`

	IsFinalized bool       `gorm:"not null;default:false;index"`
	FinalizedAt *time.Time `gorm:"index"`
	FinalizedBy *uuid.UUID `gorm:"type:uuid"`

	CreatedBy          uuid.UUID `gorm:"type:uuid;not null"`
	PayslipURL         *string
	PayslipGeneratedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Payslip) TableName() string {
	return "payslips"
}
