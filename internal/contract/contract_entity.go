package contract

import (
	"time"

	"github.com/google/uuid"
)

const (
	PayTypeMonthly = "MONTHLY"
	PayTypeHourly  = "HOURLY"
)

// Terms is one versioned row of an employee's compensation contract. All
// money fields are whole VND. BaseRate is the monthly salary for MONTHLY pay
// and the hourly rate for HOURLY pay. Updates insert a new version; the row
// with the latest effective date wins.
type Terms struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_contract_terms_effective"`

	PayType              string `gorm:"type:varchar(20);not null;default:''"`
	BaseRate             int64  `gorm:"not null;default:0"`
	LunchAllowancePerDay int64  `gorm:"not null;default:0"`
	TransportAllowance   int64  `gorm:"not null;default:0"`
	PhoneAllowance       int64  `gorm:"not null;default:0"`
	OtherAllowance       int64  `gorm:"not null;default:0"`
	KPITarget            int64  `gorm:"not null;default:0"`

	EffectiveDate time.Time `gorm:"type:date;not null;uniqueIndex:uq_contract_terms_effective"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Terms) TableName() string {
	return "contract_terms"
}

// Missing reports whether the row cannot back a payroll computation. A seeded
// stub (no pay type, zero base rate) is deliberately left incomplete so that
// payroll surfaces the employee instead of paying zero.
func (t Terms) Missing() bool {
	if t.PayType != PayTypeMonthly && t.PayType != PayTypeHourly {
		return true
	}
	return t.BaseRate <= 0
}
