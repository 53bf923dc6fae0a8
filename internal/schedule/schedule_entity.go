package schedule

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// ShiftRegistration is an employee's request to work one shift on one date.
// Lifecycle: PENDING -> APPROVED | REJECTED through an approval batch, both
// terminal. Once a schedule is generated the row is immutable history.
type ShiftRegistration struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_reg_company_date"`
	BranchID   uuid.UUID `gorm:"type:uuid;not null;index:idx_reg_company_date"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`
	ShiftID    uuid.UUID `gorm:"type:uuid;not null"`
	ShiftName  string    `gorm:"type:varchar(120);not null"`

	ShiftDate   time.Time `gorm:"type:date;not null;index:idx_reg_company_date"`
	StartMinute int       `gorm:"not null"`
	EndMinute   int       `gorm:"not null"`

	Status       string    `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	RegisteredAt time.Time `gorm:"not null"`

	DecidedBy *uuid.UUID `gorm:"type:uuid"`
	DecidedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the registration's clock interval.
func (r ShiftRegistration) Interval() ShiftInterval {
	return ShiftInterval{Start: TimeOfDay(r.StartMinute), End: TimeOfDay(r.EndMinute)}
}

// SameSlot reports whether two registrations compete for the same employee
// on the same date.
func (r ShiftRegistration) SameSlot(other ShiftRegistration) bool {
	return r.EmployeeID == other.EmployeeID && r.ShiftDate.Equal(other.ShiftDate)
}
