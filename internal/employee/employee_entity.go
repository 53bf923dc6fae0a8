package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

type Employee struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	BranchID  uuid.UUID `gorm:"type:uuid;not null;index"`

	EmployeeNumber string `gorm:"type:varchar(20);not null;uniqueIndex:uq_employee_number"`
	FullName       string `gorm:"type:varchar(255);not null"`
	Email          string `gorm:"type:varchar(255);not null;uniqueIndex:uq_employee_email"`
	Phone          string `gorm:"type:varchar(20)"`
	Role           string `gorm:"type:varchar(20);not null;default:'staff'"`

	HireDate time.Time `gorm:"type:date;not null"`
	Status   string    `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
