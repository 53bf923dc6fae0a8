package payconfig

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Setting is one company-scoped payroll knob stored as key/value. Structured
// values (the tax bracket table) are stored as JSON strings.
type Setting struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_payroll_settings_company_key"`
	Key       string    `gorm:"type:varchar(60);not null;uniqueIndex:idx_payroll_settings_company_key"`
	Value     string    `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Setting) TableName() string {
	return "payroll_settings"
}

const (
	KeyStandardWorkDays           = "standard_work_days"
	KeyOTMultiplierWeekday        = "ot_multiplier_weekday"
	KeyInsuranceEmployeeRate      = "insurance_employee_rate"
	KeyPersonalDeductionThreshold = "personal_deduction_threshold"
	KeyTaxBrackets                = "tax_brackets"
)

// TaxBracket is one slice of a progressive income tax schedule. Ceiling is the
// upper bound of monthly taxable income covered by the bracket, in the payroll
// currency's smallest unit; Ceiling == 0 marks the open-ended last bracket.
type TaxBracket struct {
	Ceiling int64           `json:"ceiling"`
	Rate    decimal.Decimal `json:"rate"`
}

// Snapshot is the typed view of a company's payroll settings, loaded once per
// calculation run so every payslip in a batch sees the same configuration.
type Snapshot struct {
	StandardWorkDays           int             `json:"standard_work_days"`
	OTMultiplierWeekday        decimal.Decimal `json:"ot_multiplier_weekday"`
	InsuranceEmployeeRate      decimal.Decimal `json:"insurance_employee_rate"`
	PersonalDeductionThreshold int64           `json:"personal_deduction_threshold"`
	TaxBrackets                []TaxBracket    `json:"tax_brackets"`
}

// DefaultSnapshot returns the stock Vietnamese configuration: a 26-day working
// month, 1.5x weekday overtime, the 10.5% employee social insurance share, the
// 11,000,000 VND personal deduction and the 7-bracket progressive PIT schedule.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		StandardWorkDays:           26,
		OTMultiplierWeekday:        decimal.RequireFromString("1.5"),
		InsuranceEmployeeRate:      decimal.RequireFromString("0.105"),
		PersonalDeductionThreshold: 11_000_000,
		TaxBrackets: []TaxBracket{
			{Ceiling: 5_000_000, Rate: decimal.RequireFromString("0.05")},
			{Ceiling: 10_000_000, Rate: decimal.RequireFromString("0.10")},
			{Ceiling: 18_000_000, Rate: decimal.RequireFromString("0.15")},
			{Ceiling: 32_000_000, Rate: decimal.RequireFromString("0.20")},
			{Ceiling: 52_000_000, Rate: decimal.RequireFromString("0.25")},
			{Ceiling: 80_000_000, Rate: decimal.RequireFromString("0.30")},
			{Ceiling: 0, Rate: decimal.RequireFromString("0.35")},
		},
	}
}
