package money

import "github.com/shopspring/decimal"

// All monetary amounts in the system are stored as int64 whole VND
// (smallest unit) to avoid floating point drift. Fractional intermediate
// terms (daily rates, hourly rates, statutory percentages) are carried as
// decimal.Decimal and rounded back to whole VND at each payslip line.

// FromInt lifts a whole-VND amount into decimal space.
func FromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// Round converts a decimal amount back to whole VND, half away from zero.
func Round(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// Share computes amount * rate rounded to whole VND. Used for statutory
// percentages (insurance, tax bracket slices).
func Share(amount int64, rate decimal.Decimal) int64 {
	return Round(decimal.NewFromInt(amount).Mul(rate))
}

// Clamp floors a derived amount at zero. Deduction lines must never go
// negative; callers are expected to log when clamping actually fired.
func Clamp(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
