package payroll

import (
	"go-hrpos/internal/attendance"
	"go-hrpos/internal/contract"
	"go-hrpos/internal/payconfig"
	payrollerrors "go-hrpos/internal/payroll/errors"
	"go-hrpos/internal/shared/money"

	"github.com/shopspring/decimal"
)

const hoursPerWorkDay = 8

// ClampEvent records a derived amount that was floored at zero during
// recalculation. Events travel up to the response so a negative intermediate
// never disappears silently.
type ClampEvent struct {
	Field string `json:"field"`
	From  int64  `json:"from"`
}

// Compute builds a draft payslip from the month's attendance aggregate, the
// employee's contract terms and one configuration snapshot.
//
// Monthly pay deducts unpaid leave days at base/standardWorkDays per day;
// paid leave never reduces base. Hourly pay is rate times regular hours, with
// overtime carved out and paid through the OT line. The lunch allowance
// follows days actually worked. Insurance is charged on the contract base for
// monthly employees and on computed base pay for hourly ones.
func Compute(agg attendance.MonthlyAggregate, terms contract.Terms, cfg payconfig.Snapshot) (Payslip, []ClampEvent, error) {
	if terms.Missing() {
		return Payslip{}, nil, payrollerrors.ErrMissingContractTerms
	}

	stdDays := cfg.StandardWorkDays

	var (
		basePay       int64
		insuranceBase int64
		otHourlyRate  int64
	)
	switch terms.PayType {
	case contract.PayTypeMonthly:
		dailyRate := money.FromInt(terms.BaseRate).Div(decimal.NewFromInt(int64(stdDays)))
		deduction := money.Round(dailyRate.Mul(decimal.NewFromInt(int64(agg.UnpaidLeaveDays))))
		basePay = money.Clamp(terms.BaseRate - deduction)
		insuranceBase = terms.BaseRate
		otHourlyRate = money.Round(dailyRate.Div(decimal.NewFromInt(hoursPerWorkDay)))
	case contract.PayTypeHourly:
		regularHours := agg.TotalHoursWorked.Sub(agg.OvertimeHours)
		if regularHours.IsNegative() {
			regularHours = decimal.Zero
		}
		basePay = money.Round(money.FromInt(terms.BaseRate).Mul(regularHours))
		insuranceBase = basePay
		otHourlyRate = terms.BaseRate
	default:
		return Payslip{}, nil, payrollerrors.ErrMissingContractTerms
	}

	p := Payslip{
		PayType:         terms.PayType,
		WorkDays:        stdDays,
		ActualWorkDays:  agg.ActualWorkDays,
		PaidLeaveDays:   agg.PaidLeaveDays,
		UnpaidLeaveDays: agg.UnpaidLeaveDays,
		OTHours:         agg.OvertimeHours,

		BaseSalary:         basePay,
		LunchAllowanceRate: terms.LunchAllowancePerDay,
		LunchAllowance:     terms.LunchAllowancePerDay * int64(agg.ActualWorkDays),
		TransportAllowance: terms.TransportAllowance,
		PhoneAllowance:     terms.PhoneAllowance,
		OtherAllowance:     terms.OtherAllowance,
		KPIBonus:           terms.KPITarget,
		OTHourlyRate:       otHourlyRate,
		InsuranceBase:      insuranceBase,
	}

	clamps := Recalculate(&p, cfg)
	return p, clamps, nil
}

// Recalculate re-derives every dependent amount (OT pay, gross, insurance,
// PIT, net) from the payslip's current line values. It runs after Compute and
// after every manual edit so a stored row is never inconsistent with its
// lines. Returned events list the amounts that had to be floored at zero.
func Recalculate(p *Payslip, cfg payconfig.Snapshot) []ClampEvent {
	var clamps []ClampEvent

	if p.PayType == contract.PayTypeHourly {
		p.InsuranceBase = p.BaseSalary
	}

	p.OTPay = money.Round(p.OTHours.
		Mul(money.FromInt(p.OTHourlyRate)).
		Mul(cfg.OTMultiplierWeekday))

	gross := p.BaseSalary +
		p.LunchAllowance +
		p.TransportAllowance +
		p.PhoneAllowance +
		p.OtherAllowance +
		p.KPIBonus +
		p.OTPay +
		p.Bonus -
		p.Penalty
	if gross < 0 {
		clamps = append(clamps, ClampEvent{Field: "gross_salary", From: gross})
		gross = 0
	}
	p.GrossSalary = gross

	p.InsuranceDeduction = money.Share(p.InsuranceBase, cfg.InsuranceEmployeeRate)

	taxable := p.GrossSalary - p.InsuranceDeduction - cfg.PersonalDeductionThreshold
	if taxable < 0 {
		taxable = 0
	}
	p.PITDeduction = MarginalTax(taxable, cfg.TaxBrackets)

	net := p.GrossSalary - p.InsuranceDeduction - p.PITDeduction
	if net < 0 {
		clamps = append(clamps, ClampEvent{Field: "net_salary", From: net})
		net = 0
	}
	p.NetSalary = net

	return clamps
}

// MarginalTax applies a progressive schedule: each bracket taxes only the
// slice of taxable income that falls inside it. A ceiling of zero marks the
// open-ended last bracket.
func MarginalTax(taxable int64, brackets []payconfig.TaxBracket) int64 {
	if taxable <= 0 || len(brackets) == 0 {
		return 0
	}

	var tax int64
	var floor int64
	for _, b := range brackets {
		upper := b.Ceiling
		if upper == 0 || upper > taxable {
			upper = taxable
		}
		span := upper - floor
		if span <= 0 {
			break
		}
		tax += money.Share(span, b.Rate)
		if upper == taxable {
			break
		}
		floor = upper
	}
	return money.Clamp(tax)
}
