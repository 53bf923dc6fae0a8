package payroll

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

// PayslipRenderer turns a finalized payslip into a downloadable document and
// returns its storage path.
type PayslipRenderer interface {
	Render(p *Payslip) (string, error)
}

type pdfRenderer struct {
	baseDir string
}

func NewPDFRenderer(baseDir string) PayslipRenderer {
	if baseDir == "" {
		baseDir = filepath.Join("storage", "payslips")
	}
	return &pdfRenderer{baseDir: baseDir}
}

func (r *pdfRenderer) Render(p *Payslip) (string, error) {
	if err := os.MkdirAll(r.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("create payslip dir: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Payslip - %s", p.Month))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Employee: %s", p.EmployeeID.String()))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Pay type: %s", p.PayType))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Work days: %d / %d", p.ActualWorkDays, p.WorkDays))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Earnings")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	r.line(pdf, "Base salary", p.BaseSalary)
	r.line(pdf, "Lunch allowance", p.LunchAllowance)
	r.line(pdf, "Transport allowance", p.TransportAllowance)
	r.line(pdf, "Phone allowance", p.PhoneAllowance)
	r.line(pdf, "Other allowance", p.OtherAllowance)
	r.line(pdf, "KPI bonus", p.KPIBonus)
	r.line(pdf, fmt.Sprintf("Overtime pay (%s h)", p.OTHours.StringFixed(2)), p.OTPay)
	r.line(pdf, "Bonus", p.Bonus)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Deductions")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	r.line(pdf, "Penalty", p.Penalty)
	r.line(pdf, "Social insurance", p.InsuranceDeduction)
	r.line(pdf, "Personal income tax", p.PITDeduction)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	r.line(pdf, "Gross salary", p.GrossSalary)
	r.line(pdf, "Net salary", p.NetSalary)

	fileName := fmt.Sprintf("payslip_%s_%s.pdf", p.Month, p.ID.String())
	filePath := filepath.Join(r.baseDir, fileName)
	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("write payslip pdf: %w", err)
	}
	return filePath, nil
}

func (r *pdfRenderer) line(pdf *gofpdf.Fpdf, label string, amount int64) {
	pdf.Cell(120, 6, label)
	pdf.CellFormat(50, 6, fmt.Sprintf("%d VND", amount), "", 0, "R", false, 0, "")
	pdf.Ln(6)
}
