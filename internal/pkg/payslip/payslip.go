package payslip

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// Line is one labelled amount on the payslip.
type Line struct {
	Label  string
	Amount decimal.Decimal
}

// Data is everything printed on a payslip.
type Data struct {
	Title                string
	EmployeeName         string
	EmployeeCode         string
	IBAN                 string
	SocialSecurityNumber string
	TaxID                string
	Month                int
	Year                 int
	Status               string
	Earnings             []Line
	Deductions           []Line
	EmployerContribution decimal.Decimal
	GrossPay             decimal.Decimal
	NetPay               decimal.Decimal
	GeneratedAt          time.Time
}

// Render writes the payslip as an A4 PDF to w.
func Render(w io.Writer, data Data) error {
	title := data.Title
	if title == "" {
		title = "Payslip"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, title)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	header := []string{
		fmt.Sprintf("Employee: %s (%s)", data.EmployeeName, data.EmployeeCode),
		fmt.Sprintf("Period: %s %d", time.Month(data.Month).String(), data.Year),
		fmt.Sprintf("IBAN: %s", data.IBAN),
		fmt.Sprintf("Social security no.: %s    Tax ID: %s", data.SocialSecurityNumber, data.TaxID),
		fmt.Sprintf("Status: %s", data.Status),
	}
	for _, line := range header {
		pdf.Cell(0, 7, line)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	section(pdf, "Earnings", data.Earnings)
	section(pdf, "Deductions", data.Deductions)

	pdf.SetFont("Helvetica", "B", 12)
	amountRow(pdf, "Gross pay", data.GrossPay)
	amountRow(pdf, "Net pay", data.NetPay)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.Ln(4)
	amountRow(pdf, "Employer social security contribution", data.EmployerContribution)
	if !data.GeneratedAt.IsZero() {
		pdf.Cell(0, 6, "Generated "+data.GeneratedAt.UTC().Format(time.RFC3339))
		pdf.Ln(6)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render payslip: %w", err)
	}
	return nil
}

func section(pdf *gofpdf.Fpdf, heading string, lines []Line) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, heading)
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for _, l := range lines {
		amountRow(pdf, l.Label, l.Amount)
	}
	pdf.Ln(3)
}

func amountRow(pdf *gofpdf.Fpdf, label string, amount decimal.Decimal) {
	pdf.CellFormat(130, 7, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(50, 7, amount.StringFixed(2), "", 1, "R", false, 0, "")
}
