package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordStatus enum
type RecordStatus string

const (
	RecordStatusProcessed RecordStatus = "PROCESSED"
	RecordStatusPaid      RecordStatus = "PAID"
)

// Record - the payroll result for one employee and period
type Record struct {
	ID                   string
	EmployeeID           string
	ContractID           string
	Month                int
	Year                 int
	BaseSalary           decimal.Decimal
	TaxableAllowances    decimal.Decimal
	ExemptAllowances     decimal.Decimal
	NormalOvertimeHours  decimal.Decimal
	RestOvertimeHours    decimal.Decimal
	NightHours           decimal.Decimal
	OvertimePay          decimal.Decimal
	UnjustifiedAbsences  int
	AbsenceDeduction     decimal.Decimal
	GrossPay             decimal.Decimal
	SocialSecurityBase   decimal.Decimal
	EmployeeContribution decimal.Decimal
	EmployerContribution decimal.Decimal
	TaxBase              decimal.Decimal
	TaxWithheld          decimal.Decimal
	NetPay               decimal.Decimal
	Status               RecordStatus
	PaidAt               *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// NewRecord snapshots a calculation result for persistence.
func NewRecord(employeeID, contractID string, month, year int, in CalculationInput, b Breakdown) Record {
	return Record{
		EmployeeID:           employeeID,
		ContractID:           contractID,
		Month:                month,
		Year:                 year,
		BaseSalary:           b.BaseSalary,
		TaxableAllowances:    b.TaxableAllowances,
		ExemptAllowances:     b.ExemptAllowances,
		NormalOvertimeHours:  in.NormalOvertimeHours,
		RestOvertimeHours:    in.RestOvertimeHours,
		NightHours:           in.NightHours,
		OvertimePay:          b.OvertimePay,
		UnjustifiedAbsences:  in.UnjustifiedAbsences,
		AbsenceDeduction:     b.AbsenceDeduction,
		GrossPay:             b.GrossPay,
		SocialSecurityBase:   b.SocialSecurityBase,
		EmployeeContribution: b.EmployeeContribution,
		EmployerContribution: b.EmployerContribution,
		TaxBase:              b.TaxBase,
		TaxWithheld:          b.TaxWithheld,
		NetPay:               b.NetPay,
		Status:               RecordStatusProcessed,
	}
}

// Balanced reports whether the net pay identity holds exactly.
func (r Record) Balanced() bool {
	expected := r.BaseSalary.
		Add(r.TaxableAllowances).
		Add(r.ExemptAllowances).
		Add(r.OvertimePay).
		Sub(r.AbsenceDeduction).
		Sub(r.EmployeeContribution).
		Sub(r.TaxWithheld)
	return expected.Equal(r.NetPay)
}
