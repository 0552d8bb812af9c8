package payroll

import (
	"github.com/cmlabs-hris/payroll-engine/internal/domain/contribution"
	"github.com/shopspring/decimal"
)

var (
	normalOvertimePremium = decimal.RequireFromString("1.5")
	restOvertimePremium   = decimal.NewFromInt(2)
)

// CalculationInput carries the contract terms and attendance totals for one employee.
type CalculationInput struct {
	BaseSalary          decimal.Decimal
	TaxableAllowances   decimal.Decimal
	ExemptAllowances    decimal.Decimal
	NormalOvertimeHours decimal.Decimal
	RestOvertimeHours   decimal.Decimal
	NightHours          decimal.Decimal
	UnjustifiedAbsences int
}

// Breakdown is the result of Calculate. All amounts are rounded to cents.
type Breakdown struct {
	BaseSalary           decimal.Decimal
	TaxableAllowances    decimal.Decimal
	ExemptAllowances     decimal.Decimal
	OvertimePay          decimal.Decimal
	AbsenceDeduction     decimal.Decimal
	GrossPay             decimal.Decimal
	SocialSecurityBase   decimal.Decimal
	EmployeeContribution decimal.Decimal
	EmployerContribution decimal.Decimal
	TaxBase              decimal.Decimal
	TaxWithheld          decimal.Decimal
	NetPay               decimal.Decimal
}

func (in CalculationInput) validate() error {
	amounts := []decimal.Decimal{
		in.BaseSalary, in.TaxableAllowances, in.ExemptAllowances,
		in.NormalOvertimeHours, in.RestOvertimeHours, in.NightHours,
	}
	for _, a := range amounts {
		if a.IsNegative() {
			return ErrInvalidInput
		}
	}
	if in.UnjustifiedAbsences < 0 {
		return ErrInvalidInput
	}
	return nil
}

// Calculate computes the statutory breakdown for one employee and period.
// It performs no I/O and returns identical output for identical input.
func Calculate(in CalculationInput, cfg contribution.Config) (Breakdown, error) {
	if err := in.validate(); err != nil {
		return Breakdown{}, err
	}
	if cfg.StandardMonthlyHours.Sign() <= 0 || cfg.StandardWorkingDays <= 0 {
		return Breakdown{}, ErrInvalidInput
	}
	if cfg.EmployeeRate.IsNegative() || cfg.EmployerRate.IsNegative() || cfg.NightPremiumRate.IsNegative() {
		return Breakdown{}, ErrInvalidInput
	}

	base := in.BaseSalary.Round(2)
	taxable := in.TaxableAllowances.Round(2)
	exempt := in.ExemptAllowances.Round(2)

	hourRate := base.Div(cfg.StandardMonthlyHours)
	weightedHours := in.NormalOvertimeHours.Mul(normalOvertimePremium).
		Add(in.RestOvertimeHours.Mul(restOvertimePremium)).
		Add(in.NightHours.Mul(cfg.NightPremiumRate))
	overtime := hourRate.Mul(weightedHours).Round(2)

	dailyRate := base.Div(decimal.NewFromInt(int64(cfg.StandardWorkingDays)))
	absence := dailyRate.Mul(decimal.NewFromInt(int64(in.UnjustifiedAbsences))).Round(2)

	gross := base.Add(taxable).Add(exempt).Add(overtime).Sub(absence)

	ssBase := base.Add(taxable).Add(overtime).Sub(absence)
	if ssBase.IsNegative() {
		ssBase = decimal.Zero
	}
	employeeSS := ssBase.Mul(cfg.EmployeeRate).Round(2)
	employerSS := ssBase.Mul(cfg.EmployerRate).Round(2)

	taxBase := ssBase.Sub(employeeSS)
	if taxBase.IsNegative() {
		taxBase = decimal.Zero
	}
	tax := cfg.Brackets.Tax(taxBase)

	net := gross.Sub(employeeSS).Sub(tax)

	return Breakdown{
		BaseSalary:           base,
		TaxableAllowances:    taxable,
		ExemptAllowances:     exempt,
		OvertimePay:          overtime,
		AbsenceDeduction:     absence,
		GrossPay:             gross,
		SocialSecurityBase:   ssBase,
		EmployeeContribution: employeeSS,
		EmployerContribution: employerSS,
		TaxBase:              taxBase,
		TaxWithheld:          tax,
		NetPay:               net,
	}, nil
}
