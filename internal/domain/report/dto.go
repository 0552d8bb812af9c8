package report

import (
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PeriodRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *PeriodRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Month < 1 || r.Month > 12 {
		errs.Add("month", ErrInvalidMonth.Error())
	}
	if !validator.IsValidPeriod(1, r.Year) {
		errs.Add("year", ErrInvalidYear.Error())
	}
	return errs.Err()
}

type Period struct {
	Month       int    `json:"month"`
	Year        int    `json:"year"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	GeneratedAt string `json:"generated_at"`
}

type SocialSecurityMap struct {
	Period
	Rows               []SocialSecurityRow `json:"rows"`
	TotalBase          decimal.Decimal     `json:"total_base"`
	TotalEmployeeShare decimal.Decimal     `json:"total_employee_share"`
	TotalEmployerShare decimal.Decimal     `json:"total_employer_share"`
	Total              decimal.Decimal     `json:"total"`
}

type IncomeTaxMap struct {
	Period
	Rows          []IncomeTaxRow  `json:"rows"`
	TotalGross    decimal.Decimal `json:"total_gross"`
	TotalTaxBase  decimal.Decimal `json:"total_tax_base"`
	TotalWithheld decimal.Decimal `json:"total_withheld"`
}

type VacationMap struct {
	Period
	Rows              []VacationRow `json:"rows"`
	EmployeesOnLeave  int           `json:"employees_on_leave"`
	TotalBusinessDays int           `json:"total_business_days"`
}

type AbsenceReport struct {
	Period
	Rows        []AbsenceRow `json:"rows"`
	Justified   int          `json:"justified"`
	Unjustified int          `json:"unjustified"`
}

type PayrollSummary struct {
	Period
	Headcount       int             `json:"headcount"`
	ProcessedCount  int             `json:"processed_count"`
	PaidCount       int             `json:"paid_count"`
	TotalGross      decimal.Decimal `json:"total_gross"`
	TotalNet        decimal.Decimal `json:"total_net"`
	TotalEmployeeSS decimal.Decimal `json:"total_employee_ss"`
	TotalEmployerSS decimal.Decimal `json:"total_employer_ss"`
	TotalTax        decimal.Decimal `json:"total_tax"`
}
