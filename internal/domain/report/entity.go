package report

import (
	"time"

	"github.com/shopspring/decimal"
)

type SocialSecurityRow struct {
	EmployeeID           string          `json:"employee_id"`
	EmployeeCode         string          `json:"employee_code"`
	EmployeeName         string          `json:"employee_name"`
	SocialSecurityNumber string          `json:"social_security_number"`
	Base                 decimal.Decimal `json:"base"`
	EmployeeShare        decimal.Decimal `json:"employee_share"`
	EmployerShare        decimal.Decimal `json:"employer_share"`
	Total                decimal.Decimal `json:"total"`
}

type IncomeTaxRow struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeCode string          `json:"employee_code"`
	EmployeeName string          `json:"employee_name"`
	TaxID        string          `json:"tax_id"`
	GrossPay     decimal.Decimal `json:"gross_pay"`
	TaxBase      decimal.Decimal `json:"tax_base"`
	TaxWithheld  decimal.Decimal `json:"tax_withheld"`
}

type VacationRow struct {
	EmployeeID   string    `json:"employee_id"`
	EmployeeCode string    `json:"employee_code"`
	EmployeeName string    `json:"employee_name"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	BusinessDays int       `json:"business_days"`
	DaysInPeriod int       `json:"days_in_period"`
	Type         string    `json:"type"`
}

type AbsenceRow struct {
	Date           time.Time `json:"date"`
	EmployeeID     string    `json:"employee_id"`
	EmployeeCode   string    `json:"employee_code"`
	EmployeeName   string    `json:"employee_name"`
	Classification string    `json:"classification"`
	Note           *string   `json:"note,omitempty"`
}

// StatusTotals aggregates payroll records of one status in a period.
type StatusTotals struct {
	Status     string
	Count      int
	Gross      decimal.Decimal
	Net        decimal.Decimal
	EmployeeSS decimal.Decimal
	EmployerSS decimal.Decimal
	Tax        decimal.Decimal
}
