package payroll

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type RunPayrollRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *RunPayrollRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidPeriod(r.Month, r.Year) {
		errs.Add("period", "month must be 1-12 and year 2000-2100")
	}
	return errs.Err()
}

type PeriodRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *PeriodRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidPeriod(r.Month, r.Year) {
		errs.Add("period", "month must be 1-12 and year 2000-2100")
	}
	return errs.Err()
}

type RecordSummary struct {
	RecordID     string          `json:"record_id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	GrossPay     decimal.Decimal `json:"gross_pay"`
	NetPay       decimal.Decimal `json:"net_pay"`
}

type SkippedEmployee struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Reason       string `json:"reason"`
}

// RunResult reports the outcome of one payroll run.
type RunResult struct {
	Month     int               `json:"month"`
	Year      int               `json:"year"`
	Processed []RecordSummary   `json:"processed"`
	Skipped   []SkippedEmployee `json:"skipped"`
	TotalNet  decimal.Decimal   `json:"total_net"`
}

type PeriodActionResponse struct {
	Month    int   `json:"month"`
	Year     int   `json:"year"`
	Affected int64 `json:"affected"`
}

type RecordFilter struct {
	EmployeeID *string
	Month      *int
	Year       *int
	Status     *string
	Page       int
	Limit      int
}

// Normalize validates the filter and applies paging defaults.
func (f *RecordFilter) Normalize() error {
	var errs validator.ValidationErrors
	if f.Month != nil && (*f.Month < 1 || *f.Month > 12) {
		errs.Add("month", "must be between 1 and 12")
	}
	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{string(RecordStatusProcessed), string(RecordStatusPaid)}) {
		errs.Add("status", "must be PROCESSED or PAID")
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	return errs.Err()
}

type RecordResponse struct {
	ID                   string          `json:"id"`
	EmployeeID           string          `json:"employee_id"`
	EmployeeName         *string         `json:"employee_name,omitempty"`
	EmployeeCode         *string         `json:"employee_code,omitempty"`
	ContractID           string          `json:"contract_id"`
	Month                int             `json:"month"`
	Year                 int             `json:"year"`
	BaseSalary           decimal.Decimal `json:"base_salary"`
	TaxableAllowances    decimal.Decimal `json:"taxable_allowances"`
	ExemptAllowances     decimal.Decimal `json:"exempt_allowances"`
	NormalOvertimeHours  decimal.Decimal `json:"normal_overtime_hours"`
	RestOvertimeHours    decimal.Decimal `json:"rest_overtime_hours"`
	NightHours           decimal.Decimal `json:"night_hours"`
	OvertimePay          decimal.Decimal `json:"overtime_pay"`
	UnjustifiedAbsences  int             `json:"unjustified_absences"`
	AbsenceDeduction     decimal.Decimal `json:"absence_deduction"`
	GrossPay             decimal.Decimal `json:"gross_pay"`
	SocialSecurityBase   decimal.Decimal `json:"social_security_base"`
	EmployeeContribution decimal.Decimal `json:"employee_contribution"`
	EmployerContribution decimal.Decimal `json:"employer_contribution"`
	TaxBase              decimal.Decimal `json:"tax_base"`
	TaxWithheld          decimal.Decimal `json:"tax_withheld"`
	NetPay               decimal.Decimal `json:"net_pay"`
	Status               string          `json:"status"`
	PaidAt               *string         `json:"paid_at,omitempty"`
	CreatedAt            string          `json:"created_at"`
}

func ToResponse(r Record) RecordResponse {
	resp := RecordResponse{
		ID:                   r.ID,
		EmployeeID:           r.EmployeeID,
		EmployeeName:         r.EmployeeName,
		EmployeeCode:         r.EmployeeCode,
		ContractID:           r.ContractID,
		Month:                r.Month,
		Year:                 r.Year,
		BaseSalary:           r.BaseSalary,
		TaxableAllowances:    r.TaxableAllowances,
		ExemptAllowances:     r.ExemptAllowances,
		NormalOvertimeHours:  r.NormalOvertimeHours,
		RestOvertimeHours:    r.RestOvertimeHours,
		NightHours:           r.NightHours,
		OvertimePay:          r.OvertimePay,
		UnjustifiedAbsences:  r.UnjustifiedAbsences,
		AbsenceDeduction:     r.AbsenceDeduction,
		GrossPay:             r.GrossPay,
		SocialSecurityBase:   r.SocialSecurityBase,
		EmployeeContribution: r.EmployeeContribution,
		EmployerContribution: r.EmployerContribution,
		TaxBase:              r.TaxBase,
		TaxWithheld:          r.TaxWithheld,
		NetPay:               r.NetPay,
		Status:               string(r.Status),
		CreatedAt:            r.CreatedAt.Format(time.RFC3339),
	}
	if r.PaidAt != nil {
		paidAt := r.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &paidAt
	}
	return resp
}

type ListRecordResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Records    []RecordResponse `json:"records"`
}
