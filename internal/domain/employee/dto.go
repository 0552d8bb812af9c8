package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	EmployeeCode         string  `json:"employee_code"`
	FullName             string  `json:"full_name"`
	Email                *string `json:"email,omitempty"`
	AdmissionDate        string  `json:"admission_date"`
	IBAN                 string  `json:"iban"`
	SocialSecurityNumber string  `json:"social_security_number"`
	TaxID                string  `json:"tax_id"`

	ParsedAdmissionDate time.Time `json:"-"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.EmployeeCode = strings.TrimSpace(r.EmployeeCode)
	r.FullName = strings.TrimSpace(r.FullName)
	r.IBAN = strings.ToUpper(strings.ReplaceAll(r.IBAN, " ", ""))

	if r.EmployeeCode == "" {
		errs.Add("employee_code", "is required")
	}
	if r.FullName == "" {
		errs.Add("full_name", "is required")
	}
	if r.Email != nil && !strings.Contains(*r.Email, "@") {
		errs.Add("email", "must be a valid email address")
	}

	admission, ok := validator.IsValidDate(r.AdmissionDate)
	if !ok {
		errs.Add("admission_date", "must be a date in YYYY-MM-DD format")
	}
	r.ParsedAdmissionDate = admission

	if r.IBAN != "" && !validator.IsValidIBAN(r.IBAN) {
		errs.Add("iban", "is not a valid IBAN")
	}
	if validator.IsEmpty(r.SocialSecurityNumber) {
		errs.Add("social_security_number", "is required")
	}
	if validator.IsEmpty(r.TaxID) {
		errs.Add("tax_id", "is required")
	}

	return errs.Err()
}

type EmployeeFilter struct {
	Status *string
	Search *string
	Page   int
	Limit  int
}

// Normalize applies paging defaults.
func (f *EmployeeFilter) Normalize() error {
	var errs validator.ValidationErrors
	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{string(StatusActive), string(StatusInactive)}) {
		errs.Add("status", ErrInvalidStatus.Error())
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	return errs.Err()
}

type EmployeeResponse struct {
	ID                   string  `json:"id"`
	EmployeeCode         string  `json:"employee_code"`
	FullName             string  `json:"full_name"`
	Email                *string `json:"email,omitempty"`
	AdmissionDate        string  `json:"admission_date"`
	Status               string  `json:"status"`
	IBAN                 string  `json:"iban"`
	SocialSecurityNumber string  `json:"social_security_number"`
	TaxID                string  `json:"tax_id"`
	CreatedAt            string  `json:"created_at"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                   e.ID,
		EmployeeCode:         e.EmployeeCode,
		FullName:             e.FullName,
		Email:                e.Email,
		AdmissionDate:        e.AdmissionDate.Format(validator.DateLayout),
		Status:               string(e.Status),
		IBAN:                 e.IBAN,
		SocialSecurityNumber: e.SocialSecurityNumber,
		TaxID:                e.TaxID,
		CreatedAt:            e.CreatedAt.Format(time.RFC3339),
	}
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Employees  []EmployeeResponse `json:"employees"`
}
