package vacation

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
)

type SubmitVacationRequest struct {
	EmployeeID string  `json:"employee_id"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Type       string  `json:"type"`
	Reason     *string `json:"reason,omitempty"`

	ParsedStartDate time.Time `json:"-"`
	ParsedEndDate   time.Time `json:"-"`
}

func (r *SubmitVacationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "is required")
	}
	if !Type(r.Type).IsValid() {
		errs.Add("type", "must be one of ANNUAL, UNPAID, SPECIAL")
	}

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs.Add("start_date", "must be a date in YYYY-MM-DD format")
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs.Add("end_date", "must be a date in YYYY-MM-DD format")
	}
	if okStart && okEnd && end.Before(start) {
		errs.Add("end_date", "must not be before start_date")
	}

	r.ParsedStartDate, r.ParsedEndDate = start, end
	return errs.Err()
}

type DecisionRequest struct {
	Note *string `json:"note,omitempty"`
}

type VacationResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	BusinessDays int     `json:"business_days"`
	Type         string  `json:"type"`
	Status       string  `json:"status"`
	Reason       *string `json:"reason,omitempty"`
	DecisionNote *string `json:"decision_note,omitempty"`
	DecidedAt    *string `json:"decided_at,omitempty"`
}

func ToResponse(r Request) VacationResponse {
	resp := VacationResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		StartDate:    r.StartDate.Format(validator.DateLayout),
		EndDate:      r.EndDate.Format(validator.DateLayout),
		BusinessDays: r.BusinessDays,
		Type:         string(r.Type),
		Status:       string(r.Status),
		Reason:       r.Reason,
		DecisionNote: r.DecisionNote,
	}
	if r.DecidedAt != nil {
		s := r.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &s
	}
	return resp
}
