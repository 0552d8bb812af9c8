package contract

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateContractRequest struct {
	EmployeeID         string          `json:"employee_id"`
	Type               string          `json:"type"`
	StartDate          string          `json:"start_date"`
	EndDate            *string         `json:"end_date,omitempty"`
	AutoRenew          bool            `json:"auto_renew"`
	BaseSalary         decimal.Decimal `json:"base_salary"`
	MealAllowance      decimal.Decimal `json:"meal_allowance"`
	TransportAllowance decimal.Decimal `json:"transport_allowance"`
	HousingAllowance   decimal.Decimal `json:"housing_allowance"`
	OtherAllowance     decimal.Decimal `json:"other_allowance"`

	// Parsed by Validate
	ParsedStartDate time.Time  `json:"-"`
	ParsedEndDate   *time.Time `json:"-"`
}

func (r *CreateContractRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "is required")
	}

	contractType := Type(r.Type)
	if !contractType.IsValid() {
		errs.Add("type", "must be one of FIXED_TERM, OPEN_ENDED, INTERNSHIP")
	}

	start, ok := validator.IsValidDate(r.StartDate)
	if !ok {
		errs.Add("start_date", "must be a date in YYYY-MM-DD format")
	}
	r.ParsedStartDate = start

	r.ParsedEndDate = nil
	if r.EndDate != nil && *r.EndDate != "" {
		end, ok := validator.IsValidDate(*r.EndDate)
		switch {
		case !ok:
			errs.Add("end_date", "must be a date in YYYY-MM-DD format")
		case !end.After(start):
			errs.Add("end_date", "must be after start_date")
		default:
			r.ParsedEndDate = &end
		}
	}

	if contractType == TypeOpenEnded {
		if r.AutoRenew {
			errs.Add("auto_renew", "is not allowed for OPEN_ENDED contracts")
		}
	} else if contractType.IsValid() && (r.EndDate == nil || *r.EndDate == "") {
		errs.Add("end_date", "is required unless the contract is OPEN_ENDED")
	}

	amounts := map[string]decimal.Decimal{
		"base_salary":         r.BaseSalary,
		"meal_allowance":      r.MealAllowance,
		"transport_allowance": r.TransportAllowance,
		"housing_allowance":   r.HousingAllowance,
		"other_allowance":     r.OtherAllowance,
	}
	for _, field := range []string{"base_salary", "meal_allowance", "transport_allowance", "housing_allowance", "other_allowance"} {
		if !validator.IsNonNegative(amounts[field]) {
			errs.Add(field, "must be non-negative")
		}
	}

	return errs.Err()
}

// Terms returns the financial terms carried by the request.
func (r *CreateContractRequest) Terms() Terms {
	return Terms{
		BaseSalary:         r.BaseSalary,
		MealAllowance:      r.MealAllowance,
		TransportAllowance: r.TransportAllowance,
		HousingAllowance:   r.HousingAllowance,
		OtherAllowance:     r.OtherAllowance,
	}
}

type ContractResponse struct {
	ID                 string          `json:"id"`
	EmployeeID         string          `json:"employee_id"`
	EmployeeName       *string         `json:"employee_name,omitempty"`
	EmployeeCode       *string         `json:"employee_code,omitempty"`
	Type               string          `json:"type"`
	StartDate          string          `json:"start_date"`
	EndDate            *string         `json:"end_date,omitempty"`
	AutoRenew          bool            `json:"auto_renew"`
	Status             string          `json:"status"`
	BaseSalary         decimal.Decimal `json:"base_salary"`
	MealAllowance      decimal.Decimal `json:"meal_allowance"`
	TransportAllowance decimal.Decimal `json:"transport_allowance"`
	HousingAllowance   decimal.Decimal `json:"housing_allowance"`
	OtherAllowance     decimal.Decimal `json:"other_allowance"`
	RenewedFromID      *string         `json:"renewed_from_id,omitempty"`
	CreatedAt          string          `json:"created_at"`
}

// ToResponse converts the entity to its API representation.
func ToResponse(c Contract) ContractResponse {
	resp := ContractResponse{
		ID:                 c.ID,
		EmployeeID:         c.EmployeeID,
		EmployeeName:       c.EmployeeName,
		EmployeeCode:       c.EmployeeCode,
		Type:               string(c.Type),
		StartDate:          c.StartDate.Format(validator.DateLayout),
		AutoRenew:          c.AutoRenew,
		Status:             string(c.Status),
		BaseSalary:         c.BaseSalary,
		MealAllowance:      c.MealAllowance,
		TransportAllowance: c.TransportAllowance,
		HousingAllowance:   c.HousingAllowance,
		OtherAllowance:     c.OtherAllowance,
		RenewedFromID:      c.RenewedFromID,
		CreatedAt:          c.CreatedAt.Format(time.RFC3339),
	}
	if c.EndDate != nil {
		end := c.EndDate.Format(validator.DateLayout)
		resp.EndDate = &end
	}
	return resp
}

type RenewalResponse struct {
	Previous ContractResponse `json:"previous"`
	Current  ContractResponse `json:"current"`
}

type RenewedContract struct {
	OldID string `json:"old_id"`
	NewID string `json:"new_id"`
}

type SweepFailure struct {
	ContractID string `json:"contract_id"`
	Reason     string `json:"reason"`
}

// SweepResult reports what one expiry sweep changed.
type SweepResult struct {
	AsOf    string            `json:"as_of"`
	Renewed []RenewedContract `json:"renewed"`
	Expired []string          `json:"expired"`
	Failed  []SweepFailure    `json:"failed"`
}

// Changed reports whether the sweep touched any contract.
func (r SweepResult) Changed() bool {
	return len(r.Renewed) > 0 || len(r.Expired) > 0 || len(r.Failed) > 0
}

type SweepRequest struct {
	AsOf *string `json:"as_of,omitempty"`
}

func (r *SweepRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.AsOf != nil {
		if _, ok := validator.IsValidDate(*r.AsOf); !ok {
			errs.Add("as_of", "must be a date in YYYY-MM-DD format")
		}
	}
	return errs.Err()
}
