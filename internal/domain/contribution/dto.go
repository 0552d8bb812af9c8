package contribution

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type UpsertConfigRequest struct {
	Month                int              `json:"month"`
	Year                 int              `json:"year"`
	MinimumWage          decimal.Decimal  `json:"minimum_wage"`
	EmployeeRate         decimal.Decimal  `json:"employee_rate"`
	EmployerRate         decimal.Decimal  `json:"employer_rate"`
	Brackets             TaxBrackets      `json:"brackets"`
	StandardMonthlyHours *decimal.Decimal `json:"standard_monthly_hours,omitempty"`
	StandardWorkingDays  *int             `json:"standard_working_days,omitempty"`
	NightPremiumRate     *decimal.Decimal `json:"night_premium_rate,omitempty"`
}

func (r *UpsertConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidPeriod(r.Month, r.Year) {
		errs.Add("period", "month must be 1-12 and year 2000-2100")
	}
	if !validator.IsNonNegative(r.MinimumWage) {
		errs.Add("minimum_wage", "must be non-negative")
	}
	if !validator.IsRate(r.EmployeeRate) {
		errs.Add("employee_rate", "must be between 0 and 1")
	}
	if !validator.IsRate(r.EmployerRate) {
		errs.Add("employer_rate", "must be between 0 and 1")
	}
	if err := r.Brackets.Validate(); err != nil {
		errs.Add("brackets", err.Error())
	}
	if r.StandardMonthlyHours != nil && r.StandardMonthlyHours.Sign() <= 0 {
		errs.Add("standard_monthly_hours", "must be positive")
	}
	if r.StandardWorkingDays != nil && *r.StandardWorkingDays <= 0 {
		errs.Add("standard_working_days", "must be positive")
	}
	if r.NightPremiumRate != nil && !validator.IsRate(*r.NightPremiumRate) {
		errs.Add("night_premium_rate", "must be between 0 and 1")
	}

	return errs.Err()
}

// ToConfig builds the entity. Defaults apply only to parameters omitted from the request;
// an explicit zero night premium is kept.
func (r *UpsertConfigRequest) ToConfig() Config {
	cfg := Config{
		Month:                r.Month,
		Year:                 r.Year,
		MinimumWage:          r.MinimumWage,
		EmployeeRate:         r.EmployeeRate,
		EmployerRate:         r.EmployerRate,
		Brackets:             r.Brackets,
		StandardMonthlyHours: DefaultStandardMonthlyHours,
		StandardWorkingDays:  DefaultStandardWorkingDays,
		NightPremiumRate:     DefaultNightPremiumRate,
	}
	if r.StandardMonthlyHours != nil {
		cfg.StandardMonthlyHours = *r.StandardMonthlyHours
	}
	if r.StandardWorkingDays != nil {
		cfg.StandardWorkingDays = *r.StandardWorkingDays
	}
	if r.NightPremiumRate != nil {
		cfg.NightPremiumRate = *r.NightPremiumRate
	}
	return cfg
}

type ConfigResponse struct {
	ID                   string          `json:"id"`
	Month                int             `json:"month"`
	Year                 int             `json:"year"`
	MinimumWage          decimal.Decimal `json:"minimum_wage"`
	EmployeeRate         decimal.Decimal `json:"employee_rate"`
	EmployerRate         decimal.Decimal `json:"employer_rate"`
	Brackets             TaxBrackets     `json:"brackets"`
	StandardMonthlyHours decimal.Decimal `json:"standard_monthly_hours"`
	StandardWorkingDays  int             `json:"standard_working_days"`
	NightPremiumRate     decimal.Decimal `json:"night_premium_rate"`
	UpdatedAt            string          `json:"updated_at"`
}

func ToResponse(c Config) ConfigResponse {
	return ConfigResponse{
		ID:                   c.ID,
		Month:                c.Month,
		Year:                 c.Year,
		MinimumWage:          c.MinimumWage,
		EmployeeRate:         c.EmployeeRate,
		EmployerRate:         c.EmployerRate,
		Brackets:             c.Brackets,
		StandardMonthlyHours: c.StandardMonthlyHours,
		StandardWorkingDays:  c.StandardWorkingDays,
		NightPremiumRate:     c.NightPremiumRate,
		UpdatedAt:            c.UpdatedAt.Format(time.RFC3339),
	}
}
