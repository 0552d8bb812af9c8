package contribution

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	DefaultStandardMonthlyHours = decimal.NewFromInt(176)
	DefaultStandardWorkingDays  = 22
	DefaultNightPremiumRate     = decimal.RequireFromString("0.25")
)

// Config - contribution and tax parameters for one reference period
type Config struct {
	ID                   string
	Month                int
	Year                 int
	MinimumWage          decimal.Decimal
	EmployeeRate         decimal.Decimal
	EmployerRate         decimal.Decimal
	Brackets             TaxBrackets
	StandardMonthlyHours decimal.Decimal
	StandardWorkingDays  int
	NightPremiumRate     decimal.Decimal
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Bracket - one row of the progressive income-tax table
type Bracket struct {
	LowerBound     decimal.Decimal `json:"lower_bound"`
	Rate           decimal.Decimal `json:"rate"`
	FixedDeduction decimal.Decimal `json:"fixed_deduction"`
}

// TaxBrackets is ordered by ascending LowerBound, first bound 0.
type TaxBrackets []Bracket

// Validate checks ordering and rate ranges.
func (b TaxBrackets) Validate() error {
	if len(b) == 0 {
		return ErrEmptyBrackets
	}
	if !b[0].LowerBound.IsZero() {
		return ErrBracketsMustStartAtZero
	}
	for i, bracket := range b {
		if bracket.Rate.IsNegative() || bracket.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return ErrInvalidBracketRate
		}
		if bracket.FixedDeduction.IsNegative() {
			return ErrInvalidBracketDeduction
		}
		if i > 0 && !bracket.LowerBound.GreaterThan(b[i-1].LowerBound) {
			return ErrBracketsNotAscending
		}
	}
	return nil
}

// Tax applies the highest bracket whose lower bound is <= base.
// The result is floored at zero and rounded to cents.
func (b TaxBrackets) Tax(base decimal.Decimal) decimal.Decimal {
	if base.Sign() <= 0 {
		return decimal.Zero
	}

	var selected *Bracket
	for i := range b {
		if b[i].LowerBound.LessThanOrEqual(base) {
			selected = &b[i]
		}
	}
	if selected == nil {
		return decimal.Zero
	}

	tax := base.Mul(selected.Rate).Sub(selected.FixedDeduction).Round(2)
	if tax.IsNegative() {
		return decimal.Zero
	}
	return tax
}
