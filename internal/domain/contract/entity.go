package contract

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Type enum
type Type string

const (
	TypeFixedTerm  Type = "FIXED_TERM"
	TypeOpenEnded  Type = "OPEN_ENDED"
	TypeInternship Type = "INTERNSHIP"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeFixedTerm, TypeOpenEnded, TypeInternship:
		return true
	}
	return false
}

// Status enum
type Status string

const (
	StatusActive     Status = "ACTIVE"
	StatusExpired    Status = "EXPIRED"
	StatusRenewed    Status = "RENEWED"
	StatusTerminated Status = "TERMINATED"
)

// IsTerminal reports whether no further transition is allowed from s.
func (s Status) IsTerminal() bool {
	return s == StatusExpired || s == StatusRenewed || s == StatusTerminated
}

// CanTransition reports whether from -> to is a legal lifecycle step.
// Only ACTIVE rows move, and only into a terminal state.
func CanTransition(from, to Status) bool {
	return from == StatusActive && to.IsTerminal()
}

// Terms are the financial terms fixed at contract creation.
type Terms struct {
	BaseSalary         decimal.Decimal
	MealAllowance      decimal.Decimal
	TransportAllowance decimal.Decimal
	HousingAllowance   decimal.Decimal
	OtherAllowance     decimal.Decimal
}

// AllowanceTotals splits the allowances into the taxable part (housing, other)
// and the exempt part (meal, transport).
func (t Terms) AllowanceTotals() (taxable, exempt decimal.Decimal) {
	taxable = t.HousingAllowance.Add(t.OtherAllowance)
	exempt = t.MealAllowance.Add(t.TransportAllowance)
	return taxable, exempt
}

// Contract - one employment period for an employee
type Contract struct {
	ID         string
	EmployeeID string
	Type       Type
	StartDate  time.Time
	EndDate    *time.Time
	AutoRenew  bool
	Status     Status
	Terms
	RenewedFromID *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// ExpiredAsOf reports whether an ACTIVE contract ended strictly before asOf.
func (c Contract) ExpiredAsOf(asOf time.Time) bool {
	if c.Status != StatusActive || c.EndDate == nil {
		return false
	}
	return validator.DateOnly(*c.EndDate).Before(validator.DateOnly(asOf))
}

// ShouldAutoRenew reports whether the sweep renews instead of expiring.
func (c Contract) ShouldAutoRenew() bool {
	return c.AutoRenew && c.Type != TypeOpenEnded
}

// Successor builds the ACTIVE contract that replaces c on renewal.
// The new period starts on the old end date and keeps the original duration.
// Without an end date the successor starts on today and stays open.
func (c Contract) Successor(today time.Time) (Contract, error) {
	if c.Status != StatusActive {
		return Contract{}, ErrInvalidState
	}

	next := Contract{
		EmployeeID:    c.EmployeeID,
		Type:          c.Type,
		AutoRenew:     c.AutoRenew,
		Status:        StatusActive,
		Terms:         c.Terms,
		RenewedFromID: &c.ID,
	}

	if c.EndDate == nil {
		next.StartDate = validator.DateOnly(today)
		return next, nil
	}

	start := validator.DateOnly(c.StartDate)
	end := validator.DateOnly(*c.EndDate)
	newEnd := end.Add(end.Sub(start))

	next.StartDate = end
	next.EndDate = &newEnd
	return next, nil
}
