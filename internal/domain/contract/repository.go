package contract

import (
	"context"
	"time"
)

type ContractRepository interface {
	Create(ctx context.Context, c Contract) (Contract, error)
	GetByID(ctx context.Context, id string) (Contract, error)
	GetActiveByEmployeeID(ctx context.Context, employeeID string) (Contract, error)
	ListByEmployeeID(ctx context.Context, employeeID string) ([]Contract, error)

	// ListActiveEndingBefore returns ACTIVE contracts whose end date is strictly before asOf.
	ListActiveEndingBefore(ctx context.Context, asOf time.Time) ([]Contract, error)
	// ListActiveEndingBetween returns ACTIVE contracts ending within [from, to].
	ListActiveEndingBetween(ctx context.Context, from, to time.Time) ([]Contract, error)

	// TransitionStatus moves a contract from one status to another.
	// Returns ErrInvalidState when the row is no longer in status from.
	TransitionStatus(ctx context.Context, id string, from, to Status) error
}
