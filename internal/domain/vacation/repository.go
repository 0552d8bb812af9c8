package vacation

import "context"

type VacationRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	ListByEmployeeID(ctx context.Context, employeeID string) ([]Request, error)
	// Decide moves a PENDING request to status. Returns ErrInvalidState if it is not pending.
	Decide(ctx context.Context, id string, status Status, note *string) (Request, error)
}
