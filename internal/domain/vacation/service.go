package vacation

import "context"

type VacationService interface {
	Submit(ctx context.Context, req SubmitVacationRequest) (VacationResponse, error)
	Approve(ctx context.Context, id string, req DecisionRequest) (VacationResponse, error)
	Reject(ctx context.Context, id string, req DecisionRequest) (VacationResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]VacationResponse, error)
}
