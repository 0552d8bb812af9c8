package contract

import (
	"context"
	"time"
)

type ContractService interface {
	CreateContract(ctx context.Context, req CreateContractRequest) (ContractResponse, error)
	GetContract(ctx context.Context, id string) (ContractResponse, error)
	GetActiveContract(ctx context.Context, employeeID string) (ContractResponse, error)
	ListContracts(ctx context.Context, employeeID string) ([]ContractResponse, error)
	ListExpiring(ctx context.Context, withinDays int) ([]ContractResponse, error)

	Renew(ctx context.Context, id string) (RenewalResponse, error)
	Terminate(ctx context.Context, id string) (ContractResponse, error)
	SweepExpirations(ctx context.Context, asOf time.Time) (SweepResult, error)
}
