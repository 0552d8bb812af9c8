package contract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/contract"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/google/uuid"
)

type ContractServiceImpl struct {
	db           database.Transactor
	contractRepo contract.ContractRepository
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewContractService(
	db database.Transactor,
	contractRepo contract.ContractRepository,
	employeeRepo employee.EmployeeRepository,
) contract.ContractService {
	return &ContractServiceImpl{
		db:           db,
		contractRepo: contractRepo,
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
}

func (s *ContractServiceImpl) CreateContract(ctx context.Context, req contract.CreateContractRequest) (contract.ContractResponse, error) {
	if err := req.Validate(); err != nil {
		return contract.ContractResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return contract.ContractResponse{}, err
	}

	var created contract.Contract
	err := s.db.WithinTx(ctx, func(txCtx context.Context) error {
		existing, err := s.contractRepo.GetActiveByEmployeeID(txCtx, req.EmployeeID)
		if err == nil {
			slog.Warn("Refusing second active contract", "employee_id", req.EmployeeID, "active_contract_id", existing.ID)
			return contract.ErrActiveContractExists
		}
		if !errors.Is(err, contract.ErrNoActiveContract) {
			return err
		}

		created, err = s.contractRepo.Create(txCtx, contract.Contract{
			ID:         uuid.Must(uuid.NewV7()).String(),
			EmployeeID: req.EmployeeID,
			Type:       contract.Type(req.Type),
			StartDate:  req.ParsedStartDate,
			EndDate:    req.ParsedEndDate,
			AutoRenew:  req.AutoRenew,
			Status:     contract.StatusActive,
			Terms:      req.Terms(),
		})
		return err
	})
	if err != nil {
		return contract.ContractResponse{}, err
	}

	slog.Info("Contract created", "contract_id", created.ID, "employee_id", created.EmployeeID, "type", created.Type)
	return contract.ToResponse(created), nil
}

func (s *ContractServiceImpl) GetContract(ctx context.Context, id string) (contract.ContractResponse, error) {
	c, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return contract.ContractResponse{}, err
	}
	return contract.ToResponse(c), nil
}

func (s *ContractServiceImpl) GetActiveContract(ctx context.Context, employeeID string) (contract.ContractResponse, error) {
	c, err := s.contractRepo.GetActiveByEmployeeID(ctx, employeeID)
	if err != nil {
		return contract.ContractResponse{}, err
	}
	return contract.ToResponse(c), nil
}

func (s *ContractServiceImpl) ListContracts(ctx context.Context, employeeID string) ([]contract.ContractResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	contracts, err := s.contractRepo.ListByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return toResponses(contracts), nil
}

// ListExpiring returns ACTIVE contracts ending between today and today+withinDays.
func (s *ContractServiceImpl) ListExpiring(ctx context.Context, withinDays int) ([]contract.ContractResponse, error) {
	if withinDays < 0 || withinDays > 366 {
		return nil, validator.ValidationErrors{{Field: "within_days", Message: "must be between 0 and 366"}}
	}

	today := validator.DateOnly(s.now())
	contracts, err := s.contractRepo.ListActiveEndingBetween(ctx, today, today.AddDate(0, 0, withinDays))
	if err != nil {
		return nil, err
	}
	return toResponses(contracts), nil
}

func (s *ContractServiceImpl) Renew(ctx context.Context, id string) (contract.RenewalResponse, error) {
	var previous, current contract.Contract
	err := s.db.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		previous, current, err = s.renew(txCtx, id)
		return err
	})
	if err != nil {
		return contract.RenewalResponse{}, err
	}

	return contract.RenewalResponse{
		Previous: contract.ToResponse(previous),
		Current:  contract.ToResponse(current),
	}, nil
}

// renew must run inside a transaction.
func (s *ContractServiceImpl) renew(ctx context.Context, id string) (contract.Contract, contract.Contract, error) {
	old, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return contract.Contract{}, contract.Contract{}, err
	}

	next, err := old.Successor(s.now())
	if err != nil {
		return contract.Contract{}, contract.Contract{}, err
	}

	// Release the single-active slot before inserting the successor.
	if err := s.contractRepo.TransitionStatus(ctx, old.ID, contract.StatusActive, contract.StatusRenewed); err != nil {
		return contract.Contract{}, contract.Contract{}, err
	}
	old.Status = contract.StatusRenewed

	next.ID = uuid.Must(uuid.NewV7()).String()
	created, err := s.contractRepo.Create(ctx, next)
	if err != nil {
		return contract.Contract{}, contract.Contract{}, fmt.Errorf("failed to create renewed contract: %w", err)
	}

	slog.Info("Contract renewed", "old_contract_id", old.ID, "new_contract_id", created.ID, "employee_id", created.EmployeeID)
	return old, created, nil
}

func (s *ContractServiceImpl) Terminate(ctx context.Context, id string) (contract.ContractResponse, error) {
	c, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return contract.ContractResponse{}, err
	}
	if !contract.CanTransition(c.Status, contract.StatusTerminated) {
		return contract.ContractResponse{}, contract.ErrInvalidState
	}

	if err := s.contractRepo.TransitionStatus(ctx, id, contract.StatusActive, contract.StatusTerminated); err != nil {
		return contract.ContractResponse{}, err
	}
	c.Status = contract.StatusTerminated

	slog.Info("Contract terminated", "contract_id", id, "employee_id", c.EmployeeID)
	return contract.ToResponse(c), nil
}

// SweepExpirations renews or expires every ACTIVE contract that ended before asOf.
// Each contract is handled in its own transaction; one failure does not stop the sweep.
func (s *ContractServiceImpl) SweepExpirations(ctx context.Context, asOf time.Time) (contract.SweepResult, error) {
	asOf = validator.DateOnly(asOf)
	result := contract.SweepResult{
		AsOf:    asOf.Format(validator.DateLayout),
		Renewed: []contract.RenewedContract{},
		Expired: []string{},
		Failed:  []contract.SweepFailure{},
	}

	due, err := s.contractRepo.ListActiveEndingBefore(ctx, asOf)
	if err != nil {
		return result, fmt.Errorf("failed to list expiring contracts: %w", err)
	}

	for _, c := range due {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if !c.ExpiredAsOf(asOf) {
			continue
		}

		if c.ShouldAutoRenew() {
			var renewed contract.Contract
			err := s.db.WithinTx(ctx, func(txCtx context.Context) error {
				var err error
				_, renewed, err = s.renew(txCtx, c.ID)
				return err
			})
			if err != nil {
				s.recordFailure(&result, c, err)
				continue
			}
			result.Renewed = append(result.Renewed, contract.RenewedContract{OldID: c.ID, NewID: renewed.ID})
			continue
		}

		if err := s.contractRepo.TransitionStatus(ctx, c.ID, contract.StatusActive, contract.StatusExpired); err != nil {
			s.recordFailure(&result, c, err)
			continue
		}
		result.Expired = append(result.Expired, c.ID)
	}

	slog.Info("Contract expiry sweep finished",
		"as_of", result.AsOf,
		"due", len(due),
		"renewed", len(result.Renewed),
		"expired", len(result.Expired),
		"failed", len(result.Failed),
	)
	return result, nil
}

func (s *ContractServiceImpl) recordFailure(result *contract.SweepResult, c contract.Contract, err error) {
	// Another sweep got there first; nothing left to do for this row.
	if errors.Is(err, contract.ErrInvalidState) {
		return
	}
	slog.Error("Contract sweep failed for contract", "contract_id", c.ID, "employee_id", c.EmployeeID, "error", err)
	result.Failed = append(result.Failed, contract.SweepFailure{ContractID: c.ID, Reason: err.Error()})
}

func toResponses(contracts []contract.Contract) []contract.ContractResponse {
	responses := make([]contract.ContractResponse, 0, len(contracts))
	for _, c := range contracts {
		responses = append(responses, contract.ToResponse(c))
	}
	return responses
}
