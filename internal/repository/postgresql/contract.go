package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/contract"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

type contractRepositoryImpl struct {
	db *database.DB
}

func NewContractRepository(db *database.DB) contract.ContractRepository {
	return &contractRepositoryImpl{db: db}
}

const contractColumns = `c.id, c.employee_id, c.type, c.start_date, c.end_date, c.auto_renew, c.status,
	c.base_salary, c.meal_allowance, c.transport_allowance, c.housing_allowance, c.other_allowance,
	c.renewed_from_id, c.created_at, c.updated_at, e.full_name, e.employee_code`

const contractFrom = ` FROM contracts c JOIN employees e ON e.id = c.employee_id`

func scanContract(row pgx.Row) (contract.Contract, error) {
	var c contract.Contract
	err := row.Scan(
		&c.ID, &c.EmployeeID, &c.Type, &c.StartDate, &c.EndDate, &c.AutoRenew, &c.Status,
		&c.BaseSalary, &c.MealAllowance, &c.TransportAllowance, &c.HousingAllowance, &c.OtherAllowance,
		&c.RenewedFromID, &c.CreatedAt, &c.UpdatedAt, &c.EmployeeName, &c.EmployeeCode,
	)
	return c, err
}

func collectContracts(rows pgx.Rows) ([]contract.Contract, error) {
	defer rows.Close()

	var contracts []contract.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		contracts = append(contracts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contracts: %w", err)
	}
	return contracts, nil
}

func (r *contractRepositoryImpl) Create(ctx context.Context, c contract.Contract) (contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO contracts (
			id, employee_id, type, start_date, end_date, auto_renew, status,
			base_salary, meal_allowance, transport_allowance, housing_allowance, other_allowance,
			renewed_from_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := q.Exec(ctx, query,
		c.ID, c.EmployeeID, c.Type, c.StartDate, c.EndDate, c.AutoRenew, c.Status,
		c.BaseSalary, c.MealAllowance, c.TransportAllowance, c.HousingAllowance, c.OtherAllowance,
		c.RenewedFromID,
	)
	if err != nil {
		if isUniqueViolation(err, "uq_contracts_one_active") {
			return contract.Contract{}, contract.ErrActiveContractExists
		}
		return contract.Contract{}, fmt.Errorf("failed to create contract: %w", err)
	}

	return r.GetByID(ctx, c.ID)
}

func (r *contractRepositoryImpl) GetByID(ctx context.Context, id string) (contract.Contract, error) {
	if !validator.IsValidUUID(id) {
		return contract.Contract{}, contract.ErrContractNotFound
	}

	q := GetQuerier(ctx, r.db)

	c, err := scanContract(q.QueryRow(ctx, `SELECT `+contractColumns+contractFrom+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contract.Contract{}, contract.ErrContractNotFound
		}
		return contract.Contract{}, fmt.Errorf("failed to get contract by id: %w", err)
	}
	return c, nil
}

func (r *contractRepositoryImpl) GetActiveByEmployeeID(ctx context.Context, employeeID string) (contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + contractColumns + contractFrom + ` WHERE c.employee_id = $1 AND c.status = $2`
	c, err := scanContract(q.QueryRow(ctx, query, employeeID, contract.StatusActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contract.Contract{}, contract.ErrNoActiveContract
		}
		return contract.Contract{}, fmt.Errorf("failed to get active contract: %w", err)
	}
	return c, nil
}

func (r *contractRepositoryImpl) ListByEmployeeID(ctx context.Context, employeeID string) ([]contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + contractColumns + contractFrom + ` WHERE c.employee_id = $1 ORDER BY c.start_date DESC, c.created_at DESC`
	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	return collectContracts(rows)
}

func (r *contractRepositoryImpl) ListActiveEndingBefore(ctx context.Context, asOf time.Time) ([]contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + contractColumns + contractFrom + `
		WHERE c.status = $1 AND c.end_date IS NOT NULL AND c.end_date < $2
		ORDER BY c.end_date, c.id`
	rows, err := q.Query(ctx, query, contract.StatusActive, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list expired contracts: %w", err)
	}
	return collectContracts(rows)
}

func (r *contractRepositoryImpl) ListActiveEndingBetween(ctx context.Context, from, to time.Time) ([]contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + contractColumns + contractFrom + `
		WHERE c.status = $1 AND c.end_date BETWEEN $2 AND $3
		ORDER BY c.end_date, e.full_name`
	rows, err := q.Query(ctx, query, contract.StatusActive, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring contracts: %w", err)
	}
	return collectContracts(rows)
}

// TransitionStatus is a compare-and-set on status; a concurrent transition makes it fail.
func (r *contractRepositoryImpl) TransitionStatus(ctx context.Context, id string, from, to contract.Status) error {
	if !contract.CanTransition(from, to) {
		return contract.ErrInvalidState
	}

	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE contracts SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`,
		to, id, from,
	)
	if err != nil {
		return fmt.Errorf("failed to transition contract status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return contract.ErrInvalidState
	}
	return nil
}
