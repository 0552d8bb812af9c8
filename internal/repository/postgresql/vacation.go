package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/vacation"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

type vacationRepositoryImpl struct {
	db *database.DB
}

func NewVacationRepository(db *database.DB) vacation.VacationRepository {
	return &vacationRepositoryImpl{db: db}
}

const vacationColumns = `v.id, v.employee_id, v.start_date, v.end_date, v.business_days, v.type, v.status,
	v.reason, v.decision_note, v.decided_at, v.created_at, v.updated_at, e.full_name`

func scanVacation(row pgx.Row) (vacation.Request, error) {
	var v vacation.Request
	err := row.Scan(
		&v.ID, &v.EmployeeID, &v.StartDate, &v.EndDate, &v.BusinessDays, &v.Type, &v.Status,
		&v.Reason, &v.DecisionNote, &v.DecidedAt, &v.CreatedAt, &v.UpdatedAt, &v.EmployeeName,
	)
	return v, err
}

func (r *vacationRepositoryImpl) Create(ctx context.Context, req vacation.Request) (vacation.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO vacation_requests (id, employee_id, start_date, end_date, business_days, type, status, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := q.Exec(ctx, query,
		req.ID, req.EmployeeID, req.StartDate, req.EndDate, req.BusinessDays, req.Type, req.Status, req.Reason,
	); err != nil {
		return vacation.Request{}, fmt.Errorf("failed to create vacation request: %w", err)
	}
	return r.GetByID(ctx, req.ID)
}

func (r *vacationRepositoryImpl) GetByID(ctx context.Context, id string) (vacation.Request, error) {
	if !validator.IsValidUUID(id) {
		return vacation.Request{}, vacation.ErrVacationNotFound
	}

	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + vacationColumns + ` FROM vacation_requests v JOIN employees e ON e.id = v.employee_id WHERE v.id = $1`
	v, err := scanVacation(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return vacation.Request{}, vacation.ErrVacationNotFound
		}
		return vacation.Request{}, fmt.Errorf("failed to get vacation request: %w", err)
	}
	return v, nil
}

func (r *vacationRepositoryImpl) ListByEmployeeID(ctx context.Context, employeeID string) ([]vacation.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + vacationColumns + `
		FROM vacation_requests v JOIN employees e ON e.id = v.employee_id
		WHERE v.employee_id = $1
		ORDER BY v.start_date DESC`
	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vacation requests: %w", err)
	}
	defer rows.Close()

	var requests []vacation.Request
	for rows.Next() {
		v, err := scanVacation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vacation request: %w", err)
		}
		requests = append(requests, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vacation requests: %w", err)
	}
	return requests, nil
}

func (r *vacationRepositoryImpl) Decide(ctx context.Context, id string, status vacation.Status, note *string) (vacation.Request, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE vacation_requests
		SET status = $1, decision_note = $2, decided_at = NOW(), updated_at = NOW()
		WHERE id = $3 AND status = $4
	`, status, note, id, vacation.StatusPending)
	if err != nil {
		return vacation.Request{}, fmt.Errorf("failed to decide vacation request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return vacation.Request{}, err
		}
		return vacation.Request{}, vacation.ErrInvalidState
	}
	return r.GetByID(ctx, id)
}
