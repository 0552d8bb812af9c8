package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

// payrollLockNamespace is the first key of the period advisory lock.
const payrollLockNamespace = 7301

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

const payrollRecordColumns = `p.id, p.employee_id, p.contract_id, p.month, p.year,
	p.base_salary, p.taxable_allowances, p.exempt_allowances,
	p.normal_overtime_hours, p.rest_overtime_hours, p.night_hours, p.overtime_pay,
	p.unjustified_absences, p.absence_deduction, p.gross_pay,
	p.social_security_base, p.employee_contribution, p.employer_contribution,
	p.tax_base, p.tax_withheld, p.net_pay, p.status, p.paid_at, p.created_at, p.updated_at,
	e.full_name, e.employee_code`

const payrollRecordFrom = ` FROM payroll_records p JOIN employees e ON e.id = p.employee_id`

func scanPayrollRecord(row pgx.Row) (payroll.Record, error) {
	var r payroll.Record
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.ContractID, &r.Month, &r.Year,
		&r.BaseSalary, &r.TaxableAllowances, &r.ExemptAllowances,
		&r.NormalOvertimeHours, &r.RestOvertimeHours, &r.NightHours, &r.OvertimePay,
		&r.UnjustifiedAbsences, &r.AbsenceDeduction, &r.GrossPay,
		&r.SocialSecurityBase, &r.EmployeeContribution, &r.EmployerContribution,
		&r.TaxBase, &r.TaxWithheld, &r.NetPay, &r.Status, &r.PaidAt, &r.CreatedAt, &r.UpdatedAt,
		&r.EmployeeName, &r.EmployeeCode,
	)
	return r, err
}

// LockPeriod takes a transaction-scoped advisory lock keyed by the period.
// It must run inside WithinTx; outside a transaction the lock is released immediately.
func (r *payrollRepositoryImpl) LockPeriod(ctx context.Context, month, year int) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, int32(payrollLockNamespace), int32(year*100+month)); err != nil {
		return fmt.Errorf("failed to lock payroll period: %w", err)
	}
	return nil
}

func (r *payrollRepositoryImpl) HasRecords(ctx context.Context, month, year int) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM payroll_records WHERE month = $1 AND year = $2)`,
		month, year,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check payroll records: %w", err)
	}
	return exists, nil
}

func (r *payrollRepositoryImpl) Upsert(ctx context.Context, record payroll.Record) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			id, employee_id, contract_id, month, year,
			base_salary, taxable_allowances, exempt_allowances,
			normal_overtime_hours, rest_overtime_hours, night_hours, overtime_pay,
			unjustified_absences, absence_deduction, gross_pay,
			social_security_base, employee_contribution, employer_contribution,
			tax_base, tax_withheld, net_pay, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		ON CONFLICT (employee_id, month, year) DO UPDATE SET
			contract_id = EXCLUDED.contract_id,
			base_salary = EXCLUDED.base_salary,
			taxable_allowances = EXCLUDED.taxable_allowances,
			exempt_allowances = EXCLUDED.exempt_allowances,
			normal_overtime_hours = EXCLUDED.normal_overtime_hours,
			rest_overtime_hours = EXCLUDED.rest_overtime_hours,
			night_hours = EXCLUDED.night_hours,
			overtime_pay = EXCLUDED.overtime_pay,
			unjustified_absences = EXCLUDED.unjustified_absences,
			absence_deduction = EXCLUDED.absence_deduction,
			gross_pay = EXCLUDED.gross_pay,
			social_security_base = EXCLUDED.social_security_base,
			employee_contribution = EXCLUDED.employee_contribution,
			employer_contribution = EXCLUDED.employer_contribution,
			tax_base = EXCLUDED.tax_base,
			tax_withheld = EXCLUDED.tax_withheld,
			net_pay = EXCLUDED.net_pay,
			status = EXCLUDED.status,
			updated_at = NOW()
		WHERE payroll_records.status <> 'PAID'
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.ContractID, record.Month, record.Year,
		record.BaseSalary, record.TaxableAllowances, record.ExemptAllowances,
		record.NormalOvertimeHours, record.RestOvertimeHours, record.NightHours, record.OvertimePay,
		record.UnjustifiedAbsences, record.AbsenceDeduction, record.GrossPay,
		record.SocialSecurityBase, record.EmployeeContribution, record.EmployerContribution,
		record.TaxBase, record.TaxWithheld, record.NetPay, record.Status,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Record{}, payroll.ErrPayrollRecordAlreadyPaid
		}
		return payroll.Record{}, fmt.Errorf("failed to upsert payroll record: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *payrollRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.Record, error) {
	if !validator.IsValidUUID(id) {
		return payroll.Record{}, payroll.ErrPayrollRecordNotFound
	}

	q := GetQuerier(ctx, r.db)

	rec, err := scanPayrollRecord(q.QueryRow(ctx, `SELECT `+payrollRecordColumns+payrollRecordFrom+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Record{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to get payroll record: %w", err)
	}
	return rec, nil
}

func (r *payrollRepositoryImpl) List(ctx context.Context, filter payroll.RecordFilter) ([]payroll.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := payrollRecordFrom + ` WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		baseQuery += fmt.Sprintf(" AND p.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Month != nil {
		baseQuery += fmt.Sprintf(" AND p.month = $%d", argIdx)
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.Year != nil {
		baseQuery += fmt.Sprintf(" AND p.year = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}
	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND p.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var totalCount int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+baseQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	selectQuery := fmt.Sprintf(`SELECT %s%s ORDER BY p.year DESC, p.month DESC, e.full_name LIMIT $%d OFFSET $%d`,
		payrollRecordColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.Record
	for rows.Next() {
		rec, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate payroll records: %w", err)
	}
	return records, totalCount, nil
}

func (r *payrollRepositoryImpl) CountByStatus(ctx context.Context, month, year int) (map[payroll.RecordStatus]int, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT status, COUNT(*) FROM payroll_records WHERE month = $1 AND year = $2 GROUP BY status`,
		month, year,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count payroll records by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[payroll.RecordStatus]int)
	for rows.Next() {
		var status payroll.RecordStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan payroll status count: %w", err)
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll status counts: %w", err)
	}
	return counts, nil
}

func (r *payrollRepositoryImpl) MarkPaid(ctx context.Context, month, year int, paidAt time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE payroll_records
		SET status = $1, paid_at = $2, updated_at = NOW()
		WHERE month = $3 AND year = $4 AND status = $5
	`, payroll.RecordStatusPaid, paidAt, month, year, payroll.RecordStatusProcessed)
	if err != nil {
		return 0, fmt.Errorf("failed to mark payroll records as paid: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *payrollRepositoryImpl) DeleteProcessed(ctx context.Context, month, year int) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM payroll_records WHERE month = $1 AND year = $2 AND status = $3`,
		month, year, payroll.RecordStatusProcessed,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete processed payroll records: %w", err)
	}
	return tag.RowsAffected(), nil
}
