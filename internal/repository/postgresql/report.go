package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/report"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/vacation"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

func (r *reportRepositoryImpl) GetSocialSecurityRows(ctx context.Context, month, year int) ([]report.SocialSecurityRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.employee_code, e.full_name, e.social_security_number,
			p.social_security_base, p.employee_contribution, p.employer_contribution
		FROM payroll_records p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.month = $1 AND p.year = $2
		ORDER BY e.employee_code
	`
	rows, err := q.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query social security rows: %w", err)
	}
	defer rows.Close()

	var result []report.SocialSecurityRow
	for rows.Next() {
		var row report.SocialSecurityRow
		if err := rows.Scan(
			&row.EmployeeID, &row.EmployeeCode, &row.EmployeeName, &row.SocialSecurityNumber,
			&row.Base, &row.EmployeeShare, &row.EmployerShare,
		); err != nil {
			return nil, fmt.Errorf("failed to scan social security row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate social security rows: %w", err)
	}
	return result, nil
}

func (r *reportRepositoryImpl) GetIncomeTaxRows(ctx context.Context, month, year int) ([]report.IncomeTaxRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.employee_code, e.full_name, e.tax_id,
			p.gross_pay, p.tax_base, p.tax_withheld
		FROM payroll_records p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.month = $1 AND p.year = $2
		ORDER BY e.employee_code
	`
	rows, err := q.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query income tax rows: %w", err)
	}
	defer rows.Close()

	var result []report.IncomeTaxRow
	for rows.Next() {
		var row report.IncomeTaxRow
		if err := rows.Scan(
			&row.EmployeeID, &row.EmployeeCode, &row.EmployeeName, &row.TaxID,
			&row.GrossPay, &row.TaxBase, &row.TaxWithheld,
		); err != nil {
			return nil, fmt.Errorf("failed to scan income tax row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate income tax rows: %w", err)
	}
	return result, nil
}

func (r *reportRepositoryImpl) GetVacationRows(ctx context.Context, month, year int) ([]report.VacationRow, error) {
	q := GetQuerier(ctx, r.db)
	from, to := attendance.MonthRange(month, year)

	query := `
		SELECT e.id, e.employee_code, e.full_name, v.start_date, v.end_date, v.business_days, v.type
		FROM vacation_requests v
		JOIN employees e ON e.id = v.employee_id
		WHERE v.status = $1 AND v.start_date < $3 AND v.end_date >= $2
		ORDER BY v.start_date, e.employee_code
	`
	rows, err := q.Query(ctx, query, vacation.StatusApproved, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query vacation rows: %w", err)
	}
	defer rows.Close()

	var result []report.VacationRow
	for rows.Next() {
		var row report.VacationRow
		if err := rows.Scan(
			&row.EmployeeID, &row.EmployeeCode, &row.EmployeeName,
			&row.StartDate, &row.EndDate, &row.BusinessDays, &row.Type,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vacation row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vacation rows: %w", err)
	}
	return result, nil
}

func (r *reportRepositoryImpl) GetAbsenceRows(ctx context.Context, month, year int) ([]report.AbsenceRow, error) {
	q := GetQuerier(ctx, r.db)
	from, to := attendance.MonthRange(month, year)

	query := `
		SELECT a.date, e.id, e.employee_code, e.full_name, a.status, a.note
		FROM attendance_records a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.date >= $1 AND a.date < $2 AND a.status IN ($3, $4)
		ORDER BY a.date, e.employee_code
	`
	rows, err := q.Query(ctx, query, from, to, attendance.StatusJustifiedAbsence, attendance.StatusUnjustifiedAbsence)
	if err != nil {
		return nil, fmt.Errorf("failed to query absence rows: %w", err)
	}
	defer rows.Close()

	var result []report.AbsenceRow
	for rows.Next() {
		var row report.AbsenceRow
		if err := rows.Scan(
			&row.Date, &row.EmployeeID, &row.EmployeeCode, &row.EmployeeName, &row.Classification, &row.Note,
		); err != nil {
			return nil, fmt.Errorf("failed to scan absence row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate absence rows: %w", err)
	}
	return result, nil
}

func (r *reportRepositoryImpl) GetPayrollStatusTotals(ctx context.Context, month, year int) ([]report.StatusTotals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT status, COUNT(*),
			COALESCE(SUM(gross_pay), 0), COALESCE(SUM(net_pay), 0),
			COALESCE(SUM(employee_contribution), 0), COALESCE(SUM(employer_contribution), 0),
			COALESCE(SUM(tax_withheld), 0)
		FROM payroll_records
		WHERE month = $1 AND year = $2
		GROUP BY status
		ORDER BY status
	`
	rows, err := q.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll totals: %w", err)
	}
	defer rows.Close()

	var result []report.StatusTotals
	for rows.Next() {
		var row report.StatusTotals
		if err := rows.Scan(
			&row.Status, &row.Count, &row.Gross, &row.Net, &row.EmployeeSS, &row.EmployerSS, &row.Tax,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll totals: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll totals: %w", err)
	}
	return result, nil
}
