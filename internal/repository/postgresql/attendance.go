package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

func (r *attendanceRepositoryImpl) Upsert(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			id, employee_id, date, clock_in, clock_out, status,
			normal_hours, overtime_50_hours, overtime_100_hours, night_hours, note
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			clock_in = EXCLUDED.clock_in,
			clock_out = EXCLUDED.clock_out,
			status = EXCLUDED.status,
			normal_hours = EXCLUDED.normal_hours,
			overtime_50_hours = EXCLUDED.overtime_50_hours,
			overtime_100_hours = EXCLUDED.overtime_100_hours,
			night_hours = EXCLUDED.night_hours,
			note = EXCLUDED.note,
			updated_at = NOW()
		RETURNING id, employee_id, date, clock_in, clock_out, status,
			normal_hours, overtime_50_hours, overtime_100_hours, night_hours, note, created_at, updated_at
	`

	var saved attendance.Record
	err := q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.Date, record.ClockIn, record.ClockOut, record.Status,
		record.NormalHours, record.Overtime50Hours, record.Overtime100Hours, record.NightHours, record.Note,
	).Scan(
		&saved.ID, &saved.EmployeeID, &saved.Date, &saved.ClockIn, &saved.ClockOut, &saved.Status,
		&saved.NormalHours, &saved.Overtime50Hours, &saved.Overtime100Hours, &saved.NightHours, &saved.Note,
		&saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to upsert attendance record: %w", err)
	}
	return saved, nil
}

func (r *attendanceRepositoryImpl) ListByEmployeePeriod(ctx context.Context, employeeID string, month, year int) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)
	from, to := attendance.MonthRange(month, year)

	query := `
		SELECT id, employee_id, date, clock_in, clock_out, status,
			normal_hours, overtime_50_hours, overtime_100_hours, night_hours, note, created_at, updated_at
		FROM attendance_records
		WHERE employee_id = $1 AND date >= $2 AND date < $3
		ORDER BY date
	`
	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Date, &rec.ClockIn, &rec.ClockOut, &rec.Status,
			&rec.NormalHours, &rec.Overtime50Hours, &rec.Overtime100Hours, &rec.NightHours, &rec.Note,
			&rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}
	return records, nil
}
