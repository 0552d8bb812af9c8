package attendance

import "context"

type AttendanceRepository interface {
	// Upsert inserts or replaces the row for (employee, date).
	Upsert(ctx context.Context, record Record) (Record, error)
	ListByEmployeePeriod(ctx context.Context, employeeID string, month, year int) ([]Record, error)
}
