package payroll

import (
	"context"
	"time"
)

type PayrollRepository interface {
	// LockPeriod serializes runs for the same period until the transaction ends.
	LockPeriod(ctx context.Context, month, year int) error
	// HasRecords reports whether any PROCESSED or PAID record exists for the period.
	HasRecords(ctx context.Context, month, year int) (bool, error)

	// Upsert writes the record keyed by (employee, month, year). PAID rows are never overwritten.
	Upsert(ctx context.Context, record Record) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	List(ctx context.Context, filter RecordFilter) ([]Record, int64, error)
	CountByStatus(ctx context.Context, month, year int) (map[RecordStatus]int, error)

	MarkPaid(ctx context.Context, month, year int, paidAt time.Time) (int64, error)
	DeleteProcessed(ctx context.Context, month, year int) (int64, error)
}
