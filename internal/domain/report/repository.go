package report

import "context"

// ReportRepository defines the interface for report data access
type ReportRepository interface {
	GetSocialSecurityRows(ctx context.Context, month, year int) ([]SocialSecurityRow, error)
	GetIncomeTaxRows(ctx context.Context, month, year int) ([]IncomeTaxRow, error)
	// GetVacationRows returns approved vacations overlapping the month.
	GetVacationRows(ctx context.Context, month, year int) ([]VacationRow, error)
	GetAbsenceRows(ctx context.Context, month, year int) ([]AbsenceRow, error)
	GetPayrollStatusTotals(ctx context.Context, month, year int) ([]StatusTotals, error)
}
