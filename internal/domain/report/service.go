package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	SocialSecurityMap(ctx context.Context, req PeriodRequest) (SocialSecurityMap, error)
	IncomeTaxMap(ctx context.Context, req PeriodRequest) (IncomeTaxMap, error)
	VacationMap(ctx context.Context, req PeriodRequest) (VacationMap, error)
	AbsenceReport(ctx context.Context, req PeriodRequest) (AbsenceReport, error)
	PayrollSummary(ctx context.Context, req PeriodRequest) (PayrollSummary, error)
}
