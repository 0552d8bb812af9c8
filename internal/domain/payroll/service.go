package payroll

import (
	"context"
	"io"
)

type PayrollService interface {
	RunPayroll(ctx context.Context, req RunPayrollRequest) (RunResult, error)
	MarkPaid(ctx context.Context, req PeriodRequest) (PeriodActionResponse, error)
	ResetPeriod(ctx context.Context, req PeriodRequest) (PeriodActionResponse, error)

	ListRecords(ctx context.Context, filter RecordFilter) (ListRecordResponse, error)
	GetRecord(ctx context.Context, id string) (RecordResponse, error)
	RenderPayslip(ctx context.Context, id string, w io.Writer) error
}

// RunNotifier is told about every completed payroll run.
type RunNotifier interface {
	NotifyPayrollRun(ctx context.Context, result RunResult) error
}
