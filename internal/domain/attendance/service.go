package attendance

import "context"

type AttendanceService interface {
	RecordAttendance(ctx context.Context, req RecordAttendanceRequest) (AttendanceResponse, error)
	ListAttendance(ctx context.Context, employeeID string, month, year int) ([]AttendanceResponse, error)
	MonthlyTotals(ctx context.Context, employeeID string, month, year int) (TotalsResponse, error)
}
