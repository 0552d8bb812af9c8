package attendance

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/google/uuid"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
	}
}

func (a *AttendanceServiceImpl) RecordAttendance(ctx context.Context, req attendance.RecordAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := a.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	saved, err := a.attendanceRepo.Upsert(ctx, attendance.Record{
		ID:               uuid.Must(uuid.NewV7()).String(),
		EmployeeID:       req.EmployeeID,
		Date:             req.ParsedDate,
		ClockIn:          req.ParsedClockIn,
		ClockOut:         req.ParsedClockOut,
		Status:           attendance.Status(req.Status),
		NormalHours:      req.NormalHours,
		Overtime50Hours:  req.Overtime50Hours,
		Overtime100Hours: req.Overtime100Hours,
		NightHours:       req.NightHours,
		Note:             req.Note,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Debug("Attendance recorded", "employee_id", saved.EmployeeID, "date", req.Date, "status", saved.Status)
	return attendance.ToResponse(saved), nil
}

func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, employeeID string, month, year int) ([]attendance.AttendanceResponse, error) {
	if err := (attendance.PeriodQuery{Month: month, Year: year}).Validate(); err != nil {
		return nil, err
	}

	records, err := a.attendanceRepo.ListByEmployeePeriod(ctx, employeeID, month, year)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.ToResponse(r))
	}
	return responses, nil
}

// MonthlyTotals reduces the employee's attendance for the month to payroll totals.
func (a *AttendanceServiceImpl) MonthlyTotals(ctx context.Context, employeeID string, month, year int) (attendance.TotalsResponse, error) {
	if err := (attendance.PeriodQuery{Month: month, Year: year}).Validate(); err != nil {
		return attendance.TotalsResponse{}, err
	}

	records, err := a.attendanceRepo.ListByEmployeePeriod(ctx, employeeID, month, year)
	if err != nil {
		return attendance.TotalsResponse{}, err
	}
	return attendance.ToTotalsResponse(attendance.Aggregate(employeeID, records, month, year)), nil
}
