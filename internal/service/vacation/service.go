package vacation

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/vacation"
	"github.com/google/uuid"
)

type VacationServiceImpl struct {
	vacationRepo vacation.VacationRepository
	employeeRepo employee.EmployeeRepository
}

func NewVacationService(vacationRepo vacation.VacationRepository, employeeRepo employee.EmployeeRepository) vacation.VacationService {
	return &VacationServiceImpl{
		vacationRepo: vacationRepo,
		employeeRepo: employeeRepo,
	}
}

func (s *VacationServiceImpl) Submit(ctx context.Context, req vacation.SubmitVacationRequest) (vacation.VacationResponse, error) {
	if err := req.Validate(); err != nil {
		return vacation.VacationResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return vacation.VacationResponse{}, err
	}

	days := vacation.BusinessDaysBetween(req.ParsedStartDate, req.ParsedEndDate)
	if days == 0 {
		return vacation.VacationResponse{}, vacation.ErrNoBusinessDays
	}

	created, err := s.vacationRepo.Create(ctx, vacation.Request{
		ID:           uuid.Must(uuid.NewV7()).String(),
		EmployeeID:   req.EmployeeID,
		StartDate:    req.ParsedStartDate,
		EndDate:      req.ParsedEndDate,
		BusinessDays: days,
		Type:         vacation.Type(req.Type),
		Status:       vacation.StatusPending,
		Reason:       req.Reason,
	})
	if err != nil {
		return vacation.VacationResponse{}, err
	}
	created.EmployeeName = &emp.FullName

	slog.Info("Vacation request submitted", "vacation_id", created.ID, "employee_id", created.EmployeeID, "business_days", days)
	return vacation.ToResponse(created), nil
}

func (s *VacationServiceImpl) Approve(ctx context.Context, id string, req vacation.DecisionRequest) (vacation.VacationResponse, error) {
	return s.decide(ctx, id, vacation.StatusApproved, req)
}

func (s *VacationServiceImpl) Reject(ctx context.Context, id string, req vacation.DecisionRequest) (vacation.VacationResponse, error) {
	return s.decide(ctx, id, vacation.StatusRejected, req)
}

func (s *VacationServiceImpl) decide(ctx context.Context, id string, status vacation.Status, req vacation.DecisionRequest) (vacation.VacationResponse, error) {
	current, err := s.vacationRepo.GetByID(ctx, id)
	if err != nil {
		return vacation.VacationResponse{}, err
	}
	if current.Status != vacation.StatusPending {
		return vacation.VacationResponse{}, vacation.ErrInvalidState
	}

	decided, err := s.vacationRepo.Decide(ctx, id, status, req.Note)
	if err != nil {
		return vacation.VacationResponse{}, err
	}

	slog.Info("Vacation request decided", "vacation_id", id, "status", status)
	return vacation.ToResponse(decided), nil
}

func (s *VacationServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]vacation.VacationResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	requests, err := s.vacationRepo.ListByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]vacation.VacationResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, vacation.ToResponse(r))
	}
	return responses, nil
}
