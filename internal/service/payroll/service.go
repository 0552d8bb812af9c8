package payroll

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/contract"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/contribution"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/payslip"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type PayrollServiceImpl struct {
	db               database.Transactor
	payrollRepo      payroll.PayrollRepository
	employeeRepo     employee.EmployeeRepository
	contractRepo     contract.ContractRepository
	attendanceRepo   attendance.AttendanceRepository
	contributionRepo contribution.ContributionRepository
	notifier         payroll.RunNotifier
	workers          int
	now              func() time.Time
}

func NewPayrollService(
	db database.Transactor,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	contractRepo contract.ContractRepository,
	attendanceRepo attendance.AttendanceRepository,
	contributionRepo contribution.ContributionRepository,
	notifier payroll.RunNotifier,
	workers int,
) payroll.PayrollService {
	if workers < 1 {
		workers = 1
	}
	return &PayrollServiceImpl{
		db:               db,
		payrollRepo:      payrollRepo,
		employeeRepo:     employeeRepo,
		contractRepo:     contractRepo,
		attendanceRepo:   attendanceRepo,
		contributionRepo: contributionRepo,
		notifier:         notifier,
		workers:          workers,
		now:              time.Now,
	}
}

// outcome is the per-employee result of the calculation phase.
type outcome struct {
	employee employee.Employee
	record   payroll.Record
	err      error
}

// RunPayroll calculates and stores one PROCESSED record per active employee.
//
// The whole run holds a transaction-scoped advisory lock for the period, so the
// AlreadyProcessed guard and the writes are atomic with respect to concurrent runs.
// Employees without an active contract or with invalid terms are skipped and reported.
func (s *PayrollServiceImpl) RunPayroll(ctx context.Context, req payroll.RunPayrollRequest) (payroll.RunResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.RunResult{}, err
	}

	start := time.Now()
	slog.Info("Payroll run starting", "month", req.Month, "year", req.Year, "workers", s.workers)

	result := payroll.RunResult{
		Month:     req.Month,
		Year:      req.Year,
		Processed: []payroll.RecordSummary{},
		Skipped:   []payroll.SkippedEmployee{},
		TotalNet:  decimal.Zero,
	}

	err := s.db.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.payrollRepo.LockPeriod(txCtx, req.Month, req.Year); err != nil {
			return err
		}

		processed, err := s.payrollRepo.HasRecords(txCtx, req.Month, req.Year)
		if err != nil {
			return err
		}
		if processed {
			return payroll.ErrAlreadyProcessed
		}

		cfg, err := s.contributionRepo.GetByPeriod(txCtx, req.Month, req.Year)
		if err != nil {
			if errors.Is(err, contribution.ErrConfigNotFound) {
				return fmt.Errorf("%w: %02d/%d", payroll.ErrMissingConfiguration, req.Month, req.Year)
			}
			return err
		}

		employees, err := s.employeeRepo.ListActive(txCtx)
		if err != nil {
			return err
		}

		// Reads in the calculation phase go through the pool, not the transaction.
		outcomes, err := s.calculateAll(ctx, employees, cfg, req.Month, req.Year)
		if err != nil {
			return err
		}

		for _, o := range outcomes {
			if o.err != nil {
				slog.Warn("Employee skipped in payroll run",
					"employee_id", o.employee.ID,
					"month", req.Month,
					"year", req.Year,
					"reason", o.err,
				)
				result.Skipped = append(result.Skipped, payroll.SkippedEmployee{
					EmployeeID:   o.employee.ID,
					EmployeeName: o.employee.FullName,
					Reason:       o.err.Error(),
				})
				continue
			}

			saved, err := s.payrollRepo.Upsert(txCtx, o.record)
			if err != nil {
				return fmt.Errorf("failed to save payroll record for employee %s: %w", o.employee.ID, err)
			}
			result.Processed = append(result.Processed, payroll.RecordSummary{
				RecordID:     saved.ID,
				EmployeeID:   o.employee.ID,
				EmployeeName: o.employee.FullName,
				GrossPay:     saved.GrossPay,
				NetPay:       saved.NetPay,
			})
			result.TotalNet = result.TotalNet.Add(saved.NetPay)
		}
		return nil
	})
	if err != nil {
		slog.Error("Payroll run failed", "month", req.Month, "year", req.Year, "error", err)
		return payroll.RunResult{}, err
	}

	slog.Info("Payroll run completed",
		"month", req.Month,
		"year", req.Year,
		"processed", len(result.Processed),
		"skipped", len(result.Skipped),
		"total_net", result.TotalNet.String(),
		"duration", time.Since(start),
	)

	if s.notifier != nil {
		if err := s.notifier.NotifyPayrollRun(ctx, result); err != nil {
			slog.Error("Failed to send payroll run notification", "month", req.Month, "year", req.Year, "error", err)
		}
	}

	return result, nil
}

// calculateAll fans the per-employee calculation out over a bounded worker group.
// Per-employee failures are kept in the outcome; only cancellation aborts.
func (s *PayrollServiceImpl) calculateAll(ctx context.Context, employees []employee.Employee, cfg contribution.Config, month, year int) ([]outcome, error) {
	outcomes := make([]outcome, len(employees))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, emp := range employees {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			record, err := s.calculateOne(gctx, emp, cfg, month, year)
			outcomes[i] = outcome{employee: emp, record: record, err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (s *PayrollServiceImpl) calculateOne(ctx context.Context, emp employee.Employee, cfg contribution.Config, month, year int) (payroll.Record, error) {
	c, err := s.contractRepo.GetActiveByEmployeeID(ctx, emp.ID)
	if err != nil {
		if errors.Is(err, contract.ErrNoActiveContract) {
			return payroll.Record{}, payroll.ErrMissingContract
		}
		return payroll.Record{}, err
	}

	records, err := s.attendanceRepo.ListByEmployeePeriod(ctx, emp.ID, month, year)
	if err != nil {
		return payroll.Record{}, err
	}
	totals := attendance.Aggregate(emp.ID, records, month, year)

	taxable, exempt := c.AllowanceTotals()
	in := payroll.CalculationInput{
		BaseSalary:          c.BaseSalary,
		TaxableAllowances:   taxable,
		ExemptAllowances:    exempt,
		NormalOvertimeHours: totals.NormalOvertimeHours,
		RestOvertimeHours:   totals.RestOvertimeHours,
		NightHours:          totals.NightHours,
		UnjustifiedAbsences: totals.UnjustifiedAbsences,
	}

	breakdown, err := payroll.Calculate(in, cfg)
	if err != nil {
		return payroll.Record{}, fmt.Errorf("contract %s: %w", c.ID, err)
	}

	record := payroll.NewRecord(emp.ID, c.ID, month, year, in, breakdown)
	record.ID = uuid.Must(uuid.NewV7()).String()
	return record, nil
}

// MarkPaid moves every PROCESSED record of the period to PAID.
func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, req payroll.PeriodRequest) (payroll.PeriodActionResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PeriodActionResponse{}, err
	}

	var affected int64
	err := s.db.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.payrollRepo.LockPeriod(txCtx, req.Month, req.Year); err != nil {
			return err
		}
		n, err := s.payrollRepo.MarkPaid(txCtx, req.Month, req.Year, s.now().UTC())
		if err != nil {
			return err
		}
		if n == 0 {
			return payroll.ErrNothingToPay
		}
		affected = n
		return nil
	})
	if err != nil {
		return payroll.PeriodActionResponse{}, err
	}

	slog.Info("Payroll period marked paid", "month", req.Month, "year", req.Year, "records", affected)
	return payroll.PeriodActionResponse{Month: req.Month, Year: req.Year, Affected: affected}, nil
}

// ResetPeriod deletes the period's PROCESSED records so the run can be repeated.
// A period with any PAID record cannot be reset.
func (s *PayrollServiceImpl) ResetPeriod(ctx context.Context, req payroll.PeriodRequest) (payroll.PeriodActionResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PeriodActionResponse{}, err
	}

	var affected int64
	err := s.db.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.payrollRepo.LockPeriod(txCtx, req.Month, req.Year); err != nil {
			return err
		}
		counts, err := s.payrollRepo.CountByStatus(txCtx, req.Month, req.Year)
		if err != nil {
			return err
		}
		if counts[payroll.RecordStatusPaid] > 0 {
			return payroll.ErrPayrollRecordAlreadyPaid
		}
		affected, err = s.payrollRepo.DeleteProcessed(txCtx, req.Month, req.Year)
		return err
	})
	if err != nil {
		return payroll.PeriodActionResponse{}, err
	}

	slog.Warn("Payroll period reset", "month", req.Month, "year", req.Year, "deleted", affected)
	return payroll.PeriodActionResponse{Month: req.Month, Year: req.Year, Affected: affected}, nil
}

func (s *PayrollServiceImpl) ListRecords(ctx context.Context, filter payroll.RecordFilter) (payroll.ListRecordResponse, error) {
	if err := filter.Normalize(); err != nil {
		return payroll.ListRecordResponse{}, err
	}

	records, total, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListRecordResponse{}, err
	}

	responses := make([]payroll.RecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, payroll.ToResponse(r))
	}

	return payroll.ListRecordResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Records:    responses,
	}, nil
}

func (s *PayrollServiceImpl) GetRecord(ctx context.Context, id string) (payroll.RecordResponse, error) {
	r, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return payroll.ToResponse(r), nil
}

// RenderPayslip writes the PDF payslip of a stored record to w.
func (s *PayrollServiceImpl) RenderPayslip(ctx context.Context, id string, w io.Writer) error {
	r, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	emp, err := s.employeeRepo.GetByID(ctx, r.EmployeeID)
	if err != nil {
		return err
	}

	return payslip.Render(w, payslip.Data{
		EmployeeName:         emp.FullName,
		EmployeeCode:         emp.EmployeeCode,
		IBAN:                 emp.IBAN,
		SocialSecurityNumber: emp.SocialSecurityNumber,
		TaxID:                emp.TaxID,
		Month:                r.Month,
		Year:                 r.Year,
		Status:               string(r.Status),
		Earnings: []payslip.Line{
			{Label: "Base salary", Amount: r.BaseSalary},
			{Label: "Taxable allowances", Amount: r.TaxableAllowances},
			{Label: "Exempt allowances", Amount: r.ExemptAllowances},
			{Label: "Overtime pay", Amount: r.OvertimePay},
		},
		Deductions: []payslip.Line{
			{Label: fmt.Sprintf("Unjustified absences (%d days)", r.UnjustifiedAbsences), Amount: r.AbsenceDeduction},
			{Label: "Social security (employee)", Amount: r.EmployeeContribution},
			{Label: "Income tax withheld", Amount: r.TaxWithheld},
		},
		EmployerContribution: r.EmployerContribution,
		GrossPay:             r.GrossPay,
		NetPay:               r.NetPay,
		GeneratedAt:          s.now(),
	})
}
