package report

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/report"
)

type ReportServiceImpl struct {
	reportRepo report.ReportRepository
	now        func() time.Time
}

func NewReportService(reportRepo report.ReportRepository) report.ReportService {
	return &ReportServiceImpl{
		reportRepo: reportRepo,
		now:        time.Now,
	}
}

func (s *ReportServiceImpl) period(req report.PeriodRequest) report.Period {
	return report.NewPeriod(req.Month, req.Year, s.now().UTC())
}

// SocialSecurityMap lists per-employee contribution base and shares with totals.
func (s *ReportServiceImpl) SocialSecurityMap(ctx context.Context, req report.PeriodRequest) (report.SocialSecurityMap, error) {
	if err := req.Validate(); err != nil {
		return report.SocialSecurityMap{}, err
	}

	rows, err := s.reportRepo.GetSocialSecurityRows(ctx, req.Month, req.Year)
	if err != nil {
		return report.SocialSecurityMap{}, fmt.Errorf("failed to get social security data: %w", err)
	}
	return report.BuildSocialSecurityMap(s.period(req), rows), nil
}

// IncomeTaxMap lists per-employee gross, taxable base and withheld tax.
func (s *ReportServiceImpl) IncomeTaxMap(ctx context.Context, req report.PeriodRequest) (report.IncomeTaxMap, error) {
	if err := req.Validate(); err != nil {
		return report.IncomeTaxMap{}, err
	}

	rows, err := s.reportRepo.GetIncomeTaxRows(ctx, req.Month, req.Year)
	if err != nil {
		return report.IncomeTaxMap{}, fmt.Errorf("failed to get income tax data: %w", err)
	}
	return report.BuildIncomeTaxMap(s.period(req), rows), nil
}

func (s *ReportServiceImpl) VacationMap(ctx context.Context, req report.PeriodRequest) (report.VacationMap, error) {
	if err := req.Validate(); err != nil {
		return report.VacationMap{}, err
	}

	rows, err := s.reportRepo.GetVacationRows(ctx, req.Month, req.Year)
	if err != nil {
		return report.VacationMap{}, fmt.Errorf("failed to get vacation data: %w", err)
	}
	return report.BuildVacationMap(s.period(req), rows), nil
}

func (s *ReportServiceImpl) AbsenceReport(ctx context.Context, req report.PeriodRequest) (report.AbsenceReport, error) {
	if err := req.Validate(); err != nil {
		return report.AbsenceReport{}, err
	}

	rows, err := s.reportRepo.GetAbsenceRows(ctx, req.Month, req.Year)
	if err != nil {
		return report.AbsenceReport{}, fmt.Errorf("failed to get absence data: %w", err)
	}
	return report.BuildAbsenceReport(s.period(req), rows), nil
}

func (s *ReportServiceImpl) PayrollSummary(ctx context.Context, req report.PeriodRequest) (report.PayrollSummary, error) {
	if err := req.Validate(); err != nil {
		return report.PayrollSummary{}, err
	}

	totals, err := s.reportRepo.GetPayrollStatusTotals(ctx, req.Month, req.Year)
	if err != nil {
		return report.PayrollSummary{}, fmt.Errorf("failed to get payroll totals: %w", err)
	}
	return report.BuildPayrollSummary(s.period(req), totals), nil
}
