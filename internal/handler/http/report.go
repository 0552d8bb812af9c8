package http

import (
	"net/http"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/report"
	"github.com/cmlabs-hris/payroll-engine/internal/handler/http/response"
)

// ReportHandler defines the interface for report HTTP handlers
type ReportHandler interface {
	GetSocialSecurityMap(w http.ResponseWriter, r *http.Request)
	GetIncomeTaxMap(w http.ResponseWriter, r *http.Request)
	GetVacationMap(w http.ResponseWriter, r *http.Request)
	GetAbsenceReport(w http.ResponseWriter, r *http.Request)
	GetPayrollSummary(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// GetSocialSecurityMap handles GET /reports/social-security
func (h *reportHandlerImpl) GetSocialSecurityMap(w http.ResponseWriter, r *http.Request) {
	req, ok := reportPeriod(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.SocialSecurityMap(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetIncomeTaxMap handles GET /reports/income-tax
func (h *reportHandlerImpl) GetIncomeTaxMap(w http.ResponseWriter, r *http.Request) {
	req, ok := reportPeriod(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.IncomeTaxMap(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetVacationMap handles GET /reports/vacations
func (h *reportHandlerImpl) GetVacationMap(w http.ResponseWriter, r *http.Request) {
	req, ok := reportPeriod(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.VacationMap(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetAbsenceReport handles GET /reports/absences
func (h *reportHandlerImpl) GetAbsenceReport(w http.ResponseWriter, r *http.Request) {
	req, ok := reportPeriod(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.AbsenceReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetPayrollSummary handles GET /reports/payroll-summary
func (h *reportHandlerImpl) GetPayrollSummary(w http.ResponseWriter, r *http.Request) {
	req, ok := reportPeriod(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.PayrollSummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func reportPeriod(w http.ResponseWriter, r *http.Request) (report.PeriodRequest, bool) {
	month, year, ok := periodFromQuery(r)
	if !ok {
		response.BadRequest(w, "invalid month or year parameter", nil)
		return report.PeriodRequest{}, false
	}
	return report.PeriodRequest{Month: month, Year: year}, true
}
