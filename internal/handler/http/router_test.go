package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/payroll-engine/internal/config"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type fakePayrollService struct {
	run    func(req payroll.RunPayrollRequest) (payroll.RunResult, error)
	reset  func(req payroll.PeriodRequest) (payroll.PeriodActionResponse, error)
	record func(id string) (payroll.RecordResponse, error)
}

func (f *fakePayrollService) RunPayroll(_ context.Context, req payroll.RunPayrollRequest) (payroll.RunResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.RunResult{}, err
	}
	return f.run(req)
}

func (f *fakePayrollService) MarkPaid(_ context.Context, req payroll.PeriodRequest) (payroll.PeriodActionResponse, error) {
	return payroll.PeriodActionResponse{Month: req.Month, Year: req.Year, Affected: 3}, nil
}

func (f *fakePayrollService) ResetPeriod(_ context.Context, req payroll.PeriodRequest) (payroll.PeriodActionResponse, error) {
	return f.reset(req)
}

func (f *fakePayrollService) ListRecords(_ context.Context, filter payroll.RecordFilter) (payroll.ListRecordResponse, error) {
	return payroll.ListRecordResponse{
		TotalCount: 12,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: 3,
		Records:    []payroll.RecordResponse{{ID: "rec-1", Month: *filter.Month, Year: *filter.Year, Status: "PROCESSED"}},
	}, nil
}

func (f *fakePayrollService) GetRecord(_ context.Context, id string) (payroll.RecordResponse, error) {
	return f.record(id)
}

func (f *fakePayrollService) RenderPayslip(_ context.Context, id string, w io.Writer) error {
	if _, err := f.record(id); err != nil {
		return err
	}
	_, err := io.WriteString(w, "%PDF-1.3 fake")
	return err
}

func newTestRouter(t *testing.T, svc payroll.PayrollService) (*chi.Mux, jwt.Service) {
	t.Helper()
	cfg := &config.Config{
		App:  config.AppConfig{Name: "payroll-engine-test", Env: "test", LogLevel: "error"},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
	jwtService := jwt.NewJWTService(handlerTestSecret, "1h")

	router := NewRouter(
		cfg,
		jwtService,
		NewEmployeeHandler(nil),
		NewContractHandler(nil),
		NewAttendanceHandler(nil),
		NewContributionHandler(nil),
		NewPayrollHandler(svc),
		NewReportHandler(nil),
		NewVacationHandler(nil),
	)
	return router, jwtService
}

func bearer(t *testing.T, svc jwt.Service, role string) string {
	t.Helper()
	token, _, err := svc.GenerateAccessToken("tester@example.com", role)
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(router http.Handler, method, path, auth string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		buf, _ := json.Marshal(body)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_RequiresToken(t *testing.T) {
	router, _ := newTestRouter(t, &fakePayrollService{})

	rec := doRequest(router, http.MethodPost, "/api/v1/payroll/runs", "", map[string]int{"month": 1, "year": 2025})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_RequiresHRRole(t *testing.T) {
	router, jwtService := newTestRouter(t, &fakePayrollService{})

	rec := doRequest(router, http.MethodPost, "/api/v1/payroll/runs", bearer(t, jwtService, "employee"), map[string]int{"month": 1, "year": 2025})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRunPayroll_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		body   map[string]int
		err    error
		status int
	}{
		{"success", map[string]int{"month": 1, "year": 2025}, nil, http.StatusCreated},
		{"already processed", map[string]int{"month": 1, "year": 2025}, payroll.ErrAlreadyProcessed, http.StatusConflict},
		{"missing configuration", map[string]int{"month": 1, "year": 2025}, fmt.Errorf("%w: 01/2025", payroll.ErrMissingConfiguration), http.StatusPreconditionFailed},
		{"invalid input", map[string]int{"month": 1, "year": 2025}, payroll.ErrInvalidInput, http.StatusBadRequest},
		{"invalid period", map[string]int{"month": 13, "year": 2025}, nil, http.StatusUnprocessableEntity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakePayrollService{
				run: func(req payroll.RunPayrollRequest) (payroll.RunResult, error) {
					if tc.err != nil {
						return payroll.RunResult{}, tc.err
					}
					return payroll.RunResult{Month: req.Month, Year: req.Year, TotalNet: decimal.NewFromInt(99030)}, nil
				},
			}
			router, jwtService := newTestRouter(t, svc)

			rec := doRequest(router, http.MethodPost, "/api/v1/payroll/runs", bearer(t, jwtService, jwt.RoleHR), tc.body)
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
		})
	}
}

func TestResetPeriod_PaidConflict(t *testing.T) {
	svc := &fakePayrollService{
		reset: func(req payroll.PeriodRequest) (payroll.PeriodActionResponse, error) {
			assert.Equal(t, 3, req.Month)
			assert.Equal(t, 2025, req.Year)
			return payroll.PeriodActionResponse{}, payroll.ErrPayrollRecordAlreadyPaid
		},
	}
	router, jwtService := newTestRouter(t, svc)

	rec := doRequest(router, http.MethodDelete, "/api/v1/payroll/runs/2025/3", bearer(t, jwtService, jwt.RoleHR), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDownloadPayslip(t *testing.T) {
	svc := &fakePayrollService{
		record: func(id string) (payroll.RecordResponse, error) {
			if id != "rec-1" {
				return payroll.RecordResponse{}, payroll.ErrPayrollRecordNotFound
			}
			return payroll.RecordResponse{ID: id}, nil
		},
	}
	router, jwtService := newTestRouter(t, svc)
	auth := bearer(t, jwtService, jwt.RoleHR)

	rec := doRequest(router, http.MethodGet, "/api/v1/payroll/records/rec-1/payslip.pdf", auth, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "payslip-rec-1.pdf")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

	rec = doRequest(router, http.MethodGet, "/api/v1/payroll/records/missing/payslip.pdf", auth, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListRecords_PassesPaging(t *testing.T) {
	router, jwtService := newTestRouter(t, &fakePayrollService{})

	rec := doRequest(router, http.MethodGet, "/api/v1/payroll/records?page=2&limit=5&month=1&year=2025", bearer(t, jwtService, jwt.RoleHR), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool                     `json:"success"`
		Data    []payroll.RecordResponse `json:"data"`
		Meta    response.Meta            `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "rec-1", body.Data[0].ID)
	assert.Equal(t, 2, body.Meta.Page)
	assert.Equal(t, 5, body.Meta.Limit)
	assert.Equal(t, int64(12), body.Meta.TotalItems)
	assert.Equal(t, 3, body.Meta.TotalPages)
}
