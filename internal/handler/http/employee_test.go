package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/handler/http/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeService struct {
	employee.EmployeeService
	lastFilter employee.EmployeeFilter
}

func (f *fakeEmployeeService) ListEmployees(_ context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Normalize(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}
	f.lastFilter = filter
	return employee.ListEmployeeResponse{
		TotalCount: 41,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: 5,
		Employees:  []employee.EmployeeResponse{{ID: "e-1", EmployeeCode: "EMP-001", Status: "ACTIVE"}},
	}, nil
}

func TestEmployeeList_WritesPagingMeta(t *testing.T) {
	svc := &fakeEmployeeService{}
	h := NewEmployeeHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/employees?page=3&limit=10&status=ACTIVE&search=silva", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool                        `json:"success"`
		Data    []employee.EmployeeResponse `json:"data"`
		Meta    response.Meta               `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "EMP-001", body.Data[0].EmployeeCode)
	assert.Equal(t, 3, body.Meta.Page)
	assert.Equal(t, 10, body.Meta.Limit)
	assert.Equal(t, int64(41), body.Meta.TotalItems)
	assert.Equal(t, 5, body.Meta.TotalPages)

	require.NotNil(t, svc.lastFilter.Search)
	assert.Equal(t, "silva", *svc.lastFilter.Search)
}

func TestEmployeeList_RejectsUnknownStatus(t *testing.T) {
	h := NewEmployeeHandler(&fakeEmployeeService{})

	req := httptest.NewRequest(http.MethodGet, "/employees?status=RETIRED", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
