package payroll

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/contract"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/contribution"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// serialTx runs one unit of work at a time, like the period advisory lock does.
type serialTx struct {
	mu sync.Mutex
}

func (t *serialTx) WithinTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}

type fakePayrollRepo struct {
	mu      sync.Mutex
	records map[string]payroll.Record
	locks   int
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{records: make(map[string]payroll.Record)}
}

func periodMatch(r payroll.Record, month, year int) bool {
	return r.Month == month && r.Year == year
}

func (r *fakePayrollRepo) LockPeriod(_ context.Context, _, _ int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locks++
	return nil
}

func (r *fakePayrollRepo) HasRecords(_ context.Context, month, year int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if periodMatch(rec, month, year) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePayrollRepo) Upsert(_ context.Context, record payroll.Record) (payroll.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.records {
		if existing.EmployeeID == record.EmployeeID && periodMatch(existing, record.Month, record.Year) {
			if existing.Status == payroll.RecordStatusPaid {
				return payroll.Record{}, payroll.ErrPayrollRecordAlreadyPaid
			}
			record.ID = id
		}
	}
	record.CreatedAt = time.Now()
	r.records[record.ID] = record
	return record, nil
}

func (r *fakePayrollRepo) GetByID(_ context.Context, id string) (payroll.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return payroll.Record{}, payroll.ErrPayrollRecordNotFound
	}
	return rec, nil
}

func (r *fakePayrollRepo) List(_ context.Context, filter payroll.RecordFilter) ([]payroll.Record, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []payroll.Record
	for _, rec := range r.records {
		if filter.Month != nil && rec.Month != *filter.Month {
			continue
		}
		if filter.Year != nil && rec.Year != *filter.Year {
			continue
		}
		if filter.EmployeeID != nil && rec.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, rec)
	}
	return out, int64(len(out)), nil
}

func (r *fakePayrollRepo) CountByStatus(_ context.Context, month, year int) (map[payroll.RecordStatus]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[payroll.RecordStatus]int)
	for _, rec := range r.records {
		if periodMatch(rec, month, year) {
			counts[rec.Status]++
		}
	}
	return counts, nil
}

func (r *fakePayrollRepo) MarkPaid(_ context.Context, month, year int, paidAt time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, rec := range r.records {
		if periodMatch(rec, month, year) && rec.Status == payroll.RecordStatusProcessed {
			rec.Status = payroll.RecordStatusPaid
			rec.PaidAt = &paidAt
			r.records[id] = rec
			n++
		}
	}
	return n, nil
}

func (r *fakePayrollRepo) DeleteProcessed(_ context.Context, month, year int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, rec := range r.records {
		if periodMatch(rec, month, year) && rec.Status == payroll.RecordStatusProcessed {
			delete(r.records, id)
			n++
		}
	}
	return n, nil
}

func (r *fakePayrollRepo) count(month, year int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, rec := range r.records {
		if periodMatch(rec, month, year) {
			n++
		}
	}
	return n
}

func (r *fakePayrollRepo) all() []payroll.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]payroll.Record, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	return out
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (r *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	r.employees = append(r.employees, e)
	return e, nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) List(_ context.Context, _ employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return r.employees, int64(len(r.employees)), nil
}

func (r *fakeEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.employees {
		if e.Status == employee.StatusActive {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEmployeeRepo) UpdateStatus(_ context.Context, _ string, _ employee.Status) error {
	return nil
}

type fakeContractRepo struct {
	byEmployee map[string]contract.Contract
}

func (r *fakeContractRepo) Create(_ context.Context, c contract.Contract) (contract.Contract, error) {
	return c, nil
}

func (r *fakeContractRepo) GetByID(_ context.Context, id string) (contract.Contract, error) {
	for _, c := range r.byEmployee {
		if c.ID == id {
			return c, nil
		}
	}
	return contract.Contract{}, contract.ErrContractNotFound
}

func (r *fakeContractRepo) GetActiveByEmployeeID(_ context.Context, employeeID string) (contract.Contract, error) {
	c, ok := r.byEmployee[employeeID]
	if !ok || c.Status != contract.StatusActive {
		return contract.Contract{}, contract.ErrNoActiveContract
	}
	return c, nil
}

func (r *fakeContractRepo) ListByEmployeeID(_ context.Context, _ string) ([]contract.Contract, error) {
	return nil, nil
}

func (r *fakeContractRepo) ListActiveEndingBefore(_ context.Context, _ time.Time) ([]contract.Contract, error) {
	return nil, nil
}

func (r *fakeContractRepo) ListActiveEndingBetween(_ context.Context, _, _ time.Time) ([]contract.Contract, error) {
	return nil, nil
}

func (r *fakeContractRepo) TransitionStatus(_ context.Context, _ string, _, _ contract.Status) error {
	return nil
}

type fakeAttendanceRepo struct {
	records []attendance.Record
}

func (r *fakeAttendanceRepo) Upsert(_ context.Context, rec attendance.Record) (attendance.Record, error) {
	return rec, nil
}

func (r *fakeAttendanceRepo) ListByEmployeePeriod(_ context.Context, employeeID string, month, year int) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && int(rec.Date.Month()) == month && rec.Date.Year() == year {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeContributionRepo struct {
	configs map[[2]int]contribution.Config
}

func (r *fakeContributionRepo) Upsert(_ context.Context, cfg contribution.Config) (contribution.Config, error) {
	r.configs[[2]int{cfg.Month, cfg.Year}] = cfg
	return cfg, nil
}

func (r *fakeContributionRepo) GetByPeriod(_ context.Context, month, year int) (contribution.Config, error) {
	cfg, ok := r.configs[[2]int{month, year}]
	if !ok {
		return contribution.Config{}, contribution.ErrConfigNotFound
	}
	return cfg, nil
}

func (r *fakeContributionRepo) List(_ context.Context) ([]contribution.Config, error) {
	var out []contribution.Config
	for _, c := range r.configs {
		out = append(out, c)
	}
	return out, nil
}

type recordingNotifier struct {
	mu      sync.Mutex
	results []payroll.RunResult
}

func (n *recordingNotifier) NotifyPayrollRun(_ context.Context, result payroll.RunResult) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.results = append(n.results, result)
	return nil
}

type fixture struct {
	svc      *PayrollServiceImpl
	payroll  *fakePayrollRepo
	notifier *recordingNotifier
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	employees := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "e-1", EmployeeCode: "EMP-001", FullName: "Ana", Status: employee.StatusActive, IBAN: "GB82WEST12345698765432"},
		{ID: "e-2", EmployeeCode: "EMP-002", FullName: "Bruno", Status: employee.StatusActive},
		{ID: "e-3", EmployeeCode: "EMP-003", FullName: "Carla", Status: employee.StatusActive},
		{ID: "e-4", EmployeeCode: "EMP-004", FullName: "Dario", Status: employee.StatusInactive},
	}}

	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	contracts := &fakeContractRepo{byEmployee: map[string]contract.Contract{
		"e-1": {
			ID: "c-1", EmployeeID: "e-1", Type: contract.TypeFixedTerm, Status: contract.StatusActive,
			StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), EndDate: &end,
			Terms: contract.Terms{BaseSalary: d("110000")},
		},
		"e-3": {
			ID: "c-3", EmployeeID: "e-3", Type: contract.TypeOpenEnded, Status: contract.StatusActive,
			StartDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			Terms: contract.Terms{
				BaseSalary:         d("176000"),
				MealAllowance:      d("3000"),
				TransportAllowance: d("2000"),
				HousingAllowance:   d("10000"),
			},
		},
		"e-4": {
			ID: "c-4", EmployeeID: "e-4", Type: contract.TypeOpenEnded, Status: contract.StatusActive,
			StartDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			Terms:     contract.Terms{BaseSalary: d("50000")},
		},
	}}

	attendances := &fakeAttendanceRepo{records: []attendance.Record{
		{EmployeeID: "e-3", Date: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), Status: attendance.StatusPresent, Overtime50Hours: d("4"), NightHours: d("8")},
		{EmployeeID: "e-3", Date: time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC), Status: attendance.StatusRestDay, Overtime100Hours: d("2")},
		{EmployeeID: "e-3", Date: time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC), Status: attendance.StatusUnjustifiedAbsence},
	}}

	configs := &fakeContributionRepo{configs: map[[2]int]contribution.Config{
		{1, 2025}: {
			ID: "cfg-1", Month: 1, Year: 2025,
			EmployeeRate: d("0.03"), EmployerRate: d("0.08"),
			StandardMonthlyHours: contribution.DefaultStandardMonthlyHours,
			StandardWorkingDays:  contribution.DefaultStandardWorkingDays,
			NightPremiumRate:     contribution.DefaultNightPremiumRate,
			Brackets: contribution.TaxBrackets{
				{LowerBound: d("0"), Rate: d("0"), FixedDeduction: d("0")},
				{LowerBound: d("70000"), Rate: d("0.10"), FixedDeduction: d("3000")},
				{LowerBound: d("150000"), Rate: d("0.20"), FixedDeduction: d("18000")},
			},
		},
	}}

	payrollRepo := newFakePayrollRepo()
	notifier := &recordingNotifier{}
	svc := NewPayrollService(&serialTx{}, payrollRepo, employees, contracts, attendances, configs, notifier, 2).(*PayrollServiceImpl)
	svc.now = func() time.Time { return time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC) }

	return fixture{svc: svc, payroll: payrollRepo, notifier: notifier}
}

func TestRunPayroll_ProcessesActiveEmployees(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.RunPayroll(context.Background(), payroll.RunPayrollRequest{Month: 1, Year: 2025})
	require.NoError(t, err)

	require.Len(t, result.Processed, 2)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "e-2", result.Skipped[0].EmployeeID)
	assert.Contains(t, result.Skipped[0].Reason, payroll.ErrMissingContract.Error())

	assert.Equal(t, 2, f.payroll.count(1, 2025))
	for _, rec := range f.payroll.all() {
		assert.Equal(t, payroll.RecordStatusProcessed, rec.Status)
		assert.True(t, rec.Balanced(), "record for %s does not balance", rec.EmployeeID)
		assert.NotEqual(t, "e-4", rec.EmployeeID)
	}

	byEmployee := make(map[string]payroll.RecordSummary)
	for _, p := range result.Processed {
		byEmployee[p.EmployeeID] = p
	}
	assert.True(t, byEmployee["e-1"].NetPay.Equal(d("99030")), "e-1 net %s", byEmployee["e-1"].NetPay)
	// 176000 + 10000 + 5000 + 12000 overtime - 8000 absence - 5700 SS - 18860 tax
	assert.True(t, byEmployee["e-3"].NetPay.Equal(d("170440")), "e-3 net %s", byEmployee["e-3"].NetPay)
	assert.True(t, result.TotalNet.Equal(d("269470")))

	require.Len(t, f.notifier.results, 1)
	assert.Equal(t, 1, f.notifier.results[0].Month)
}

func TestRunPayroll_SecondRunIsRejected(t *testing.T) {
	f := newFixture(t)
	req := payroll.RunPayrollRequest{Month: 1, Year: 2025}

	_, err := f.svc.RunPayroll(context.Background(), req)
	require.NoError(t, err)
	before := f.payroll.count(1, 2025)

	_, err = f.svc.RunPayroll(context.Background(), req)
	assert.ErrorIs(t, err, payroll.ErrAlreadyProcessed)
	assert.Equal(t, before, f.payroll.count(1, 2025))
	assert.Len(t, f.notifier.results, 1)
}

func TestRunPayroll_ConcurrentRunsWriteOnce(t *testing.T) {
	f := newFixture(t)
	req := payroll.RunPayrollRequest{Month: 1, Year: 2025}

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.svc.RunPayroll(context.Background(), req)
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, payroll.ErrAlreadyProcessed)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 2, f.payroll.count(1, 2025))
}

func TestRunPayroll_MissingConfiguration(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.RunPayroll(context.Background(), payroll.RunPayrollRequest{Month: 2, Year: 2025})
	assert.ErrorIs(t, err, payroll.ErrMissingConfiguration)
	assert.Zero(t, f.payroll.count(2, 2025))
	assert.Empty(t, f.notifier.results)
}

func TestRunPayroll_InvalidPeriod(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.RunPayroll(context.Background(), payroll.RunPayrollRequest{Month: 13, Year: 2025})
	assert.Error(t, err)
	assert.Zero(t, f.payroll.locks)
}

func TestRunPayroll_InvalidContractTermsAreSkipped(t *testing.T) {
	f := newFixture(t)
	contracts := f.svc.contractRepo.(*fakeContractRepo)
	bad := contracts.byEmployee["e-1"]
	bad.BaseSalary = d("-1")
	contracts.byEmployee["e-1"] = bad

	result, err := f.svc.RunPayroll(context.Background(), payroll.RunPayrollRequest{Month: 1, Year: 2025})
	require.NoError(t, err)
	assert.Len(t, result.Processed, 1)
	require.Len(t, result.Skipped, 2)

	reasons := map[string]string{}
	for _, s := range result.Skipped {
		reasons[s.EmployeeID] = s.Reason
	}
	assert.Contains(t, reasons["e-1"], payroll.ErrInvalidInput.Error())
}

func TestMarkPaidAndReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	period := payroll.PeriodRequest{Month: 1, Year: 2025}

	_, err := f.svc.MarkPaid(ctx, period)
	assert.ErrorIs(t, err, payroll.ErrNothingToPay)

	_, err = f.svc.RunPayroll(ctx, payroll.RunPayrollRequest{Month: 1, Year: 2025})
	require.NoError(t, err)

	reset, err := f.svc.ResetPeriod(ctx, period)
	require.NoError(t, err)
	assert.Equal(t, int64(2), reset.Affected)
	assert.Zero(t, f.payroll.count(1, 2025))

	_, err = f.svc.RunPayroll(ctx, payroll.RunPayrollRequest{Month: 1, Year: 2025})
	require.NoError(t, err)

	paid, err := f.svc.MarkPaid(ctx, period)
	require.NoError(t, err)
	assert.Equal(t, int64(2), paid.Affected)

	_, err = f.svc.ResetPeriod(ctx, period)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordAlreadyPaid)

	_, err = f.svc.RunPayroll(ctx, payroll.RunPayrollRequest{Month: 1, Year: 2025})
	assert.ErrorIs(t, err, payroll.ErrAlreadyProcessed)
}

func TestGetRecordAndPayslip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.svc.RunPayroll(ctx, payroll.RunPayrollRequest{Month: 1, Year: 2025})
	require.NoError(t, err)
	id := result.Processed[0].RecordID

	rec, err := f.svc.GetRecord(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, string(payroll.RecordStatusProcessed), rec.Status)

	var buf bytes.Buffer
	require.NoError(t, f.svc.RenderPayslip(ctx, id, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	_, err = f.svc.GetRecord(ctx, "missing")
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
}

func TestListRecords(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.RunPayroll(ctx, payroll.RunPayrollRequest{Month: 1, Year: 2025})
	require.NoError(t, err)

	month, year := 1, 2025
	list, err := f.svc.ListRecords(ctx, payroll.RecordFilter{Month: &month, Year: &year})
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.TotalCount)
	assert.Equal(t, 1, list.TotalPages)
	assert.Equal(t, 20, list.Limit)

	bad := "DRAFT"
	_, err = f.svc.ListRecords(ctx, payroll.RecordFilter{Status: &bad})
	assert.Error(t, err)
}
