package email

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/config"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/contract"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type recordingSender struct {
	failures int
	calls    int
	sent     []*gomail.Message
}

func (r *recordingSender) DialAndSend(m ...*gomail.Message) error {
	r.calls++
	if r.calls <= r.failures {
		return errors.New("connection refused")
	}
	r.sent = append(r.sent, m...)
	return nil
}

func testSMTPConfig() config.SMTPConfig {
	return config.SMTPConfig{
		Host:         "smtp.example.com",
		Port:         587,
		From:         "payroll@example.com",
		FromName:     "Payroll",
		HRRecipients: []string{"hr@example.com", "finance@example.com"},
	}
}

func newTestService(t *testing.T, cfg config.SMTPConfig, s sender) *emailServiceImpl {
	t.Helper()
	svc, err := newEmailService(cfg, s)
	require.NoError(t, err)
	svc.backoff = func(int) time.Duration { return time.Millisecond }
	return svc
}

func runResult() payroll.RunResult {
	return payroll.RunResult{
		Month: 1,
		Year:  2025,
		Processed: []payroll.RecordSummary{
			{RecordID: "r-1", EmployeeID: "e-1", EmployeeName: "Ana Souza", GrossPay: decimal.NewFromInt(110000), NetPay: decimal.NewFromInt(99030)},
		},
		Skipped:  []payroll.SkippedEmployee{{EmployeeID: "e-2", EmployeeName: "Bruno Lima", Reason: "employee has no active contract"}},
		TotalNet: decimal.NewFromInt(99030),
	}
}

func TestNotifyPayrollRun(t *testing.T) {
	rec := &recordingSender{}
	svc := newTestService(t, testSMTPConfig(), rec)

	require.NoError(t, svc.NotifyPayrollRun(context.Background(), runResult()))
	require.Len(t, rec.sent, 1)

	msg := rec.sent[0]
	assert.Equal(t, []string{"Payroll processed for 01/2025"}, msg.GetHeader("Subject"))
	assert.Equal(t, []string{"hr@example.com", "finance@example.com"}, msg.GetHeader("To"))

}

func TestRenderPayrollRun(t *testing.T) {
	svc := newTestService(t, testSMTPConfig(), &recordingSender{})

	body, err := svc.render("payroll_run.html", runResult())
	require.NoError(t, err)
	assert.Contains(t, body, "Payroll processed for 01/2025")
	assert.Contains(t, body, "Ana Souza")
	assert.Contains(t, body, "99030.00")
	assert.Contains(t, body, "Bruno Lima: employee has no active contract")
}

func TestSendHTML_SkipsWithoutHost(t *testing.T) {
	rec := &recordingSender{}
	cfg := testSMTPConfig()
	cfg.Host = ""
	svc := newTestService(t, cfg, rec)

	require.NoError(t, svc.NotifyPayrollRun(context.Background(), runResult()))
	assert.Zero(t, rec.calls)
}

func TestSendHTML_SkipsWithoutRecipients(t *testing.T) {
	rec := &recordingSender{}
	cfg := testSMTPConfig()
	cfg.HRRecipients = nil
	svc := newTestService(t, cfg, rec)

	require.NoError(t, svc.NotifyPayrollRun(context.Background(), runResult()))
	assert.Zero(t, rec.calls)
}

func TestSendHTML_Retries(t *testing.T) {
	rec := &recordingSender{failures: 2}
	svc := newTestService(t, testSMTPConfig(), rec)

	require.NoError(t, svc.NotifyPayrollRun(context.Background(), runResult()))
	assert.Equal(t, 3, rec.calls)
	assert.Len(t, rec.sent, 1)
}

func TestSendHTML_GivesUpAfterMaxRetries(t *testing.T) {
	rec := &recordingSender{failures: maxRetries}
	svc := newTestService(t, testSMTPConfig(), rec)

	err := svc.NotifyPayrollRun(context.Background(), runResult())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, maxRetries, rec.calls)
}

func TestSendContractSweepSummary(t *testing.T) {
	rec := &recordingSender{}
	svc := newTestService(t, testSMTPConfig(), rec)

	require.NoError(t, svc.SendContractSweepSummary(context.Background(), contract.SweepResult{AsOf: "2025-01-02"}))
	assert.Zero(t, rec.calls, "unchanged sweep is not mailed")

	result := contract.SweepResult{
		AsOf:    "2025-01-02",
		Renewed: []contract.RenewedContract{{OldID: "c-1", NewID: "c-9"}},
		Expired: []string{"c-2"},
	}
	require.NoError(t, svc.SendContractSweepSummary(context.Background(), result))
	require.Len(t, rec.sent, 1)
	assert.Equal(t, []string{"Contract sweep 2025-01-02: 1 renewed, 1 expired"}, rec.sent[0].GetHeader("Subject"))
}
