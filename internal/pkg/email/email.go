package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/config"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/contract"
	"github.com/cmlabs-hris/payroll-engine/internal/domain/payroll"
	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService sends HR notifications.
type EmailService interface {
	NotifyPayrollRun(ctx context.Context, result payroll.RunResult) error
	SendContractSweepSummary(ctx context.Context, result contract.SweepResult) error
}

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
	dialer    sender
	backoff   func(attempt int) time.Duration
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	return newEmailService(cfg, gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password))
}

func newEmailService(cfg config.SMTPConfig, dialer sender) (*emailServiceImpl, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
		dialer:    dialer,
		backoff: func(attempt int) time.Duration {
			return time.Duration(1<<(attempt-1)) * time.Second
		},
	}, nil
}

// NotifyPayrollRun mails the run summary to the HR recipients.
func (s *emailServiceImpl) NotifyPayrollRun(ctx context.Context, result payroll.RunResult) error {
	body, err := s.render("payroll_run.html", result)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Payroll processed for %02d/%d", result.Month, result.Year)
	return s.sendHTML(ctx, subject, body)
}

// SendContractSweepSummary mails the renewed, expired and failed contracts of one sweep.
// Sweeps that changed nothing are not mailed.
func (s *emailServiceImpl) SendContractSweepSummary(ctx context.Context, result contract.SweepResult) error {
	if !result.Changed() {
		return nil
	}

	body, err := s.render("contract_sweep.html", result)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Contract sweep %s: %d renewed, %d expired", result.AsOf, len(result.Renewed), len(result.Expired))
	return s.sendHTML(ctx, subject, body)
}

func (s *emailServiceImpl) render(name string, data interface{}) (string, error) {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return body.String(), nil
}

func (s *emailServiceImpl) sendHTML(ctx context.Context, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "subject", subject)
		return nil
	}
	if len(s.cfg.HRRecipients) == 0 {
		slog.Warn("No HR recipients configured, skipping email send", "subject", subject)
		return nil
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.From, s.cfg.FromName)
	m.SetHeader("To", s.cfg.HRRecipients...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := s.dialer.DialAndSend(m)
		if err == nil {
			slog.Info("Email sent successfully", "to", s.cfg.HRRecipients, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", s.cfg.HRRecipients,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.backoff(attempt)):
			}
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
