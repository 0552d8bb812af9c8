package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/contract"
)

// SweepNotifier receives the outcome of each sweep that ran.
type SweepNotifier interface {
	SendContractSweepSummary(ctx context.Context, result contract.SweepResult) error
}

type ContractJobs struct {
	contractService contract.ContractService
	notifier        SweepNotifier
	sweepHour       int
	now             func() time.Time

	mu      sync.Mutex
	lastRun time.Time
}

func NewContractJobs(contractService contract.ContractService, notifier SweepNotifier, sweepHour int) *ContractJobs {
	return &ContractJobs{
		contractService: contractService,
		notifier:        notifier,
		sweepHour:       sweepHour,
		now:             time.Now,
	}
}

func (j *ContractJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("contract_expiry_sweep", interval, j.SweepExpiredContracts)
}

// SweepExpiredContracts runs the expiry sweep once per UTC day, on the first tick
// at or after sweepHour. A failed sweep is retried on the next tick.
func (j *ContractJobs) SweepExpiredContracts(ctx context.Context) error {
	now := j.now().UTC()
	if now.Hour() < j.sweepHour {
		return nil
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	j.mu.Lock()
	if !j.lastRun.IsZero() && !j.lastRun.Before(today) {
		j.mu.Unlock()
		return nil
	}
	j.mu.Unlock()

	slog.Info("Cron: Starting contract expiry sweep", "as_of", today.Format("2006-01-02"))

	result, err := j.contractService.SweepExpirations(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to sweep contracts: %w", err)
	}

	j.mu.Lock()
	j.lastRun = today
	j.mu.Unlock()

	slog.Info("Cron: Contract expiry sweep completed",
		"renewed", len(result.Renewed),
		"expired", len(result.Expired),
		"failed", len(result.Failed),
	)

	if j.notifier != nil {
		if err := j.notifier.SendContractSweepSummary(ctx, result); err != nil {
			slog.Error("Cron: Failed to send contract sweep summary", "error", err)
		}
	}
	return nil
}
