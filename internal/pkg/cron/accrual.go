package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/esyhub/staffpay-backend/internal/service/accrual"
)

// AccrualJobs wires the monthly salary sweep into the scheduler as a daily
// job. A failed sweep is retried on the next tick; partial progress still
// counts because the period check makes re-runs idempotent.
type AccrualJobs struct {
	accrualService accrual.Service
	interval       time.Duration
}

func NewAccrualJobs(accrualService accrual.Service, interval time.Duration) *AccrualJobs {
	return &AccrualJobs{
		accrualService: accrualService,
		interval:       interval,
	}
}

// RegisterJobs adds the accrual jobs to the scheduler.
func (a *AccrualJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddDailyJob("salary-accrual-sweep", a.interval, a.runSweep)
}

func (a *AccrualJobs) runSweep(ctx context.Context) error {
	result, err := a.accrualService.EnsureMonthlyEntries(ctx, time.Now().UTC())
	if err != nil {
		slog.Error("salary accrual sweep finished with errors",
			"swept", result.Swept,
			"inserted", result.Inserted,
			"failed", result.Failed,
			"error", err,
		)
		return err
	}

	slog.Info("salary accrual sweep completed",
		"swept", result.Swept,
		"inserted", result.Inserted,
		"skipped", result.Skipped,
	)
	return nil
}
