package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is a registered background task. The payroll sweeps are daily jobs:
// they tick on a short interval so a restarted process catches up quickly,
// but execute at most once per UTC calendar day. A failed run does not
// consume the day, so the next tick retries it.
type Job struct {
	Name     string
	Interval time.Duration
	Daily    bool
	Fn       func(ctx context.Context) error

	lastDay string // YYYY-MM-DD of the last successful run, daily jobs only
}

type Scheduler struct {
	jobs   []*Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob registers a job that runs on every tick of its interval.
func (s *Scheduler) AddJob(name string, interval time.Duration, fn func(ctx context.Context) error) {
	s.add(&Job{Name: name, Interval: interval, Fn: fn})
}

// AddDailyJob registers a job that ticks on interval but runs at most once
// per UTC calendar day.
func (s *Scheduler) AddDailyJob(name string, interval time.Duration, fn func(ctx context.Context) error) {
	s.add(&Job{Name: name, Interval: interval, Daily: true, Fn: fn})
}

func (s *Scheduler) add(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, job)
	slog.Info("cron job registered", "name", job.Name, "interval", job.Interval, "daily", job.Daily)
}

// Start launches one goroutine per job. Each job runs immediately, then on
// its ticker until Stop.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(job)
	}

	slog.Info("cron scheduler started", "job_count", len(s.jobs))
}

// Stop cancels all jobs and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("cron scheduler stopped")
}

func (s *Scheduler) runJob(job *Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	s.executeJob(s.ctx, job)

	for {
		select {
		case <-s.ctx.Done():
			slog.Info("cron job stopping", "name", job.Name)
			return
		case <-ticker.C:
			s.executeJob(s.ctx, job)
		}
	}
}

func (s *Scheduler) executeJob(ctx context.Context, job *Job) {
	today := time.Now().UTC().Format("2006-01-02")

	if job.Daily {
		s.mu.Lock()
		done := job.lastDay == today
		s.mu.Unlock()
		if done {
			return
		}
	}

	start := time.Now()
	if err := job.Fn(ctx); err != nil {
		slog.Error("cron job failed", "name", job.Name, "error", err, "duration", time.Since(start))
		return
	}

	if job.Daily {
		s.mu.Lock()
		job.lastDay = today
		s.mu.Unlock()
	}
	slog.Debug("cron job completed", "name", job.Name, "duration", time.Since(start))
}

// RunOnce executes every registered job synchronously, honoring the daily
// throttle. Called at boot for the catch-up sweep before the tickers start.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	jobs := make([]*Job, len(s.jobs))
	copy(jobs, s.jobs)
	s.mu.Unlock()

	for _, job := range jobs {
		s.executeJob(ctx, job)
	}
}
