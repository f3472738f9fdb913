// Package scheduler triggers the monthly summary on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/MrJamesThe3rd/fleetledger/internal/monthly"
)

const (
	DefaultSchedule   = "5 0 1 * *"
	DefaultJobTimeout = 5 * time.Minute
)

type Runner interface {
	Run(ctx context.Context, month string) monthly.Result
}

type Config struct {
	// Schedule is a standard five-field cron expression.
	Schedule   string
	Location   *time.Location
	JobTimeout time.Duration
}

// Scheduler owns a cron instance with a single entry. Nothing runs until
// Start is called.
type Scheduler struct {
	cron    *cron.Cron
	entry   cron.EntryID
	runner  Runner
	timeout time.Duration

	mu        sync.Mutex
	isRunning bool
}

func New(runner Runner, cfg Config) (*Scheduler, error) {
	if cfg.Schedule == "" {
		cfg.Schedule = DefaultSchedule
	}

	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = DefaultJobTimeout
	}

	logger := cronLogger{}

	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(cfg.Location),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		runner:  runner,
		timeout: cfg.JobTimeout,
	}

	id, err := s.cron.AddFunc(cfg.Schedule, s.run)
	if err != nil {
		return nil, fmt.Errorf("parsing schedule %q: %w", cfg.Schedule, err)
	}

	s.entry = id

	return s, nil
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return
	}

	s.isRunning = true
	s.cron.Start()

	slog.Info("summary scheduler started", "next_run", s.cron.Entry(s.entry).Next)
}

// Stop halts the schedule and waits for a run in progress, or for ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	select {
	case <-s.cron.Stop().Done():
		slog.Info("summary scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Next returns the next activation time, or the zero time when stopped.
func (s *Scheduler) Next() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return time.Time{}
	}

	return s.cron.Entry(s.entry).Next
}

func (s *Scheduler) run() {
	runID := uuid.NewString()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()

	slog.InfoContext(ctx, "running scheduled monthly summary", "run_id", runID)

	res := s.runner.Run(ctx, "")

	attrs := []any{
		"run_id", runID,
		"month", res.Month,
		"sent", res.Sent,
		"reason", res.Reason,
		"duration", time.Since(start),
	}

	if res.Sent {
		slog.InfoContext(ctx, "scheduled monthly summary sent", attrs...)
	} else {
		slog.WarnContext(ctx, "scheduled monthly summary not sent", attrs...)
	}
}

// cronLogger routes cron's own messages to slog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	slog.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
