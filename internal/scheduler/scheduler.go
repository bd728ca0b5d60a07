package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"SignalSentinel/internal/metrics"
	"SignalSentinel/internal/model"
	"SignalSentinel/internal/notifier"
)

// ErrBusy is returned when a trigger arrives while a run is in flight.
var ErrBusy = errors.New("a run is already in progress")

// Job is a single signal run.
type Job interface {
	Run(ctx context.Context) (*model.SignalResult, error)
	Last() *model.SignalResult
}

// Scheduler triggers runs on a cron cadence and on demand. Runs never
// overlap: a trigger that finds a run in flight is dropped.
type Scheduler struct {
	Cron    *cron.Cron
	Job     Job
	Metrics *metrics.Metrics
	Logger  zerolog.Logger
	Ctx     context.Context

	running sync.Mutex
}

// NewScheduler creates a new Scheduler. ctx bounds every run it starts.
func NewScheduler(ctx context.Context, job Job, m *metrics.Metrics, logger zerolog.Logger) *Scheduler {
	logger = logger.With().Str("component", "scheduler").Logger()
	cronLogger := cron.PrintfLogger(&logger)
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger)),
		),
		Job:     job,
		Metrics: m,
		Logger:  logger,
		Ctx:     ctx,
	}
}

// Register schedules the run on a six field cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.trigger); err != nil {
		return fmt.Errorf("register signal task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler, optionally firing one run right away.
func (s *Scheduler) Start(runOnStart bool) {
	s.Cron.Start()
	s.Logger.Info().Int("entries", len(s.Cron.Entries())).Msg("scheduler started")
	if runOnStart {
		s.Logger.Info().Msg("running once on start")
		go s.trigger()
	}
}

// Stop stops the cron scheduler and waits for a run in flight to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.running.Lock()
	s.running.Unlock()
	s.Logger.Info().Msg("scheduler stopped")
}

// RunNow executes a run immediately unless one is already in flight, in
// which case it returns ErrBusy.
func (s *Scheduler) RunNow() (*model.SignalResult, error) {
	if !s.running.TryLock() {
		s.Logger.Warn().Msg("previous run still in flight, skipping trigger")
		s.Metrics.RunsTotal.WithLabelValues(metrics.OutcomeSkipped).Inc()
		return nil, ErrBusy
	}
	defer s.running.Unlock()
	return s.Job.Run(s.Ctx)
}

func (s *Scheduler) trigger() {
	_, _ = s.RunNow()
}

// HandleCommand processes a chat command and returns a reply.
func (s *Scheduler) HandleCommand(_ context.Context, command string) string {
	cmd, _, _ := strings.Cut(strings.TrimSpace(command), "@")

	switch cmd {
	case "/signal":
		result, err := s.RunNow()
		switch {
		case errors.Is(err, ErrBusy):
			return "⏳ A run is already in progress, try again shortly."
		case errors.Is(err, ErrNoData):
			return "⚠️ No candles available, run skipped."
		case err != nil:
			return fmt.Sprintf("❌ Run failed: %v", err)
		case result.Actionable():
			// Already delivered as an alert.
			return ""
		default:
			return notifier.FormatSignal(result)
		}
	case "/last":
		last := s.Job.Last()
		if last == nil {
			return "No completed run yet."
		}
		return notifier.FormatSignal(last)
	default:
		return notifier.FormatHelp()
	}
}
