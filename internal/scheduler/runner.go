package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"

	"SignalSentinel/internal/calculator"
	"SignalSentinel/internal/collector"
	"SignalSentinel/internal/metrics"
	"SignalSentinel/internal/model"
	"SignalSentinel/internal/notifier"
	"SignalSentinel/internal/strategy"
)

// ErrNoData reports a run skipped because no candles were available.
var ErrNoData = collector.ErrNoData

// Source yields the price series evaluated by a run.
type Source interface {
	Collect(ctx context.Context) (model.PriceSeries, error)
}

// Runner executes one fetch, compute, evaluate and alert pass.
type Runner struct {
	Source   Source
	Notifier notifier.Notifier
	Metrics  *metrics.Metrics
	Logger   zerolog.Logger

	last        atomic.Pointer[model.SignalResult]
	lastRunAt   atomic.Time
	lastOutcome atomic.String
}

// NewRunner creates a Runner.
func NewRunner(src Source, n notifier.Notifier, m *metrics.Metrics, logger zerolog.Logger) *Runner {
	return &Runner{
		Source:   src,
		Notifier: n,
		Metrics:  m,
		Logger:   logger.With().Str("component", "runner").Logger(),
	}
}

// Last returns the result of the last completed run, or nil.
func (r *Runner) Last() *model.SignalResult {
	return r.last.Load()
}

// Run performs a single pass. An empty series ends the run early with
// ErrNoData. Alert failures are logged and never returned. A panic at any
// stage is recovered and reported as an error.
func (r *Runner) Run(ctx context.Context) (result *model.SignalResult, err error) {
	log := r.Logger.With().Str("run_id", uuid.NewString()).Logger()
	start := time.Now()

	defer func() {
		if p := recover(); p != nil {
			log.Error().Interface("panic", p).Str("stack", string(debug.Stack())).Msg("run panicked")
			result, err = nil, fmt.Errorf("run panicked: %v", p)
			r.finish(metrics.OutcomeError)
		}
		r.Metrics.RunDuration.Observe(time.Since(start).Seconds())
	}()

	series, err := r.Source.Collect(ctx)
	if err != nil || series.Empty() {
		if err == nil {
			err = ErrNoData
		} else if !errors.Is(err, ErrNoData) {
			err = fmt.Errorf("%w: %w", ErrNoData, err)
		}
		log.Warn().Err(err).Msg("no candles, skipping run")
		r.finish(metrics.OutcomeNoData)
		return nil, err
	}
	r.Metrics.CandlesFetched.Set(float64(series.Len()))

	computeStart := time.Now()
	set := calculator.Compute(series)
	r.Metrics.IndicatorCompute.Observe(time.Since(computeStart).Seconds())

	result = strategy.Evaluate(set, series)
	r.last.Store(result)
	r.Metrics.CategoryTotal.WithLabelValues(string(result.Category)).Inc()

	log.Info().
		Str("symbol", result.Symbol).
		Str("signal", result.Label()).
		Float64("price", result.LatestPrice).
		Int("candles", series.Len()).
		Strs("fired", result.Fired).
		Msg("signal evaluated")

	if result.Actionable() {
		r.dispatch(ctx, log, result)
	}

	r.finish(metrics.OutcomeOK)
	return result, nil
}

// dispatch makes a single delivery attempt.
func (r *Runner) dispatch(ctx context.Context, log zerolog.Logger, result *model.SignalResult) {
	if err := r.Notifier.Send(ctx, notifier.FormatSignal(result)); err != nil {
		log.Error().Err(err).Msg("send alert")
		r.Metrics.AlertsTotal.WithLabelValues(metrics.AlertFailed).Inc()
		return
	}
	log.Info().Str("signal", result.Label()).Msg("alert sent")
	r.Metrics.AlertsTotal.WithLabelValues(metrics.AlertSent).Inc()
}

func (r *Runner) finish(outcome string) {
	r.lastRunAt.Store(time.Now())
	r.lastOutcome.Store(outcome)
	r.Metrics.RunsTotal.WithLabelValues(outcome).Inc()
}

// ServeHTTP reports the last run on /healthz.
func (r *Runner) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	status := struct {
		Status      string  `json:"status"`
		LastRunAt   string  `json:"last_run_at,omitempty"`
		LastOutcome string  `json:"last_outcome,omitempty"`
		LastSignal  string  `json:"last_signal,omitempty"`
		LastPrice   float64 `json:"last_price,omitempty"`
	}{
		Status:      "starting",
		LastOutcome: r.lastOutcome.Load(),
	}

	if at := r.lastRunAt.Load(); !at.IsZero() {
		status.Status = "ok"
		status.LastRunAt = at.UTC().Format(time.RFC3339)
	}
	if last := r.last.Load(); last != nil {
		status.LastSignal = last.Label()
		status.LastPrice = last.LatestPrice
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		r.Logger.Debug().Err(err).Msg("write health status")
	}
}
