package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Run outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeNoData  = "no_data"
	OutcomeError   = "error"
	OutcomeSkipped = "skipped"
)

// Alert results.
const (
	AlertSent   = "sent"
	AlertFailed = "failed"
)

// Metrics holds all Prometheus metrics for the signal bot.
type Metrics struct {
	registry *prometheus.Registry

	RunsTotal        *prometheus.CounterVec // labels: outcome
	CategoryTotal    *prometheus.CounterVec // labels: category
	AlertsTotal      *prometheus.CounterVec // labels: result
	RunDuration      prometheus.Histogram
	CandlesFetched   prometheus.Gauge
	IndicatorCompute prometheus.Histogram
}

// New registers and returns all metrics on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signal_runs_total",
			Help: "Signal runs by outcome",
		}, []string{"outcome"}),
		CategoryTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signal_category_total",
			Help: "Completed runs by resulting category",
		}, []string{"category"}),
		AlertsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "signal_alerts_total",
			Help: "Alert dispatch attempts by result",
		}, []string{"result"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "signal_run_duration_seconds",
			Help:    "Wall time of a full fetch, compute and alert run",
			Buckets: prometheus.DefBuckets,
		}),
		CandlesFetched: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "signal_candles_fetched",
			Help: "Candles in the window evaluated by the last run",
		}),
		IndicatorCompute: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "signal_indicator_compute_seconds",
			Help:    "Indicator battery compute latency",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}),
	}

	m.registry.MustRegister(
		m.RunsTotal,
		m.CategoryTotal,
		m.AlertsTotal,
		m.RunDuration,
		m.CandlesFetched,
		m.IndicatorCompute,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the private registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Serve exposes /metrics, and /healthz when health is non-nil, on addr until
// ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string, health http.Handler, logger zerolog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	if health != nil {
		mux.Handle("/healthz", health)
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("metrics server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
