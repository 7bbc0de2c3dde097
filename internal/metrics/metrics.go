// Package metrics exposes Prometheus collectors for rewrite outcomes.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"adjconst-generator/internal/plan"
)

const namespace = "adjconst"

// Rewrite outcomes.
const (
	OutcomeWritten     = "written"
	OutcomeUnchanged   = "unchanged"
	OutcomeMissingUnit = "missing_unit"
	OutcomeFatal       = "fatal"
	OutcomeIOError     = "io_error"
)

const shutdownTimeout = 5 * time.Second

// Metrics holds the collectors of one process. A nil *Metrics records
// nothing.
type Metrics struct {
	registry *prometheus.Registry
	rewrites *prometheus.CounterVec
	members  *prometheus.CounterVec
	warnings *prometheus.CounterVec
	duration prometheus.Histogram
}

// New creates the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rewrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rewrites_total",
			Help:      "Rewritten files by outcome.",
		}, []string{"outcome"}),
		members: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "members_total",
			Help:      "Extracted members by category.",
		}, []string{"category"}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "warnings_total",
			Help:      "Diagnostics reported as warnings, by code.",
		}, []string{"code"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rewrite_duration_seconds",
			Help:      "Time spent rewriting one file, I/O included.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
	}

	m.registry.MustRegister(m.rewrites, m.members, m.warnings, m.duration)

	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRewrite records the outcome and duration of one file.
func (m *Metrics) ObserveRewrite(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.rewrites.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}

// ObservePlan records the member categories and warnings of a plan.
func (m *Metrics) ObservePlan(p *plan.Plan) {
	if m == nil || p == nil {
		return
	}

	for category, n := range p.CountByCategory() {
		m.members.WithLabelValues(category.String()).Add(float64(n))
	}

	for _, w := range p.Diagnostics.Warnings {
		m.warnings.WithLabelValues(w.Code).Inc()
	}
}

// Handler serves the collectors in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: shutdownTimeout}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("serving metrics", zap.String("addr", addr))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
