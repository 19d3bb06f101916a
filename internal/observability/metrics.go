package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OperationMetrics records service-operation outcomes. Services depend on
// this interface so tests can pass the noop implementation.
type OperationMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
}

// Registry owns the Prometheus collectors for the process.
type Registry struct {
	prometheus *prometheus.Registry

	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

// NewRegistry builds the process metrics registry.
func NewRegistry(serviceName string) *Registry {
	reg := prometheus.NewRegistry()

	labels := []string{"operation", "service"}
	constLabels := prometheus.Labels{"app": serviceName}

	r := &Registry{
		prometheus: reg,
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "operation_attempts_total",
			Help:        "Service operations attempted.",
			ConstLabels: constLabels,
		}, labels),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "operation_successes_total",
			Help:        "Service operations completed without infrastructure error.",
			ConstLabels: constLabels,
		}, labels),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "operation_failures_total",
			Help:        "Service operations aborted by infrastructure error.",
			ConstLabels: constLabels,
		}, labels),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "operation_duration_seconds",
			Help:        "Service operation duration.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, labels),
	}

	reg.MustRegister(r.attempts, r.successes, r.failures, r.durations)
	return r
}

// Prometheus exposes the underlying registry for the /metrics handler.
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.prometheus
}

func (r *Registry) RecordOperationAttempt(_ context.Context, operation, service string) {
	r.attempts.WithLabelValues(operation, service).Inc()
}

func (r *Registry) RecordOperationSuccess(_ context.Context, operation, service string) {
	r.successes.WithLabelValues(operation, service).Inc()
}

func (r *Registry) RecordOperationFailure(_ context.Context, operation, service string) {
	r.failures.WithLabelValues(operation, service).Inc()
}

func (r *Registry) RecordOperationDuration(_ context.Context, operation, service string, duration time.Duration) {
	r.durations.WithLabelValues(operation, service).Observe(duration.Seconds())
}

var _ OperationMetrics = (*Registry)(nil)

// NoopMetrics discards all recordings.
type NoopMetrics struct{}

func (NoopMetrics) RecordOperationAttempt(context.Context, string, string)                 {}
func (NoopMetrics) RecordOperationSuccess(context.Context, string, string)                 {}
func (NoopMetrics) RecordOperationFailure(context.Context, string, string)                 {}
func (NoopMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {}

var _ OperationMetrics = NoopMetrics{}
