// Package observability bundles the logger, tracer, and metrics used by the
// modules, plus the ops HTTP endpoint that serves health and Prometheus
// metrics.
package observability

import (
	"context"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Config holds observability settings.
type Config struct {
	ServiceName    string
	Environment    string
	MetricsAddress string // empty disables the ops HTTP server
	TracingEnabled bool
}

// Observability bundles the providers handed to each module.
type Observability struct {
	Logger  *slog.Logger
	Tracer  trace.Tracer
	Metrics *Registry
}

// New builds the observability bundle. The tracer comes from the global otel
// provider when tracing is enabled (exporter wiring is the deployment's
// concern), and a noop tracer otherwise.
func New(cfg Config) *Observability {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With(
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)

	var tracer trace.Tracer
	if cfg.TracingEnabled {
		tracer = otel.Tracer(cfg.ServiceName)
	} else {
		tracer = noop.NewTracerProvider().Tracer(cfg.ServiceName)
	}

	return &Observability{
		Logger:  logger,
		Tracer:  tracer,
		Metrics: NewRegistry(cfg.ServiceName),
	}
}

// NewNoop returns an Observability suitable for tests.
func NewNoop() *Observability {
	return &Observability{
		Logger:  slog.New(slog.DiscardHandler),
		Tracer:  noop.NewTracerProvider().Tracer("test"),
		Metrics: NewRegistry("test"),
	}
}

// LogStartup emits a standard startup line.
func (o *Observability) LogStartup(ctx context.Context, component string) {
	o.Logger.InfoContext(ctx, "Component starting", slog.String("component", component))
}
