package auditservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	auditdb "github.com/campus-commons/clubhub-bot/app/modules/audit/infrastructure/repositories"
	"github.com/campus-commons/clubhub-bot/internal/attr"
	"github.com/campus-commons/clubhub-bot/internal/observability"
)

// AuditService implements the Service interface. Audit operations have no
// domain-failure side: they either persist or error, so they skip the
// OperationResult machinery the command services use.
type AuditService struct {
	repo    auditdb.Repository
	logger  *slog.Logger
	metrics observability.OperationMetrics
	tracer  trace.Tracer
	db      *bun.DB
}

// NewAuditService creates a new AuditService.
func NewAuditService(
	repo auditdb.Repository,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *AuditService {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &AuditService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		db:      db,
	}
}

// instrument wraps an operation with tracing, metrics, and panic recovery.
func (s *AuditService) instrument(ctx context.Context, operationName, identifier string, op func(ctx context.Context) error) (err error) {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, "AuditService")

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, "AuditService", time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, "AuditService")
			span.RecordError(err)
		}
	}()

	if err = op(ctx); err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, "AuditService")
		span.RecordError(wrappedErr)
		return wrappedErr
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, "AuditService")
	return nil
}
