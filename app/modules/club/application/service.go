package clubservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/campus-commons/clubhub-bot/app/modules/club/infrastructure/provision"
	clubdb "github.com/campus-commons/clubhub-bot/app/modules/club/infrastructure/repositories"
	membershipdb "github.com/campus-commons/clubhub-bot/app/modules/membership/infrastructure/repositories"
	"github.com/campus-commons/clubhub-bot/internal/attr"
	"github.com/campus-commons/clubhub-bot/internal/observability"
	"github.com/campus-commons/clubhub-bot/internal/platform"
	"github.com/campus-commons/clubhub-bot/internal/results"

	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// ResourceProvisioner creates or reuses the platform resources behind an
// approved club.
type ResourceProvisioner interface {
	Provision(ctx context.Context, req provision.Request) (provision.Resources, error)
}

// ClubService implements the Service interface.
type ClubService struct {
	repo        clubdb.Repository
	members     membershipdb.Repository
	provisioner ResourceProvisioner
	notifier    platform.Client
	logger      *slog.Logger
	metrics     observability.OperationMetrics
	tracer      trace.Tracer
	db          *bun.DB
}

// NewClubService creates a new ClubService.
func NewClubService(
	repo clubdb.Repository,
	members membershipdb.Repository,
	provisioner ResourceProvisioner,
	notifier platform.Client,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *ClubService {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &ClubService{
		repo:        repo,
		members:     members,
		provisioner: provisioner,
		notifier:    notifier,
		logger:      logger,
		metrics:     metrics,
		tracer:      tracer,
		db:          db,
	}
}

// notifyDM sends a best-effort direct message. Delivery failure is logged and
// never rolls back the operation that triggered it.
func (s *ClubService) notifyDM(ctx context.Context, userID sharedtypes.UserID, msg platform.Message) {
	if s.notifier == nil || userID == "" {
		return
	}
	if err := s.notifier.SendDM(ctx, userID, msg); err != nil {
		s.logger.WarnContext(ctx, "Failed to deliver DM",
			attr.ExtractCorrelationID(ctx),
			attr.String("user_id", string(userID)),
			attr.Error(err),
		)
	}
}

// -----------------------------------------------------------------------------
// Generic Helpers (Defined as functions because methods cannot have type params)
// -----------------------------------------------------------------------------

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *ClubService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {

	// Start span
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

	s.metrics.RecordOperationAttempt(ctx, operationName, "ClubService")

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, "ClubService", time.Since(startTime))
	}()

	s.logger.InfoContext(ctx, "Operation triggered", attr.ExtractCorrelationID(ctx), attr.String("operation", operationName))

	// Panic recovery
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, "ClubService")
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	// Infrastructure error
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, "ClubService")
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	// Domain failure
	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, "Operation completed successfully",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
		)
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, "ClubService")

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *ClubService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {

	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})

	return result, err
}
