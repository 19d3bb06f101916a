package membershipservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	clubdb "github.com/campus-commons/clubhub-bot/app/modules/club/infrastructure/repositories"
	membershipdb "github.com/campus-commons/clubhub-bot/app/modules/membership/infrastructure/repositories"
	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	membershiptypes "github.com/campus-commons/clubhub-bot/app/types/membership"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
	"github.com/campus-commons/clubhub-bot/internal/attr"
	"github.com/campus-commons/clubhub-bot/internal/observability"
	"github.com/campus-commons/clubhub-bot/internal/platform"
	"github.com/campus-commons/clubhub-bot/internal/results"
)

// Config is the membership policy surface.
type Config struct {
	// MinInterestReasonLength is the minimum motivation length on
	// approval-gated join forms.
	MinInterestReasonLength int
}

// MembershipService implements the Service interface.
type MembershipService struct {
	repo     membershipdb.Repository
	clubs    clubdb.Repository
	verifier platform.VerificationClient
	notifier platform.Client
	cfg      Config
	logger   *slog.Logger
	metrics  observability.OperationMetrics
	tracer   trace.Tracer
	db       *bun.DB
}

// NewMembershipService creates a new MembershipService.
func NewMembershipService(
	repo membershipdb.Repository,
	clubs clubdb.Repository,
	verifier platform.VerificationClient,
	notifier platform.Client,
	cfg Config,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *MembershipService {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &MembershipService{
		repo:     repo,
		clubs:    clubs,
		verifier: verifier,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
		db:       db,
	}
}

// getActiveClub loads a club and requires it to be active. A non-empty
// reason is a domain failure; err is infrastructure.
func (s *MembershipService) getActiveClub(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID) (*clubdb.Club, string, error) {
	club, err := s.clubs.GetByID(ctx, db, clubID)
	if err != nil {
		if errors.Is(err, clubdb.ErrNotFound) {
			return nil, "club not found", nil
		}
		return nil, "", fmt.Errorf("failed to load club: %w", err)
	}
	if club.Status != clubtypes.StatusActive {
		return nil, fmt.Sprintf("club %q is not active", club.Name), nil
	}
	return club, "", nil
}

// notifyDM sends a best-effort direct message.
func (s *MembershipService) notifyDM(ctx context.Context, userID sharedtypes.UserID, msg platform.Message) {
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

// grantRole assigns the club role, logging on failure instead of rolling
// back the membership change.
func (s *MembershipService) grantRole(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID, roleID sharedtypes.RoleID) {
	if s.notifier == nil || roleID == "" {
		return
	}
	if err := s.notifier.AssignRole(ctx, guildID, userID, roleID); err != nil {
		s.logger.WarnContext(ctx, "Failed to assign club role",
			attr.ExtractCorrelationID(ctx),
			attr.String("user_id", string(userID)),
			attr.String("role_id", string(roleID)),
			attr.Error(err),
		)
	}
}

// revokeRole removes the club role, logging on failure.
func (s *MembershipService) revokeRole(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID, roleID sharedtypes.RoleID) {
	if s.notifier == nil || roleID == "" {
		return
	}
	if err := s.notifier.RevokeRole(ctx, guildID, userID, roleID); err != nil {
		s.logger.WarnContext(ctx, "Failed to revoke club role",
			attr.ExtractCorrelationID(ctx),
			attr.String("user_id", string(userID)),
			attr.String("role_id", string(roleID)),
			attr.Error(err),
		)
	}
}

// actorContext loads the acting user's membership row and trusted flag for
// permission resolution. A missing row is not an error.
func (s *MembershipService) actorContext(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (*membershiptypes.ClubMember, bool, error) {
	row, err := s.repo.GetMember(ctx, db, clubID, userID)
	if err != nil {
		if errors.Is(err, membershipdb.ErrMemberNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load actor membership: %w", err)
	}
	member := row.ToDomain()

	trusted, err := s.repo.IsTrusted(ctx, db, clubID, userID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load trusted flag: %w", err)
	}
	return &member, trusted, nil
}

// -----------------------------------------------------------------------------
// Generic Helpers (Defined as functions because methods cannot have type params)
// -----------------------------------------------------------------------------

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *MembershipService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {

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

	s.metrics.RecordOperationAttempt(ctx, operationName, "MembershipService")

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, "MembershipService", time.Since(startTime))
	}()

	s.logger.InfoContext(ctx, "Operation triggered", attr.ExtractCorrelationID(ctx), attr.String("operation", operationName))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, "MembershipService")
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, "MembershipService")
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

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

	s.metrics.RecordOperationSuccess(ctx, operationName, "MembershipService")

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *MembershipService,
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
