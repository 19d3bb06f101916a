package eventservice

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
	eventdb "github.com/campus-commons/clubhub-bot/app/modules/event/infrastructure/repositories"
	membershipdb "github.com/campus-commons/clubhub-bot/app/modules/membership/infrastructure/repositories"
	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	eventtypes "github.com/campus-commons/clubhub-bot/app/types/event"
	membershiptypes "github.com/campus-commons/clubhub-bot/app/types/membership"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
	"github.com/campus-commons/clubhub-bot/internal/attr"
	"github.com/campus-commons/clubhub-bot/internal/observability"
	"github.com/campus-commons/clubhub-bot/internal/platform"
	"github.com/campus-commons/clubhub-bot/internal/results"
)

// Config is the event policy surface.
type Config struct {
	// CountPendingPaymentTowardCapacity holds a seat for registrations that
	// are awaiting payment verification. When false a pending-payment
	// registration does not block others from joining.
	CountPendingPaymentTowardCapacity bool
}

// Scheduler enqueues delayed event work: completion when the event ends and
// registration close when the deadline passes. A nil Scheduler disables
// scheduling.
type Scheduler interface {
	ScheduleEventCompletion(ctx context.Context, eventID eventtypes.EventID, guildID sharedtypes.GuildID, at time.Time) error
	ScheduleRegistrationClose(ctx context.Context, eventID eventtypes.EventID, at time.Time) error
}

// EventService implements the Service interface.
type EventService struct {
	repo      eventdb.Repository
	clubs     clubdb.Repository
	members   membershipdb.Repository
	verifier  platform.VerificationClient
	notifier  platform.Client
	scheduler Scheduler
	cfg       Config
	logger    *slog.Logger
	metrics   observability.OperationMetrics
	tracer    trace.Tracer
	db        *bun.DB
}

// NewEventService creates a new EventService.
func NewEventService(
	repo eventdb.Repository,
	clubs clubdb.Repository,
	members membershipdb.Repository,
	verifier platform.VerificationClient,
	notifier platform.Client,
	scheduler Scheduler,
	cfg Config,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *EventService {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &EventService{
		repo:      repo,
		clubs:     clubs,
		members:   members,
		verifier:  verifier,
		notifier:  notifier,
		scheduler: scheduler,
		cfg:       cfg,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		db:        db,
	}
}

// getActiveClub loads a club and requires it to be active. A non-empty
// reason is a domain failure; err is infrastructure.
func (s *EventService) getActiveClub(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID) (*clubdb.Club, string, error) {
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

// getEvent loads an event. A non-empty reason is a domain failure; err is
// infrastructure.
func (s *EventService) getEvent(ctx context.Context, db bun.IDB, eventID eventtypes.EventID) (*eventdb.Event, string, error) {
	event, err := s.repo.GetByID(ctx, db, eventID)
	if err != nil {
		if errors.Is(err, eventdb.ErrEventNotFound) {
			return nil, "event not found", nil
		}
		return nil, "", fmt.Errorf("failed to load event: %w", err)
	}
	return event, "", nil
}

// actorContext loads the acting user's membership row and trusted flag for
// permission resolution. A missing row is not an error.
func (s *EventService) actorContext(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (*membershiptypes.ClubMember, bool, error) {
	row, err := s.members.GetMember(ctx, db, clubID, userID)
	if err != nil {
		if errors.Is(err, membershipdb.ErrMemberNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load actor membership: %w", err)
	}
	member := row.ToDomain()

	trusted, err := s.members.IsTrusted(ctx, db, clubID, userID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load trusted flag: %w", err)
	}
	return &member, trusted, nil
}

// notifyDM sends a best-effort direct message.
func (s *EventService) notifyDM(ctx context.Context, userID sharedtypes.UserID, msg platform.Message) {
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

// countedStatuses returns the RSVP statuses that occupy a capacity slot.
func (s *EventService) countedStatuses() []eventtypes.RSVPStatus {
	if s.cfg.CountPendingPaymentTowardCapacity {
		return []eventtypes.RSVPStatus{eventtypes.RSVPGoing, eventtypes.RSVPPendingPayment}
	}
	return []eventtypes.RSVPStatus{eventtypes.RSVPGoing}
}

// -----------------------------------------------------------------------------
// Generic Helpers (Defined as functions because methods cannot have type params)
// -----------------------------------------------------------------------------

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *EventService,
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

	s.metrics.RecordOperationAttempt(ctx, operationName, "EventService")

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, "EventService", time.Since(startTime))
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
			s.metrics.RecordOperationFailure(ctx, operationName, "EventService")
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
		s.metrics.RecordOperationFailure(ctx, operationName, "EventService")
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

	s.metrics.RecordOperationSuccess(ctx, operationName, "EventService")

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *EventService,
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
