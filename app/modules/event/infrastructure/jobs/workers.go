package eventjobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/riverqueue/river"

	eventevents "github.com/campus-commons/clubhub-bot/app/events/event"
	eventservice "github.com/campus-commons/clubhub-bot/app/modules/event/application"
	eventdb "github.com/campus-commons/clubhub-bot/app/modules/event/infrastructure/repositories"
	eventtypes "github.com/campus-commons/clubhub-bot/app/types/event"
	"github.com/campus-commons/clubhub-bot/internal/attr"
	"github.com/campus-commons/clubhub-bot/internal/eventbus"
	"github.com/campus-commons/clubhub-bot/internal/handlerwrapper"
)

// RegistrationCloser is the slice of the event service the deadline worker
// needs. The scheduler and the service reference each other, so the worker
// holds an interface wired after both are constructed.
type RegistrationCloser interface {
	CloseRegistration(ctx context.Context, eventID eventtypes.EventID) (eventservice.CloseResult, error)
}

// TransferSweeper is the slice of the transfer service the expiry worker
// needs.
type TransferSweeper interface {
	ExpireStaleRequests(ctx context.Context, olderThan time.Duration) (int, error)
}

// publishCommand marshals a payload and publishes it with a fresh
// correlation id. Job-originated commands have no inbound message to
// inherit one from.
func publishCommand(ctx context.Context, publisher eventbus.EventBus, topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload for %s: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.Metadata.Set(handlerwrapper.MetadataCorrelationID, msg.UUID)
	msg.SetContext(ctx)

	if err := publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

// EventCompletionWorker publishes the completion command when an event's
// scheduled end passes. The nil actor marks the scheduled trigger.
type EventCompletionWorker struct {
	river.WorkerDefaults[EventCompletionJob]
	logger    *slog.Logger
	publisher eventbus.EventBus
}

// NewEventCompletionWorker creates a worker that fires event completions.
func NewEventCompletionWorker(logger *slog.Logger, publisher eventbus.EventBus) *EventCompletionWorker {
	return &EventCompletionWorker{logger: logger, publisher: publisher}
}

func (w *EventCompletionWorker) Work(ctx context.Context, job *river.Job[EventCompletionJob]) error {
	eventID, err := uuid.Parse(job.Args.EventID)
	if err != nil {
		w.logger.ErrorContext(ctx, "Completion job carries a malformed event id, dropping",
			attr.String("event_id", job.Args.EventID),
			attr.Error(err),
		)
		return nil
	}

	w.logger.InfoContext(ctx, "Firing scheduled event completion",
		attr.String("event_id", job.Args.EventID),
	)

	return publishCommand(ctx, w.publisher, eventevents.EventCompleteRequestedV1, eventevents.EventCompleteRequestedPayloadV1{
		EventID: eventID,
		GuildID: job.Args.GuildID,
		Actor:   nil,
	})
}

// RegistrationCloseWorker closes an event's registration window at its
// deadline and announces the closure.
type RegistrationCloseWorker struct {
	river.WorkerDefaults[RegistrationCloseJob]
	logger    *slog.Logger
	publisher eventbus.EventBus
	service   RegistrationCloser
}

// NewRegistrationCloseWorker creates a worker that fires registration
// deadlines. The service is wired later via SetService.
func NewRegistrationCloseWorker(logger *slog.Logger, publisher eventbus.EventBus) *RegistrationCloseWorker {
	return &RegistrationCloseWorker{logger: logger, publisher: publisher}
}

// SetService wires the event service. Must happen before the queue starts.
func (w *RegistrationCloseWorker) SetService(service RegistrationCloser) {
	w.service = service
}

func (w *RegistrationCloseWorker) Work(ctx context.Context, job *river.Job[RegistrationCloseJob]) error {
	if w.service == nil {
		return fmt.Errorf("registration close worker has no service wired")
	}

	eventID, err := uuid.Parse(job.Args.EventID)
	if err != nil {
		w.logger.ErrorContext(ctx, "Registration close job carries a malformed event id, dropping",
			attr.String("event_id", job.Args.EventID),
			attr.Error(err),
		)
		return nil
	}

	result, err := w.service.CloseRegistration(ctx, eventID)
	if err != nil {
		return err
	}

	if result.IsFailure() {
		// The event was completed or rejected before the deadline fired.
		w.logger.InfoContext(ctx, "Registration close skipped",
			attr.String("event_id", job.Args.EventID),
			attr.String("reason", (*result.Failure).Reason),
		)
		return nil
	}

	return publishCommand(ctx, w.publisher, eventevents.EventRegistrationClosedV1, **result.Success)
}

// EventSweepWorker completes overdue scheduled events that slipped past
// their completion job, such as events approved while the queue was down.
type EventSweepWorker struct {
	river.WorkerDefaults[EventSweepJob]
	logger    *slog.Logger
	publisher eventbus.EventBus
	events    eventdb.Repository
}

// NewEventSweepWorker creates the periodic overdue-event sweep.
func NewEventSweepWorker(logger *slog.Logger, publisher eventbus.EventBus, events eventdb.Repository) *EventSweepWorker {
	return &EventSweepWorker{logger: logger, publisher: publisher, events: events}
}

func (w *EventSweepWorker) Work(ctx context.Context, job *river.Job[EventSweepJob]) error {
	overdue, err := w.events.ListOverdue(ctx, nil, time.Now().UTC())
	if err != nil {
		return err
	}
	if len(overdue) == 0 {
		return nil
	}

	w.logger.InfoContext(ctx, "Sweeping overdue events",
		attr.Int("overdue_count", len(overdue)),
	)

	for _, event := range overdue {
		err := publishCommand(ctx, w.publisher, eventevents.EventCompleteRequestedV1, eventevents.EventCompleteRequestedPayloadV1{
			EventID: event.ID,
			GuildID: event.GuildID,
			Actor:   nil,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// TransferExpiryWorker expires presidency transfer requests the server
// owner never resolved.
type TransferExpiryWorker struct {
	river.WorkerDefaults[TransferExpiryJob]
	logger     *slog.Logger
	pendingTTL time.Duration
	transfers  TransferSweeper
}

// NewTransferExpiryWorker creates the periodic transfer-request sweep. The
// service is wired later via SetService.
func NewTransferExpiryWorker(logger *slog.Logger, pendingTTL time.Duration) *TransferExpiryWorker {
	return &TransferExpiryWorker{logger: logger, pendingTTL: pendingTTL}
}

// SetService wires the transfer service. Must happen before the queue starts.
func (w *TransferExpiryWorker) SetService(service TransferSweeper) {
	w.transfers = service
}

func (w *TransferExpiryWorker) Work(ctx context.Context, job *river.Job[TransferExpiryJob]) error {
	if w.transfers == nil {
		return fmt.Errorf("transfer expiry worker has no service wired")
	}
	_, err := w.transfers.ExpireStaleRequests(ctx, w.pendingTTL)
	return err
}
