package eventservice

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	eventevents "github.com/campus-commons/clubhub-bot/app/events/event"
	eventtypes "github.com/campus-commons/clubhub-bot/app/types/event"
	"github.com/campus-commons/clubhub-bot/internal/results"
)

// LeaveEvent withdraws the actor's registration, freeing the slot for
// someone else.
func (s *EventService) LeaveEvent(ctx context.Context, payload *eventevents.EventLeaveRequestedPayloadV1) (LeaveResult, error) {
	if payload == nil {
		return LeaveResult{}, ErrNilPayload
	}

	leaveTx := func(ctx context.Context, db bun.IDB) (LeaveResult, error) {
		return s.leaveEventLogic(ctx, db, payload)
	}

	return withTelemetry(s, ctx, "LeaveEvent", payload.EventID.String(), func(ctx context.Context) (LeaveResult, error) {
		return runInTx(s, ctx, leaveTx)
	})
}

// leaveEventLogic contains the core logic.
func (s *EventService) leaveEventLogic(ctx context.Context, db bun.IDB, payload *eventevents.EventLeaveRequestedPayloadV1) (LeaveResult, error) {
	fail := func(reason string) LeaveResult {
		eventID := payload.EventID
		return results.FailureResult[*eventevents.EventLeftPayloadV1](
			failurePayload(payload.GuildID, payload.Actor.UserID, &eventID, reason))
	}

	event, reason, err := s.getEvent(ctx, db, payload.EventID)
	if err != nil {
		return LeaveResult{}, err
	}
	if reason != "" {
		return fail(reason), nil
	}
	if event.Status == eventtypes.StatusCompleted {
		return fail("event has already taken place"), nil
	}

	ok, err := s.repo.Withdraw(ctx, db, event.ID, payload.Actor.UserID)
	if err != nil {
		return LeaveResult{}, fmt.Errorf("failed to withdraw participant: %w", err)
	}
	if !ok {
		return fail("you are not registered for this event"), nil
	}

	goingCount, err := s.repo.CountCounted(ctx, db, event.ID, eventtypes.RSVPGoing)
	if err != nil {
		return LeaveResult{}, fmt.Errorf("failed to count participants: %w", err)
	}

	return results.SuccessResult[*eventevents.EventLeftPayloadV1, *eventevents.EventOperationFailedPayloadV1](
		&eventevents.EventLeftPayloadV1{
			Event:      event.ToDomain(),
			UserID:     payload.Actor.UserID,
			GoingCount: goingCount,
		}), nil
}
