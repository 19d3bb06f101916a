package eventservice

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	eventevents "github.com/campus-commons/clubhub-bot/app/events/event"
	eventdb "github.com/campus-commons/clubhub-bot/app/modules/event/infrastructure/repositories"
	"github.com/campus-commons/clubhub-bot/app/permissions"
	eventtypes "github.com/campus-commons/clubhub-bot/app/types/event"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
	"github.com/campus-commons/clubhub-bot/internal/results"
)

// CompleteEvent moves a scheduled event to completed and credits attendance
// to the going participants. A nil actor is the scheduled trigger firing at
// the event's end time; a human actor needs moderate authority in the club.
func (s *EventService) CompleteEvent(ctx context.Context, payload *eventevents.EventCompleteRequestedPayloadV1) (CompleteResult, error) {
	if payload == nil {
		return CompleteResult{}, ErrNilPayload
	}

	completeTx := func(ctx context.Context, db bun.IDB) (CompleteResult, error) {
		return s.completeEventLogic(ctx, db, payload)
	}

	return withTelemetry(s, ctx, "CompleteEvent", payload.EventID.String(), func(ctx context.Context) (CompleteResult, error) {
		return runInTx(s, ctx, completeTx)
	})
}

// completeEventLogic contains the core logic.
func (s *EventService) completeEventLogic(ctx context.Context, db bun.IDB, payload *eventevents.EventCompleteRequestedPayloadV1) (CompleteResult, error) {
	var actorID sharedtypes.UserID
	if payload.Actor != nil {
		actorID = payload.Actor.UserID
	}
	fail := func(reason string) CompleteResult {
		eventID := payload.EventID
		return results.FailureResult[*eventevents.EventCompletedPayloadV1](
			failurePayload(payload.GuildID, actorID, &eventID, reason))
	}

	event, reason, err := s.getEvent(ctx, db, payload.EventID)
	if err != nil {
		return CompleteResult{}, err
	}
	if reason != "" {
		return fail(reason), nil
	}
	if event.Status != eventtypes.StatusScheduled {
		return fail(fmt.Sprintf("event is not scheduled (status: %s)", event.Status)), nil
	}

	if payload.Actor != nil {
		club, reason, err := s.getActiveClub(ctx, db, event.ClubID)
		if err != nil {
			return CompleteResult{}, err
		}
		if reason != "" {
			return fail(reason), nil
		}
		member, trusted, err := s.actorContext(ctx, db, club.ID, actorID)
		if err != nil {
			return CompleteResult{}, err
		}
		domainClub := club.ToDomain()
		decision := permissions.Resolve(permissions.Input{
			Actor:   *payload.Actor,
			Club:    &domainClub,
			Member:  member,
			Trusted: trusted,
			Action:  permissions.ActionModerate,
		})
		if !decision.Allowed {
			return fail(fmt.Sprintf("you cannot complete events for %q: %s", club.Name, decision.Reason)), nil
		}
	}

	ok, err := s.repo.TransitionStatus(ctx, db, event.ID, eventtypes.StatusScheduled, eventtypes.StatusCompleted)
	if err != nil {
		return CompleteResult{}, fmt.Errorf("failed to complete event: %w", err)
	}
	if !ok {
		return fail("event was just completed"), nil
	}
	event.Status = eventtypes.StatusCompleted

	if err := s.creditAttendance(ctx, db, event); err != nil {
		return CompleteResult{}, err
	}

	return results.SuccessResult[*eventevents.EventCompletedPayloadV1, *eventevents.EventOperationFailedPayloadV1](
		&eventevents.EventCompletedPayloadV1{Event: event.ToDomain()}), nil
}

// creditAttendance bumps the attendance counter of every going participant
// who is a member of the hosting club. Attendance feeds the eligibility
// filters on future events.
func (s *EventService) creditAttendance(ctx context.Context, db bun.IDB, event *eventdb.Event) error {
	participants, err := s.repo.ListParticipants(ctx, db, event.ID, eventtypes.RSVPGoing)
	if err != nil {
		return fmt.Errorf("failed to list participants: %w", err)
	}
	if len(participants) == 0 {
		return nil
	}
	userIDs := make([]sharedtypes.UserID, 0, len(participants))
	for _, p := range participants {
		userIDs = append(userIDs, p.UserID)
	}
	if err := s.members.IncrementAttendance(ctx, db, event.ClubID, userIDs); err != nil {
		return fmt.Errorf("failed to credit attendance: %w", err)
	}
	return nil
}

// CloseRegistration fires when an event's registration deadline passes. It
// only verifies the event is still scheduled; the published result tells the
// gateway to disable the join control.
func (s *EventService) CloseRegistration(ctx context.Context, eventID eventtypes.EventID) (CloseResult, error) {
	closeTx := func(ctx context.Context, db bun.IDB) (CloseResult, error) {
		return s.closeRegistrationLogic(ctx, db, eventID)
	}

	return withTelemetry(s, ctx, "CloseRegistration", eventID.String(), func(ctx context.Context) (CloseResult, error) {
		return runInTx(s, ctx, closeTx)
	})
}

// closeRegistrationLogic contains the core logic.
func (s *EventService) closeRegistrationLogic(ctx context.Context, db bun.IDB, eventID eventtypes.EventID) (CloseResult, error) {
	event, reason, err := s.getEvent(ctx, db, eventID)
	if err != nil {
		return CloseResult{}, err
	}
	if reason != "" {
		return results.FailureResult[*eventevents.EventRegistrationClosedPayloadV1](
			failurePayload("", "", &eventID, reason)), nil
	}
	if event.Status != eventtypes.StatusScheduled {
		return results.FailureResult[*eventevents.EventRegistrationClosedPayloadV1](
			failurePayload(event.GuildID, "", &eventID, fmt.Sprintf("event is not scheduled (status: %s)", event.Status))), nil
	}

	return results.SuccessResult[*eventevents.EventRegistrationClosedPayloadV1, *eventevents.EventOperationFailedPayloadV1](
		&eventevents.EventRegistrationClosedPayloadV1{Event: event.ToDomain()}), nil
}
