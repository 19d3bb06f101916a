package eventservice

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	eventevents "github.com/campus-commons/clubhub-bot/app/events/event"
	eventtypes "github.com/campus-commons/clubhub-bot/app/types/event"
	"github.com/campus-commons/clubhub-bot/internal/attr"
	"github.com/campus-commons/clubhub-bot/internal/platform"
	"github.com/campus-commons/clubhub-bot/internal/results"
)

// ApproveEvent publishes a pending event. Review is a server-level gate, so
// only server administrators can approve; the listing is posted to the club
// channel and the delayed completion and registration-close work is enqueued.
func (s *EventService) ApproveEvent(ctx context.Context, payload *eventevents.EventReviewPayloadV1) (ApproveResult, error) {
	if payload == nil {
		return ApproveResult{}, ErrNilPayload
	}

	approveTx := func(ctx context.Context, db bun.IDB) (ApproveResult, error) {
		return s.approveEventLogic(ctx, db, payload)
	}

	result, err := withTelemetry(s, ctx, "ApproveEvent", payload.EventID.String(), func(ctx context.Context) (ApproveResult, error) {
		return runInTx(s, ctx, approveTx)
	})
	if err != nil {
		return result, err
	}

	if result.IsSuccess() {
		event := (*result.Success).Event
		s.publishListing(ctx, &event)
		s.scheduleEventWork(ctx, &event)
		s.notifyDM(ctx, event.CreatedBy, platform.Message{
			Content: fmt.Sprintf("Your event **%s** has been approved and published.", event.Title),
		})
	}
	return result, nil
}

// approveEventLogic contains the core logic.
func (s *EventService) approveEventLogic(ctx context.Context, db bun.IDB, payload *eventevents.EventReviewPayloadV1) (ApproveResult, error) {
	fail := func(reason string) ApproveResult {
		eventID := payload.EventID
		return results.FailureResult[*eventevents.EventApprovedPayloadV1](
			failurePayload(payload.GuildID, payload.Actor.UserID, &eventID, reason))
	}

	if !payload.Actor.IsServerOwner && !payload.Actor.IsServerAdmin {
		return fail("only server administrators can review events"), nil
	}

	event, reason, err := s.getEvent(ctx, db, payload.EventID)
	if err != nil {
		return ApproveResult{}, err
	}
	if reason != "" {
		return fail(reason), nil
	}
	if event.Status != eventtypes.StatusPending {
		return fail(fmt.Sprintf("event has already been reviewed (status: %s)", event.Status)), nil
	}

	if _, reason, err = s.getActiveClub(ctx, db, event.ClubID); err != nil {
		return ApproveResult{}, err
	} else if reason != "" {
		return fail(reason), nil
	}

	ok, err := s.repo.MarkScheduled(ctx, db, event.ID, payload.Actor.UserID)
	if err != nil {
		return ApproveResult{}, fmt.Errorf("failed to mark event scheduled: %w", err)
	}
	if !ok {
		return fail("event was just reviewed by another administrator"), nil
	}

	event.Status = eventtypes.StatusScheduled
	event.ApprovedBy = payload.Actor.UserID

	return results.SuccessResult[*eventevents.EventApprovedPayloadV1, *eventevents.EventOperationFailedPayloadV1](
		&eventevents.EventApprovedPayloadV1{
			Event:      event.ToDomain(),
			ApprovedBy: payload.Actor.UserID,
		}), nil
}

// publishListing posts the approved event to the club channel and records
// the listing message so later edits can find it. Best effort.
func (s *EventService) publishListing(ctx context.Context, event *eventtypes.Event) {
	if s.notifier == nil {
		return
	}
	club, err := s.clubs.GetByID(ctx, nil, event.ClubID)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to load club for event listing",
			attr.ExtractCorrelationID(ctx),
			attr.String("event_id", event.ID.String()),
			attr.Error(err),
		)
		return
	}
	if club.ChannelID == "" {
		return
	}

	messageID, err := s.notifier.PostMessage(ctx, club.ChannelID, platform.Message{
		Content: listingMessage(event),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to post event listing",
			attr.ExtractCorrelationID(ctx),
			attr.String("event_id", event.ID.String()),
			attr.String("channel_id", string(club.ChannelID)),
			attr.Error(err),
		)
		return
	}

	if err := s.repo.SetListingRef(ctx, nil, event.ID, club.ChannelID, messageID); err != nil {
		s.logger.WarnContext(ctx, "Failed to record event listing ref",
			attr.ExtractCorrelationID(ctx),
			attr.String("event_id", event.ID.String()),
			attr.Error(err),
		)
		return
	}
	event.ChannelID = club.ChannelID
	event.MessageID = messageID
}

// listingMessage renders the channel announcement for a published event.
func listingMessage(event *eventtypes.Event) string {
	msg := fmt.Sprintf("**%s** — %s", event.Title, event.StartTime.Format("Mon, Jan 2 at 3:04 PM"))
	if event.Location != "" {
		msg += fmt.Sprintf("\nLocation: %s", event.Location)
	}
	if event.Description != "" {
		msg += "\n" + event.Description
	}
	if event.Registration.Fee > 0 {
		msg += fmt.Sprintf("\nRegistration fee: %d", event.Registration.Fee)
	}
	return msg
}

// scheduleEventWork enqueues the event's delayed transitions. Scheduling
// failures are logged, not surfaced: the periodic sweep also picks up
// overdue events.
func (s *EventService) scheduleEventWork(ctx context.Context, event *eventtypes.Event) {
	if s.scheduler == nil {
		return
	}

	completeAt := event.StartTime
	if event.EndTime != nil {
		completeAt = *event.EndTime
	}
	if err := s.scheduler.ScheduleEventCompletion(ctx, event.ID, event.GuildID, completeAt); err != nil {
		s.logger.WarnContext(ctx, "Failed to schedule event completion",
			attr.ExtractCorrelationID(ctx),
			attr.String("event_id", event.ID.String()),
			attr.Error(err),
		)
	}

	if event.Registration.Deadline != nil {
		if err := s.scheduler.ScheduleRegistrationClose(ctx, event.ID, *event.Registration.Deadline); err != nil {
			s.logger.WarnContext(ctx, "Failed to schedule registration close",
				attr.ExtractCorrelationID(ctx),
				attr.String("event_id", event.ID.String()),
				attr.Error(err),
			)
		}
	}
}

// RejectEvent declines a pending event and tells the proposer why.
func (s *EventService) RejectEvent(ctx context.Context, payload *eventevents.EventReviewPayloadV1) (RejectResult, error) {
	if payload == nil {
		return RejectResult{}, ErrNilPayload
	}

	rejectTx := func(ctx context.Context, db bun.IDB) (RejectResult, error) {
		return s.rejectEventLogic(ctx, db, payload)
	}

	result, err := withTelemetry(s, ctx, "RejectEvent", payload.EventID.String(), func(ctx context.Context) (RejectResult, error) {
		return runInTx(s, ctx, rejectTx)
	})
	if err != nil {
		return result, err
	}

	if result.IsSuccess() {
		rejected := *result.Success
		msg := fmt.Sprintf("Your event **%s** was not approved.", rejected.Event.Title)
		if rejected.Reason != "" {
			msg += fmt.Sprintf("\nReason: %s", rejected.Reason)
		}
		s.notifyDM(ctx, rejected.Event.CreatedBy, platform.Message{Content: msg})
	}
	return result, nil
}

// rejectEventLogic contains the core logic.
func (s *EventService) rejectEventLogic(ctx context.Context, db bun.IDB, payload *eventevents.EventReviewPayloadV1) (RejectResult, error) {
	fail := func(reason string) RejectResult {
		eventID := payload.EventID
		return results.FailureResult[*eventevents.EventRejectedPayloadV1](
			failurePayload(payload.GuildID, payload.Actor.UserID, &eventID, reason))
	}

	if !payload.Actor.IsServerOwner && !payload.Actor.IsServerAdmin {
		return fail("only server administrators can review events"), nil
	}

	event, reason, err := s.getEvent(ctx, db, payload.EventID)
	if err != nil {
		return RejectResult{}, err
	}
	if reason != "" {
		return fail(reason), nil
	}
	if event.Status != eventtypes.StatusPending {
		return fail(fmt.Sprintf("event has already been reviewed (status: %s)", event.Status)), nil
	}

	ok, err := s.repo.TransitionStatus(ctx, db, event.ID, eventtypes.StatusPending, eventtypes.StatusRejected)
	if err != nil {
		return RejectResult{}, fmt.Errorf("failed to reject event: %w", err)
	}
	if !ok {
		return fail("event was just reviewed by another administrator"), nil
	}

	event.Status = eventtypes.StatusRejected

	return results.SuccessResult[*eventevents.EventRejectedPayloadV1, *eventevents.EventOperationFailedPayloadV1](
		&eventevents.EventRejectedPayloadV1{
			Event:      event.ToDomain(),
			RejectedBy: payload.Actor.UserID,
			Reason:     payload.Reason,
		}), nil
}
