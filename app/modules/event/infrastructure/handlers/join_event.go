package eventhandlers

import (
	"context"
	"errors"

	auditevents "github.com/campus-commons/clubhub-bot/app/events/audit"
	eventevents "github.com/campus-commons/clubhub-bot/app/events/event"
	"github.com/campus-commons/clubhub-bot/internal/handlerwrapper"
)

// HandleJoinEvent handles the EventJoinRequested event. The success shapes
// publish to different subjects: a registration announces the participant, an
// external-form event hands the user the link. A join that fills the last
// slot additionally raises the capacity event.
func (h *EventHandlers) HandleJoinEvent(ctx context.Context, payload *eventevents.EventJoinRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.JoinEvent(ctx, payload)
	if err != nil {
		return nil, err
	}

	if result.IsFailure() {
		return []handlerwrapper.Result{{
			Topic:   eventevents.EventJoinFailedV1,
			Payload: *result.Failure,
		}}, nil
	}

	outcome := *result.Success
	switch {
	case outcome.Joined != nil:
		event := outcome.Joined.Event
		out := []handlerwrapper.Result{
			{Topic: eventevents.EventJoinedV1, Payload: *outcome.Joined},
			auditResult(event.GuildID, event.ClubID, auditevents.ActionEventParticipantJoined, payload.Actor.UserID, event.ID.String(), map[string]any{
				"title":       event.Title,
				"rsvp_status": outcome.Joined.Participant.RSVPStatus,
			}),
		}
		if outcome.CapacityReached != nil {
			out = append(out, handlerwrapper.Result{
				Topic:   eventevents.EventCapacityReachedV1,
				Payload: *outcome.CapacityReached,
			})
		}
		return out, nil
	case outcome.ExternalForm != nil:
		return []handlerwrapper.Result{{
			Topic:   eventevents.EventExternalFormV1,
			Payload: *outcome.ExternalForm,
		}}, nil
	}
	return nil, nil
}

// HandleLeaveEvent handles the EventLeaveRequested event.
func (h *EventHandlers) HandleLeaveEvent(ctx context.Context, payload *eventevents.EventLeaveRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.LeaveEvent(ctx, payload)
	if err != nil {
		return nil, err
	}

	out := mapOperationResult(result, eventevents.EventLeftV1, eventevents.EventLeaveFailedV1)
	if result.IsSuccess() {
		event := (*result.Success).Event
		out = append(out, auditResult(event.GuildID, event.ClubID, auditevents.ActionEventParticipantLeft, payload.Actor.UserID, event.ID.String(), map[string]any{
			"title": event.Title,
		}))
	}
	return out, nil
}
