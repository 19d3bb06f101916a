package eventhandlers

import (
	"context"
	"errors"

	auditevents "github.com/campus-commons/clubhub-bot/app/events/audit"
	eventevents "github.com/campus-commons/clubhub-bot/app/events/event"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
	"github.com/campus-commons/clubhub-bot/internal/handlerwrapper"
)

// HandleCompleteEvent handles the EventCompleteRequested event, fired either
// by the scheduled trigger or by a club moderator closing the event early.
func (h *EventHandlers) HandleCompleteEvent(ctx context.Context, payload *eventevents.EventCompleteRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.CompleteEvent(ctx, payload)
	if err != nil {
		return nil, err
	}

	// Scheduled triggers have no user to report failures to.
	failureTopic := eventevents.EventReviewFailedV1
	if payload.Actor == nil {
		failureTopic = ""
	}

	out := mapOperationResult(result, eventevents.EventCompletedV1, failureTopic)
	if result.IsSuccess() {
		event := (*result.Success).Event
		var performedBy sharedtypes.UserID
		if payload.Actor != nil {
			performedBy = payload.Actor.UserID
		}
		out = append(out, auditResult(event.GuildID, event.ClubID, auditevents.ActionEventCompleted, performedBy, event.ID.String(), map[string]any{
			"title": event.Title,
		}))
	}
	return out, nil
}

// HandlePaymentStatusUpdated handles the payment collaborator's verdict. A
// verified payment re-announces the participant as going; a rejected one
// frees the slot.
func (h *EventHandlers) HandlePaymentStatusUpdated(ctx context.Context, payload *eventevents.PaymentStatusUpdatedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.ApplyPaymentStatus(ctx, payload)
	if err != nil {
		return nil, err
	}

	// Failures here are collaborator races, not user mistakes; drop them.
	if result.IsFailure() {
		return nil, nil
	}

	outcome := *result.Success
	switch {
	case outcome.Confirmed != nil:
		return []handlerwrapper.Result{{
			Topic:   eventevents.EventJoinedV1,
			Payload: *outcome.Confirmed,
		}}, nil
	case outcome.Released != nil:
		return []handlerwrapper.Result{{
			Topic:   eventevents.EventLeftV1,
			Payload: *outcome.Released,
		}}, nil
	}
	return nil, nil
}
