package eventhandlers

import (
	"context"
	"errors"

	auditevents "github.com/campus-commons/clubhub-bot/app/events/audit"
	eventevents "github.com/campus-commons/clubhub-bot/app/events/event"
	"github.com/campus-commons/clubhub-bot/internal/handlerwrapper"
)

// HandleApproveEvent handles the EventApproveRequested event.
func (h *EventHandlers) HandleApproveEvent(ctx context.Context, payload *eventevents.EventReviewPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.ApproveEvent(ctx, payload)
	if err != nil {
		return nil, err
	}

	out := mapOperationResult(result, eventevents.EventApprovedV1, eventevents.EventReviewFailedV1)
	if result.IsSuccess() {
		event := (*result.Success).Event
		out = append(out, auditResult(event.GuildID, event.ClubID, auditevents.ActionEventApproved, payload.Actor.UserID, event.ID.String(), map[string]any{
			"title": event.Title,
		}))
	}
	return out, nil
}

// HandleRejectEvent handles the EventRejectRequested event.
func (h *EventHandlers) HandleRejectEvent(ctx context.Context, payload *eventevents.EventReviewPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.RejectEvent(ctx, payload)
	if err != nil {
		return nil, err
	}

	out := mapOperationResult(result, eventevents.EventRejectedV1, eventevents.EventReviewFailedV1)
	if result.IsSuccess() {
		rejected := *result.Success
		out = append(out, auditResult(rejected.Event.GuildID, rejected.Event.ClubID, auditevents.ActionEventRejected, payload.Actor.UserID, rejected.Event.ID.String(), map[string]any{
			"title":  rejected.Event.Title,
			"reason": rejected.Reason,
		}))
	}
	return out, nil
}
