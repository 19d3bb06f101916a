package eventhandlers

import (
	"context"
	"errors"

	auditevents "github.com/campus-commons/clubhub-bot/app/events/audit"
	eventevents "github.com/campus-commons/clubhub-bot/app/events/event"
	"github.com/campus-commons/clubhub-bot/internal/handlerwrapper"
)

// HandleCreateEvent handles the EventCreateRequested event.
func (h *EventHandlers) HandleCreateEvent(ctx context.Context, payload *eventevents.EventCreateRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.CreateEvent(ctx, payload)
	if err != nil {
		return nil, err
	}

	out := mapOperationResult(result, eventevents.EventCreatedV1, eventevents.EventCreationFailedV1)
	if result.IsSuccess() {
		event := (*result.Success).Event
		out = append(out, auditResult(event.GuildID, event.ClubID, auditevents.ActionEventCreated, payload.Actor.UserID, event.ID.String(), map[string]any{
			"title":      event.Title,
			"start_time": event.StartTime,
		}))
	}
	return out, nil
}
