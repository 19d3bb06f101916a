package eventhandlers

import (
	"context"

	eventevents "github.com/campus-commons/clubhub-bot/app/events/event"
	"github.com/campus-commons/clubhub-bot/internal/handlerwrapper"
)

// Handlers defines the contract for event lifecycle handlers.
type Handlers interface {
	HandleCreateEvent(ctx context.Context, payload *eventevents.EventCreateRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleApproveEvent(ctx context.Context, payload *eventevents.EventReviewPayloadV1) ([]handlerwrapper.Result, error)
	HandleRejectEvent(ctx context.Context, payload *eventevents.EventReviewPayloadV1) ([]handlerwrapper.Result, error)
	HandleJoinEvent(ctx context.Context, payload *eventevents.EventJoinRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleLeaveEvent(ctx context.Context, payload *eventevents.EventLeaveRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleCompleteEvent(ctx context.Context, payload *eventevents.EventCompleteRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandlePaymentStatusUpdated(ctx context.Context, payload *eventevents.PaymentStatusUpdatedPayloadV1) ([]handlerwrapper.Result, error)
}

var _ Handlers = (*EventHandlers)(nil)
