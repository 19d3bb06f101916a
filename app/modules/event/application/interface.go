package eventservice

import (
	"context"

	eventevents "github.com/campus-commons/clubhub-bot/app/events/event"
	eventtypes "github.com/campus-commons/clubhub-bot/app/types/event"
	"github.com/campus-commons/clubhub-bot/internal/results"
)

// JoinOutcome is the success side of JoinEvent: exactly one of Joined or
// ExternalForm is set. CapacityReached rides along with Joined when this
// registration filled the last slot.
type JoinOutcome struct {
	Joined          *eventevents.EventJoinedPayloadV1
	ExternalForm    *eventevents.EventExternalFormPayloadV1
	CapacityReached *eventevents.EventCapacityReachedPayloadV1
}

// PaymentOutcome is the success side of ApplyPaymentStatus: Confirmed when
// the payment was verified, Released when it was rejected and the slot freed.
type PaymentOutcome struct {
	Confirmed *eventevents.EventJoinedPayloadV1
	Released  *eventevents.EventLeftPayloadV1
}

// Result aliases to reduce generic verbosity.
type (
	CreateResult   = results.OperationResult[*eventevents.EventCreatedPayloadV1, *eventevents.EventOperationFailedPayloadV1]
	ApproveResult  = results.OperationResult[*eventevents.EventApprovedPayloadV1, *eventevents.EventOperationFailedPayloadV1]
	RejectResult   = results.OperationResult[*eventevents.EventRejectedPayloadV1, *eventevents.EventOperationFailedPayloadV1]
	JoinResult     = results.OperationResult[JoinOutcome, *eventevents.EventOperationFailedPayloadV1]
	LeaveResult    = results.OperationResult[*eventevents.EventLeftPayloadV1, *eventevents.EventOperationFailedPayloadV1]
	CompleteResult = results.OperationResult[*eventevents.EventCompletedPayloadV1, *eventevents.EventOperationFailedPayloadV1]
	CloseResult    = results.OperationResult[*eventevents.EventRegistrationClosedPayloadV1, *eventevents.EventOperationFailedPayloadV1]
	PaymentResult  = results.OperationResult[PaymentOutcome, *eventevents.EventOperationFailedPayloadV1]
)

// Service defines the interface for event lifecycle operations.
type Service interface {
	CreateEvent(ctx context.Context, payload *eventevents.EventCreateRequestedPayloadV1) (CreateResult, error)
	ApproveEvent(ctx context.Context, payload *eventevents.EventReviewPayloadV1) (ApproveResult, error)
	RejectEvent(ctx context.Context, payload *eventevents.EventReviewPayloadV1) (RejectResult, error)
	JoinEvent(ctx context.Context, payload *eventevents.EventJoinRequestedPayloadV1) (JoinResult, error)
	LeaveEvent(ctx context.Context, payload *eventevents.EventLeaveRequestedPayloadV1) (LeaveResult, error)
	CompleteEvent(ctx context.Context, payload *eventevents.EventCompleteRequestedPayloadV1) (CompleteResult, error)
	CloseRegistration(ctx context.Context, eventID eventtypes.EventID) (CloseResult, error)
	ApplyPaymentStatus(ctx context.Context, payload *eventevents.PaymentStatusUpdatedPayloadV1) (PaymentResult, error)
}
