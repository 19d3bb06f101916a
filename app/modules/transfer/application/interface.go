package transferservice

import (
	"context"
	"time"

	transferevents "github.com/campus-commons/clubhub-bot/app/events/transfer"
	"github.com/campus-commons/clubhub-bot/internal/results"
)

// RequestOutcome is the success side of RequestTransfer: exactly one of
// Executed (president or owner initiated) or Pending (admin initiated,
// awaiting owner approval) is set.
type RequestOutcome struct {
	Executed *transferevents.TransferExecutedPayloadV1
	Pending  *transferevents.TransferPendingPayloadV1
}

// Result aliases to reduce generic verbosity.
type (
	RequestResult = results.OperationResult[RequestOutcome, *transferevents.TransferFailedPayloadV1]
	ApproveResult = results.OperationResult[*transferevents.TransferExecutedPayloadV1, *transferevents.TransferFailedPayloadV1]
	DenyResult    = results.OperationResult[*transferevents.TransferDeniedPayloadV1, *transferevents.TransferFailedPayloadV1]
)

// Service defines the interface for presidency transfer operations.
type Service interface {
	RequestTransfer(ctx context.Context, payload *transferevents.TransferRequestedPayloadV1) (RequestResult, error)
	ApproveTransfer(ctx context.Context, payload *transferevents.TransferResolvePayloadV1) (ApproveResult, error)
	DenyTransfer(ctx context.Context, payload *transferevents.TransferResolvePayloadV1) (DenyResult, error)
	ExpireStaleRequests(ctx context.Context, olderThan time.Duration) (int, error)
}
