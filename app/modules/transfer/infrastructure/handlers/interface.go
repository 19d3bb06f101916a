package transferhandlers

import (
	"context"

	transferevents "github.com/campus-commons/clubhub-bot/app/events/transfer"
	"github.com/campus-commons/clubhub-bot/internal/handlerwrapper"
)

// Handlers defines the contract for transfer event handlers.
type Handlers interface {
	HandleRequestTransfer(ctx context.Context, payload *transferevents.TransferRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleApproveTransfer(ctx context.Context, payload *transferevents.TransferResolvePayloadV1) ([]handlerwrapper.Result, error)
	HandleDenyTransfer(ctx context.Context, payload *transferevents.TransferResolvePayloadV1) ([]handlerwrapper.Result, error)
}

var _ Handlers = (*TransferHandlers)(nil)
