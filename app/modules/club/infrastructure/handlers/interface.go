package clubhandlers

import (
	"context"

	clubevents "github.com/campus-commons/clubhub-bot/app/events/club"
	"github.com/campus-commons/clubhub-bot/internal/handlerwrapper"
)

// Handlers defines the contract for club event handlers.
type Handlers interface {
	HandleRegisterClub(ctx context.Context, payload *clubevents.ClubRegisterRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleApproveClub(ctx context.Context, payload *clubevents.ClubReviewRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleRejectClub(ctx context.Context, payload *clubevents.ClubReviewRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleDissolveClub(ctx context.Context, payload *clubevents.ClubReviewRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleListClubs(ctx context.Context, payload *clubevents.ClubListRequestedPayloadV1) ([]handlerwrapper.Result, error)
}

var _ Handlers = (*ClubHandlers)(nil)
