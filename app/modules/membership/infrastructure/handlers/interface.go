package membershiphandlers

import (
	"context"

	membershipevents "github.com/campus-commons/clubhub-bot/app/events/membership"
	"github.com/campus-commons/clubhub-bot/internal/handlerwrapper"
)

// Handlers defines the contract for membership event handlers.
type Handlers interface {
	HandleJoinClub(ctx context.Context, payload *membershipevents.ClubJoinRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleApproveJoinRequest(ctx context.Context, payload *membershipevents.JoinRequestReviewPayloadV1) ([]handlerwrapper.Result, error)
	HandleRejectJoinRequest(ctx context.Context, payload *membershipevents.JoinRequestReviewPayloadV1) ([]handlerwrapper.Result, error)
	HandleRemoveMember(ctx context.Context, payload *membershipevents.MemberRemoveRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandlePromoteTrusted(ctx context.Context, payload *membershipevents.TrustedUpdateRequestedPayloadV1) ([]handlerwrapper.Result, error)
	HandleDemoteTrusted(ctx context.Context, payload *membershipevents.TrustedUpdateRequestedPayloadV1) ([]handlerwrapper.Result, error)
}

var _ Handlers = (*MembershipHandlers)(nil)
