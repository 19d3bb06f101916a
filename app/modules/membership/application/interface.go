package membershipservice

import (
	"context"

	membershipevents "github.com/campus-commons/clubhub-bot/app/events/membership"
	"github.com/campus-commons/clubhub-bot/internal/results"
)

// JoinOutcome is the success side of JoinClub: exactly one of Joined
// (auto-join clubs) or Submitted (approval-gated clubs) is set.
type JoinOutcome struct {
	Joined    *membershipevents.ClubJoinedPayloadV1
	Submitted *membershipevents.JoinRequestSubmittedPayloadV1
}

// Result aliases to reduce generic verbosity.
type (
	JoinResult    = results.OperationResult[JoinOutcome, *membershipevents.MembershipOperationFailedPayloadV1]
	ReviewResult  = results.OperationResult[*membershipevents.JoinRequestResolvedPayloadV1, *membershipevents.MembershipOperationFailedPayloadV1]
	RemoveResult  = results.OperationResult[*membershipevents.MemberRemovedPayloadV1, *membershipevents.MembershipOperationFailedPayloadV1]
	TrustedResult = results.OperationResult[*membershipevents.TrustedUpdatedPayloadV1, *membershipevents.MembershipOperationFailedPayloadV1]
)

// Service defines the interface for membership operations.
type Service interface {
	JoinClub(ctx context.Context, payload *membershipevents.ClubJoinRequestedPayloadV1) (JoinResult, error)
	ApproveJoinRequest(ctx context.Context, payload *membershipevents.JoinRequestReviewPayloadV1) (ReviewResult, error)
	RejectJoinRequest(ctx context.Context, payload *membershipevents.JoinRequestReviewPayloadV1) (ReviewResult, error)
	RemoveMember(ctx context.Context, payload *membershipevents.MemberRemoveRequestedPayloadV1) (RemoveResult, error)
	PromoteTrusted(ctx context.Context, payload *membershipevents.TrustedUpdateRequestedPayloadV1) (TrustedResult, error)
	DemoteTrusted(ctx context.Context, payload *membershipevents.TrustedUpdateRequestedPayloadV1) (TrustedResult, error)
}
