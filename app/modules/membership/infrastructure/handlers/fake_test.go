package membershiphandlers

import (
	"context"

	membershipevents "github.com/campus-commons/clubhub-bot/app/events/membership"
	membershipservice "github.com/campus-commons/clubhub-bot/app/modules/membership/application"
)

// FakeMembershipService is a hand-rolled fake for the membership service.
type FakeMembershipService struct {
	JoinClubFunc           func(ctx context.Context, payload *membershipevents.ClubJoinRequestedPayloadV1) (membershipservice.JoinResult, error)
	ApproveJoinRequestFunc func(ctx context.Context, payload *membershipevents.JoinRequestReviewPayloadV1) (membershipservice.ReviewResult, error)
	RejectJoinRequestFunc  func(ctx context.Context, payload *membershipevents.JoinRequestReviewPayloadV1) (membershipservice.ReviewResult, error)
	RemoveMemberFunc       func(ctx context.Context, payload *membershipevents.MemberRemoveRequestedPayloadV1) (membershipservice.RemoveResult, error)
	PromoteTrustedFunc     func(ctx context.Context, payload *membershipevents.TrustedUpdateRequestedPayloadV1) (membershipservice.TrustedResult, error)
	DemoteTrustedFunc      func(ctx context.Context, payload *membershipevents.TrustedUpdateRequestedPayloadV1) (membershipservice.TrustedResult, error)
}

func (f *FakeMembershipService) JoinClub(ctx context.Context, payload *membershipevents.ClubJoinRequestedPayloadV1) (membershipservice.JoinResult, error) {
	if f.JoinClubFunc != nil {
		return f.JoinClubFunc(ctx, payload)
	}
	return membershipservice.JoinResult{}, nil
}

func (f *FakeMembershipService) ApproveJoinRequest(ctx context.Context, payload *membershipevents.JoinRequestReviewPayloadV1) (membershipservice.ReviewResult, error) {
	if f.ApproveJoinRequestFunc != nil {
		return f.ApproveJoinRequestFunc(ctx, payload)
	}
	return membershipservice.ReviewResult{}, nil
}

func (f *FakeMembershipService) RejectJoinRequest(ctx context.Context, payload *membershipevents.JoinRequestReviewPayloadV1) (membershipservice.ReviewResult, error) {
	if f.RejectJoinRequestFunc != nil {
		return f.RejectJoinRequestFunc(ctx, payload)
	}
	return membershipservice.ReviewResult{}, nil
}

func (f *FakeMembershipService) RemoveMember(ctx context.Context, payload *membershipevents.MemberRemoveRequestedPayloadV1) (membershipservice.RemoveResult, error) {
	if f.RemoveMemberFunc != nil {
		return f.RemoveMemberFunc(ctx, payload)
	}
	return membershipservice.RemoveResult{}, nil
}

func (f *FakeMembershipService) PromoteTrusted(ctx context.Context, payload *membershipevents.TrustedUpdateRequestedPayloadV1) (membershipservice.TrustedResult, error) {
	if f.PromoteTrustedFunc != nil {
		return f.PromoteTrustedFunc(ctx, payload)
	}
	return membershipservice.TrustedResult{}, nil
}

func (f *FakeMembershipService) DemoteTrusted(ctx context.Context, payload *membershipevents.TrustedUpdateRequestedPayloadV1) (membershipservice.TrustedResult, error) {
	if f.DemoteTrustedFunc != nil {
		return f.DemoteTrustedFunc(ctx, payload)
	}
	return membershipservice.TrustedResult{}, nil
}

var _ membershipservice.Service = (*FakeMembershipService)(nil)
