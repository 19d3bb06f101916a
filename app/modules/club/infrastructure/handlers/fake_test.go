package clubhandlers

import (
	"context"

	clubevents "github.com/campus-commons/clubhub-bot/app/events/club"
	clubservice "github.com/campus-commons/clubhub-bot/app/modules/club/application"
	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// FakeClubService is a configurable fake of the club service.
type FakeClubService struct {
	RegisterClubFunc func(ctx context.Context, payload *clubevents.ClubRegisterRequestedPayloadV1) (clubservice.RegisterResult, error)
	ApproveClubFunc  func(ctx context.Context, payload *clubevents.ClubReviewRequestedPayloadV1) (clubservice.ApproveResult, error)
	RejectClubFunc   func(ctx context.Context, payload *clubevents.ClubReviewRequestedPayloadV1) (clubservice.StatusResult, error)
	DissolveClubFunc func(ctx context.Context, payload *clubevents.ClubReviewRequestedPayloadV1) (clubservice.StatusResult, error)
	ListClubsFunc    func(ctx context.Context, payload *clubevents.ClubListRequestedPayloadV1) (clubservice.ListResult, error)
}

func (f *FakeClubService) RegisterClub(ctx context.Context, payload *clubevents.ClubRegisterRequestedPayloadV1) (clubservice.RegisterResult, error) {
	if f.RegisterClubFunc != nil {
		return f.RegisterClubFunc(ctx, payload)
	}
	return clubservice.RegisterResult{}, nil
}

func (f *FakeClubService) ApproveClub(ctx context.Context, payload *clubevents.ClubReviewRequestedPayloadV1) (clubservice.ApproveResult, error) {
	if f.ApproveClubFunc != nil {
		return f.ApproveClubFunc(ctx, payload)
	}
	return clubservice.ApproveResult{}, nil
}

func (f *FakeClubService) RejectClub(ctx context.Context, payload *clubevents.ClubReviewRequestedPayloadV1) (clubservice.StatusResult, error) {
	if f.RejectClubFunc != nil {
		return f.RejectClubFunc(ctx, payload)
	}
	return clubservice.StatusResult{}, nil
}

func (f *FakeClubService) DissolveClub(ctx context.Context, payload *clubevents.ClubReviewRequestedPayloadV1) (clubservice.StatusResult, error) {
	if f.DissolveClubFunc != nil {
		return f.DissolveClubFunc(ctx, payload)
	}
	return clubservice.StatusResult{}, nil
}

func (f *FakeClubService) ListClubs(ctx context.Context, payload *clubevents.ClubListRequestedPayloadV1) (clubservice.ListResult, error) {
	if f.ListClubsFunc != nil {
		return f.ListClubsFunc(ctx, payload)
	}
	return clubservice.ListResult{}, nil
}

func (f *FakeClubService) GetClub(ctx context.Context, clubID clubtypes.ClubID) (*clubtypes.Club, error) {
	return nil, nil
}

func (f *FakeClubService) ListGuildClubs(ctx context.Context, guildID sharedtypes.GuildID, statuses ...clubtypes.Status) ([]clubtypes.Club, error) {
	return nil, nil
}

var _ clubservice.Service = (*FakeClubService)(nil)
