package clubservice

import (
	"context"

	clubevents "github.com/campus-commons/clubhub-bot/app/events/club"
	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
	"github.com/campus-commons/clubhub-bot/internal/results"
)

// Result aliases to reduce generic verbosity.
type (
	RegisterResult = results.OperationResult[*clubevents.ClubRegisteredPayloadV1, *clubevents.ClubOperationFailedPayloadV1]
	ApproveResult  = results.OperationResult[*clubevents.ClubApprovedPayloadV1, *clubevents.ClubOperationFailedPayloadV1]
	StatusResult   = results.OperationResult[*clubevents.ClubStatusChangedPayloadV1, *clubevents.ClubOperationFailedPayloadV1]
	ListResult     = results.OperationResult[*clubevents.ClubListPayloadV1, *clubevents.ClubOperationFailedPayloadV1]
)

// Service defines the interface for club operations.
type Service interface {
	RegisterClub(ctx context.Context, payload *clubevents.ClubRegisterRequestedPayloadV1) (RegisterResult, error)
	ApproveClub(ctx context.Context, payload *clubevents.ClubReviewRequestedPayloadV1) (ApproveResult, error)
	RejectClub(ctx context.Context, payload *clubevents.ClubReviewRequestedPayloadV1) (StatusResult, error)
	DissolveClub(ctx context.Context, payload *clubevents.ClubReviewRequestedPayloadV1) (StatusResult, error)
	ListClubs(ctx context.Context, payload *clubevents.ClubListRequestedPayloadV1) (ListResult, error)
	GetClub(ctx context.Context, clubID clubtypes.ClubID) (*clubtypes.Club, error)
	ListGuildClubs(ctx context.Context, guildID sharedtypes.GuildID, statuses ...clubtypes.Status) ([]clubtypes.Club, error)
}
