package clubhandlers

import (
	"context"
	"errors"

	auditevents "github.com/campus-commons/clubhub-bot/app/events/audit"
	clubevents "github.com/campus-commons/clubhub-bot/app/events/club"
	"github.com/campus-commons/clubhub-bot/internal/handlerwrapper"
)

// HandleApproveClub handles the ClubApproveRequested event.
func (h *ClubHandlers) HandleApproveClub(ctx context.Context, payload *clubevents.ClubReviewRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.ApproveClub(ctx, payload)
	if err != nil {
		return nil, err
	}

	out := mapOperationResult(result,
		clubevents.ClubApprovedV1,
		clubevents.ClubApprovalFailedV1,
	)
	if result.IsSuccess() {
		club := (*result.Success).Club
		out = append(out, auditResult(club.GuildID, club.ID, auditevents.ActionClubApproved, payload.Actor.UserID, string(club.PresidentUserID), map[string]any{
			"club_name":  club.Name,
			"role_id":    string(club.RoleID),
			"channel_id": string(club.ChannelID),
		}))
	}
	return out, nil
}
