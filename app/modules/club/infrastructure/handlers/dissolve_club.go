package clubhandlers

import (
	"context"
	"errors"

	auditevents "github.com/campus-commons/clubhub-bot/app/events/audit"
	clubevents "github.com/campus-commons/clubhub-bot/app/events/club"
	"github.com/campus-commons/clubhub-bot/internal/handlerwrapper"
)

// HandleDissolveClub handles the ClubDissolveRequested event.
func (h *ClubHandlers) HandleDissolveClub(ctx context.Context, payload *clubevents.ClubReviewRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.DissolveClub(ctx, payload)
	if err != nil {
		return nil, err
	}

	out := mapOperationResult(result,
		clubevents.ClubDissolvedV1,
		clubevents.ClubDissolutionFailedV1,
	)
	if result.IsSuccess() {
		club := (*result.Success).Club
		out = append(out, auditResult(club.GuildID, club.ID, auditevents.ActionClubDissolved, payload.Actor.UserID, string(club.PresidentUserID), map[string]any{
			"club_name": club.Name,
			"reason":    (*result.Success).Reason,
		}))
	}
	return out, nil
}
