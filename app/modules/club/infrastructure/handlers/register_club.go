package clubhandlers

import (
	"context"
	"errors"

	auditevents "github.com/campus-commons/clubhub-bot/app/events/audit"
	clubevents "github.com/campus-commons/clubhub-bot/app/events/club"
	"github.com/campus-commons/clubhub-bot/internal/handlerwrapper"
)

// HandleRegisterClub handles the ClubRegisterRequested event.
func (h *ClubHandlers) HandleRegisterClub(ctx context.Context, payload *clubevents.ClubRegisterRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.RegisterClub(ctx, payload)
	if err != nil {
		return nil, err
	}

	out := mapOperationResult(result,
		clubevents.ClubRegisteredV1,
		clubevents.ClubRegistrationFailedV1,
	)
	if result.IsSuccess() {
		club := (*result.Success).Club
		out = append(out, auditResult(club.GuildID, club.ID, auditevents.ActionClubRegistered, payload.Actor.UserID, string(club.PresidentUserID), map[string]any{
			"club_name": club.Name,
			"category":  string(club.Category),
		}))
	}
	return out, nil
}
