package membershiphandlers

import (
	"context"
	"errors"

	auditevents "github.com/campus-commons/clubhub-bot/app/events/audit"
	membershipevents "github.com/campus-commons/clubhub-bot/app/events/membership"
	"github.com/campus-commons/clubhub-bot/internal/handlerwrapper"
)

// HandleJoinClub handles the ClubJoinRequested event. The two success shapes
// publish to different subjects: a direct join announces the member, an
// approval-gated submission pings the reviewers.
func (h *MembershipHandlers) HandleJoinClub(ctx context.Context, payload *membershipevents.ClubJoinRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.JoinClub(ctx, payload)
	if err != nil {
		return nil, err
	}

	if result.IsFailure() {
		return []handlerwrapper.Result{{
			Topic:   membershipevents.ClubJoinFailedV1,
			Payload: *result.Failure,
		}}, nil
	}

	outcome := *result.Success
	switch {
	case outcome.Joined != nil:
		club := outcome.Joined.Club
		return []handlerwrapper.Result{
			{Topic: membershipevents.ClubJoinedV1, Payload: *outcome.Joined},
			auditResult(club.GuildID, club.ID, auditevents.ActionMemberJoined, payload.Actor.UserID, string(payload.Actor.UserID), map[string]any{
				"club_name": club.Name,
			}),
		}, nil
	case outcome.Submitted != nil:
		club := outcome.Submitted.Club
		return []handlerwrapper.Result{
			{Topic: membershipevents.JoinRequestSubmittedV1, Payload: *outcome.Submitted},
			auditResult(club.GuildID, club.ID, auditevents.ActionJoinRequestCreated, payload.Actor.UserID, outcome.Submitted.Request.ID.String(), map[string]any{
				"club_name": club.Name,
			}),
		}, nil
	}
	return nil, nil
}
