package membershiphandlers

import (
	"context"
	"errors"

	auditevents "github.com/campus-commons/clubhub-bot/app/events/audit"
	membershipevents "github.com/campus-commons/clubhub-bot/app/events/membership"
	"github.com/campus-commons/clubhub-bot/internal/handlerwrapper"
)

// HandleRemoveMember handles the MemberRemoveRequested event.
func (h *MembershipHandlers) HandleRemoveMember(ctx context.Context, payload *membershipevents.MemberRemoveRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.RemoveMember(ctx, payload)
	if err != nil {
		return nil, err
	}

	out := mapOperationResult(result,
		membershipevents.MemberRemovedV1,
		membershipevents.MemberRemovalFailedV1,
	)
	if result.IsSuccess() {
		removed := *result.Success
		out = append(out, auditResult(removed.Club.GuildID, removed.Club.ID, auditevents.ActionMemberRemoved, payload.Actor.UserID, string(removed.TargetUserID), map[string]any{
			"reason": removed.Reason,
		}))
	}
	return out, nil
}
