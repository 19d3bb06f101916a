package membershiphandlers

import (
	"context"
	"errors"

	auditevents "github.com/campus-commons/clubhub-bot/app/events/audit"
	membershipevents "github.com/campus-commons/clubhub-bot/app/events/membership"
	"github.com/campus-commons/clubhub-bot/internal/handlerwrapper"
)

// HandleApproveJoinRequest handles the JoinRequestApproveRequested event.
func (h *MembershipHandlers) HandleApproveJoinRequest(ctx context.Context, payload *membershipevents.JoinRequestReviewPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.ApproveJoinRequest(ctx, payload)
	if err != nil {
		return nil, err
	}

	out := mapOperationResult(result,
		membershipevents.JoinRequestApprovedV1,
		membershipevents.JoinRequestReviewFailedV1,
	)
	if result.IsSuccess() {
		resolved := *result.Success
		out = append(out, auditResult(resolved.Club.GuildID, resolved.Club.ID, auditevents.ActionJoinRequestApproved, payload.Actor.UserID, string(resolved.Request.UserID), map[string]any{
			"request_id": resolved.Request.ID.String(),
		}))
	}
	return out, nil
}

// HandleRejectJoinRequest handles the JoinRequestRejectRequested event.
func (h *MembershipHandlers) HandleRejectJoinRequest(ctx context.Context, payload *membershipevents.JoinRequestReviewPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.RejectJoinRequest(ctx, payload)
	if err != nil {
		return nil, err
	}

	out := mapOperationResult(result,
		membershipevents.JoinRequestRejectedV1,
		membershipevents.JoinRequestReviewFailedV1,
	)
	if result.IsSuccess() {
		resolved := *result.Success
		out = append(out, auditResult(resolved.Club.GuildID, resolved.Club.ID, auditevents.ActionJoinRequestRejected, payload.Actor.UserID, string(resolved.Request.UserID), map[string]any{
			"request_id": resolved.Request.ID.String(),
			"reason":     payload.Reason,
		}))
	}
	return out, nil
}
