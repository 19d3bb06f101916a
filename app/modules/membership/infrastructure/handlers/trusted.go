package membershiphandlers

import (
	"context"
	"errors"

	auditevents "github.com/campus-commons/clubhub-bot/app/events/audit"
	membershipevents "github.com/campus-commons/clubhub-bot/app/events/membership"
	membershipservice "github.com/campus-commons/clubhub-bot/app/modules/membership/application"
	"github.com/campus-commons/clubhub-bot/internal/handlerwrapper"
)

// HandlePromoteTrusted handles the TrustedPromoteRequested event.
func (h *MembershipHandlers) HandlePromoteTrusted(ctx context.Context, payload *membershipevents.TrustedUpdateRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.PromoteTrusted(ctx, payload)
	if err != nil {
		return nil, err
	}
	return h.trustedResults(result, auditevents.ActionTrustedPromoted, payload), nil
}

// HandleDemoteTrusted handles the TrustedDemoteRequested event.
func (h *MembershipHandlers) HandleDemoteTrusted(ctx context.Context, payload *membershipevents.TrustedUpdateRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.DemoteTrusted(ctx, payload)
	if err != nil {
		return nil, err
	}
	return h.trustedResults(result, auditevents.ActionTrustedDemoted, payload), nil
}

func (h *MembershipHandlers) trustedResults(result membershipservice.TrustedResult, actionType string, payload *membershipevents.TrustedUpdateRequestedPayloadV1) []handlerwrapper.Result {
	out := mapOperationResult(result,
		membershipevents.TrustedUpdatedV1,
		membershipevents.TrustedUpdateFailedV1,
	)
	if result.IsSuccess() {
		updated := *result.Success
		out = append(out, auditResult(updated.Club.GuildID, updated.Club.ID, actionType, payload.Actor.UserID, string(updated.TargetUserID), map[string]any{
			"role": string(updated.Role),
		}))
	}
	return out
}
