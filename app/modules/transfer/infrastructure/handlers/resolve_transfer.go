package transferhandlers

import (
	"context"
	"errors"

	auditevents "github.com/campus-commons/clubhub-bot/app/events/audit"
	transferevents "github.com/campus-commons/clubhub-bot/app/events/transfer"
	"github.com/campus-commons/clubhub-bot/internal/handlerwrapper"
)

// HandleApproveTransfer handles the TransferApproveRequested event.
func (h *TransferHandlers) HandleApproveTransfer(ctx context.Context, payload *transferevents.TransferResolvePayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.ApproveTransfer(ctx, payload)
	if err != nil {
		return nil, err
	}

	out := mapOperationResult(result,
		transferevents.TransferExecutedV1,
		transferevents.TransferFailedV1,
	)
	if result.IsSuccess() {
		executed := *result.Success
		out = append(out, auditResult(executed.Club.GuildID, executed.Club.ID, auditevents.ActionPresidentTransferred, payload.Actor.UserID, string(executed.IncomingPresident), map[string]any{
			"outgoing_president": string(executed.OutgoingPresident),
			"initiated_by":       string(executed.InitiatedBy),
		}))
	}
	return out, nil
}

// HandleDenyTransfer handles the TransferDenyRequested event.
func (h *TransferHandlers) HandleDenyTransfer(ctx context.Context, payload *transferevents.TransferResolvePayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.DenyTransfer(ctx, payload)
	if err != nil {
		return nil, err
	}

	out := mapOperationResult(result,
		transferevents.TransferDeniedV1,
		transferevents.TransferFailedV1,
	)
	if result.IsSuccess() {
		denied := *result.Success
		out = append(out, auditResult(denied.Request.GuildID, denied.Request.ClubID, auditevents.ActionTransferDenied, payload.Actor.UserID, string(denied.Request.CandidateUserID), map[string]any{
			"transfer_id":  denied.Request.ID.String(),
			"initiated_by": string(denied.Request.InitiatorUserID),
		}))
	}
	return out, nil
}
