package transferhandlers

import (
	"context"
	"errors"

	auditevents "github.com/campus-commons/clubhub-bot/app/events/audit"
	transferevents "github.com/campus-commons/clubhub-bot/app/events/transfer"
	"github.com/campus-commons/clubhub-bot/internal/handlerwrapper"
)

// HandleRequestTransfer handles the TransferRequested event. Direct
// execution and owner-gated parking publish to different subjects.
func (h *TransferHandlers) HandleRequestTransfer(ctx context.Context, payload *transferevents.TransferRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.RequestTransfer(ctx, payload)
	if err != nil {
		return nil, err
	}

	if result.IsFailure() {
		return []handlerwrapper.Result{{
			Topic:   transferevents.TransferFailedV1,
			Payload: *result.Failure,
		}}, nil
	}

	outcome := *result.Success
	switch {
	case outcome.Executed != nil:
		executed := outcome.Executed
		return []handlerwrapper.Result{
			{Topic: transferevents.TransferExecutedV1, Payload: *executed},
			auditResult(executed.Club.GuildID, executed.Club.ID, auditevents.ActionPresidentTransferred, payload.Actor.UserID, string(executed.IncomingPresident), map[string]any{
				"outgoing_president": string(executed.OutgoingPresident),
			}),
		}, nil
	case outcome.Pending != nil:
		request := outcome.Pending.Request
		return []handlerwrapper.Result{
			{Topic: transferevents.TransferPendingOwnerApprovalV1, Payload: *outcome.Pending},
			auditResult(request.GuildID, request.ClubID, auditevents.ActionTransferRequested, payload.Actor.UserID, string(request.CandidateUserID), map[string]any{
				"transfer_id": request.ID.String(),
				"reason":      request.Reason,
			}),
		}, nil
	}
	return nil, nil
}
