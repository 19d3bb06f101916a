package transferhandlers

import (
	auditevents "github.com/campus-commons/clubhub-bot/app/events/audit"
	transferservice "github.com/campus-commons/clubhub-bot/app/modules/transfer/application"
	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
	"github.com/campus-commons/clubhub-bot/internal/handlerwrapper"
	"github.com/campus-commons/clubhub-bot/internal/results"
)

// TransferHandlers implements the Handlers interface for transfer events.
type TransferHandlers struct {
	service transferservice.Service
}

// NewTransferHandlers creates a new TransferHandlers instance.
func NewTransferHandlers(service transferservice.Service) *TransferHandlers {
	return &TransferHandlers{service: service}
}

// mapOperationResult converts a service OperationResult to handler Results.
// An empty topic drops the corresponding side.
func mapOperationResult[S any, F any](
	result results.OperationResult[S, F],
	successTopic, failureTopic string,
) []handlerwrapper.Result {
	switch {
	case result.IsSuccess() && successTopic != "":
		return []handlerwrapper.Result{{Topic: successTopic, Payload: *result.Success}}
	case result.IsFailure() && failureTopic != "":
		return []handlerwrapper.Result{{Topic: failureTopic, Payload: *result.Failure}}
	}
	return nil
}

// auditResult builds the audit-entry Result appended to successful outcomes.
func auditResult(guildID sharedtypes.GuildID, clubID clubtypes.ClubID, actionType string, performedBy sharedtypes.UserID, targetID string, details map[string]any) handlerwrapper.Result {
	return handlerwrapper.Result{
		Topic: auditevents.AuditEntryRecordV1,
		Payload: auditevents.AuditEntryPayloadV1{
			GuildID:     guildID,
			ClubID:      &clubID,
			ActionType:  actionType,
			PerformedBy: performedBy,
			TargetID:    targetID,
			Details:     details,
		},
	}
}
