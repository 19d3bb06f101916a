package membershiphandlers

import (
	auditevents "github.com/campus-commons/clubhub-bot/app/events/audit"
	membershipservice "github.com/campus-commons/clubhub-bot/app/modules/membership/application"
	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
	"github.com/campus-commons/clubhub-bot/internal/handlerwrapper"
	"github.com/campus-commons/clubhub-bot/internal/results"
)

// MembershipHandlers implements the Handlers interface for membership events.
type MembershipHandlers struct {
	service membershipservice.Service
}

// NewMembershipHandlers creates a new MembershipHandlers instance.
func NewMembershipHandlers(service membershipservice.Service) *MembershipHandlers {
	return &MembershipHandlers{service: service}
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
