package eventservice

import (
	"errors"

	eventevents "github.com/campus-commons/clubhub-bot/app/events/event"
	eventtypes "github.com/campus-commons/clubhub-bot/app/types/event"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// Common domain errors for event operations.
var (
	ErrNilPayload = errors.New("payload is nil")
)

// failurePayload builds the shared failure shape reported back to the acting
// user.
func failurePayload(guildID sharedtypes.GuildID, userID sharedtypes.UserID, eventID *eventtypes.EventID, reason string) *eventevents.EventOperationFailedPayloadV1 {
	return &eventevents.EventOperationFailedPayloadV1{
		GuildID: guildID,
		UserID:  userID,
		EventID: eventID,
		Reason:  reason,
	}
}
