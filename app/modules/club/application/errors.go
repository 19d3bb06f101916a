package clubservice

import (
	"errors"

	clubevents "github.com/campus-commons/clubhub-bot/app/events/club"
	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// Common domain errors for club operations.
var (
	ErrNilPayload = errors.New("payload is nil")
)

// failurePayload builds the shared failure shape reported back to the acting
// user.
func failurePayload(guildID sharedtypes.GuildID, userID sharedtypes.UserID, clubID *clubtypes.ClubID, reason string) *clubevents.ClubOperationFailedPayloadV1 {
	return &clubevents.ClubOperationFailedPayloadV1{
		GuildID: guildID,
		UserID:  userID,
		ClubID:  clubID,
		Reason:  reason,
	}
}
