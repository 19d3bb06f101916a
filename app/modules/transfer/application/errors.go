package transferservice

import (
	"errors"

	transferevents "github.com/campus-commons/clubhub-bot/app/events/transfer"
	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// Common domain errors for transfer operations.
var (
	ErrNilPayload = errors.New("payload is nil")
)

// failurePayload builds the shared failure shape reported back to the acting
// user.
func failurePayload(guildID sharedtypes.GuildID, userID sharedtypes.UserID, clubID *clubtypes.ClubID, reason string) *transferevents.TransferFailedPayloadV1 {
	return &transferevents.TransferFailedPayloadV1{
		GuildID: guildID,
		UserID:  userID,
		ClubID:  clubID,
		Reason:  reason,
	}
}
