package membershipservice

import (
	"errors"

	membershipevents "github.com/campus-commons/clubhub-bot/app/events/membership"
	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// Common domain errors for membership operations.
var (
	ErrNilPayload = errors.New("payload is nil")
)

// failurePayload builds the shared failure shape reported back to the acting
// user.
func failurePayload(guildID sharedtypes.GuildID, userID sharedtypes.UserID, clubID *clubtypes.ClubID, reason string) *membershipevents.MembershipOperationFailedPayloadV1 {
	return &membershipevents.MembershipOperationFailedPayloadV1{
		GuildID: guildID,
		UserID:  userID,
		ClubID:  clubID,
		Reason:  reason,
	}
}
