// Package clubevents defines the NATS subjects and payloads for the club
// registration and approval workflow.
package clubevents

import (
	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// Inbound command subjects (published by the gateway).
const (
	ClubRegisterRequestedV1 = "club.register.requested.v1"
	ClubApproveRequestedV1  = "club.approve.requested.v1"
	ClubRejectRequestedV1   = "club.reject.requested.v1"
	ClubDissolveRequestedV1 = "club.dissolve.requested.v1"
	ClubListRequestedV1     = "club.list.requested.v1"
)

// Outbound result subjects (consumed by the gateway for rendering).
const (
	ClubRegisteredV1         = "club.register.success.v1"
	ClubRegistrationFailedV1 = "club.register.failed.v1"
	ClubApprovedV1           = "club.approve.success.v1"
	ClubApprovalFailedV1     = "club.approve.failed.v1"
	ClubRejectedV1           = "club.reject.success.v1"
	ClubRejectionFailedV1    = "club.reject.failed.v1"
	ClubDissolvedV1          = "club.dissolve.success.v1"
	ClubDissolutionFailedV1  = "club.dissolve.failed.v1"
	ClubListV1               = "club.list.success.v1"
)

// ClubRegisterRequestedPayloadV1 is a member's club registration submission.
type ClubRegisterRequestedPayloadV1 struct {
	GuildID         sharedtypes.GuildID `json:"guild_id"`
	Actor           sharedtypes.Actor   `json:"actor"`
	Name            string              `json:"name"`
	Description     string              `json:"description,omitempty"`
	LogoURL         string              `json:"logo_url,omitempty"`
	Category        clubtypes.Category  `json:"category"`
	MaxMembers      int                 `json:"max_members,omitempty"`
	RequireApproval bool                `json:"require_approval"`
	ContactEmail    string              `json:"contact_email,omitempty"`
	ContactDiscord  string              `json:"contact_discord,omitempty"`
}

// ClubRegisteredPayloadV1 announces a persisted pending club; the gateway
// renders the admin review surface from it.
type ClubRegisteredPayloadV1 struct {
	Club clubtypes.Club `json:"club"`
}

// ClubReviewRequestedPayloadV1 asks the gateway to resolve a pending club.
type ClubReviewRequestedPayloadV1 struct {
	ClubID  clubtypes.ClubID    `json:"club_id"`
	GuildID sharedtypes.GuildID `json:"guild_id"`
	Actor   sharedtypes.Actor   `json:"actor"`
	Reason  string              `json:"reason,omitempty"`
}

// ClubApprovedPayloadV1 announces an approved, provisioned club.
type ClubApprovedPayloadV1 struct {
	Club       clubtypes.Club     `json:"club"`
	ApprovedBy sharedtypes.UserID `json:"approved_by"`
}

// ClubStatusChangedPayloadV1 announces a rejection or dissolution.
type ClubStatusChangedPayloadV1 struct {
	Club        clubtypes.Club     `json:"club"`
	PerformedBy sharedtypes.UserID `json:"performed_by"`
	Reason      string             `json:"reason,omitempty"`
}

// ClubOperationFailedPayloadV1 reports a validation, conflict, or
// authorization failure back to the acting user.
type ClubOperationFailedPayloadV1 struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	UserID  sharedtypes.UserID  `json:"user_id"`
	ClubID  *clubtypes.ClubID   `json:"club_id,omitempty"`
	Reason  string              `json:"reason"`
}

// ClubListRequestedPayloadV1 asks for the clubs of a guild.
type ClubListRequestedPayloadV1 struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	Actor   sharedtypes.Actor   `json:"actor"`
}

// ClubListPayloadV1 carries a guild's active clubs.
type ClubListPayloadV1 struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	UserID  sharedtypes.UserID  `json:"user_id"`
	Clubs   []clubtypes.Club    `json:"clubs"`
}
