// Package transferevents defines the NATS subjects and payloads for the
// presidency transfer workflow.
package transferevents

import (
	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
	transfertypes "github.com/campus-commons/clubhub-bot/app/types/transfer"
)

// Inbound command subjects.
const (
	TransferRequestedV1        = "transfer.requested.v1"
	TransferApproveRequestedV1 = "transfer.approve.requested.v1"
	TransferDenyRequestedV1    = "transfer.deny.requested.v1"
)

// Outbound result subjects.
const (
	TransferExecutedV1             = "transfer.executed.v1"
	TransferPendingOwnerApprovalV1 = "transfer.pending_owner_approval.v1"
	TransferDeniedV1               = "transfer.denied.v1"
	TransferFailedV1               = "transfer.failed.v1"
)

// TransferRequestedPayloadV1 initiates a presidency transfer.
type TransferRequestedPayloadV1 struct {
	ClubID          clubtypes.ClubID    `json:"club_id"`
	GuildID         sharedtypes.GuildID `json:"guild_id"`
	Actor           sharedtypes.Actor   `json:"actor"`
	CandidateUserID sharedtypes.UserID  `json:"candidate_user_id"`
	Reason          string              `json:"reason,omitempty"`
	OwnerUserID     sharedtypes.UserID  `json:"owner_user_id"` // server owner, for the approval DM
}

// TransferResolvePayloadV1 approves or denies a pending transfer request.
type TransferResolvePayloadV1 struct {
	TransferID transfertypes.TransferID `json:"transfer_id"`
	GuildID    sharedtypes.GuildID      `json:"guild_id"`
	Actor      sharedtypes.Actor        `json:"actor"`
}

// TransferExecutedPayloadV1 announces a completed transfer.
type TransferExecutedPayloadV1 struct {
	Club              clubtypes.Club     `json:"club"`
	OutgoingPresident sharedtypes.UserID `json:"outgoing_president"`
	IncomingPresident sharedtypes.UserID `json:"incoming_president"`
	InitiatedBy       sharedtypes.UserID `json:"initiated_by"`
	ApprovedBy        sharedtypes.UserID `json:"approved_by,omitempty"`
}

// TransferPendingPayloadV1 announces that a transfer awaits owner approval;
// the gateway DMs the owner with approve/deny controls.
type TransferPendingPayloadV1 struct {
	Request     transfertypes.PendingTransferRequest `json:"request"`
	ClubName    string                               `json:"club_name"`
	OwnerUserID sharedtypes.UserID                   `json:"owner_user_id"`
}

// TransferDeniedPayloadV1 announces an owner denial.
type TransferDeniedPayloadV1 struct {
	Request  transfertypes.PendingTransferRequest `json:"request"`
	DeniedBy sharedtypes.UserID                   `json:"denied_by"`
}

// TransferFailedPayloadV1 reports a failed transfer operation to the acting
// user.
type TransferFailedPayloadV1 struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	UserID  sharedtypes.UserID  `json:"user_id"`
	ClubID  *clubtypes.ClubID   `json:"club_id,omitempty"`
	Reason  string              `json:"reason"`
}
