// Package auditevents defines the audit subject, the machine-stable action
// type strings, and the entry payload. Every state-changing operation in the
// governance workflows emits exactly one entry.
package auditevents

import (
	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// AuditEntryRecordV1 is the subject the audit module persists from.
const AuditEntryRecordV1 = "audit.entry.record.v1"

// Machine-stable action types. These strings are part of the support surface;
// never rename one.
const (
	ActionClubRegistered         = "club_registered"
	ActionClubApproved           = "club_approved"
	ActionClubRejected           = "club_rejected"
	ActionClubDissolved          = "club_dissolved"
	ActionMemberJoined           = "member_joined"
	ActionJoinRequestCreated     = "join_request_created"
	ActionJoinRequestApproved    = "join_request_approved"
	ActionJoinRequestRejected    = "join_request_rejected"
	ActionMemberRemoved          = "member_removed"
	ActionTrustedPromoted        = "trusted_member_promoted"
	ActionTrustedDemoted         = "trusted_member_demoted"
	ActionTransferRequested      = "president_transfer_requested"
	ActionTransferDenied         = "president_transfer_denied"
	ActionPresidentTransferred   = "president_transferred"
	ActionEventCreated           = "event_created"
	ActionEventApproved          = "event_approved"
	ActionEventRejected          = "event_rejected"
	ActionEventCompleted         = "event_completed"
	ActionEventParticipantJoined = "event_participant_joined"
	ActionEventParticipantLeft   = "event_participant_left"
)

// AuditEntryPayloadV1 is one append-only audit record. Details must be
// sufficient to reconstruct the operation for support and debugging.
type AuditEntryPayloadV1 struct {
	GuildID     sharedtypes.GuildID `json:"guild_id"`
	ClubID      *clubtypes.ClubID   `json:"club_id,omitempty"`
	ActionType  string              `json:"action_type"`
	PerformedBy sharedtypes.UserID  `json:"performed_by"`
	TargetID    string              `json:"target_id,omitempty"`
	Details     map[string]any      `json:"details,omitempty"`
}
