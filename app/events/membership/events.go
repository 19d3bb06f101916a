// Package membershipevents defines the NATS subjects and payloads for the
// membership workflow: joins, join-request review, removal, and trusted-tier
// changes.
package membershipevents

import (
	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	membershiptypes "github.com/campus-commons/clubhub-bot/app/types/membership"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// Inbound command subjects.
const (
	ClubJoinRequestedV1           = "membership.join.requested.v1"
	JoinRequestApproveRequestedV1 = "membership.joinrequest.approve.requested.v1"
	JoinRequestRejectRequestedV1  = "membership.joinrequest.reject.requested.v1"
	MemberRemoveRequestedV1       = "membership.remove.requested.v1"
	TrustedPromoteRequestedV1     = "membership.trusted.promote.requested.v1"
	TrustedDemoteRequestedV1      = "membership.trusted.demote.requested.v1"
)

// Outbound result subjects.
const (
	ClubJoinedV1             = "membership.join.success.v1"
	JoinRequestSubmittedV1   = "membership.joinrequest.submitted.v1"
	ClubJoinFailedV1         = "membership.join.failed.v1"
	JoinRequestApprovedV1    = "membership.joinrequest.approve.success.v1"
	JoinRequestRejectedV1    = "membership.joinrequest.reject.success.v1"
	JoinRequestReviewFailedV1 = "membership.joinrequest.review.failed.v1"
	MemberRemovedV1          = "membership.remove.success.v1"
	MemberRemovalFailedV1    = "membership.remove.failed.v1"
	TrustedUpdatedV1         = "membership.trusted.updated.v1"
	TrustedUpdateFailedV1    = "membership.trusted.update.failed.v1"
)

// JoinForm is the approval-gated join submission.
type JoinForm struct {
	FullName       string `json:"full_name"`
	Email          string `json:"email,omitempty"`
	Confirmation   string `json:"confirmation"`
	InterestReason string `json:"interest_reason"`
}

// ClubJoinRequestedPayloadV1 is a member's request to join a club. Form is
// required only when the club gates joins on approval.
type ClubJoinRequestedPayloadV1 struct {
	ClubID  clubtypes.ClubID    `json:"club_id"`
	GuildID sharedtypes.GuildID `json:"guild_id"`
	Actor   sharedtypes.Actor   `json:"actor"`
	Form    *JoinForm           `json:"form,omitempty"`
}

// ClubJoinedPayloadV1 announces a completed direct join.
type ClubJoinedPayloadV1 struct {
	Club   clubtypes.Club             `json:"club"`
	Member membershiptypes.ClubMember `json:"member"`
}

// JoinRequestSubmittedPayloadV1 announces a new pending join request; the
// gateway notifies each listed reviewer with approve/decline controls.
type JoinRequestSubmittedPayloadV1 struct {
	Club      clubtypes.Club              `json:"club"`
	Request   membershiptypes.JoinRequest `json:"request"`
	Reviewers []sharedtypes.UserID        `json:"reviewers"`
}

// JoinRequestReviewPayloadV1 resolves a pending join request.
type JoinRequestReviewPayloadV1 struct {
	RequestID membershiptypes.JoinRequestID `json:"request_id"`
	GuildID   sharedtypes.GuildID           `json:"guild_id"`
	Actor     sharedtypes.Actor             `json:"actor"`
	Reason    string                        `json:"reason,omitempty"`
}

// JoinRequestResolvedPayloadV1 announces a resolved join request.
type JoinRequestResolvedPayloadV1 struct {
	Club       clubtypes.Club              `json:"club"`
	Request    membershiptypes.JoinRequest `json:"request"`
	ReviewedBy sharedtypes.UserID          `json:"reviewed_by"`
}

// MemberRemoveRequestedPayloadV1 removes a member from a club.
type MemberRemoveRequestedPayloadV1 struct {
	ClubID       clubtypes.ClubID    `json:"club_id"`
	GuildID      sharedtypes.GuildID `json:"guild_id"`
	Actor        sharedtypes.Actor   `json:"actor"`
	TargetUserID sharedtypes.UserID  `json:"target_user_id"`
	Reason       string              `json:"reason"`
}

// MemberRemovedPayloadV1 announces a removal.
type MemberRemovedPayloadV1 struct {
	Club         clubtypes.Club      `json:"club"`
	TargetUserID sharedtypes.UserID  `json:"target_user_id"`
	RemovedBy    sharedtypes.UserID  `json:"removed_by"`
	Reason       string              `json:"reason"`
}

// TrustedUpdateRequestedPayloadV1 promotes or demotes a trusted member.
type TrustedUpdateRequestedPayloadV1 struct {
	ClubID       clubtypes.ClubID    `json:"club_id"`
	GuildID      sharedtypes.GuildID `json:"guild_id"`
	Actor        sharedtypes.Actor   `json:"actor"`
	TargetUserID sharedtypes.UserID  `json:"target_user_id"`
}

// TrustedUpdatedPayloadV1 announces a trusted-tier change.
type TrustedUpdatedPayloadV1 struct {
	Club         clubtypes.Club             `json:"club"`
	TargetUserID sharedtypes.UserID         `json:"target_user_id"`
	Role         membershiptypes.MemberRole `json:"role"`
	Trusted      bool                       `json:"trusted"`
}

// MembershipOperationFailedPayloadV1 reports a failed membership operation
// back to the acting user.
type MembershipOperationFailedPayloadV1 struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	UserID  sharedtypes.UserID  `json:"user_id"`
	ClubID  *clubtypes.ClubID   `json:"club_id,omitempty"`
	Reason  string              `json:"reason"`
}
