// Package permissions answers "can this actor perform this action on this
// club". The resolver is pure: platform facts arrive on the Actor, club and
// membership state arrive as arguments, and a missing club or membership row
// yields a denial with a reason, never an error.
package permissions

import (
	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	membershiptypes "github.com/campus-commons/clubhub-bot/app/types/membership"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// Action is a club capability being requested.
type Action string

const (
	ActionView     Action = "view"
	ActionPost     Action = "post"
	ActionModerate Action = "moderate"
	ActionApprove  Action = "approve"
)

// Authority levels, highest first. Level names appear in audit details and
// user-facing denials; keep them stable.
const (
	LevelServerOwner   = "server_owner"
	LevelServerAdmin   = "server_admin"
	LevelClubPresident = "club_president"
	LevelClubModerator = "club_moderator"
	LevelTrustedMember = "trusted_member"
	LevelMember        = "member"
	LevelNone          = "none"
)

// Decision is the resolver's answer.
type Decision struct {
	Allowed bool
	Level   string
	Reason  string
}

// Input bundles everything the resolver needs. Club and Member are nil when
// the corresponding row does not exist; Trusted is only meaningful when
// Member is an active member.
type Input struct {
	Actor   sharedtypes.Actor
	Club    *clubtypes.Club
	Member  *membershiptypes.ClubMember
	Trusted bool
	Action  Action
}

// Resolve walks the authority hierarchy top-down and returns the first
// matching level's decision.
func Resolve(in Input) Decision {
	if in.Actor.IsServerOwner {
		return Decision{Allowed: true, Level: LevelServerOwner, Reason: "server owner"}
	}
	if in.Actor.IsServerAdmin {
		return Decision{Allowed: true, Level: LevelServerAdmin, Reason: "server administrator"}
	}

	if in.Club == nil {
		return Decision{Allowed: false, Level: LevelNone, Reason: "club not found"}
	}

	if in.Club.PresidentUserID == in.Actor.UserID {
		return Decision{Allowed: true, Level: LevelClubPresident, Reason: "club president"}
	}

	if isClubModerator(in) {
		return Decision{Allowed: true, Level: LevelClubModerator, Reason: "club moderator"}
	}

	activeMember := in.Member != nil && in.Member.Status == membershiptypes.MemberActive
	if !activeMember {
		return Decision{Allowed: false, Level: LevelNone, Reason: "not a member of this club"}
	}

	if in.Trusted || in.Member.Role == membershiptypes.RoleOfficer {
		switch in.Action {
		case ActionView, ActionPost, ActionApprove:
			return Decision{Allowed: true, Level: LevelTrustedMember, Reason: "trusted member"}
		}
		return Decision{Allowed: false, Level: LevelTrustedMember, Reason: "trusted members cannot " + string(in.Action)}
	}

	if in.Action == ActionView {
		return Decision{Allowed: true, Level: LevelMember, Reason: "club member"}
	}
	return Decision{Allowed: false, Level: LevelMember, Reason: "members cannot " + string(in.Action)}
}

// isClubModerator checks both the platform moderator role and the membership
// row's moderator role; either grants the level.
func isClubModerator(in Input) bool {
	if in.Club.ModeratorRoleID != "" && in.Actor.HasRole(in.Club.ModeratorRoleID) {
		return true
	}
	if in.Member != nil && in.Member.Status == membershiptypes.MemberActive && in.Member.Role == membershiptypes.RoleModerator {
		return true
	}
	return false
}
