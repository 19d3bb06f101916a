package membershiptypes

import (
	"time"

	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
	"github.com/google/uuid"
)

// JoinRequestID identifies a join request.
type JoinRequestID = uuid.UUID

// MemberRole is the role a member holds inside a club.
type MemberRole string

const (
	RoleMember    MemberRole = "member"
	RoleOfficer   MemberRole = "officer"
	RoleModerator MemberRole = "moderator"
	RolePresident MemberRole = "president"
)

// MemberStatus is the lifecycle state of a membership row.
type MemberStatus string

const (
	MemberActive  MemberStatus = "active"
	MemberRemoved MemberStatus = "removed"
)

// JoinRequestStatus is the lifecycle state of a join request.
type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "pending"
	JoinRequestApproved JoinRequestStatus = "approved"
	JoinRequestRejected JoinRequestStatus = "rejected"
)

// ClubMember is the domain view of a club membership.
type ClubMember struct {
	ClubID             clubtypes.ClubID    `json:"club_id"`
	UserID             sharedtypes.UserID  `json:"user_id"`
	GuildID            sharedtypes.GuildID `json:"guild_id"`
	Role               MemberRole          `json:"role"`
	Status             MemberStatus        `json:"status"`
	JoinedAt           time.Time           `json:"joined_at"`
	AttendanceCount    int                 `json:"attendance_count"`
	ContributionPoints int                 `json:"contribution_points"`
	LastActiveAt       *time.Time          `json:"last_active_at,omitempty"`
}

// JoinRequest is the domain view of a pending or resolved join request.
type JoinRequest struct {
	ID             JoinRequestID       `json:"id"`
	ClubID         clubtypes.ClubID    `json:"club_id"`
	UserID         sharedtypes.UserID  `json:"user_id"`
	GuildID        sharedtypes.GuildID `json:"guild_id"`
	FullName       string              `json:"full_name"`
	Email          string              `json:"email,omitempty"`
	InterestReason string              `json:"interest_reason"`
	Status         JoinRequestStatus   `json:"status"`
	ReviewedBy     sharedtypes.UserID  `json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time          `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}

// TrustedMember marks a member as holding the officer capability tier.
type TrustedMember struct {
	ClubID  clubtypes.ClubID   `json:"club_id"`
	UserID  sharedtypes.UserID `json:"user_id"`
	AddedAt time.Time          `json:"added_at"`
}
