package membershipdb

import (
	"time"

	"github.com/uptrace/bun"

	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	membershiptypes "github.com/campus-commons/clubhub-bot/app/types/membership"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// ClubMember is the persistence model for a club membership. The (club_id,
// user_id) pair is the primary key; a removed member re-joining reuses the
// row.
type ClubMember struct {
	bun.BaseModel `bun:"table:club_members,alias:cm"`

	ClubID             clubtypes.ClubID             `bun:"club_id,pk,type:uuid"`
	UserID             sharedtypes.UserID           `bun:"user_id,pk,type:varchar(20)"`
	GuildID            sharedtypes.GuildID          `bun:"guild_id,notnull,type:varchar(20)"`
	Role               membershiptypes.MemberRole   `bun:"role,notnull,type:varchar(12)"`
	Status             membershiptypes.MemberStatus `bun:"status,notnull,type:varchar(12)"`
	JoinedAt           time.Time                    `bun:"joined_at,nullzero,notnull,default:current_timestamp"`
	AttendanceCount    int                          `bun:"attendance_count,notnull,default:0"`
	ContributionPoints int                          `bun:"contribution_points,notnull,default:0"`
	LastActiveAt       *time.Time                   `bun:"last_active_at,nullzero"`
}

// ToDomain converts the persistence model to the domain view.
func (m *ClubMember) ToDomain() membershiptypes.ClubMember {
	return membershiptypes.ClubMember{
		ClubID:             m.ClubID,
		UserID:             m.UserID,
		GuildID:            m.GuildID,
		Role:               m.Role,
		Status:             m.Status,
		JoinedAt:           m.JoinedAt,
		AttendanceCount:    m.AttendanceCount,
		ContributionPoints: m.ContributionPoints,
		LastActiveAt:       m.LastActiveAt,
	}
}

// JoinRequest is the persistence model for a join request. A partial unique
// index allows only one pending request per (club_id, user_id).
type JoinRequest struct {
	bun.BaseModel `bun:"table:join_requests,alias:jr"`

	ID             membershiptypes.JoinRequestID     `bun:"id,pk,type:uuid"`
	ClubID         clubtypes.ClubID                  `bun:"club_id,notnull,type:uuid"`
	UserID         sharedtypes.UserID                `bun:"user_id,notnull,type:varchar(20)"`
	GuildID        sharedtypes.GuildID               `bun:"guild_id,notnull,type:varchar(20)"`
	FullName       string                            `bun:"full_name,notnull"`
	Email          string                            `bun:"email,nullzero"`
	InterestReason string                            `bun:"interest_reason,notnull"`
	Status         membershiptypes.JoinRequestStatus `bun:"status,notnull,type:varchar(12)"`
	ReviewedBy     sharedtypes.UserID                `bun:"reviewed_by,nullzero,type:varchar(20)"`
	ReviewedAt     *time.Time                        `bun:"reviewed_at,nullzero"`
	CreatedAt      time.Time                         `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// ToDomain converts the persistence model to the domain view.
func (r *JoinRequest) ToDomain() membershiptypes.JoinRequest {
	return membershiptypes.JoinRequest{
		ID:             r.ID,
		ClubID:         r.ClubID,
		UserID:         r.UserID,
		GuildID:        r.GuildID,
		FullName:       r.FullName,
		Email:          r.Email,
		InterestReason: r.InterestReason,
		Status:         r.Status,
		ReviewedBy:     r.ReviewedBy,
		ReviewedAt:     r.ReviewedAt,
		CreatedAt:      r.CreatedAt,
	}
}

// TrustedMember marks a member as holding the officer tier.
type TrustedMember struct {
	bun.BaseModel `bun:"table:trusted_members,alias:tm"`

	ClubID  clubtypes.ClubID   `bun:"club_id,pk,type:uuid"`
	UserID  sharedtypes.UserID `bun:"user_id,pk,type:varchar(20)"`
	AddedAt time.Time          `bun:"added_at,nullzero,notnull,default:current_timestamp"`
}
