package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	membershiptypes "github.com/campus-commons/clubhub-bot/app/types/membership"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

func TestResolve(t *testing.T) {
	const (
		president sharedtypes.UserID = "100000000000000001"
		someone   sharedtypes.UserID = "100000000000000002"
		modRole   sharedtypes.RoleID = "200000000000000001"
	)

	club := &clubtypes.Club{
		PresidentUserID: president,
		ModeratorRoleID: modRole,
		Status:          clubtypes.StatusActive,
	}
	member := func(role membershiptypes.MemberRole, status membershiptypes.MemberStatus) *membershiptypes.ClubMember {
		return &membershiptypes.ClubMember{UserID: someone, Role: role, Status: status}
	}

	tests := []struct {
		name        string
		in          Input
		wantAllowed bool
		wantLevel   string
	}{
		{
			name:        "server owner outranks everything",
			in:          Input{Actor: sharedtypes.Actor{UserID: someone, IsServerOwner: true}, Action: ActionApprove},
			wantAllowed: true,
			wantLevel:   LevelServerOwner,
		},
		{
			name:        "server admin allowed without a club row",
			in:          Input{Actor: sharedtypes.Actor{UserID: someone, IsServerAdmin: true}, Action: ActionModerate},
			wantAllowed: true,
			wantLevel:   LevelServerAdmin,
		},
		{
			name:        "missing club denies without error",
			in:          Input{Actor: sharedtypes.Actor{UserID: someone}, Action: ActionView},
			wantAllowed: false,
			wantLevel:   LevelNone,
		},
		{
			name:        "president allowed for any action",
			in:          Input{Actor: sharedtypes.Actor{UserID: president}, Club: club, Action: ActionModerate},
			wantAllowed: true,
			wantLevel:   LevelClubPresident,
		},
		{
			name: "platform moderator role grants moderate",
			in: Input{
				Actor:  sharedtypes.Actor{UserID: someone, RoleIDs: []sharedtypes.RoleID{modRole}},
				Club:   club,
				Action: ActionModerate,
			},
			wantAllowed: true,
			wantLevel:   LevelClubModerator,
		},
		{
			name: "membership moderator role grants moderate",
			in: Input{
				Actor:  sharedtypes.Actor{UserID: someone},
				Club:   club,
				Member: member(membershiptypes.RoleModerator, membershiptypes.MemberActive),
				Action: ActionModerate,
			},
			wantAllowed: true,
			wantLevel:   LevelClubModerator,
		},
		{
			name: "trusted member may post and approve",
			in: Input{
				Actor:   sharedtypes.Actor{UserID: someone},
				Club:    club,
				Member:  member(membershiptypes.RoleMember, membershiptypes.MemberActive),
				Trusted: true,
				Action:  ActionApprove,
			},
			wantAllowed: true,
			wantLevel:   LevelTrustedMember,
		},
		{
			name: "trusted member cannot moderate",
			in: Input{
				Actor:   sharedtypes.Actor{UserID: someone},
				Club:    club,
				Member:  member(membershiptypes.RoleMember, membershiptypes.MemberActive),
				Trusted: true,
				Action:  ActionModerate,
			},
			wantAllowed: false,
			wantLevel:   LevelTrustedMember,
		},
		{
			name: "officer role counts as trusted",
			in: Input{
				Actor:  sharedtypes.Actor{UserID: someone},
				Club:   club,
				Member: member(membershiptypes.RoleOfficer, membershiptypes.MemberActive),
				Action: ActionPost,
			},
			wantAllowed: true,
			wantLevel:   LevelTrustedMember,
		},
		{
			name: "plain member may view",
			in: Input{
				Actor:  sharedtypes.Actor{UserID: someone},
				Club:   club,
				Member: member(membershiptypes.RoleMember, membershiptypes.MemberActive),
				Action: ActionView,
			},
			wantAllowed: true,
			wantLevel:   LevelMember,
		},
		{
			name: "plain member may not post",
			in: Input{
				Actor:  sharedtypes.Actor{UserID: someone},
				Club:   club,
				Member: member(membershiptypes.RoleMember, membershiptypes.MemberActive),
				Action: ActionPost,
			},
			wantAllowed: false,
			wantLevel:   LevelMember,
		},
		{
			name: "removed member is a stranger",
			in: Input{
				Actor:  sharedtypes.Actor{UserID: someone},
				Club:   club,
				Member: member(membershiptypes.RoleMember, membershiptypes.MemberRemoved),
				Action: ActionView,
			},
			wantAllowed: false,
			wantLevel:   LevelNone,
		},
		{
			name: "removed moderator loses the level",
			in: Input{
				Actor:  sharedtypes.Actor{UserID: someone},
				Club:   club,
				Member: member(membershiptypes.RoleModerator, membershiptypes.MemberRemoved),
				Action: ActionModerate,
			},
			wantAllowed: false,
			wantLevel:   LevelNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.in)
			assert.Equal(t, tt.wantAllowed, got.Allowed, "allowed")
			assert.Equal(t, tt.wantLevel, got.Level, "level")
			assert.NotEmpty(t, got.Reason, "reason")
		})
	}
}
