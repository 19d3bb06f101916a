package membershipservice

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"

	membershipevents "github.com/campus-commons/clubhub-bot/app/events/membership"
	membershipdb "github.com/campus-commons/clubhub-bot/app/modules/membership/infrastructure/repositories"
	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	membershiptypes "github.com/campus-commons/clubhub-bot/app/types/membership"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
	"github.com/campus-commons/clubhub-bot/internal/platform/platformfake"
)

func trustedPayload(clubID clubtypes.ClubID, actor sharedtypes.Actor, target sharedtypes.UserID) *membershipevents.TrustedUpdateRequestedPayloadV1 {
	return &membershipevents.TrustedUpdateRequestedPayloadV1{
		ClubID:       clubID,
		GuildID:      "guild-1",
		Actor:        actor,
		TargetUserID: target,
	}
}

func activeMemberRepo(role membershiptypes.MemberRole) *FakeMembershipRepo {
	repo := NewFakeMembershipRepo()
	repo.GetMemberFunc = func(ctx context.Context, db bun.IDB, cID clubtypes.ClubID, userID sharedtypes.UserID) (*membershipdb.ClubMember, error) {
		return &membershipdb.ClubMember{
			ClubID:  cID,
			UserID:  userID,
			GuildID: "guild-1",
			Role:    role,
			Status:  membershiptypes.MemberActive,
		}, nil
	}
	return repo
}

func TestPromoteTrusted(t *testing.T) {
	clubID := clubtypes.ClubID(uuid.New())

	tests := []struct {
		name        string
		actor       sharedtypes.Actor
		target      sharedtypes.UserID
		setupRepo   func() *FakeMembershipRepo
		wantFailure string
		wantRole    membershiptypes.MemberRole
	}{
		{
			name:      "president promotes a member to officer",
			actor:     presidentActor(),
			target:    "user-1",
			setupRepo: func() *FakeMembershipRepo { return activeMemberRepo(membershiptypes.RoleMember) },
			wantRole:  membershiptypes.RoleOfficer,
		},
		{
			name:      "promoting a moderator keeps their role",
			actor:     presidentActor(),
			target:    "mod-1",
			setupRepo: func() *FakeMembershipRepo { return activeMemberRepo(membershiptypes.RoleModerator) },
			wantRole:  membershiptypes.RoleModerator,
		},
		{
			name:      "server owner can promote",
			actor:     sharedtypes.Actor{UserID: "owner-1", IsServerOwner: true},
			target:    "user-1",
			setupRepo: func() *FakeMembershipRepo { return activeMemberRepo(membershiptypes.RoleMember) },
			wantRole:  membershiptypes.RoleOfficer,
		},
		{
			name:        "moderators cannot manage the trusted tier",
			actor:       sharedtypes.Actor{UserID: "mod-1"},
			target:      "user-1",
			setupRepo:   func() *FakeMembershipRepo { return activeMemberRepo(membershiptypes.RoleModerator) },
			wantFailure: `only the president of "Chess Club" can manage trusted members`,
		},
		{
			name:        "the president cannot be promoted",
			actor:       presidentActor(),
			target:      "president-1",
			setupRepo:   func() *FakeMembershipRepo { return activeMemberRepo(membershiptypes.RolePresident) },
			wantFailure: "the club president already holds full authority",
		},
		{
			name:        "non-members cannot be promoted",
			actor:       presidentActor(),
			target:      "user-1",
			setupRepo:   NewFakeMembershipRepo,
			wantFailure: `<@user-1> is not an active member of "Chess Club"`,
		},
		{
			name:   "repeat promotion is a conflict",
			actor:  presidentActor(),
			target: "user-1",
			setupRepo: func() *FakeMembershipRepo {
				repo := activeMemberRepo(membershiptypes.RoleOfficer)
				repo.AddTrustedFunc = func(ctx context.Context, db bun.IDB, cID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error) {
					return false, nil
				}
				return repo
			},
			wantFailure: "<@user-1> is already a trusted member",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := tt.setupRepo()
			svc, notifier := newTestService(repo, clubRepoReturning(activeClub(clubID, false)), &platformfake.Verifier{})

			result, err := svc.PromoteTrusted(context.Background(), trustedPayload(clubID, tt.actor, tt.target))
			assert.NoError(t, err)

			if tt.wantFailure != "" {
				assert.True(t, result.IsFailure())
				assert.Equal(t, tt.wantFailure, (*result.Failure).Reason)
				return
			}

			assert.True(t, result.IsSuccess())
			updated := *result.Success
			assert.True(t, updated.Trusted)
			assert.Equal(t, tt.target, updated.TargetUserID)
			assert.Equal(t, tt.wantRole, updated.Role)
			assert.Contains(t, repo.Trace(), "AddTrusted")
			assert.Contains(t, notifier.Trace(), "SendDM("+string(tt.target)+")")
		})
	}
}

func TestDemoteTrusted(t *testing.T) {
	clubID := clubtypes.ClubID(uuid.New())

	t.Run("demotion returns an officer to member", func(t *testing.T) {
		repo := activeMemberRepo(membershiptypes.RoleOfficer)
		svc, _ := newTestService(repo, clubRepoReturning(activeClub(clubID, false)), &platformfake.Verifier{})

		result, err := svc.DemoteTrusted(context.Background(), trustedPayload(clubID, presidentActor(), "user-1"))
		assert.NoError(t, err)
		assert.True(t, result.IsSuccess())

		updated := *result.Success
		assert.False(t, updated.Trusted)
		assert.Equal(t, membershiptypes.RoleMember, updated.Role)
		assert.Contains(t, repo.Trace(), "RemoveTrusted")
		assert.Contains(t, repo.Trace(), "UpdateMemberRole")
	})

	t.Run("demoting an untrusted member is a conflict", func(t *testing.T) {
		repo := activeMemberRepo(membershiptypes.RoleMember)
		repo.RemoveTrustedFunc = func(ctx context.Context, db bun.IDB, cID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error) {
			return false, nil
		}
		svc, _ := newTestService(repo, clubRepoReturning(activeClub(clubID, false)), &platformfake.Verifier{})

		result, err := svc.DemoteTrusted(context.Background(), trustedPayload(clubID, presidentActor(), "user-1"))
		assert.NoError(t, err)
		assert.True(t, result.IsFailure())
		assert.Equal(t, "<@user-1> is not a trusted member", (*result.Failure).Reason)
	})
}
