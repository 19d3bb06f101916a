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

func removePayload(clubID clubtypes.ClubID, actor sharedtypes.Actor, target sharedtypes.UserID) *membershipevents.MemberRemoveRequestedPayloadV1 {
	return &membershipevents.MemberRemoveRequestedPayloadV1{
		ClubID:       clubID,
		GuildID:      "guild-1",
		Actor:        actor,
		TargetUserID: target,
		Reason:       "repeated harassment in the club channel",
	}
}

func moderatorMember(clubID clubtypes.ClubID, userID sharedtypes.UserID) *membershipdb.ClubMember {
	return &membershipdb.ClubMember{
		ClubID:  clubID,
		UserID:  userID,
		GuildID: "guild-1",
		Role:    membershiptypes.RoleModerator,
		Status:  membershiptypes.MemberActive,
	}
}

func TestRemoveMember(t *testing.T) {
	clubID := clubtypes.ClubID(uuid.New())

	tests := []struct {
		name        string
		actor       sharedtypes.Actor
		target      sharedtypes.UserID
		mutate      func(payload *membershipevents.MemberRemoveRequestedPayloadV1, repo *FakeMembershipRepo)
		wantFailure string
	}{
		{
			name:   "club moderator removes a member",
			actor:  sharedtypes.Actor{UserID: "mod-1"},
			target: "user-1",
			mutate: func(payload *membershipevents.MemberRemoveRequestedPayloadV1, repo *FakeMembershipRepo) {
				repo.GetMemberFunc = func(ctx context.Context, db bun.IDB, cID clubtypes.ClubID, userID sharedtypes.UserID) (*membershipdb.ClubMember, error) {
					return moderatorMember(cID, userID), nil
				}
			},
		},
		{
			name:   "president removes a member",
			actor:  presidentActor(),
			target: "user-1",
		},
		{
			name:        "regular members cannot remove",
			actor:       sharedtypes.Actor{UserID: "user-2"},
			target:      "user-1",
			wantFailure: `you cannot remove members from "Chess Club": not a member of this club`,
		},
		{
			name:        "president cannot be removed",
			actor:       sharedtypes.Actor{UserID: "admin-1", IsServerAdmin: true},
			target:      "president-1",
			wantFailure: "the club president cannot be removed",
		},
		{
			name:   "requires a reason",
			actor:  presidentActor(),
			target: "user-1",
			mutate: func(payload *membershipevents.MemberRemoveRequestedPayloadV1, repo *FakeMembershipRepo) {
				payload.Reason = "  "
			},
			wantFailure: "a removal reason is required",
		},
		{
			name:        "actors cannot remove themselves",
			actor:       presidentActor(),
			target:      "president-1",
			wantFailure: "you cannot remove yourself; leave the club instead",
		},
		{
			name:   "removing a non-member is a no-op failure",
			actor:  presidentActor(),
			target: "user-1",
			mutate: func(payload *membershipevents.MemberRemoveRequestedPayloadV1, repo *FakeMembershipRepo) {
				repo.MarkRemovedFunc = func(ctx context.Context, db bun.IDB, cID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error) {
					return false, nil
				}
			},
			wantFailure: `<@user-1> is not an active member of "Chess Club"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeMembershipRepo()
			payload := removePayload(clubID, tt.actor, tt.target)
			if tt.mutate != nil {
				tt.mutate(payload, repo)
			}
			svc, notifier := newTestService(repo, clubRepoReturning(activeClub(clubID, false)), &platformfake.Verifier{})

			result, err := svc.RemoveMember(context.Background(), payload)
			assert.NoError(t, err)

			if tt.wantFailure != "" {
				assert.True(t, result.IsFailure())
				assert.Equal(t, tt.wantFailure, (*result.Failure).Reason)
				assert.NotContains(t, notifier.Trace(), "RevokeRole("+string(tt.target)+",role-1)")
				return
			}

			assert.True(t, result.IsSuccess())
			removed := *result.Success
			assert.Equal(t, tt.target, removed.TargetUserID)
			assert.Equal(t, tt.actor.UserID, removed.RemovedBy)
			assert.Contains(t, repo.Trace(), "MarkRemoved")
			assert.Contains(t, notifier.Trace(), "RevokeRole(user-1,role-1)")
			assert.Contains(t, notifier.Trace(), "SendDM(user-1)")
		})
	}
}

func TestRemoveMemberNilPayload(t *testing.T) {
	svc, _ := newTestService(NewFakeMembershipRepo(), &FakeClubRepo{}, &platformfake.Verifier{})

	_, err := svc.RemoveMember(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilPayload)
}
