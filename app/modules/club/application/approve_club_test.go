package clubservice

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"

	clubevents "github.com/campus-commons/clubhub-bot/app/events/club"
	"github.com/campus-commons/clubhub-bot/app/modules/club/infrastructure/provision"
	clubdb "github.com/campus-commons/clubhub-bot/app/modules/club/infrastructure/repositories"
	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

func pendingClub(id clubtypes.ClubID) *clubdb.Club {
	return &clubdb.Club{
		ID:              id,
		GuildID:         "guild-1",
		Name:            "Chess Club",
		Slug:            "chess-club",
		Category:        clubtypes.CategoryGeneral,
		PresidentUserID: "president-1",
		Status:          clubtypes.StatusPending,
	}
}

func reviewPayload(clubID clubtypes.ClubID) *clubevents.ClubReviewRequestedPayloadV1 {
	return &clubevents.ClubReviewRequestedPayloadV1{
		ClubID:  clubID,
		GuildID: "guild-1",
		Actor:   sharedtypes.Actor{UserID: "admin-1", IsServerAdmin: true},
	}
}

func TestApproveClub(t *testing.T) {
	clubID := uuid.New()

	tests := []struct {
		name        string
		setupRepo   func(*FakeClubRepo)
		setupProv   func(*FakeProvisioner)
		mutate      func(*clubevents.ClubReviewRequestedPayloadV1)
		wantFailure string
		wantErr     bool
		verify      func(t *testing.T, repo *FakeClubRepo, members *FakeMembershipRepo)
	}{
		{
			name: "happy path activates club and seats president",
			setupRepo: func(f *FakeClubRepo) {
				f.GetByIDFunc = func(ctx context.Context, db bun.IDB, id clubtypes.ClubID) (*clubdb.Club, error) {
					return pendingClub(id), nil
				}
			},
			verify: func(t *testing.T, repo *FakeClubRepo, members *FakeMembershipRepo) {
				assert.Contains(t, repo.Trace(), "MarkActive")
				assert.Contains(t, members.Trace(), "UpsertMember")
			},
		},
		{
			name:        "non-admin actor denied",
			mutate:      func(p *clubevents.ClubReviewRequestedPayloadV1) { p.Actor = sharedtypes.Actor{UserID: "user-1"} },
			wantFailure: "only server administrators",
		},
		{
			name:        "club not found",
			wantFailure: "club not found",
		},
		{
			name: "already processed is a conflict not an error",
			setupRepo: func(f *FakeClubRepo) {
				f.GetByIDFunc = func(ctx context.Context, db bun.IDB, id clubtypes.ClubID) (*clubdb.Club, error) {
					club := pendingClub(id)
					club.Status = clubtypes.StatusActive
					return club, nil
				}
			},
			wantFailure: "already been processed",
		},
		{
			name: "provisioner failure leaves club pending",
			setupRepo: func(f *FakeClubRepo) {
				f.GetByIDFunc = func(ctx context.Context, db bun.IDB, id clubtypes.ClubID) (*clubdb.Club, error) {
					return pendingClub(id), nil
				}
			},
			setupProv: func(f *FakeProvisioner) {
				f.ProvisionFunc = func(ctx context.Context, req provision.Request) (provision.Resources, error) {
					return provision.Resources{}, errors.New("missing manage roles permission")
				}
			},
			wantFailure: "resource provisioning failed",
			verify: func(t *testing.T, repo *FakeClubRepo, members *FakeMembershipRepo) {
				assert.NotContains(t, repo.Trace(), "MarkActive")
			},
		},
		{
			name: "lost activation race is a conflict",
			setupRepo: func(f *FakeClubRepo) {
				f.GetByIDFunc = func(ctx context.Context, db bun.IDB, id clubtypes.ClubID) (*clubdb.Club, error) {
					return pendingClub(id), nil
				}
				f.MarkActiveFunc = func(ctx context.Context, db bun.IDB, id clubtypes.ClubID, res clubdb.ProvisionedResources) (bool, error) {
					return false, nil
				}
			},
			wantFailure: "approved by another reviewer",
		},
		{
			name: "database error",
			setupRepo: func(f *FakeClubRepo) {
				f.GetByIDFunc = func(ctx context.Context, db bun.IDB, id clubtypes.ClubID) (*clubdb.Club, error) {
					return nil, errors.New("database connection failed")
				}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fakeRepo := NewFakeClubRepo()
			if tt.setupRepo != nil {
				tt.setupRepo(fakeRepo)
			}
			fakeProv := NewFakeProvisioner()
			if tt.setupProv != nil {
				tt.setupProv(fakeProv)
			}
			fakeMembers := NewFakeMembershipRepo()
			payload := reviewPayload(clubID)
			if tt.mutate != nil {
				tt.mutate(payload)
			}

			svc := newTestService(fakeRepo, fakeMembers, fakeProv)
			result, err := svc.ApproveClub(context.Background(), payload)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)

			if tt.wantFailure != "" {
				assert.True(t, result.IsFailure())
				assert.Contains(t, (*result.Failure).Reason, tt.wantFailure)
			} else {
				assert.True(t, result.IsSuccess())
				club := (*result.Success).Club
				assert.Equal(t, clubtypes.StatusActive, club.Status)
				assert.NotEmpty(t, club.RoleID)
				assert.NotEmpty(t, club.ChannelID)
				assert.Equal(t, sharedtypes.UserID("admin-1"), (*result.Success).ApprovedBy)
			}

			if tt.verify != nil {
				tt.verify(t, fakeRepo, fakeMembers)
			}
		})
	}
}
