package membershiphandlers

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	auditevents "github.com/campus-commons/clubhub-bot/app/events/audit"
	membershipevents "github.com/campus-commons/clubhub-bot/app/events/membership"
	membershipservice "github.com/campus-commons/clubhub-bot/app/modules/membership/application"
	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	membershiptypes "github.com/campus-commons/clubhub-bot/app/types/membership"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
	"github.com/campus-commons/clubhub-bot/internal/results"
)

func testClub(id clubtypes.ClubID) clubtypes.Club {
	return clubtypes.Club{
		ID:      id,
		GuildID: "guild-1",
		Name:    "Chess Club",
		Slug:    "chess-club",
		Status:  clubtypes.StatusActive,
	}
}

func TestHandleJoinClub(t *testing.T) {
	clubID := clubtypes.ClubID(uuid.New())
	payload := &membershipevents.ClubJoinRequestedPayloadV1{
		ClubID:  clubID,
		GuildID: "guild-1",
		Actor:   sharedtypes.Actor{UserID: "user-1"},
	}

	t.Run("direct join publishes the member and an audit entry", func(t *testing.T) {
		svc := &FakeMembershipService{
			JoinClubFunc: func(ctx context.Context, p *membershipevents.ClubJoinRequestedPayloadV1) (membershipservice.JoinResult, error) {
				return results.SuccessResult[membershipservice.JoinOutcome, *membershipevents.MembershipOperationFailedPayloadV1](membershipservice.JoinOutcome{
					Joined: &membershipevents.ClubJoinedPayloadV1{
						Club:   testClub(clubID),
						Member: membershiptypes.ClubMember{ClubID: clubID, UserID: "user-1", Status: membershiptypes.MemberActive},
					},
				}), nil
			},
		}
		h := NewMembershipHandlers(svc)

		out, err := h.HandleJoinClub(context.Background(), payload)
		assert.NoError(t, err)
		assert.Len(t, out, 2)
		assert.Equal(t, membershipevents.ClubJoinedV1, out[0].Topic)
		assert.Equal(t, auditevents.AuditEntryRecordV1, out[1].Topic)

		entry, ok := out[1].Payload.(auditevents.AuditEntryPayloadV1)
		assert.True(t, ok)
		assert.Equal(t, auditevents.ActionMemberJoined, entry.ActionType)
		assert.Equal(t, sharedtypes.UserID("user-1"), entry.PerformedBy)
	})

	t.Run("gated submission publishes the request for reviewers", func(t *testing.T) {
		requestID := uuid.New()
		svc := &FakeMembershipService{
			JoinClubFunc: func(ctx context.Context, p *membershipevents.ClubJoinRequestedPayloadV1) (membershipservice.JoinResult, error) {
				return results.SuccessResult[membershipservice.JoinOutcome, *membershipevents.MembershipOperationFailedPayloadV1](membershipservice.JoinOutcome{
					Submitted: &membershipevents.JoinRequestSubmittedPayloadV1{
						Club:      testClub(clubID),
						Request:   membershiptypes.JoinRequest{ID: requestID, ClubID: clubID, UserID: "user-1"},
						Reviewers: []sharedtypes.UserID{"president-1"},
					},
				}), nil
			},
		}
		h := NewMembershipHandlers(svc)

		out, err := h.HandleJoinClub(context.Background(), payload)
		assert.NoError(t, err)
		assert.Len(t, out, 2)
		assert.Equal(t, membershipevents.JoinRequestSubmittedV1, out[0].Topic)

		entry, ok := out[1].Payload.(auditevents.AuditEntryPayloadV1)
		assert.True(t, ok)
		assert.Equal(t, auditevents.ActionJoinRequestCreated, entry.ActionType)
		assert.Equal(t, requestID.String(), entry.TargetID)
	})

	t.Run("domain failure publishes only the failure", func(t *testing.T) {
		svc := &FakeMembershipService{
			JoinClubFunc: func(ctx context.Context, p *membershipevents.ClubJoinRequestedPayloadV1) (membershipservice.JoinResult, error) {
				return results.FailureResult[membershipservice.JoinOutcome](&membershipevents.MembershipOperationFailedPayloadV1{
					GuildID: "guild-1",
					UserID:  "user-1",
					Reason:  "club not found",
				}), nil
			},
		}
		h := NewMembershipHandlers(svc)

		out, err := h.HandleJoinClub(context.Background(), payload)
		assert.NoError(t, err)
		assert.Len(t, out, 1)
		assert.Equal(t, membershipevents.ClubJoinFailedV1, out[0].Topic)
	})

	t.Run("infrastructure errors propagate for retry", func(t *testing.T) {
		svc := &FakeMembershipService{
			JoinClubFunc: func(ctx context.Context, p *membershipevents.ClubJoinRequestedPayloadV1) (membershipservice.JoinResult, error) {
				return membershipservice.JoinResult{}, errors.New("database unavailable")
			},
		}
		h := NewMembershipHandlers(svc)

		out, err := h.HandleJoinClub(context.Background(), payload)
		assert.Error(t, err)
		assert.Nil(t, out)
	})

	t.Run("nil payload is rejected", func(t *testing.T) {
		h := NewMembershipHandlers(&FakeMembershipService{})

		_, err := h.HandleJoinClub(context.Background(), nil)
		assert.Error(t, err)
	})
}
