package eventservice

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"

	eventevents "github.com/campus-commons/clubhub-bot/app/events/event"
	eventdb "github.com/campus-commons/clubhub-bot/app/modules/event/infrastructure/repositories"
	eventtypes "github.com/campus-commons/clubhub-bot/app/types/event"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

func paymentPayload(eventID eventtypes.EventID, status eventtypes.PaymentStatus) *eventevents.PaymentStatusUpdatedPayloadV1 {
	return &eventevents.PaymentStatusUpdatedPayloadV1{
		EventID:       eventID,
		GuildID:       "guild-1",
		UserID:        "user-1",
		PaymentStatus: status,
		VerifiedBy:    "mod-1",
	}
}

func TestApplyPaymentStatus(t *testing.T) {
	eventID := uuid.New()
	clubID := uuid.New()

	t.Run("verified payment confirms the registration", func(t *testing.T) {
		event := scheduledEvent(eventID, clubID)
		event.Registration = eventtypes.RegistrationSettings{Required: true, Fee: 500}
		repo := repoWithEvent(event)
		repo.GetParticipantFunc = func(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, userID sharedtypes.UserID) (*eventdb.Participant, error) {
			return &eventdb.Participant{EventID: eventID, UserID: userID, RSVPStatus: eventtypes.RSVPGoing}, nil
		}
		svc, notifier, _ := newTestService(repo, clubRepoReturning(activeClub(clubID)), NewFakeMembershipRepo())

		result, err := svc.ApplyPaymentStatus(context.Background(), paymentPayload(eventID, eventtypes.PaymentVerified))

		assert.NoError(t, err)
		assert.NotNil(t, result.Success)
		outcome := *result.Success
		assert.NotNil(t, outcome.Confirmed)
		assert.Nil(t, outcome.Released)
		assert.Contains(t, repo.Trace(), "TransitionRSVP(pending_payment,going)")
		assert.Contains(t, notifier.Trace(), "SendDM(user-1)")
	})

	t.Run("rejected payment releases the slot", func(t *testing.T) {
		event := scheduledEvent(eventID, clubID)
		event.Registration = eventtypes.RegistrationSettings{Required: true, Fee: 500}
		repo := repoWithEvent(event)
		svc, notifier, _ := newTestService(repo, clubRepoReturning(activeClub(clubID)), NewFakeMembershipRepo())

		payload := paymentPayload(eventID, eventtypes.PaymentRejected)
		payload.Notes = "screenshot does not match the fee"

		result, err := svc.ApplyPaymentStatus(context.Background(), payload)

		assert.NoError(t, err)
		assert.NotNil(t, result.Success)
		outcome := *result.Success
		assert.Nil(t, outcome.Confirmed)
		assert.NotNil(t, outcome.Released)
		assert.Equal(t, sharedtypes.UserID("user-1"), outcome.Released.UserID)
		assert.Contains(t, repo.Trace(), "TransitionRSVP(pending_payment,withdrawn)")
		assert.Contains(t, notifier.Trace(), "SendDM(user-1)")
	})

	t.Run("no pending registration reports a failure", func(t *testing.T) {
		repo := repoWithEvent(scheduledEvent(eventID, clubID))
		repo.TransitionRSVPFunc = func(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, userID sharedtypes.UserID, from, to eventtypes.RSVPStatus) (bool, error) {
			return false, nil
		}
		svc, _, _ := newTestService(repo, clubRepoReturning(activeClub(clubID)), NewFakeMembershipRepo())

		result, err := svc.ApplyPaymentStatus(context.Background(), paymentPayload(eventID, eventtypes.PaymentVerified))

		assert.NoError(t, err)
		assert.NotNil(t, result.Failure)
		assert.Contains(t, (*result.Failure).Reason, "no payment-pending registration")
	})

	t.Run("pending verdict requires no action", func(t *testing.T) {
		repo := repoWithEvent(scheduledEvent(eventID, clubID))
		svc, _, _ := newTestService(repo, clubRepoReturning(activeClub(clubID)), NewFakeMembershipRepo())

		result, err := svc.ApplyPaymentStatus(context.Background(), paymentPayload(eventID, eventtypes.PaymentPending))

		assert.NoError(t, err)
		assert.NotNil(t, result.Failure)
		assert.NotContains(t, repo.Trace(), "TransitionRSVP(pending_payment,going)")
	})
}

func TestLeaveEvent(t *testing.T) {
	eventID := uuid.New()
	clubID := uuid.New()

	t.Run("withdrawal frees the slot", func(t *testing.T) {
		repo := repoWithEvent(scheduledEvent(eventID, clubID))
		repo.CountCountedFunc = func(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, statuses ...eventtypes.RSVPStatus) (int, error) {
			return 3, nil
		}
		svc, _, _ := newTestService(repo, clubRepoReturning(activeClub(clubID)), NewFakeMembershipRepo())

		result, err := svc.LeaveEvent(context.Background(), &eventevents.EventLeaveRequestedPayloadV1{
			EventID: eventID,
			GuildID: "guild-1",
			Actor:   sharedtypes.Actor{UserID: "user-1"},
		})

		assert.NoError(t, err)
		assert.NotNil(t, result.Success)
		left := *result.Success
		assert.Equal(t, sharedtypes.UserID("user-1"), left.UserID)
		assert.Equal(t, 3, left.GoingCount)
		assert.Contains(t, repo.Trace(), "Withdraw")
	})

	t.Run("unregistered user cannot leave", func(t *testing.T) {
		repo := repoWithEvent(scheduledEvent(eventID, clubID))
		repo.WithdrawFunc = func(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, userID sharedtypes.UserID) (bool, error) {
			return false, nil
		}
		svc, _, _ := newTestService(repo, clubRepoReturning(activeClub(clubID)), NewFakeMembershipRepo())

		result, err := svc.LeaveEvent(context.Background(), &eventevents.EventLeaveRequestedPayloadV1{
			EventID: eventID,
			Actor:   sharedtypes.Actor{UserID: "user-1"},
		})

		assert.NoError(t, err)
		assert.NotNil(t, result.Failure)
		assert.Equal(t, "you are not registered for this event", (*result.Failure).Reason)
	})

	t.Run("completed event refuses withdrawal", func(t *testing.T) {
		event := scheduledEvent(eventID, clubID)
		event.Status = eventtypes.StatusCompleted
		svc, _, _ := newTestService(repoWithEvent(event), clubRepoReturning(activeClub(clubID)), NewFakeMembershipRepo())

		result, err := svc.LeaveEvent(context.Background(), &eventevents.EventLeaveRequestedPayloadV1{
			EventID: eventID,
			Actor:   sharedtypes.Actor{UserID: "user-1"},
		})

		assert.NoError(t, err)
		assert.NotNil(t, result.Failure)
		assert.Equal(t, "event has already taken place", (*result.Failure).Reason)
	})
}
