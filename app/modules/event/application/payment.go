package eventservice

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	eventevents "github.com/campus-commons/clubhub-bot/app/events/event"
	eventtypes "github.com/campus-commons/clubhub-bot/app/types/event"
	"github.com/campus-commons/clubhub-bot/internal/platform"
	"github.com/campus-commons/clubhub-bot/internal/results"
)

// ApplyPaymentStatus applies the payment collaborator's verdict to a
// pending-payment registration: verified confirms the slot, rejected
// releases it.
func (s *EventService) ApplyPaymentStatus(ctx context.Context, payload *eventevents.PaymentStatusUpdatedPayloadV1) (PaymentResult, error) {
	if payload == nil {
		return PaymentResult{}, ErrNilPayload
	}

	paymentTx := func(ctx context.Context, db bun.IDB) (PaymentResult, error) {
		return s.applyPaymentStatusLogic(ctx, db, payload)
	}

	result, err := withTelemetry(s, ctx, "ApplyPaymentStatus", payload.EventID.String(), func(ctx context.Context) (PaymentResult, error) {
		return runInTx(s, ctx, paymentTx)
	})
	if err != nil {
		return result, err
	}

	if result.IsSuccess() {
		outcome := *result.Success
		switch {
		case outcome.Confirmed != nil:
			s.notifyDM(ctx, payload.UserID, platform.Message{
				Content: fmt.Sprintf("Your payment for **%s** has been verified. See you there!", outcome.Confirmed.Event.Title),
			})
		case outcome.Released != nil:
			msg := fmt.Sprintf("Your payment for **%s** was rejected and your spot has been released.", outcome.Released.Event.Title)
			if payload.Notes != "" {
				msg += fmt.Sprintf("\nNotes: %s", payload.Notes)
			}
			s.notifyDM(ctx, payload.UserID, platform.Message{Content: msg})
		}
	}
	return result, nil
}

// applyPaymentStatusLogic contains the core logic.
func (s *EventService) applyPaymentStatusLogic(ctx context.Context, db bun.IDB, payload *eventevents.PaymentStatusUpdatedPayloadV1) (PaymentResult, error) {
	fail := func(reason string) PaymentResult {
		eventID := payload.EventID
		return results.FailureResult[PaymentOutcome](
			failurePayload(payload.GuildID, payload.UserID, &eventID, reason))
	}

	event, reason, err := s.getEvent(ctx, db, payload.EventID)
	if err != nil {
		return PaymentResult{}, err
	}
	if reason != "" {
		return fail(reason), nil
	}

	switch payload.PaymentStatus {
	case eventtypes.PaymentVerified:
		ok, err := s.repo.TransitionRSVP(ctx, db, event.ID, payload.UserID, eventtypes.RSVPPendingPayment, eventtypes.RSVPGoing)
		if err != nil {
			return PaymentResult{}, fmt.Errorf("failed to confirm registration: %w", err)
		}
		if !ok {
			return fail(fmt.Sprintf("no payment-pending registration found for <@%s>", payload.UserID)), nil
		}

		participant, err := s.repo.GetParticipant(ctx, db, event.ID, payload.UserID)
		if err != nil {
			return PaymentResult{}, fmt.Errorf("failed to load participant: %w", err)
		}
		goingCount, err := s.repo.CountCounted(ctx, db, event.ID, eventtypes.RSVPGoing)
		if err != nil {
			return PaymentResult{}, fmt.Errorf("failed to count participants: %w", err)
		}
		atCapacity := event.MaxParticipants > 0 && goingCount >= event.MaxParticipants

		return results.SuccessResult[PaymentOutcome, *eventevents.EventOperationFailedPayloadV1](PaymentOutcome{
			Confirmed: &eventevents.EventJoinedPayloadV1{
				Event:       event.ToDomain(),
				Participant: participant.ToDomain(),
				GoingCount:  goingCount,
				AtCapacity:  atCapacity,
			},
		}), nil

	case eventtypes.PaymentRejected:
		ok, err := s.repo.TransitionRSVP(ctx, db, event.ID, payload.UserID, eventtypes.RSVPPendingPayment, eventtypes.RSVPWithdrawn)
		if err != nil {
			return PaymentResult{}, fmt.Errorf("failed to release registration: %w", err)
		}
		if !ok {
			return fail(fmt.Sprintf("no payment-pending registration found for <@%s>", payload.UserID)), nil
		}

		goingCount, err := s.repo.CountCounted(ctx, db, event.ID, eventtypes.RSVPGoing)
		if err != nil {
			return PaymentResult{}, fmt.Errorf("failed to count participants: %w", err)
		}

		return results.SuccessResult[PaymentOutcome, *eventevents.EventOperationFailedPayloadV1](PaymentOutcome{
			Released: &eventevents.EventLeftPayloadV1{
				Event:      event.ToDomain(),
				UserID:     payload.UserID,
				GoingCount: goingCount,
			},
		}), nil

	default:
		return fail(fmt.Sprintf("payment status %q requires no action", payload.PaymentStatus)), nil
	}
}
