package eventservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	eventevents "github.com/campus-commons/clubhub-bot/app/events/event"
	eventdb "github.com/campus-commons/clubhub-bot/app/modules/event/infrastructure/repositories"
	membershipdb "github.com/campus-commons/clubhub-bot/app/modules/membership/infrastructure/repositories"
	eventtypes "github.com/campus-commons/clubhub-bot/app/types/event"
	membershiptypes "github.com/campus-commons/clubhub-bot/app/types/membership"
	"github.com/campus-commons/clubhub-bot/internal/platform"
	"github.com/campus-commons/clubhub-bot/internal/results"
)

// JoinEvent registers the actor for a scheduled event. Events with an
// external registration form short-circuit to a redirect and never get a
// participant row; paid events hold the slot as pending_payment until the
// payment collaborator verifies the proof.
func (s *EventService) JoinEvent(ctx context.Context, payload *eventevents.EventJoinRequestedPayloadV1) (JoinResult, error) {
	if payload == nil {
		return JoinResult{}, ErrNilPayload
	}

	joinTx := func(ctx context.Context, db bun.IDB) (JoinResult, error) {
		return s.joinEventLogic(ctx, db, payload)
	}

	result, err := withTelemetry(s, ctx, "JoinEvent", payload.EventID.String(), func(ctx context.Context) (JoinResult, error) {
		return runInTx(s, ctx, joinTx)
	})
	if err != nil {
		return result, err
	}

	if result.IsSuccess() {
		outcome := *result.Success
		if outcome.Joined != nil && outcome.Joined.Participant.RSVPStatus == eventtypes.RSVPPendingPayment {
			s.notifyDM(ctx, payload.Actor.UserID, platform.Message{
				Content: fmt.Sprintf("Your spot for **%s** is held pending payment. Submit your payment proof to confirm it.", outcome.Joined.Event.Title),
			})
		}
		if outcome.CapacityReached != nil {
			s.notifyDM(ctx, outcome.CapacityReached.PresidentUserID, platform.Message{
				Content: fmt.Sprintf("**%s** has reached its participant limit.", outcome.CapacityReached.Event.Title),
			})
		}
	}
	return result, nil
}

// joinEventLogic contains the core logic.
func (s *EventService) joinEventLogic(ctx context.Context, db bun.IDB, payload *eventevents.EventJoinRequestedPayloadV1) (JoinResult, error) {
	fail := func(reason string) JoinResult {
		eventID := payload.EventID
		return results.FailureResult[JoinOutcome](
			failurePayload(payload.GuildID, payload.Actor.UserID, &eventID, reason))
	}

	verified, err := s.verifier.IsVerified(ctx, payload.GuildID, payload.Actor.UserID)
	if err != nil {
		return JoinResult{}, fmt.Errorf("failed to check verification: %w", err)
	}
	if !verified {
		return fail("you must verify your identity before registering"), nil
	}

	event, reason, err := s.getEvent(ctx, db, payload.EventID)
	if err != nil {
		return JoinResult{}, err
	}
	if reason != "" {
		return fail(reason), nil
	}
	if event.Status != eventtypes.StatusScheduled {
		return fail("event is not open for registration"), nil
	}
	if event.Registration.Deadline != nil && time.Now().After(*event.Registration.Deadline) {
		return fail("registration for this event has closed"), nil
	}

	if reason, err := s.checkEligibility(ctx, db, event, payload); err != nil {
		return JoinResult{}, err
	} else if reason != "" {
		return fail(reason), nil
	}

	existing, err := s.repo.GetParticipant(ctx, db, event.ID, payload.Actor.UserID)
	if err != nil && !errors.Is(err, eventdb.ErrParticipantNotFound) {
		return JoinResult{}, fmt.Errorf("failed to check registration: %w", err)
	}
	if existing != nil && existing.RSVPStatus != eventtypes.RSVPWithdrawn {
		return fail("you are already registered for this event"), nil
	}

	// External forms are handled entirely outside the bot; the user just
	// gets the link.
	if event.Registration.ExternalFormURL != "" {
		return results.SuccessResult[JoinOutcome, *eventevents.EventOperationFailedPayloadV1](JoinOutcome{
			ExternalForm: &eventevents.EventExternalFormPayloadV1{
				Event:   event.ToDomain(),
				UserID:  payload.Actor.UserID,
				FormURL: event.Registration.ExternalFormURL,
			},
		}), nil
	}

	if event.MaxParticipants > 0 {
		// The lock serializes concurrent registrations for this event, so
		// the count below sees every committed row.
		if err := s.repo.Lock(ctx, db, event.ID); err != nil {
			return JoinResult{}, fmt.Errorf("failed to lock event: %w", err)
		}
		counted, err := s.repo.CountCounted(ctx, db, event.ID, s.countedStatuses()...)
		if err != nil {
			return JoinResult{}, fmt.Errorf("failed to count participants: %w", err)
		}
		if counted >= event.MaxParticipants {
			return fail("event is full"), nil
		}
	}

	rsvp := eventtypes.RSVPGoing
	if event.Registration.Fee > 0 {
		rsvp = eventtypes.RSVPPendingPayment
	}

	participant := &eventdb.Participant{
		EventID:          event.ID,
		UserID:           payload.Actor.UserID,
		GuildID:          event.GuildID,
		RSVPStatus:       rsvp,
		TeamName:         payload.TeamName,
		RegistrationData: payload.RegistrationData,
	}
	if err := s.repo.UpsertParticipant(ctx, db, participant); err != nil {
		if errors.Is(err, eventdb.ErrAlreadyRegistered) {
			return fail("you are already registered for this event"), nil
		}
		return JoinResult{}, fmt.Errorf("failed to register participant: %w", err)
	}

	goingCount, err := s.repo.CountCounted(ctx, db, event.ID, eventtypes.RSVPGoing)
	if err != nil {
		return JoinResult{}, fmt.Errorf("failed to count participants: %w", err)
	}

	atCapacity := false
	if event.MaxParticipants > 0 {
		counted, err := s.repo.CountCounted(ctx, db, event.ID, s.countedStatuses()...)
		if err != nil {
			return JoinResult{}, fmt.Errorf("failed to count participants: %w", err)
		}
		atCapacity = counted >= event.MaxParticipants
	}

	outcome := JoinOutcome{
		Joined: &eventevents.EventJoinedPayloadV1{
			Event:       event.ToDomain(),
			Participant: participant.ToDomain(),
			GoingCount:  goingCount,
			AtCapacity:  atCapacity,
		},
	}

	if atCapacity {
		club, err := s.clubs.GetByID(ctx, db, event.ClubID)
		if err != nil {
			return JoinResult{}, fmt.Errorf("failed to load club: %w", err)
		}
		outcome.CapacityReached = &eventevents.EventCapacityReachedPayloadV1{
			Event:           event.ToDomain(),
			PresidentUserID: club.PresidentUserID,
		}
	}

	return results.SuccessResult[JoinOutcome, *eventevents.EventOperationFailedPayloadV1](outcome), nil
}

// checkEligibility applies the event's structured participant filter. A
// non-empty reason is a domain failure.
func (s *EventService) checkEligibility(ctx context.Context, db bun.IDB, event *eventdb.Event, payload *eventevents.EventJoinRequestedPayloadV1) (string, error) {
	criteria := event.Eligibility

	if len(criteria.AllowedRoles) > 0 {
		allowed := false
		for _, roleID := range criteria.AllowedRoles {
			if payload.Actor.HasRole(roleID) {
				allowed = true
				break
			}
		}
		if !allowed {
			return "this event is restricted to specific roles", nil
		}
	}

	needsMember := criteria.MembersOnly || criteria.MinAttendanceCount > 0 || criteria.MinContributionPoints > 0
	if !needsMember {
		return "", nil
	}

	member, err := s.members.GetMember(ctx, db, event.ClubID, payload.Actor.UserID)
	if err != nil && !errors.Is(err, membershipdb.ErrMemberNotFound) {
		return "", fmt.Errorf("failed to check membership: %w", err)
	}
	activeMember := member != nil && member.Status == membershiptypes.MemberActive
	if !activeMember {
		return "this event is open to club members only", nil
	}
	if criteria.MinAttendanceCount > 0 && member.AttendanceCount < criteria.MinAttendanceCount {
		return fmt.Sprintf("this event requires at least %d attended events", criteria.MinAttendanceCount), nil
	}
	if criteria.MinContributionPoints > 0 && member.ContributionPoints < criteria.MinContributionPoints {
		return fmt.Sprintf("this event requires at least %d contribution points", criteria.MinContributionPoints), nil
	}
	return "", nil
}
