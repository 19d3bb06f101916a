package eventservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	eventevents "github.com/campus-commons/clubhub-bot/app/events/event"
	eventdb "github.com/campus-commons/clubhub-bot/app/modules/event/infrastructure/repositories"
	"github.com/campus-commons/clubhub-bot/app/permissions"
	eventtypes "github.com/campus-commons/clubhub-bot/app/types/event"
	"github.com/campus-commons/clubhub-bot/internal/platform"
	"github.com/campus-commons/clubhub-bot/internal/results"
)

// CreateEvent validates a proposed event and persists it as pending. The
// proposer needs post authority in the club; the event only becomes visible
// to members once a server administrator approves it.
func (s *EventService) CreateEvent(ctx context.Context, payload *eventevents.EventCreateRequestedPayloadV1) (CreateResult, error) {
	if payload == nil {
		return CreateResult{}, ErrNilPayload
	}

	createTx := func(ctx context.Context, db bun.IDB) (CreateResult, error) {
		return s.createEventLogic(ctx, db, payload)
	}

	result, err := withTelemetry(s, ctx, "CreateEvent", payload.ClubID.String(), func(ctx context.Context) (CreateResult, error) {
		return runInTx(s, ctx, createTx)
	})
	if err != nil {
		return result, err
	}

	if result.IsSuccess() {
		event := (*result.Success).Event
		s.notifyDM(ctx, payload.Actor.UserID, platform.Message{
			Content: fmt.Sprintf("Your event **%s** has been submitted for review.", event.Title),
		})
	}
	return result, nil
}

// createEventLogic contains the core logic.
func (s *EventService) createEventLogic(ctx context.Context, db bun.IDB, payload *eventevents.EventCreateRequestedPayloadV1) (CreateResult, error) {
	fail := func(reason string) CreateResult {
		return results.FailureResult[*eventevents.EventCreatedPayloadV1](
			failurePayload(payload.GuildID, payload.Actor.UserID, nil, reason))
	}

	title := strings.TrimSpace(payload.Title)
	if title == "" {
		return fail("an event title is required"), nil
	}

	club, reason, err := s.getActiveClub(ctx, db, payload.ClubID)
	if err != nil {
		return CreateResult{}, err
	}
	if reason != "" {
		return fail(reason), nil
	}

	member, trusted, err := s.actorContext(ctx, db, club.ID, payload.Actor.UserID)
	if err != nil {
		return CreateResult{}, err
	}
	domainClub := club.ToDomain()
	decision := permissions.Resolve(permissions.Input{
		Actor:   payload.Actor,
		Club:    &domainClub,
		Member:  member,
		Trusted: trusted,
		Action:  permissions.ActionPost,
	})
	if !decision.Allowed {
		return fail(fmt.Sprintf("you cannot create events for %q: %s", club.Name, decision.Reason)), nil
	}

	now := time.Now()
	start, reason := resolveStartTime(payload.ScheduleText, payload.StartTime, now)
	if reason != "" {
		return fail(reason), nil
	}
	if start.Before(now) {
		return fail("the start time is in the past"), nil
	}
	if payload.EndTime != nil && payload.EndTime.Before(start) {
		return fail("the end time is before the start time"), nil
	}
	if payload.MaxParticipants > 0 && payload.MinParticipants > payload.MaxParticipants {
		return fail("the minimum participant count exceeds the maximum"), nil
	}
	if payload.Registration.Deadline != nil && payload.Registration.Deadline.After(start) {
		return fail("the registration deadline is after the event starts"), nil
	}

	locationType := payload.LocationType
	if locationType == "" {
		locationType = eventtypes.LocationPhysical
	}

	event := &eventdb.Event{
		ID:              uuid.New(),
		ClubID:          club.ID,
		GuildID:         club.GuildID,
		Title:           title,
		Description:     strings.TrimSpace(payload.Description),
		EventType:       payload.EventType,
		Status:          eventtypes.StatusPending,
		StartTime:       start,
		EndTime:         payload.EndTime,
		LocationType:    locationType,
		Location:        strings.TrimSpace(payload.Location),
		MinParticipants: payload.MinParticipants,
		MaxParticipants: payload.MaxParticipants,
		Registration:    payload.Registration,
		Team:            payload.Team,
		Eligibility:     payload.Eligibility,
		PosterURL:       payload.PosterURL,
		CreatedBy:       payload.Actor.UserID,
	}
	if err := s.repo.Create(ctx, db, event); err != nil {
		return CreateResult{}, fmt.Errorf("failed to create event: %w", err)
	}

	return results.SuccessResult[*eventevents.EventCreatedPayloadV1, *eventevents.EventOperationFailedPayloadV1](
		&eventevents.EventCreatedPayloadV1{Event: event.ToDomain()}), nil
}
