package clubservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	clubevents "github.com/campus-commons/clubhub-bot/app/events/club"
	clubdb "github.com/campus-commons/clubhub-bot/app/modules/club/infrastructure/repositories"
	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	"github.com/campus-commons/clubhub-bot/internal/results"
)

const (
	minClubNameLength = 3
	maxClubNameLength = 100
)

// RegisterClub validates a club proposal and persists it as pending. The
// returned success payload drives the admin review surface.
func (s *ClubService) RegisterClub(ctx context.Context, payload *clubevents.ClubRegisterRequestedPayloadV1) (RegisterResult, error) {
	if payload == nil {
		return RegisterResult{}, ErrNilPayload
	}

	registerTx := func(ctx context.Context, db bun.IDB) (RegisterResult, error) {
		return s.registerClubLogic(ctx, db, payload)
	}

	return withTelemetry(s, ctx, "RegisterClub", string(payload.GuildID), func(ctx context.Context) (RegisterResult, error) {
		return runInTx(s, ctx, registerTx)
	})
}

// registerClubLogic contains the core logic.
func (s *ClubService) registerClubLogic(ctx context.Context, db bun.IDB, payload *clubevents.ClubRegisterRequestedPayloadV1) (RegisterResult, error) {
	fail := func(reason string) RegisterResult {
		return results.FailureResult[*clubevents.ClubRegisteredPayloadV1](
			failurePayload(payload.GuildID, payload.Actor.UserID, nil, reason))
	}

	name := strings.TrimSpace(payload.Name)
	if len(name) < minClubNameLength || len(name) > maxClubNameLength {
		return fail(fmt.Sprintf("club name must be between %d and %d characters", minClubNameLength, maxClubNameLength)), nil
	}
	if !payload.Category.Valid() {
		return fail(fmt.Sprintf("unknown category %q", payload.Category)), nil
	}
	if payload.MaxMembers < 0 {
		return fail("member cap cannot be negative"), nil
	}

	// Only pending and active clubs hold their names; a slug collision with a
	// differently named club is disambiguated by deriveSlug below.
	exists, err := s.repo.NameExists(ctx, db, payload.GuildID, name)
	if err != nil {
		return RegisterResult{}, fmt.Errorf("failed to check for duplicate club: %w", err)
	}
	if exists {
		return fail(fmt.Sprintf("a club named %q already exists in this server", name)), nil
	}

	if _, err := s.repo.GetLiveByPresident(ctx, db, payload.GuildID, payload.Actor.UserID); err == nil {
		return fail("you already have a pending or active club in this server"), nil
	} else if !errors.Is(err, clubdb.ErrNotFound) {
		return RegisterResult{}, fmt.Errorf("failed to check proposer's clubs: %w", err)
	}

	slug, err := s.deriveSlug(ctx, db, payload.GuildID, name)
	if err != nil {
		return RegisterResult{}, fmt.Errorf("failed to derive slug: %w", err)
	}

	club := &clubdb.Club{
		ID:              uuid.New(),
		GuildID:         payload.GuildID,
		Name:            name,
		Slug:            slug,
		Description:     strings.TrimSpace(payload.Description),
		LogoURL:         payload.LogoURL,
		Category:        payload.Category,
		PresidentUserID: payload.Actor.UserID,
		Status:          clubtypes.StatusPending,
		MaxMembers:      payload.MaxMembers,
		RequireApproval: payload.RequireApproval,
		ContactEmail:    payload.ContactEmail,
		ContactDiscord:  payload.ContactDiscord,
	}
	if err := s.repo.Create(ctx, db, club); err != nil {
		if errors.Is(err, clubdb.ErrDuplicate) {
			// Lost a race with a concurrent registration; the partial unique
			// indexes are the authority.
			return fail("a conflicting club registration was just submitted"), nil
		}
		return RegisterResult{}, fmt.Errorf("failed to create club: %w", err)
	}

	return results.SuccessResult[*clubevents.ClubRegisteredPayloadV1, *clubevents.ClubOperationFailedPayloadV1](
		&clubevents.ClubRegisteredPayloadV1{Club: club.ToDomain()}), nil
}
