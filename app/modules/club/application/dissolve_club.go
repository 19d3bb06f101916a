package clubservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	clubevents "github.com/campus-commons/clubhub-bot/app/events/club"
	clubdb "github.com/campus-commons/clubhub-bot/app/modules/club/infrastructure/repositories"
	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	"github.com/campus-commons/clubhub-bot/internal/platform"
	"github.com/campus-commons/clubhub-bot/internal/results"
)

// DissolveClub administratively retires an active club. Platform resources
// are left in place; only the club record changes state.
func (s *ClubService) DissolveClub(ctx context.Context, payload *clubevents.ClubReviewRequestedPayloadV1) (StatusResult, error) {
	if payload == nil {
		return StatusResult{}, ErrNilPayload
	}

	dissolveTx := func(ctx context.Context, db bun.IDB) (StatusResult, error) {
		return s.dissolveClubLogic(ctx, db, payload)
	}

	result, err := withTelemetry(s, ctx, "DissolveClub", payload.ClubID.String(), func(ctx context.Context) (StatusResult, error) {
		return runInTx(s, ctx, dissolveTx)
	})
	if err != nil {
		return result, err
	}

	if result.IsSuccess() {
		club := (*result.Success).Club
		s.notifyDM(ctx, club.PresidentUserID, platform.Message{
			Content: fmt.Sprintf("Your club **%s** has been dissolved by the server administration.", club.Name),
		})
	}
	return result, nil
}

// dissolveClubLogic contains the core logic.
func (s *ClubService) dissolveClubLogic(ctx context.Context, db bun.IDB, payload *clubevents.ClubReviewRequestedPayloadV1) (StatusResult, error) {
	fail := func(reason string) StatusResult {
		clubID := payload.ClubID
		return results.FailureResult[*clubevents.ClubStatusChangedPayloadV1](
			failurePayload(payload.GuildID, payload.Actor.UserID, &clubID, reason))
	}

	if !payload.Actor.IsServerOwner && !payload.Actor.IsServerAdmin {
		return fail("only server administrators can dissolve clubs"), nil
	}

	club, err := s.repo.GetByID(ctx, db, payload.ClubID)
	if err != nil {
		if errors.Is(err, clubdb.ErrNotFound) {
			return fail("club not found"), nil
		}
		return StatusResult{}, fmt.Errorf("failed to load club: %w", err)
	}

	transitioned, err := s.repo.TransitionStatus(ctx, db, club.ID, clubtypes.StatusActive, clubtypes.StatusDissolved)
	if err != nil {
		return StatusResult{}, fmt.Errorf("failed to dissolve club: %w", err)
	}
	if !transitioned {
		return fail(fmt.Sprintf("club %q is not active (status: %s)", club.Name, club.Status)), nil
	}

	club.Status = clubtypes.StatusDissolved
	return results.SuccessResult[*clubevents.ClubStatusChangedPayloadV1, *clubevents.ClubOperationFailedPayloadV1](
		&clubevents.ClubStatusChangedPayloadV1{
			Club:        club.ToDomain(),
			PerformedBy: payload.Actor.UserID,
			Reason:      payload.Reason,
		}), nil
}
