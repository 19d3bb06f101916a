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

// RejectClub declines a pending club. Rejection is terminal; a repeat
// resolution attempt is a no-op conflict result.
func (s *ClubService) RejectClub(ctx context.Context, payload *clubevents.ClubReviewRequestedPayloadV1) (StatusResult, error) {
	if payload == nil {
		return StatusResult{}, ErrNilPayload
	}

	rejectTx := func(ctx context.Context, db bun.IDB) (StatusResult, error) {
		return s.rejectClubLogic(ctx, db, payload)
	}

	result, err := withTelemetry(s, ctx, "RejectClub", payload.ClubID.String(), func(ctx context.Context) (StatusResult, error) {
		return runInTx(s, ctx, rejectTx)
	})
	if err != nil {
		return result, err
	}

	if result.IsSuccess() {
		club := (*result.Success).Club
		s.notifyDM(ctx, club.PresidentUserID, platform.Message{
			Content: rejectionNotice(club.Name, payload.Reason),
		})
	}
	return result, nil
}

func rejectionNotice(clubName, reason string) string {
	if reason == "" {
		return fmt.Sprintf("Your club proposal **%s** was declined.", clubName)
	}
	return fmt.Sprintf("Your club proposal **%s** was declined: %s", clubName, reason)
}

// rejectClubLogic contains the core logic.
func (s *ClubService) rejectClubLogic(ctx context.Context, db bun.IDB, payload *clubevents.ClubReviewRequestedPayloadV1) (StatusResult, error) {
	fail := func(reason string) StatusResult {
		clubID := payload.ClubID
		return results.FailureResult[*clubevents.ClubStatusChangedPayloadV1](
			failurePayload(payload.GuildID, payload.Actor.UserID, &clubID, reason))
	}

	if !payload.Actor.IsServerOwner && !payload.Actor.IsServerAdmin {
		return fail("only server administrators can reject clubs"), nil
	}

	club, err := s.repo.GetByID(ctx, db, payload.ClubID)
	if err != nil {
		if errors.Is(err, clubdb.ErrNotFound) {
			return fail("club not found"), nil
		}
		return StatusResult{}, fmt.Errorf("failed to load club: %w", err)
	}

	transitioned, err := s.repo.TransitionStatus(ctx, db, club.ID, clubtypes.StatusPending, clubtypes.StatusRejected)
	if err != nil {
		return StatusResult{}, fmt.Errorf("failed to reject club: %w", err)
	}
	if !transitioned {
		return fail(fmt.Sprintf("club %q has already been processed (status: %s)", club.Name, club.Status)), nil
	}

	club.Status = clubtypes.StatusRejected
	return results.SuccessResult[*clubevents.ClubStatusChangedPayloadV1, *clubevents.ClubOperationFailedPayloadV1](
		&clubevents.ClubStatusChangedPayloadV1{
			Club:        club.ToDomain(),
			PerformedBy: payload.Actor.UserID,
			Reason:      payload.Reason,
		}), nil
}
