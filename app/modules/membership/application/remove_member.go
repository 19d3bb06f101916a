package membershipservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	membershipevents "github.com/campus-commons/clubhub-bot/app/events/membership"
	"github.com/campus-commons/clubhub-bot/app/permissions"
	"github.com/campus-commons/clubhub-bot/internal/platform"
	"github.com/campus-commons/clubhub-bot/internal/results"
)

// RemoveMember removes a member from a club. Moderation authority is
// required, the president cannot be removed (transfer or dissolution handle
// that seat), and a reason is mandatory because it is relayed to the member.
// The club role is revoked after the row flips.
func (s *MembershipService) RemoveMember(ctx context.Context, payload *membershipevents.MemberRemoveRequestedPayloadV1) (RemoveResult, error) {
	if payload == nil {
		return RemoveResult{}, ErrNilPayload
	}

	removeTx := func(ctx context.Context, db bun.IDB) (RemoveResult, error) {
		return s.removeMemberLogic(ctx, db, payload)
	}

	result, err := withTelemetry(s, ctx, "RemoveMember", payload.ClubID.String(), func(ctx context.Context) (RemoveResult, error) {
		return runInTx(s, ctx, removeTx)
	})
	if err != nil {
		return result, err
	}

	if result.IsSuccess() {
		removed := *result.Success
		s.revokeRole(ctx, removed.Club.GuildID, removed.TargetUserID, removed.Club.RoleID)
		s.notifyDM(ctx, removed.TargetUserID, platform.Message{
			Content: fmt.Sprintf("You have been removed from **%s**.\nReason: %s", removed.Club.Name, removed.Reason),
		})
	}
	return result, nil
}

// removeMemberLogic contains the core logic.
func (s *MembershipService) removeMemberLogic(ctx context.Context, db bun.IDB, payload *membershipevents.MemberRemoveRequestedPayloadV1) (RemoveResult, error) {
	fail := func(reason string) RemoveResult {
		clubID := payload.ClubID
		return results.FailureResult[*membershipevents.MemberRemovedPayloadV1](
			failurePayload(payload.GuildID, payload.Actor.UserID, &clubID, reason))
	}

	reason := strings.TrimSpace(payload.Reason)
	if reason == "" {
		return fail("a removal reason is required"), nil
	}
	if payload.TargetUserID == payload.Actor.UserID {
		return fail("you cannot remove yourself; leave the club instead"), nil
	}

	club, inactiveReason, err := s.getActiveClub(ctx, db, payload.ClubID)
	if err != nil {
		return RemoveResult{}, err
	}
	if inactiveReason != "" {
		return fail(inactiveReason), nil
	}
	domainClub := club.ToDomain()

	if payload.TargetUserID == club.PresidentUserID {
		return fail("the club president cannot be removed"), nil
	}

	actor, trusted, err := s.actorContext(ctx, db, club.ID, payload.Actor.UserID)
	if err != nil {
		return RemoveResult{}, err
	}
	decision := permissions.Resolve(permissions.Input{
		Actor:   payload.Actor,
		Club:    &domainClub,
		Member:  actor,
		Trusted: trusted,
		Action:  permissions.ActionModerate,
	})
	if !decision.Allowed {
		return fail(fmt.Sprintf("you cannot remove members from %q: %s", club.Name, decision.Reason)), nil
	}

	removed, err := s.repo.MarkRemoved(ctx, db, club.ID, payload.TargetUserID)
	if err != nil {
		return RemoveResult{}, fmt.Errorf("failed to remove member: %w", err)
	}
	if !removed {
		return fail(fmt.Sprintf("<@%s> is not an active member of %q", payload.TargetUserID, club.Name)), nil
	}

	return results.SuccessResult[*membershipevents.MemberRemovedPayloadV1, *membershipevents.MembershipOperationFailedPayloadV1](
		&membershipevents.MemberRemovedPayloadV1{
			Club:         domainClub,
			TargetUserID: payload.TargetUserID,
			RemovedBy:    payload.Actor.UserID,
			Reason:       reason,
		}), nil
}
