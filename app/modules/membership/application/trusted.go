package membershipservice

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	membershipevents "github.com/campus-commons/clubhub-bot/app/events/membership"
	clubdb "github.com/campus-commons/clubhub-bot/app/modules/club/infrastructure/repositories"
	membershiptypes "github.com/campus-commons/clubhub-bot/app/types/membership"
	"github.com/campus-commons/clubhub-bot/internal/platform"
	"github.com/campus-commons/clubhub-bot/internal/results"
)

// PromoteTrusted elevates an active member to the trusted (officer) tier.
// Only the club president or server administration may change the tier.
func (s *MembershipService) PromoteTrusted(ctx context.Context, payload *membershipevents.TrustedUpdateRequestedPayloadV1) (TrustedResult, error) {
	return s.updateTrusted(ctx, "PromoteTrusted", payload, true)
}

// DemoteTrusted returns a trusted member to the regular member tier.
func (s *MembershipService) DemoteTrusted(ctx context.Context, payload *membershipevents.TrustedUpdateRequestedPayloadV1) (TrustedResult, error) {
	return s.updateTrusted(ctx, "DemoteTrusted", payload, false)
}

func (s *MembershipService) updateTrusted(ctx context.Context, operationName string, payload *membershipevents.TrustedUpdateRequestedPayloadV1, promote bool) (TrustedResult, error) {
	if payload == nil {
		return TrustedResult{}, ErrNilPayload
	}

	trustedTx := func(ctx context.Context, db bun.IDB) (TrustedResult, error) {
		return s.updateTrustedLogic(ctx, db, payload, promote)
	}

	result, err := withTelemetry(s, ctx, operationName, payload.ClubID.String(), func(ctx context.Context) (TrustedResult, error) {
		return runInTx(s, ctx, trustedTx)
	})
	if err != nil {
		return result, err
	}

	if result.IsSuccess() {
		updated := *result.Success
		content := fmt.Sprintf("You are now a trusted member of **%s**.", updated.Club.Name)
		if !updated.Trusted {
			content = fmt.Sprintf("Your trusted member status in **%s** has been removed.", updated.Club.Name)
		}
		s.notifyDM(ctx, updated.TargetUserID, platform.Message{Content: content})
	}
	return result, nil
}

// updateTrustedLogic contains the core logic.
func (s *MembershipService) updateTrustedLogic(ctx context.Context, db bun.IDB, payload *membershipevents.TrustedUpdateRequestedPayloadV1, promote bool) (TrustedResult, error) {
	fail := func(reason string) TrustedResult {
		clubID := payload.ClubID
		return results.FailureResult[*membershipevents.TrustedUpdatedPayloadV1](
			failurePayload(payload.GuildID, payload.Actor.UserID, &clubID, reason))
	}

	club, inactiveReason, err := s.getActiveClub(ctx, db, payload.ClubID)
	if err != nil {
		return TrustedResult{}, err
	}
	if inactiveReason != "" {
		return fail(inactiveReason), nil
	}

	if !canManageTrusted(payload, club) {
		return fail(fmt.Sprintf("only the president of %q can manage trusted members", club.Name)), nil
	}
	if payload.TargetUserID == club.PresidentUserID {
		return fail("the club president already holds full authority"), nil
	}

	target, _, err := s.actorContext(ctx, db, club.ID, payload.TargetUserID)
	if err != nil {
		return TrustedResult{}, err
	}
	if target == nil || target.Status != membershiptypes.MemberActive {
		return fail(fmt.Sprintf("<@%s> is not an active member of %q", payload.TargetUserID, club.Name)), nil
	}

	if promote {
		added, err := s.repo.AddTrusted(ctx, db, club.ID, payload.TargetUserID)
		if err != nil {
			return TrustedResult{}, fmt.Errorf("failed to add trusted member: %w", err)
		}
		if !added {
			return fail(fmt.Sprintf("<@%s> is already a trusted member", payload.TargetUserID)), nil
		}
		if target.Role == membershiptypes.RoleMember {
			if err := s.repo.UpdateMemberRole(ctx, db, club.ID, payload.TargetUserID, membershiptypes.RoleOfficer); err != nil {
				return TrustedResult{}, fmt.Errorf("failed to update member role: %w", err)
			}
			target.Role = membershiptypes.RoleOfficer
		}
	} else {
		removed, err := s.repo.RemoveTrusted(ctx, db, club.ID, payload.TargetUserID)
		if err != nil {
			return TrustedResult{}, fmt.Errorf("failed to remove trusted member: %w", err)
		}
		if !removed {
			return fail(fmt.Sprintf("<@%s> is not a trusted member", payload.TargetUserID)), nil
		}
		if target.Role == membershiptypes.RoleOfficer {
			if err := s.repo.UpdateMemberRole(ctx, db, club.ID, payload.TargetUserID, membershiptypes.RoleMember); err != nil {
				return TrustedResult{}, fmt.Errorf("failed to update member role: %w", err)
			}
			target.Role = membershiptypes.RoleMember
		}
	}

	return results.SuccessResult[*membershipevents.TrustedUpdatedPayloadV1, *membershipevents.MembershipOperationFailedPayloadV1](
		&membershipevents.TrustedUpdatedPayloadV1{
			Club:         club.ToDomain(),
			TargetUserID: payload.TargetUserID,
			Role:         target.Role,
			Trusted:      promote,
		}), nil
}

// canManageTrusted limits trusted-tier changes to the club president and
// server administration. Moderators explicitly cannot mint trusted members.
func canManageTrusted(payload *membershipevents.TrustedUpdateRequestedPayloadV1, club *clubdb.Club) bool {
	if payload.Actor.IsServerOwner || payload.Actor.IsServerAdmin {
		return true
	}
	return payload.Actor.UserID == club.PresidentUserID
}
