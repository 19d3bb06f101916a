package membershipservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	membershipevents "github.com/campus-commons/clubhub-bot/app/events/membership"
	membershipdb "github.com/campus-commons/clubhub-bot/app/modules/membership/infrastructure/repositories"
	"github.com/campus-commons/clubhub-bot/app/permissions"
	membershiptypes "github.com/campus-commons/clubhub-bot/app/types/membership"
	"github.com/campus-commons/clubhub-bot/internal/platform"
	"github.com/campus-commons/clubhub-bot/internal/results"
)

// ApproveJoinRequest resolves a pending join request in the requester's
// favor and seats them as an active member.
func (s *MembershipService) ApproveJoinRequest(ctx context.Context, payload *membershipevents.JoinRequestReviewPayloadV1) (ReviewResult, error) {
	return s.reviewJoinRequest(ctx, "ApproveJoinRequest", payload, true)
}

// RejectJoinRequest resolves a pending join request against the requester.
func (s *MembershipService) RejectJoinRequest(ctx context.Context, payload *membershipevents.JoinRequestReviewPayloadV1) (ReviewResult, error) {
	return s.reviewJoinRequest(ctx, "RejectJoinRequest", payload, false)
}

func (s *MembershipService) reviewJoinRequest(ctx context.Context, operationName string, payload *membershipevents.JoinRequestReviewPayloadV1, approve bool) (ReviewResult, error) {
	if payload == nil {
		return ReviewResult{}, ErrNilPayload
	}

	reviewTx := func(ctx context.Context, db bun.IDB) (ReviewResult, error) {
		return s.reviewJoinRequestLogic(ctx, db, payload, approve)
	}

	result, err := withTelemetry(s, ctx, operationName, payload.RequestID.String(), func(ctx context.Context) (ReviewResult, error) {
		return runInTx(s, ctx, reviewTx)
	})
	if err != nil {
		return result, err
	}

	if result.IsSuccess() {
		resolved := *result.Success
		if approve {
			s.grantRole(ctx, resolved.Club.GuildID, resolved.Request.UserID, resolved.Club.RoleID)
			s.notifyDM(ctx, resolved.Request.UserID, platform.Message{
				Content: fmt.Sprintf("Your request to join **%s** has been approved. Welcome aboard!", resolved.Club.Name),
			})
		} else {
			s.notifyDM(ctx, resolved.Request.UserID, rejectionNotice(resolved.Club.Name, payload.Reason))
		}
	}
	return result, nil
}

// reviewJoinRequestLogic contains the core logic.
func (s *MembershipService) reviewJoinRequestLogic(ctx context.Context, db bun.IDB, payload *membershipevents.JoinRequestReviewPayloadV1, approve bool) (ReviewResult, error) {
	request, err := s.repo.GetJoinRequest(ctx, db, payload.RequestID)
	if err != nil {
		if errors.Is(err, membershipdb.ErrJoinRequestNotFound) {
			return results.FailureResult[*membershipevents.JoinRequestResolvedPayloadV1](
				failurePayload(payload.GuildID, payload.Actor.UserID, nil, "join request not found")), nil
		}
		return ReviewResult{}, fmt.Errorf("failed to load join request: %w", err)
	}

	fail := func(reason string) ReviewResult {
		clubID := request.ClubID
		return results.FailureResult[*membershipevents.JoinRequestResolvedPayloadV1](
			failurePayload(payload.GuildID, payload.Actor.UserID, &clubID, reason))
	}

	club, reason, err := s.getActiveClub(ctx, db, request.ClubID)
	if err != nil {
		return ReviewResult{}, err
	}
	if reason != "" {
		return fail(reason), nil
	}
	domainClub := club.ToDomain()

	actor, trusted, err := s.actorContext(ctx, db, club.ID, payload.Actor.UserID)
	if err != nil {
		return ReviewResult{}, err
	}
	decision := permissions.Resolve(permissions.Input{
		Actor:   payload.Actor,
		Club:    &domainClub,
		Member:  actor,
		Trusted: trusted,
		Action:  permissions.ActionApprove,
	})
	if !decision.Allowed {
		return fail(fmt.Sprintf("you cannot review join requests for %q: %s", club.Name, decision.Reason)), nil
	}

	if request.Status != membershiptypes.JoinRequestPending {
		return fail(fmt.Sprintf("join request has already been reviewed (status: %s)", request.Status)), nil
	}

	resolution := membershiptypes.JoinRequestRejected
	if approve {
		resolution = membershiptypes.JoinRequestApproved

		if club.MaxMembers > 0 {
			if err := s.clubs.Lock(ctx, db, club.ID); err != nil {
				return ReviewResult{}, fmt.Errorf("failed to lock club: %w", err)
			}
			count, err := s.repo.CountActiveMembers(ctx, db, club.ID)
			if err != nil {
				return ReviewResult{}, fmt.Errorf("failed to count members: %w", err)
			}
			if count >= club.MaxMembers {
				return fail(fmt.Sprintf("club %q is at its member limit", club.Name)), nil
			}
		}
	}

	resolved, err := s.repo.ResolveJoinRequest(ctx, db, request.ID, resolution, payload.Actor.UserID)
	if err != nil {
		return ReviewResult{}, fmt.Errorf("failed to resolve join request: %w", err)
	}
	if !resolved {
		return fail("join request was just resolved by another reviewer"), nil
	}

	if approve {
		member := &membershipdb.ClubMember{
			ClubID:  club.ID,
			UserID:  request.UserID,
			GuildID: club.GuildID,
			Role:    membershiptypes.RoleMember,
			Status:  membershiptypes.MemberActive,
		}
		if err := s.repo.UpsertMember(ctx, db, member); err != nil {
			return ReviewResult{}, fmt.Errorf("failed to insert member: %w", err)
		}
	}

	now := time.Now().UTC()
	request.Status = resolution
	request.ReviewedBy = payload.Actor.UserID
	request.ReviewedAt = &now

	return results.SuccessResult[*membershipevents.JoinRequestResolvedPayloadV1, *membershipevents.MembershipOperationFailedPayloadV1](
		&membershipevents.JoinRequestResolvedPayloadV1{
			Club:       domainClub,
			Request:    request.ToDomain(),
			ReviewedBy: payload.Actor.UserID,
		}), nil
}

// rejectionNotice words the decline DM; an empty reason is omitted rather
// than rendered as a blank line.
func rejectionNotice(clubName, reason string) platform.Message {
	content := fmt.Sprintf("Your request to join **%s** was declined.", clubName)
	if reason != "" {
		content += fmt.Sprintf("\nReason: %s", reason)
	}
	return platform.Message{Content: content}
}
