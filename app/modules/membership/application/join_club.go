package membershipservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	membershipevents "github.com/campus-commons/clubhub-bot/app/events/membership"
	clubdb "github.com/campus-commons/clubhub-bot/app/modules/club/infrastructure/repositories"
	membershipdb "github.com/campus-commons/clubhub-bot/app/modules/membership/infrastructure/repositories"
	membershiptypes "github.com/campus-commons/clubhub-bot/app/types/membership"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
	"github.com/campus-commons/clubhub-bot/internal/attr"
	"github.com/campus-commons/clubhub-bot/internal/platform"
	"github.com/campus-commons/clubhub-bot/internal/results"
)

// joinConfirmationToken is the literal a member must type on an
// approval-gated join form to confirm intent.
const joinConfirmationToken = "confirm"

// JoinClub runs the join intake gates in order: platform-verified, club
// active, not already a member, no outstanding pending request, under cap.
// Auto-join clubs insert the member directly; approval-gated clubs create a
// pending JoinRequest for the club's reviewers.
func (s *MembershipService) JoinClub(ctx context.Context, payload *membershipevents.ClubJoinRequestedPayloadV1) (JoinResult, error) {
	if payload == nil {
		return JoinResult{}, ErrNilPayload
	}

	joinTx := func(ctx context.Context, db bun.IDB) (JoinResult, error) {
		return s.joinClubLogic(ctx, db, payload)
	}

	result, err := withTelemetry(s, ctx, "JoinClub", payload.ClubID.String(), func(ctx context.Context) (JoinResult, error) {
		return runInTx(s, ctx, joinTx)
	})
	if err != nil {
		return result, err
	}

	if result.IsSuccess() {
		outcome := *result.Success
		switch {
		case outcome.Joined != nil:
			club := outcome.Joined.Club
			s.grantRole(ctx, club.GuildID, payload.Actor.UserID, club.RoleID)
			s.announceJoin(ctx, club.ChannelID, payload.Actor.UserID, club.Name)
		case outcome.Submitted != nil:
			s.notifyDM(ctx, payload.Actor.UserID, platform.Message{
				Content: fmt.Sprintf("Your request to join **%s** has been submitted for review.", outcome.Submitted.Club.Name),
			})
		}
	}
	return result, nil
}

// announceJoin posts a best-effort welcome notice to the club channel.
func (s *MembershipService) announceJoin(ctx context.Context, channelID sharedtypes.ChannelID, userID sharedtypes.UserID, clubName string) {
	if s.notifier == nil || channelID == "" {
		return
	}
	_, err := s.notifier.PostMessage(ctx, channelID, platform.Message{
		Content: fmt.Sprintf("Welcome <@%s> to **%s**!", userID, clubName),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to post join notice",
			attr.ExtractCorrelationID(ctx),
			attr.String("channel_id", string(channelID)),
			attr.Error(err),
		)
	}
}

// joinClubLogic contains the core logic.
func (s *MembershipService) joinClubLogic(ctx context.Context, db bun.IDB, payload *membershipevents.ClubJoinRequestedPayloadV1) (JoinResult, error) {
	fail := func(reason string) JoinResult {
		clubID := payload.ClubID
		return results.FailureResult[JoinOutcome](
			failurePayload(payload.GuildID, payload.Actor.UserID, &clubID, reason))
	}

	verified, err := s.verifier.IsVerified(ctx, payload.GuildID, payload.Actor.UserID)
	if err != nil {
		return JoinResult{}, fmt.Errorf("failed to check verification: %w", err)
	}
	if !verified {
		return fail("you must verify your identity before joining a club"), nil
	}

	club, reason, err := s.getActiveClub(ctx, db, payload.ClubID)
	if err != nil {
		return JoinResult{}, err
	}
	if reason != "" {
		return fail(reason), nil
	}

	existing, err := s.repo.GetMember(ctx, db, club.ID, payload.Actor.UserID)
	if err != nil && !errors.Is(err, membershipdb.ErrMemberNotFound) {
		return JoinResult{}, fmt.Errorf("failed to check membership: %w", err)
	}
	if existing != nil && existing.Status == membershiptypes.MemberActive {
		return fail(fmt.Sprintf("you are already a member of %q", club.Name)), nil
	}

	pending, err := s.repo.HasPendingJoinRequest(ctx, db, club.ID, payload.Actor.UserID)
	if err != nil {
		return JoinResult{}, fmt.Errorf("failed to check pending join request: %w", err)
	}
	if pending {
		return fail(fmt.Sprintf("you already have a pending request to join %q", club.Name)), nil
	}

	if club.MaxMembers > 0 {
		// The lock serializes concurrent joins for this club, so the count
		// below sees every committed row.
		if err := s.clubs.Lock(ctx, db, club.ID); err != nil {
			return JoinResult{}, fmt.Errorf("failed to lock club: %w", err)
		}
		count, err := s.repo.CountActiveMembers(ctx, db, club.ID)
		if err != nil {
			return JoinResult{}, fmt.Errorf("failed to count members: %w", err)
		}
		if count >= club.MaxMembers {
			return fail(fmt.Sprintf("club %q is at its member limit", club.Name)), nil
		}
	}

	if !club.RequireApproval {
		return s.directJoin(ctx, db, club, payload)
	}
	return s.submitJoinRequest(ctx, db, club, payload)
}

// directJoin inserts the member immediately.
func (s *MembershipService) directJoin(ctx context.Context, db bun.IDB, club *clubdb.Club, payload *membershipevents.ClubJoinRequestedPayloadV1) (JoinResult, error) {
	member := &membershipdb.ClubMember{
		ClubID:  club.ID,
		UserID:  payload.Actor.UserID,
		GuildID: club.GuildID,
		Role:    membershiptypes.RoleMember,
		Status:  membershiptypes.MemberActive,
	}
	if err := s.repo.UpsertMember(ctx, db, member); err != nil {
		return JoinResult{}, fmt.Errorf("failed to insert member: %w", err)
	}

	return results.SuccessResult[JoinOutcome, *membershipevents.MembershipOperationFailedPayloadV1](JoinOutcome{
		Joined: &membershipevents.ClubJoinedPayloadV1{
			Club:   club.ToDomain(),
			Member: member.ToDomain(),
		},
	}), nil
}

// submitJoinRequest validates the join form and creates a pending request.
func (s *MembershipService) submitJoinRequest(ctx context.Context, db bun.IDB, club *clubdb.Club, payload *membershipevents.ClubJoinRequestedPayloadV1) (JoinResult, error) {
	fail := func(reason string) JoinResult {
		clubID := payload.ClubID
		return results.FailureResult[JoinOutcome](
			failurePayload(payload.GuildID, payload.Actor.UserID, &clubID, reason))
	}

	form := payload.Form
	if form == nil {
		return fail(fmt.Sprintf("joining %q requires the application form", club.Name)), nil
	}
	if strings.TrimSpace(form.FullName) == "" {
		return fail("full name is required"), nil
	}
	if !strings.EqualFold(strings.TrimSpace(form.Confirmation), joinConfirmationToken) {
		return fail(fmt.Sprintf("type %q to confirm your application", joinConfirmationToken)), nil
	}
	if len(strings.TrimSpace(form.InterestReason)) < s.cfg.MinInterestReasonLength {
		return fail(fmt.Sprintf("please describe your interest in at least %d characters", s.cfg.MinInterestReasonLength)), nil
	}

	request := &membershipdb.JoinRequest{
		ID:             uuid.New(),
		ClubID:         club.ID,
		UserID:         payload.Actor.UserID,
		GuildID:        club.GuildID,
		FullName:       strings.TrimSpace(form.FullName),
		Email:          strings.TrimSpace(form.Email),
		InterestReason: strings.TrimSpace(form.InterestReason),
		Status:         membershiptypes.JoinRequestPending,
	}
	if err := s.repo.CreateJoinRequest(ctx, db, request); err != nil {
		return JoinResult{}, fmt.Errorf("failed to create join request: %w", err)
	}

	reviewers, err := s.reviewersFor(ctx, db, club)
	if err != nil {
		return JoinResult{}, err
	}

	return results.SuccessResult[JoinOutcome, *membershipevents.MembershipOperationFailedPayloadV1](JoinOutcome{
		Submitted: &membershipevents.JoinRequestSubmittedPayloadV1{
			Club:      club.ToDomain(),
			Request:   request.ToDomain(),
			Reviewers: reviewers,
		},
	}), nil
}

// reviewersFor returns the users notified of a new join request: the club's
// president and moderators.
func (s *MembershipService) reviewersFor(ctx context.Context, db bun.IDB, club *clubdb.Club) ([]sharedtypes.UserID, error) {
	rows, err := s.repo.ListActiveByRole(ctx, db, club.ID, membershiptypes.RolePresident, membershiptypes.RoleModerator)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviewers: %w", err)
	}
	reviewers := make([]sharedtypes.UserID, 0, len(rows))
	for _, row := range rows {
		reviewers = append(reviewers, row.UserID)
	}
	return reviewers, nil
}
