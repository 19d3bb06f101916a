package clubservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	clubevents "github.com/campus-commons/clubhub-bot/app/events/club"
	"github.com/campus-commons/clubhub-bot/app/modules/club/infrastructure/provision"
	clubdb "github.com/campus-commons/clubhub-bot/app/modules/club/infrastructure/repositories"
	membershipdb "github.com/campus-commons/clubhub-bot/app/modules/membership/infrastructure/repositories"
	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	membershiptypes "github.com/campus-commons/clubhub-bot/app/types/membership"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
	"github.com/campus-commons/clubhub-bot/internal/attr"
	"github.com/campus-commons/clubhub-bot/internal/platform"
	"github.com/campus-commons/clubhub-bot/internal/results"
)

// ApproveClub provisions resources for a pending club and activates it. A
// second approval of the same club is a no-op conflict result, not an error.
// Provisioning failure leaves the club pending and reports the reason to the
// reviewer.
func (s *ClubService) ApproveClub(ctx context.Context, payload *clubevents.ClubReviewRequestedPayloadV1) (ApproveResult, error) {
	if payload == nil {
		return ApproveResult{}, ErrNilPayload
	}

	return withTelemetry(s, ctx, "ApproveClub", payload.ClubID.String(), func(ctx context.Context) (ApproveResult, error) {
		return s.approveClubLogic(ctx, payload)
	})
}

// approveClubLogic contains the core logic. Provisioning happens outside the
// transaction; only the activation and president insert are transactional.
func (s *ClubService) approveClubLogic(ctx context.Context, payload *clubevents.ClubReviewRequestedPayloadV1) (ApproveResult, error) {
	fail := func(reason string) ApproveResult {
		clubID := payload.ClubID
		return results.FailureResult[*clubevents.ClubApprovedPayloadV1](
			failurePayload(payload.GuildID, payload.Actor.UserID, &clubID, reason))
	}

	if !payload.Actor.IsServerOwner && !payload.Actor.IsServerAdmin {
		return fail("only server administrators can approve clubs"), nil
	}

	club, err := s.repo.GetByID(ctx, nil, payload.ClubID)
	if err != nil {
		if errors.Is(err, clubdb.ErrNotFound) {
			return fail("club not found"), nil
		}
		return ApproveResult{}, fmt.Errorf("failed to load club: %w", err)
	}
	if club.Status != clubtypes.StatusPending {
		return fail(fmt.Sprintf("club %q has already been processed (status: %s)", club.Name, club.Status)), nil
	}

	active, err := s.repo.ListByGuild(ctx, nil, club.GuildID, clubtypes.StatusActive)
	if err != nil {
		return ApproveResult{}, fmt.Errorf("failed to list active clubs: %w", err)
	}
	var activeRoleIDs []sharedtypes.RoleID
	for _, c := range active {
		if c.RoleID != "" {
			activeRoleIDs = append(activeRoleIDs, c.RoleID)
		}
	}

	provisioned, err := s.provisioner.Provision(ctx, provision.Request{
		GuildID:           club.GuildID,
		ClubName:          club.Name,
		Slug:              club.Slug,
		ActiveClubRoleIDs: activeRoleIDs,
	})
	if err != nil {
		// The club stays pending so the reviewer can retry.
		return fail(fmt.Sprintf("resource provisioning failed: %v", err)), nil
	}

	resources := clubdb.ProvisionedResources{
		RoleID:          provisioned.Role.ID,
		ModeratorRoleID: provisioned.ModeratorRole.ID,
		ChannelID:       provisioned.TextChannel.ID,
		VoiceChannelID:  provisioned.VoiceChannel.ID,
	}

	activateTx := func(ctx context.Context, db bun.IDB) (ApproveResult, error) {
		activated, err := s.repo.MarkActive(ctx, db, club.ID, resources)
		if err != nil {
			return ApproveResult{}, fmt.Errorf("failed to activate club: %w", err)
		}
		if !activated {
			return fail(fmt.Sprintf("club %q was approved by another reviewer", club.Name)), nil
		}

		member := &membershipdb.ClubMember{
			ClubID:  club.ID,
			UserID:  club.PresidentUserID,
			GuildID: club.GuildID,
			Role:    membershiptypes.RolePresident,
			Status:  membershiptypes.MemberActive,
		}
		if err := s.members.UpsertMember(ctx, db, member); err != nil {
			return ApproveResult{}, fmt.Errorf("failed to insert president membership: %w", err)
		}
		return ApproveResult{}, nil
	}

	txResult, err := runInTx(s, ctx, activateTx)
	if err != nil {
		return ApproveResult{}, err
	}
	if txResult.IsFailure() {
		return txResult, nil
	}

	if err := s.notifier.AssignRole(ctx, club.GuildID, club.PresidentUserID, provisioned.Role.ID); err != nil {
		s.logger.WarnContext(ctx, "Failed to grant club role to president", attr.ExtractCorrelationID(ctx), attr.Error(err))
	}
	if err := s.notifier.AssignRole(ctx, club.GuildID, club.PresidentUserID, provisioned.ModeratorRole.ID); err != nil {
		s.logger.WarnContext(ctx, "Failed to grant moderator role to president", attr.ExtractCorrelationID(ctx), attr.Error(err))
	}

	club.Status = clubtypes.StatusActive
	club.RoleID = resources.RoleID
	club.ModeratorRoleID = resources.ModeratorRoleID
	club.ChannelID = resources.ChannelID
	club.VoiceChannelID = resources.VoiceChannelID

	s.notifyDM(ctx, club.PresidentUserID, platform.Message{
		Content: fmt.Sprintf("Your club **%s** has been approved! Head over to <#%s> to get started.", club.Name, club.ChannelID),
	})

	return results.SuccessResult[*clubevents.ClubApprovedPayloadV1, *clubevents.ClubOperationFailedPayloadV1](
		&clubevents.ClubApprovedPayloadV1{
			Club:       club.ToDomain(),
			ApprovedBy: payload.Actor.UserID,
		}), nil
}
