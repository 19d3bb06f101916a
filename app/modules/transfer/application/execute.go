package transferservice

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	transferevents "github.com/campus-commons/clubhub-bot/app/events/transfer"
	clubdb "github.com/campus-commons/clubhub-bot/app/modules/club/infrastructure/repositories"
	membershiptypes "github.com/campus-commons/clubhub-bot/app/types/membership"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
	"github.com/campus-commons/clubhub-bot/internal/attr"
	"github.com/campus-commons/clubhub-bot/internal/platform"
)

// executeTransfer swaps the presidency inside the caller's transaction: the
// outgoing president becomes a regular member, the candidate takes the seat,
// and the club row points at the new president.
func (s *TransferService) executeTransfer(ctx context.Context, db bun.IDB, club *clubdb.Club, candidateID, initiatedBy, approvedBy sharedtypes.UserID) (*transferevents.TransferExecutedPayloadV1, error) {
	outgoing := club.PresidentUserID

	if err := s.members.UpdateMemberRole(ctx, db, club.ID, outgoing, membershiptypes.RoleMember); err != nil {
		return nil, fmt.Errorf("failed to demote outgoing president: %w", err)
	}
	if err := s.members.UpdateMemberRole(ctx, db, club.ID, candidateID, membershiptypes.RolePresident); err != nil {
		return nil, fmt.Errorf("failed to promote incoming president: %w", err)
	}
	if err := s.clubs.SetPresident(ctx, db, club.ID, candidateID); err != nil {
		return nil, fmt.Errorf("failed to update club president: %w", err)
	}

	club.PresidentUserID = candidateID
	return &transferevents.TransferExecutedPayloadV1{
		Club:              club.ToDomain(),
		OutgoingPresident: outgoing,
		IncomingPresident: candidateID,
		InitiatedBy:       initiatedBy,
		ApprovedBy:        approvedBy,
	}, nil
}

// announceTransfer runs the best-effort side effects of a completed
// transfer: the incoming president gets the club and moderator roles (the
// outgoing president keeps theirs), both are DMed, and the club channel is
// told about the handover.
func (s *TransferService) announceTransfer(ctx context.Context, executed *transferevents.TransferExecutedPayloadV1) {
	club := executed.Club

	s.grantRole(ctx, club.GuildID, executed.IncomingPresident, club.RoleID)
	s.grantRole(ctx, club.GuildID, executed.IncomingPresident, club.ModeratorRoleID)

	s.notifyDM(ctx, executed.IncomingPresident, platform.Message{
		Content: fmt.Sprintf("You are now the president of **%s**.", club.Name),
	})
	s.notifyDM(ctx, executed.OutgoingPresident, platform.Message{
		Content: fmt.Sprintf("The presidency of **%s** has been transferred to <@%s>.", club.Name, executed.IncomingPresident),
	})

	if s.notifier != nil && club.ChannelID != "" {
		_, err := s.notifier.PostMessage(ctx, club.ChannelID, platform.Message{
			Content: fmt.Sprintf("**%s** has a new president: <@%s>. Thank you <@%s> for your service!", club.Name, executed.IncomingPresident, executed.OutgoingPresident),
		})
		if err != nil {
			s.logger.WarnContext(ctx, "Failed to announce transfer in club channel",
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
		}
	}
}

// grantRole assigns a platform role, logging on failure.
func (s *TransferService) grantRole(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID, roleID sharedtypes.RoleID) {
	if s.notifier == nil || roleID == "" {
		return
	}
	if err := s.notifier.AssignRole(ctx, guildID, userID, roleID); err != nil {
		s.logger.WarnContext(ctx, "Failed to assign role after transfer",
			attr.ExtractCorrelationID(ctx),
			attr.String("user_id", string(userID)),
			attr.String("role_id", string(roleID)),
			attr.Error(err),
		)
	}
}
