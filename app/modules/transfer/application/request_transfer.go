package transferservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	transferevents "github.com/campus-commons/clubhub-bot/app/events/transfer"
	clubdb "github.com/campus-commons/clubhub-bot/app/modules/club/infrastructure/repositories"
	membershipdb "github.com/campus-commons/clubhub-bot/app/modules/membership/infrastructure/repositories"
	transferdb "github.com/campus-commons/clubhub-bot/app/modules/transfer/infrastructure/repositories"
	membershiptypes "github.com/campus-commons/clubhub-bot/app/types/membership"
	transfertypes "github.com/campus-commons/clubhub-bot/app/types/transfer"
	"github.com/campus-commons/clubhub-bot/internal/platform"
	"github.com/campus-commons/clubhub-bot/internal/results"
)

// RequestTransfer initiates a presidency handover. The incumbent president
// and the server owner execute immediately; server administrators park the
// request for owner approval instead.
func (s *TransferService) RequestTransfer(ctx context.Context, payload *transferevents.TransferRequestedPayloadV1) (RequestResult, error) {
	if payload == nil {
		return RequestResult{}, ErrNilPayload
	}

	requestTx := func(ctx context.Context, db bun.IDB) (RequestResult, error) {
		return s.requestTransferLogic(ctx, db, payload)
	}

	result, err := withTelemetry(s, ctx, "RequestTransfer", payload.ClubID.String(), func(ctx context.Context) (RequestResult, error) {
		return runInTx(s, ctx, requestTx)
	})
	if err != nil {
		return result, err
	}

	if result.IsSuccess() {
		outcome := *result.Success
		switch {
		case outcome.Executed != nil:
			s.announceTransfer(ctx, outcome.Executed)
		case outcome.Pending != nil:
			s.notifyDM(ctx, outcome.Pending.OwnerUserID, platform.Message{
				Content: fmt.Sprintf("<@%s> wants to transfer the presidency of **%s** to <@%s>. Approve or deny this request.",
					outcome.Pending.Request.InitiatorUserID, outcome.Pending.ClubName, outcome.Pending.Request.CandidateUserID),
			})
		}
	}
	return result, nil
}

// requestTransferLogic contains the core logic.
func (s *TransferService) requestTransferLogic(ctx context.Context, db bun.IDB, payload *transferevents.TransferRequestedPayloadV1) (RequestResult, error) {
	fail := func(reason string) RequestResult {
		clubID := payload.ClubID
		return results.FailureResult[RequestOutcome](
			failurePayload(payload.GuildID, payload.Actor.UserID, &clubID, reason))
	}

	club, reason, err := s.getActiveClub(ctx, db, payload.ClubID)
	if err != nil {
		return RequestResult{}, err
	}
	if reason != "" {
		return fail(reason), nil
	}

	if failReason, err := s.checkCandidate(ctx, db, club, payload); err != nil {
		return RequestResult{}, err
	} else if failReason != "" {
		return fail(failReason), nil
	}

	pending, err := s.repo.HasPendingByClub(ctx, db, club.ID)
	if err != nil {
		return RequestResult{}, fmt.Errorf("failed to check pending transfer: %w", err)
	}
	if pending {
		return fail(fmt.Sprintf("a transfer request for %q is already awaiting owner approval", club.Name)), nil
	}

	switch {
	case payload.Actor.IsServerOwner || payload.Actor.UserID == club.PresidentUserID:
		executed, err := s.executeTransfer(ctx, db, club, payload.CandidateUserID, payload.Actor.UserID, "")
		if err != nil {
			return RequestResult{}, err
		}
		return results.SuccessResult[RequestOutcome, *transferevents.TransferFailedPayloadV1](RequestOutcome{
			Executed: executed,
		}), nil

	case payload.Actor.IsServerAdmin || payload.Actor.IsServerMod:
		request := &transferdb.PendingTransferRequest{
			ID:              uuid.New(),
			ClubID:          club.ID,
			GuildID:         club.GuildID,
			InitiatorUserID: payload.Actor.UserID,
			CandidateUserID: payload.CandidateUserID,
			Reason:          payload.Reason,
			Status:          transfertypes.StatusPending,
		}
		if err := s.repo.Create(ctx, db, request); err != nil {
			if errors.Is(err, transferdb.ErrDuplicate) {
				return fail(fmt.Sprintf("a transfer request for %q was just submitted", club.Name)), nil
			}
			return RequestResult{}, err
		}
		return results.SuccessResult[RequestOutcome, *transferevents.TransferFailedPayloadV1](RequestOutcome{
			Pending: &transferevents.TransferPendingPayloadV1{
				Request:     request.ToDomain(),
				ClubName:    club.Name,
				OwnerUserID: payload.OwnerUserID,
			},
		}), nil

	default:
		return fail(fmt.Sprintf("only the president of %q or the server staff can transfer its presidency", club.Name)), nil
	}
}

// checkCandidate validates the incoming president: not the incumbent,
// platform-verified, and an active member of the club.
func (s *TransferService) checkCandidate(ctx context.Context, db bun.IDB, club *clubdb.Club, payload *transferevents.TransferRequestedPayloadV1) (string, error) {
	if payload.CandidateUserID == club.PresidentUserID {
		return fmt.Sprintf("<@%s> is already the president of %q", payload.CandidateUserID, club.Name), nil
	}

	verified, err := s.verifier.IsVerified(ctx, payload.GuildID, payload.CandidateUserID)
	if err != nil {
		return "", fmt.Errorf("failed to check candidate verification: %w", err)
	}
	if !verified {
		return fmt.Sprintf("<@%s> must be verified before taking over %q", payload.CandidateUserID, club.Name), nil
	}

	member, err := s.members.GetMember(ctx, db, club.ID, payload.CandidateUserID)
	if err != nil {
		if errors.Is(err, membershipdb.ErrMemberNotFound) {
			return fmt.Sprintf("<@%s> is not a member of %q", payload.CandidateUserID, club.Name), nil
		}
		return "", fmt.Errorf("failed to load candidate membership: %w", err)
	}
	if member.Status != membershiptypes.MemberActive {
		return fmt.Sprintf("<@%s> is not an active member of %q", payload.CandidateUserID, club.Name), nil
	}
	return "", nil
}
