package transferservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	transferevents "github.com/campus-commons/clubhub-bot/app/events/transfer"
	transferdb "github.com/campus-commons/clubhub-bot/app/modules/transfer/infrastructure/repositories"
	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	transfertypes "github.com/campus-commons/clubhub-bot/app/types/transfer"
	"github.com/campus-commons/clubhub-bot/internal/platform"
	"github.com/campus-commons/clubhub-bot/internal/results"
)

// ApproveTransfer executes a pending presidency transfer on the server
// owner's approval.
func (s *TransferService) ApproveTransfer(ctx context.Context, payload *transferevents.TransferResolvePayloadV1) (ApproveResult, error) {
	if payload == nil {
		return ApproveResult{}, ErrNilPayload
	}

	approveTx := func(ctx context.Context, db bun.IDB) (ApproveResult, error) {
		return s.approveTransferLogic(ctx, db, payload)
	}

	result, err := withTelemetry(s, ctx, "ApproveTransfer", payload.TransferID.String(), func(ctx context.Context) (ApproveResult, error) {
		return runInTx(s, ctx, approveTx)
	})
	if err != nil {
		return result, err
	}

	if result.IsSuccess() {
		s.announceTransfer(ctx, *result.Success)
	}
	return result, nil
}

// approveTransferLogic contains the core logic.
func (s *TransferService) approveTransferLogic(ctx context.Context, db bun.IDB, payload *transferevents.TransferResolvePayloadV1) (ApproveResult, error) {
	request, reason, err := s.loadResolvableRequest(ctx, db, payload)
	if err != nil {
		return ApproveResult{}, err
	}
	if reason != "" {
		return results.FailureResult[*transferevents.TransferExecutedPayloadV1](
			failurePayload(payload.GuildID, payload.Actor.UserID, requestClubID(request), reason)), nil
	}

	fail := func(reason string) ApproveResult {
		clubID := request.ClubID
		return results.FailureResult[*transferevents.TransferExecutedPayloadV1](
			failurePayload(payload.GuildID, payload.Actor.UserID, &clubID, reason))
	}

	club, inactiveReason, err := s.getActiveClub(ctx, db, request.ClubID)
	if err != nil {
		return ApproveResult{}, err
	}
	if inactiveReason != "" {
		return fail(inactiveReason), nil
	}

	resolved, err := s.repo.Resolve(ctx, db, request.ID, transfertypes.StatusApproved, payload.Actor.UserID)
	if err != nil {
		return ApproveResult{}, fmt.Errorf("failed to resolve transfer request: %w", err)
	}
	if !resolved {
		return fail("transfer request was just resolved"), nil
	}

	executed, err := s.executeTransfer(ctx, db, club, request.CandidateUserID, request.InitiatorUserID, payload.Actor.UserID)
	if err != nil {
		return ApproveResult{}, err
	}

	return results.SuccessResult[*transferevents.TransferExecutedPayloadV1, *transferevents.TransferFailedPayloadV1](executed), nil
}

// DenyTransfer declines a pending presidency transfer. Nothing changes but
// the request row; the initiator is told.
func (s *TransferService) DenyTransfer(ctx context.Context, payload *transferevents.TransferResolvePayloadV1) (DenyResult, error) {
	if payload == nil {
		return DenyResult{}, ErrNilPayload
	}

	denyTx := func(ctx context.Context, db bun.IDB) (DenyResult, error) {
		return s.denyTransferLogic(ctx, db, payload)
	}

	result, err := withTelemetry(s, ctx, "DenyTransfer", payload.TransferID.String(), func(ctx context.Context) (DenyResult, error) {
		return runInTx(s, ctx, denyTx)
	})
	if err != nil {
		return result, err
	}

	if result.IsSuccess() {
		denied := *result.Success
		s.notifyDM(ctx, denied.Request.InitiatorUserID, platform.Message{
			Content: fmt.Sprintf("Your request to transfer the presidency of club %s to <@%s> was denied by the server owner.",
				denied.Request.ClubID, denied.Request.CandidateUserID),
		})
	}
	return result, nil
}

// denyTransferLogic contains the core logic.
func (s *TransferService) denyTransferLogic(ctx context.Context, db bun.IDB, payload *transferevents.TransferResolvePayloadV1) (DenyResult, error) {
	request, reason, err := s.loadResolvableRequest(ctx, db, payload)
	if err != nil {
		return DenyResult{}, err
	}
	if reason != "" {
		return results.FailureResult[*transferevents.TransferDeniedPayloadV1](
			failurePayload(payload.GuildID, payload.Actor.UserID, requestClubID(request), reason)), nil
	}

	resolved, err := s.repo.Resolve(ctx, db, request.ID, transfertypes.StatusDenied, payload.Actor.UserID)
	if err != nil {
		return DenyResult{}, fmt.Errorf("failed to resolve transfer request: %w", err)
	}
	if !resolved {
		clubID := request.ClubID
		return results.FailureResult[*transferevents.TransferDeniedPayloadV1](
			failurePayload(payload.GuildID, payload.Actor.UserID, &clubID, "transfer request was just resolved")), nil
	}

	now := time.Now().UTC()
	request.Status = transfertypes.StatusDenied
	request.ResolvedBy = payload.Actor.UserID
	request.ResolvedAt = &now

	return results.SuccessResult[*transferevents.TransferDeniedPayloadV1, *transferevents.TransferFailedPayloadV1](
		&transferevents.TransferDeniedPayloadV1{
			Request:  request.ToDomain(),
			DeniedBy: payload.Actor.UserID,
		}), nil
}

// loadResolvableRequest loads a transfer request and applies the shared
// resolution gates: owner-only authority and a still-pending row. A
// non-empty reason is a domain failure; err is infrastructure.
func (s *TransferService) loadResolvableRequest(ctx context.Context, db bun.IDB, payload *transferevents.TransferResolvePayloadV1) (*transferdb.PendingTransferRequest, string, error) {
	if !payload.Actor.IsServerOwner {
		return nil, "only the server owner can resolve transfer requests", nil
	}

	request, err := s.repo.GetByID(ctx, db, payload.TransferID)
	if err != nil {
		if errors.Is(err, transferdb.ErrNotFound) {
			return nil, "transfer request not found", nil
		}
		return nil, "", fmt.Errorf("failed to load transfer request: %w", err)
	}

	if request.Status != transfertypes.StatusPending {
		return request, fmt.Sprintf("transfer request has already been resolved (status: %s)", request.Status), nil
	}
	return request, "", nil
}

// requestClubID tolerates a nil request when building a failure payload.
func requestClubID(request *transferdb.PendingTransferRequest) *clubtypes.ClubID {
	if request == nil {
		return nil
	}
	id := request.ClubID
	return &id
}
