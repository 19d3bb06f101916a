package transferdb

import (
	"time"

	"github.com/uptrace/bun"

	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
	transfertypes "github.com/campus-commons/clubhub-bot/app/types/transfer"
)

// PendingTransferRequest is the persistence model for an owner-gated
// presidency transfer. A partial unique index allows one pending request per
// club.
type PendingTransferRequest struct {
	bun.BaseModel `bun:"table:pending_transfer_requests,alias:ptr"`

	ID              transfertypes.TransferID `bun:"id,pk,type:uuid"`
	ClubID          clubtypes.ClubID         `bun:"club_id,notnull,type:uuid"`
	GuildID         sharedtypes.GuildID      `bun:"guild_id,notnull,type:varchar(20)"`
	InitiatorUserID sharedtypes.UserID       `bun:"initiator_user_id,notnull,type:varchar(20)"`
	CandidateUserID sharedtypes.UserID       `bun:"candidate_user_id,notnull,type:varchar(20)"`
	Reason          string                   `bun:"reason,nullzero"`
	Status          transfertypes.Status     `bun:"status,notnull,type:varchar(12)"`
	ResolvedBy      sharedtypes.UserID       `bun:"resolved_by,nullzero,type:varchar(20)"`
	CreatedAt       time.Time                `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	ResolvedAt      *time.Time               `bun:"resolved_at,nullzero"`
}

// ToDomain converts the persistence model to the domain view.
func (r *PendingTransferRequest) ToDomain() transfertypes.PendingTransferRequest {
	return transfertypes.PendingTransferRequest{
		ID:              r.ID,
		ClubID:          r.ClubID,
		GuildID:         r.GuildID,
		InitiatorUserID: r.InitiatorUserID,
		CandidateUserID: r.CandidateUserID,
		Reason:          r.Reason,
		Status:          r.Status,
		ResolvedBy:      r.ResolvedBy,
		CreatedAt:       r.CreatedAt,
		ResolvedAt:      r.ResolvedAt,
	}
}
