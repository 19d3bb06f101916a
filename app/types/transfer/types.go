package transfertypes

import (
	"time"

	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
	"github.com/google/uuid"
)

// TransferID identifies a pending presidency transfer request.
type TransferID = uuid.UUID

// Status is the lifecycle state of a transfer request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDenied   Status = "denied"
	StatusExpired  Status = "expired"
)

// PendingTransferRequest is the durable record of an owner-approval-gated
// presidency transfer. Replaces reconstruction from the audit log so the
// flow survives process restarts.
type PendingTransferRequest struct {
	ID              TransferID          `json:"id"`
	ClubID          clubtypes.ClubID    `json:"club_id"`
	GuildID         sharedtypes.GuildID `json:"guild_id"`
	InitiatorUserID sharedtypes.UserID  `json:"initiator_user_id"`
	CandidateUserID sharedtypes.UserID  `json:"candidate_user_id"`
	Reason          string              `json:"reason"`
	Status          Status              `json:"status"`
	ResolvedBy      sharedtypes.UserID  `json:"resolved_by,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	ResolvedAt      *time.Time          `json:"resolved_at,omitempty"`
}
