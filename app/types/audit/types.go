// Package audittypes defines the audit log domain types.
package audittypes

import (
	"time"

	"github.com/google/uuid"

	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// EntryID identifies an audit log entry.
type EntryID = uuid.UUID

// Entry is one append-only audit record.
type Entry struct {
	ID          EntryID             `json:"id"`
	GuildID     sharedtypes.GuildID `json:"guild_id"`
	ClubID      *clubtypes.ClubID   `json:"club_id,omitempty"`
	ActionType  string              `json:"action_type"`
	PerformedBy sharedtypes.UserID  `json:"performed_by"`
	TargetID    string              `json:"target_id,omitempty"`
	Details     map[string]any      `json:"details,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}
