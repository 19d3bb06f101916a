package auditdb

import (
	"time"

	"github.com/uptrace/bun"

	audittypes "github.com/campus-commons/clubhub-bot/app/types/audit"
	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// AuditLogEntry is the persistence model for one audit record. Rows are
// append-only; nothing updates or deletes them.
type AuditLogEntry struct {
	bun.BaseModel `bun:"table:audit_log_entries,alias:ale"`

	ID          audittypes.EntryID  `bun:"id,pk,type:uuid"`
	GuildID     sharedtypes.GuildID `bun:"guild_id,notnull,type:varchar(20)"`
	ClubID      *clubtypes.ClubID   `bun:"club_id,nullzero,type:uuid"`
	ActionType  string              `bun:"action_type,notnull,type:varchar(40)"`
	PerformedBy sharedtypes.UserID  `bun:"performed_by,nullzero,type:varchar(20)"`
	TargetID    string              `bun:"target_id,nullzero"`
	Details     map[string]any      `bun:"details,nullzero,type:jsonb"`
	CreatedAt   time.Time           `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// ToDomain converts the persistence model to the domain view.
func (e *AuditLogEntry) ToDomain() audittypes.Entry {
	return audittypes.Entry{
		ID:          e.ID,
		GuildID:     e.GuildID,
		ClubID:      e.ClubID,
		ActionType:  e.ActionType,
		PerformedBy: e.PerformedBy,
		TargetID:    e.TargetID,
		Details:     e.Details,
		CreatedAt:   e.CreatedAt,
	}
}
