package auditdb

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// Filter narrows an audit log query. GuildID is required; everything else
// is optional.
type Filter struct {
	GuildID    sharedtypes.GuildID
	ClubID     *clubtypes.ClubID
	ActionType string
	Since      *time.Time
	Until      *time.Time
	Limit      int
}

// Repository defines the data access contract for the audit log.
type Repository interface {
	// Insert appends one entry.
	Insert(ctx context.Context, db bun.IDB, entry *AuditLogEntry) error
	// List returns entries matching the filter, newest first.
	List(ctx context.Context, db bun.IDB, filter Filter) ([]AuditLogEntry, error)
}
