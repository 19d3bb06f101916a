package auditdb

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

const defaultListLimit = 100

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new audit repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// Insert appends one entry.
func (r *Impl) Insert(ctx context.Context, db bun.IDB, entry *AuditLogEntry) error {
	db = r.resolveDB(db)
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	_, err := db.NewInsert().
		Model(entry).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

// List returns entries matching the filter, newest first.
func (r *Impl) List(ctx context.Context, db bun.IDB, filter Filter) ([]AuditLogEntry, error) {
	db = r.resolveDB(db)

	limit := filter.Limit
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}

	q := db.NewSelect().
		Model((*AuditLogEntry)(nil)).
		Where("guild_id = ?", filter.GuildID)

	if filter.ClubID != nil {
		q = q.Where("club_id = ?", *filter.ClubID)
	}
	if filter.ActionType != "" {
		q = q.Where("action_type = ?", filter.ActionType)
	}
	if filter.Since != nil {
		q = q.Where("created_at >= ?", *filter.Since)
	}
	if filter.Until != nil {
		q = q.Where("created_at < ?", *filter.Until)
	}

	var entries []AuditLogEntry
	err := q.
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx, &entries)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, nil
}
