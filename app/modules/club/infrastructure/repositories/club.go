package clubdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"

	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// Sentinel errors surfaced to the application layer.
var (
	ErrNotFound  = errors.New("club not found")
	ErrDuplicate = errors.New("club already exists")
)

// liveStatuses are the states in which a club holds its name and slug. The
// partial unique indexes on clubs cover the same set.
var liveStatuses = []clubtypes.Status{clubtypes.StatusPending, clubtypes.StatusActive}

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new club repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation. The constraints are the real duplicate guard; the application
// pre-checks are only a fast path.
func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.IntegrityViolation()
	}
	return false
}

// Lock takes a row lock on the club until the surrounding transaction ends.
// The member cap is a count-then-insert; holding the club row serializes
// concurrent joins so the count sees every committed row.
func (r *Impl) Lock(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID) error {
	db = r.resolveDB(db)
	var id clubtypes.ClubID
	err := db.NewSelect().
		Model((*Club)(nil)).
		Column("id").
		Where("id = ?", clubID).
		For("UPDATE").
		Scan(ctx, &id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to lock club: %w", err)
	}
	return nil
}

// GetByID retrieves a club by id.
func (r *Impl) GetByID(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID) (*Club, error) {
	db = r.resolveDB(db)
	club := new(Club)
	err := db.NewSelect().
		Model(club).
		Where("id = ?", clubID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get club by id: %w", err)
	}
	return club, nil
}

// GetBySlug retrieves the pending or active club holding the slug in the
// guild. Dissolved and rejected clubs may share the slug and are skipped.
func (r *Impl) GetBySlug(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, slug string) (*Club, error) {
	db = r.resolveDB(db)
	club := new(Club)
	err := db.NewSelect().
		Model(club).
		Where("guild_id = ?", guildID).
		Where("slug = ?", slug).
		Where("status IN (?)", bun.In(liveStatuses)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get club by slug: %w", err)
	}
	return club, nil
}

// NameExists checks for a case-insensitive name collision with a pending or
// active club in the guild. Dissolved and rejected clubs are ignored, matching
// the partial unique indexes: their names are free for reuse.
func (r *Impl) NameExists(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, name string) (bool, error) {
	db = r.resolveDB(db)
	exists, err := db.NewSelect().
		Model((*Club)(nil)).
		Where("guild_id = ?", guildID).
		Where("LOWER(name) = ?", strings.ToLower(name)).
		Where("status IN (?)", bun.In(liveStatuses)).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check name existence: %w", err)
	}
	return exists, nil
}

// SlugExists checks whether a pending or active club in the guild holds the
// slug.
func (r *Impl) SlugExists(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, slug string) (bool, error) {
	db = r.resolveDB(db)
	exists, err := db.NewSelect().
		Model((*Club)(nil)).
		Where("guild_id = ?", guildID).
		Where("slug = ?", slug).
		Where("status IN (?)", bun.In(liveStatuses)).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check slug existence: %w", err)
	}
	return exists, nil
}

// GetLiveByPresident returns the user's pending or active club in the guild.
func (r *Impl) GetLiveByPresident(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (*Club, error) {
	db = r.resolveDB(db)
	club := new(Club)
	err := db.NewSelect().
		Model(club).
		Where("guild_id = ?", guildID).
		Where("president_user_id = ?", userID).
		Where("status IN (?)", bun.In(liveStatuses)).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get club by president: %w", err)
	}
	return club, nil
}

// ListByGuild lists a guild's clubs, optionally filtered by status.
func (r *Impl) ListByGuild(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, statuses ...clubtypes.Status) ([]Club, error) {
	db = r.resolveDB(db)
	var clubs []Club
	q := db.NewSelect().
		Model(&clubs).
		Where("guild_id = ?", guildID).
		Order("name ASC")
	if len(statuses) > 0 {
		q = q.Where("status IN (?)", bun.In(statuses))
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}
	return clubs, nil
}

// Create inserts a new club.
func (r *Impl) Create(ctx context.Context, db bun.IDB, club *Club) error {
	db = r.resolveDB(db)
	now := time.Now()
	club.CreatedAt = now
	club.UpdatedAt = now
	if _, err := db.NewInsert().Model(club).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create club: %w", err)
	}
	return nil
}

// MarkActive flips a pending club to active and records its resources.
func (r *Impl) MarkActive(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, res ProvisionedResources) (bool, error) {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*Club)(nil)).
		Set("status = ?", clubtypes.StatusActive).
		Set("role_id = ?", res.RoleID).
		Set("moderator_role_id = ?", res.ModeratorRoleID).
		Set("channel_id = ?", res.ChannelID).
		Set("voice_channel_id = ?", res.VoiceChannelID).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", clubID).
		Where("status = ?", clubtypes.StatusPending).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to mark club active: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

// TransitionStatus performs a guarded status transition.
func (r *Impl) TransitionStatus(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, from, to clubtypes.Status) (bool, error) {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*Club)(nil)).
		Set("status = ?", to).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", clubID).
		Where("status = ?", from).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to transition club status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

// SetPresident updates the club's president.
func (r *Impl) SetPresident(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*Club)(nil)).
		Set("president_user_id = ?", userID).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", clubID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set club president: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repository = (*Impl)(nil)
