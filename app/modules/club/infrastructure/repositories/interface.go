package clubdb

import (
	"context"

	"github.com/uptrace/bun"

	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// Repository defines club persistence. Every method takes a bun.IDB so the
// caller can pass a transaction; nil falls back to the repository's own
// connection.
type Repository interface {
	GetByID(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID) (*Club, error)
	// Lock row-locks the club for the rest of the transaction. Capacity
	// checks take it before counting members.
	Lock(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID) error
	// GetBySlug resolves a slug to its pending or active club.
	GetBySlug(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, slug string) (*Club, error)
	// NameExists reports whether a pending or active club in the guild
	// already uses the name (case-insensitive). Dissolved and rejected clubs
	// free their names for reuse.
	NameExists(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, name string) (bool, error)
	// SlugExists reports whether a pending or active club in the guild holds
	// the slug.
	SlugExists(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, slug string) (bool, error)
	// GetLiveByPresident returns the president's pending or active club in the
	// guild, if any.
	GetLiveByPresident(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (*Club, error)
	ListByGuild(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, statuses ...clubtypes.Status) ([]Club, error)
	Create(ctx context.Context, db bun.IDB, club *Club) error
	// MarkActive flips a pending club to active and persists its provisioned
	// resource ids. Returns false when the club was no longer pending, which
	// is the double-approval guard.
	MarkActive(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, res ProvisionedResources) (bool, error)
	// TransitionStatus moves a club from one status to another, returning
	// false when the club was not in the expected prior status.
	TransitionStatus(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, from, to clubtypes.Status) (bool, error)
	SetPresident(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) error
}
