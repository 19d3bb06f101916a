package transferdb

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
	transfertypes "github.com/campus-commons/clubhub-bot/app/types/transfer"
)

// Repository defines transfer-request persistence. Every method takes a
// bun.IDB so the caller can pass a transaction; nil falls back to the
// repository's own connection.
type Repository interface {
	// Create inserts a pending request. ErrDuplicate when the club already
	// has one pending.
	Create(ctx context.Context, db bun.IDB, req *PendingTransferRequest) error
	GetByID(ctx context.Context, db bun.IDB, transferID transfertypes.TransferID) (*PendingTransferRequest, error)
	// Resolve flips a pending request to the given terminal status. Returns
	// false when the request was already resolved.
	Resolve(ctx context.Context, db bun.IDB, transferID transfertypes.TransferID, status transfertypes.Status, resolvedBy sharedtypes.UserID) (bool, error)
	// ExpirePending marks pending requests created before the cutoff as
	// expired and returns how many were flipped.
	ExpirePending(ctx context.Context, db bun.IDB, cutoff time.Time) (int, error)
	// HasPendingByClub reports whether the club has an unresolved request.
	HasPendingByClub(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID) (bool, error)
}
