package transferdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"

	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
	transfertypes "github.com/campus-commons/clubhub-bot/app/types/transfer"
)

// Sentinel errors surfaced to the application layer.
var (
	ErrNotFound  = errors.New("transfer request not found")
	ErrDuplicate = errors.New("club already has a pending transfer request")
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new transfer repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.IntegrityViolation()
	}
	return false
}

// Create inserts a pending transfer request.
func (r *Impl) Create(ctx context.Context, db bun.IDB, req *PendingTransferRequest) error {
	db = r.resolveDB(db)
	req.CreatedAt = time.Now().UTC()
	_, err := db.NewInsert().
		Model(req).
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create transfer request: %w", err)
	}
	return nil
}

// GetByID retrieves a transfer request by id.
func (r *Impl) GetByID(ctx context.Context, db bun.IDB, transferID transfertypes.TransferID) (*PendingTransferRequest, error) {
	db = r.resolveDB(db)
	req := new(PendingTransferRequest)
	err := db.NewSelect().
		Model(req).
		Where("id = ?", transferID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transfer request: %w", err)
	}
	return req, nil
}

// Resolve flips a pending request to the given terminal status. The status
// guard in the WHERE clause makes a repeat resolution a no-op.
func (r *Impl) Resolve(ctx context.Context, db bun.IDB, transferID transfertypes.TransferID, status transfertypes.Status, resolvedBy sharedtypes.UserID) (bool, error) {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*PendingTransferRequest)(nil)).
		Set("status = ?", status).
		Set("resolved_by = ?", resolvedBy).
		Set("resolved_at = ?", time.Now().UTC()).
		Where("id = ?", transferID).
		Where("status = ?", transfertypes.StatusPending).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to resolve transfer request: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check resolved rows: %w", err)
	}
	return rows > 0, nil
}

// ExpirePending marks stale pending requests as expired.
func (r *Impl) ExpirePending(ctx context.Context, db bun.IDB, cutoff time.Time) (int, error) {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model((*PendingTransferRequest)(nil)).
		Set("status = ?", transfertypes.StatusExpired).
		Set("resolved_at = ?", time.Now().UTC()).
		Where("status = ?", transfertypes.StatusPending).
		Where("created_at < ?", cutoff).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to expire transfer requests: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check expired rows: %w", err)
	}
	return int(rows), nil
}

// HasPendingByClub reports whether the club has an unresolved request.
func (r *Impl) HasPendingByClub(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID) (bool, error) {
	db = r.resolveDB(db)
	exists, err := db.NewSelect().
		Model((*PendingTransferRequest)(nil)).
		Where("club_id = ?", clubID).
		Where("status = ?", transfertypes.StatusPending).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check pending transfer: %w", err)
	}
	return exists, nil
}
