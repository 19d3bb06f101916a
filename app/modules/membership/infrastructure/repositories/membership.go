package membershipdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	membershiptypes "github.com/campus-commons/clubhub-bot/app/types/membership"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// Sentinel errors surfaced to the application layer.
var (
	ErrMemberNotFound      = errors.New("club member not found")
	ErrJoinRequestNotFound = errors.New("join request not found")
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new membership repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// GetMember retrieves a membership row regardless of status.
func (r *Impl) GetMember(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (*ClubMember, error) {
	db = r.resolveDB(db)
	member := new(ClubMember)
	err := db.NewSelect().
		Model(member).
		Where("club_id = ?", clubID).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get club member: %w", err)
	}
	return member, nil
}

// UpsertMember inserts or revives a membership row.
func (r *Impl) UpsertMember(ctx context.Context, db bun.IDB, member *ClubMember) error {
	db = r.resolveDB(db)
	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now()
	}
	_, err := db.NewInsert().
		Model(member).
		On("CONFLICT (club_id, user_id) DO UPDATE").
		Set("role = EXCLUDED.role").
		Set("status = EXCLUDED.status").
		Set("joined_at = EXCLUDED.joined_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert club member: %w", err)
	}
	return nil
}

// MarkRemoved flips an active member to removed.
func (r *Impl) MarkRemoved(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error) {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*ClubMember)(nil)).
		Set("status = ?", membershiptypes.MemberRemoved).
		Where("club_id = ?", clubID).
		Where("user_id = ?", userID).
		Where("status = ?", membershiptypes.MemberActive).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to mark member removed: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

// UpdateMemberRole changes the role of an existing member.
func (r *Impl) UpdateMemberRole(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID, role membershiptypes.MemberRole) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*ClubMember)(nil)).
		Set("role = ?", role).
		Where("club_id = ?", clubID).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrMemberNotFound
	}
	return nil
}

// CountActiveMembers counts a club's active members.
func (r *Impl) CountActiveMembers(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID) (int, error) {
	db = r.resolveDB(db)
	count, err := db.NewSelect().
		Model((*ClubMember)(nil)).
		Where("club_id = ?", clubID).
		Where("status = ?", membershiptypes.MemberActive).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count active members: %w", err)
	}
	return count, nil
}

// ListActiveByRole returns active members holding any of the given roles.
func (r *Impl) ListActiveByRole(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, roles ...membershiptypes.MemberRole) ([]ClubMember, error) {
	db = r.resolveDB(db)
	var members []ClubMember
	q := db.NewSelect().
		Model(&members).
		Where("club_id = ?", clubID).
		Where("status = ?", membershiptypes.MemberActive)
	if len(roles) > 0 {
		q = q.Where("role IN (?)", bun.In(roles))
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list active members: %w", err)
	}
	return members, nil
}

// IncrementAttendance credits one attended event to the given active members.
func (r *Impl) IncrementAttendance(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userIDs []sharedtypes.UserID) error {
	if len(userIDs) == 0 {
		return nil
	}
	db = r.resolveDB(db)
	_, err := db.NewUpdate().
		Model((*ClubMember)(nil)).
		Set("attendance_count = attendance_count + 1").
		Set("last_active_at = ?", time.Now()).
		Where("club_id = ?", clubID).
		Where("user_id IN (?)", bun.In(userIDs)).
		Where("status = ?", membershiptypes.MemberActive).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to increment attendance: %w", err)
	}
	return nil
}

// CreateJoinRequest inserts a pending join request.
func (r *Impl) CreateJoinRequest(ctx context.Context, db bun.IDB, req *JoinRequest) error {
	db = r.resolveDB(db)
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	if _, err := db.NewInsert().Model(req).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create join request: %w", err)
	}
	return nil
}

// GetJoinRequest retrieves a join request by id.
func (r *Impl) GetJoinRequest(ctx context.Context, db bun.IDB, requestID membershiptypes.JoinRequestID) (*JoinRequest, error) {
	db = r.resolveDB(db)
	req := new(JoinRequest)
	err := db.NewSelect().
		Model(req).
		Where("id = ?", requestID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJoinRequestNotFound
		}
		return nil, fmt.Errorf("failed to get join request: %w", err)
	}
	return req, nil
}

// HasPendingJoinRequest checks for an outstanding pending request.
func (r *Impl) HasPendingJoinRequest(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error) {
	db = r.resolveDB(db)
	exists, err := db.NewSelect().
		Model((*JoinRequest)(nil)).
		Where("club_id = ?", clubID).
		Where("user_id = ?", userID).
		Where("status = ?", membershiptypes.JoinRequestPending).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check pending join request: %w", err)
	}
	return exists, nil
}

// ResolveJoinRequest flips a pending request to a terminal status.
func (r *Impl) ResolveJoinRequest(ctx context.Context, db bun.IDB, requestID membershiptypes.JoinRequestID, status membershiptypes.JoinRequestStatus, reviewedBy sharedtypes.UserID) (bool, error) {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*JoinRequest)(nil)).
		Set("status = ?", status).
		Set("reviewed_by = ?", reviewedBy).
		Set("reviewed_at = ?", time.Now()).
		Where("id = ?", requestID).
		Where("status = ?", membershiptypes.JoinRequestPending).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to resolve join request: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

// IsTrusted checks whether the member holds the trusted tier.
func (r *Impl) IsTrusted(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error) {
	db = r.resolveDB(db)
	exists, err := db.NewSelect().
		Model((*TrustedMember)(nil)).
		Where("club_id = ?", clubID).
		Where("user_id = ?", userID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check trusted member: %w", err)
	}
	return exists, nil
}

// AddTrusted marks a member trusted; no-op when already trusted.
func (r *Impl) AddTrusted(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error) {
	db = r.resolveDB(db)
	result, err := db.NewInsert().
		Model(&TrustedMember{ClubID: clubID, UserID: userID, AddedAt: time.Now()}).
		On("CONFLICT (club_id, user_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to add trusted member: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

// RemoveTrusted clears the trusted tier; no-op when not trusted.
func (r *Impl) RemoveTrusted(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error) {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*TrustedMember)(nil)).
		Where("club_id = ?", clubID).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to remove trusted member: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

var _ Repository = (*Impl)(nil)
