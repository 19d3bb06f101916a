package membershipdb

import (
	"context"

	"github.com/uptrace/bun"

	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	membershiptypes "github.com/campus-commons/clubhub-bot/app/types/membership"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// Repository defines membership persistence. Every method takes a bun.IDB so
// the caller can pass a transaction; nil falls back to the repository's own
// connection.
type Repository interface {
	// GetMember returns the membership row regardless of status.
	GetMember(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (*ClubMember, error)
	// UpsertMember inserts the membership or revives an existing row for the
	// same (club, user) pair with the given role and active status.
	UpsertMember(ctx context.Context, db bun.IDB, member *ClubMember) error
	// MarkRemoved flips an active member to removed. Returns false when the
	// member was not active.
	MarkRemoved(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error)
	UpdateMemberRole(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID, role membershiptypes.MemberRole) error
	CountActiveMembers(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID) (int, error)
	// ListActiveByRole returns active members holding any of the given roles.
	ListActiveByRole(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, roles ...membershiptypes.MemberRole) ([]ClubMember, error)
	// IncrementAttendance credits one attended event to the given active
	// members. Non-members in the list are skipped.
	IncrementAttendance(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userIDs []sharedtypes.UserID) error

	CreateJoinRequest(ctx context.Context, db bun.IDB, req *JoinRequest) error
	GetJoinRequest(ctx context.Context, db bun.IDB, requestID membershiptypes.JoinRequestID) (*JoinRequest, error)
	HasPendingJoinRequest(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error)
	// ResolveJoinRequest flips a pending request to the given terminal status.
	// Returns false when the request was already resolved, which is the
	// repeat-click guard.
	ResolveJoinRequest(ctx context.Context, db bun.IDB, requestID membershiptypes.JoinRequestID, status membershiptypes.JoinRequestStatus, reviewedBy sharedtypes.UserID) (bool, error)

	IsTrusted(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error)
	// AddTrusted returns false when the member was already trusted.
	AddTrusted(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error)
	// RemoveTrusted returns false when the member was not trusted.
	RemoveTrusted(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error)
}
