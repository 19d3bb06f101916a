package membershipservice

import (
	"context"

	"github.com/uptrace/bun"

	clubdb "github.com/campus-commons/clubhub-bot/app/modules/club/infrastructure/repositories"
	membershipdb "github.com/campus-commons/clubhub-bot/app/modules/membership/infrastructure/repositories"
	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	membershiptypes "github.com/campus-commons/clubhub-bot/app/types/membership"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// ------------------------
// Fake Membership Repo
// ------------------------

type FakeMembershipRepo struct {
	trace []string

	GetMemberFunc             func(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (*membershipdb.ClubMember, error)
	UpsertMemberFunc          func(ctx context.Context, db bun.IDB, member *membershipdb.ClubMember) error
	MarkRemovedFunc           func(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error)
	UpdateMemberRoleFunc      func(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID, role membershiptypes.MemberRole) error
	CountActiveMembersFunc    func(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID) (int, error)
	ListActiveByRoleFunc      func(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, roles ...membershiptypes.MemberRole) ([]membershipdb.ClubMember, error)
	CreateJoinRequestFunc     func(ctx context.Context, db bun.IDB, req *membershipdb.JoinRequest) error
	GetJoinRequestFunc        func(ctx context.Context, db bun.IDB, requestID membershiptypes.JoinRequestID) (*membershipdb.JoinRequest, error)
	HasPendingJoinRequestFunc func(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error)
	ResolveJoinRequestFunc    func(ctx context.Context, db bun.IDB, requestID membershiptypes.JoinRequestID, status membershiptypes.JoinRequestStatus, reviewedBy sharedtypes.UserID) (bool, error)
	IsTrustedFunc             func(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error)
	AddTrustedFunc            func(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error)
	RemoveTrustedFunc         func(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error)
}

func NewFakeMembershipRepo() *FakeMembershipRepo {
	return &FakeMembershipRepo{trace: []string{}}
}

func (f *FakeMembershipRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeMembershipRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeMembershipRepo) GetMember(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (*membershipdb.ClubMember, error) {
	f.record("GetMember")
	if f.GetMemberFunc != nil {
		return f.GetMemberFunc(ctx, db, clubID, userID)
	}
	return nil, membershipdb.ErrMemberNotFound
}

func (f *FakeMembershipRepo) UpsertMember(ctx context.Context, db bun.IDB, member *membershipdb.ClubMember) error {
	f.record("UpsertMember")
	if f.UpsertMemberFunc != nil {
		return f.UpsertMemberFunc(ctx, db, member)
	}
	return nil
}

func (f *FakeMembershipRepo) MarkRemoved(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error) {
	f.record("MarkRemoved")
	if f.MarkRemovedFunc != nil {
		return f.MarkRemovedFunc(ctx, db, clubID, userID)
	}
	return true, nil
}

func (f *FakeMembershipRepo) UpdateMemberRole(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID, role membershiptypes.MemberRole) error {
	f.record("UpdateMemberRole")
	if f.UpdateMemberRoleFunc != nil {
		return f.UpdateMemberRoleFunc(ctx, db, clubID, userID, role)
	}
	return nil
}

func (f *FakeMembershipRepo) CountActiveMembers(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID) (int, error) {
	f.record("CountActiveMembers")
	if f.CountActiveMembersFunc != nil {
		return f.CountActiveMembersFunc(ctx, db, clubID)
	}
	return 0, nil
}

func (f *FakeMembershipRepo) ListActiveByRole(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, roles ...membershiptypes.MemberRole) ([]membershipdb.ClubMember, error) {
	f.record("ListActiveByRole")
	if f.ListActiveByRoleFunc != nil {
		return f.ListActiveByRoleFunc(ctx, db, clubID, roles...)
	}
	return nil, nil
}

func (f *FakeMembershipRepo) IncrementAttendance(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userIDs []sharedtypes.UserID) error {
	f.record("IncrementAttendance")
	return nil
}

func (f *FakeMembershipRepo) CreateJoinRequest(ctx context.Context, db bun.IDB, req *membershipdb.JoinRequest) error {
	f.record("CreateJoinRequest")
	if f.CreateJoinRequestFunc != nil {
		return f.CreateJoinRequestFunc(ctx, db, req)
	}
	return nil
}

func (f *FakeMembershipRepo) GetJoinRequest(ctx context.Context, db bun.IDB, requestID membershiptypes.JoinRequestID) (*membershipdb.JoinRequest, error) {
	f.record("GetJoinRequest")
	if f.GetJoinRequestFunc != nil {
		return f.GetJoinRequestFunc(ctx, db, requestID)
	}
	return nil, membershipdb.ErrJoinRequestNotFound
}

func (f *FakeMembershipRepo) HasPendingJoinRequest(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error) {
	f.record("HasPendingJoinRequest")
	if f.HasPendingJoinRequestFunc != nil {
		return f.HasPendingJoinRequestFunc(ctx, db, clubID, userID)
	}
	return false, nil
}

func (f *FakeMembershipRepo) ResolveJoinRequest(ctx context.Context, db bun.IDB, requestID membershiptypes.JoinRequestID, status membershiptypes.JoinRequestStatus, reviewedBy sharedtypes.UserID) (bool, error) {
	f.record("ResolveJoinRequest")
	if f.ResolveJoinRequestFunc != nil {
		return f.ResolveJoinRequestFunc(ctx, db, requestID, status, reviewedBy)
	}
	return true, nil
}

func (f *FakeMembershipRepo) IsTrusted(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error) {
	f.record("IsTrusted")
	if f.IsTrustedFunc != nil {
		return f.IsTrustedFunc(ctx, db, clubID, userID)
	}
	return false, nil
}

func (f *FakeMembershipRepo) AddTrusted(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error) {
	f.record("AddTrusted")
	if f.AddTrustedFunc != nil {
		return f.AddTrustedFunc(ctx, db, clubID, userID)
	}
	return true, nil
}

func (f *FakeMembershipRepo) RemoveTrusted(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error) {
	f.record("RemoveTrusted")
	if f.RemoveTrustedFunc != nil {
		return f.RemoveTrustedFunc(ctx, db, clubID, userID)
	}
	return true, nil
}

var _ membershipdb.Repository = (*FakeMembershipRepo)(nil)

// ------------------------
// Fake Club Repo (reads only; membership never writes clubs)
// ------------------------

type FakeClubRepo struct {
	GetByIDFunc func(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID) (*clubdb.Club, error)
	LockFunc    func(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID) error

	Locked []clubtypes.ClubID
}

func (f *FakeClubRepo) GetByID(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID) (*clubdb.Club, error) {
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, clubID)
	}
	return nil, clubdb.ErrNotFound
}

func (f *FakeClubRepo) Lock(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID) error {
	f.Locked = append(f.Locked, clubID)
	if f.LockFunc != nil {
		return f.LockFunc(ctx, db, clubID)
	}
	return nil
}

func (f *FakeClubRepo) GetBySlug(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, slug string) (*clubdb.Club, error) {
	return nil, clubdb.ErrNotFound
}

func (f *FakeClubRepo) NameExists(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, name string) (bool, error) {
	return false, nil
}

func (f *FakeClubRepo) SlugExists(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, slug string) (bool, error) {
	return false, nil
}

func (f *FakeClubRepo) GetLiveByPresident(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (*clubdb.Club, error) {
	return nil, clubdb.ErrNotFound
}

func (f *FakeClubRepo) ListByGuild(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, statuses ...clubtypes.Status) ([]clubdb.Club, error) {
	return nil, nil
}

func (f *FakeClubRepo) Create(ctx context.Context, db bun.IDB, club *clubdb.Club) error {
	return nil
}

func (f *FakeClubRepo) MarkActive(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, res clubdb.ProvisionedResources) (bool, error) {
	return true, nil
}

func (f *FakeClubRepo) TransitionStatus(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, from, to clubtypes.Status) (bool, error) {
	return true, nil
}

func (f *FakeClubRepo) SetPresident(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) error {
	return nil
}

var _ clubdb.Repository = (*FakeClubRepo)(nil)
