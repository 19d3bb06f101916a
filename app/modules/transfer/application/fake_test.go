package transferservice

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	clubdb "github.com/campus-commons/clubhub-bot/app/modules/club/infrastructure/repositories"
	membershipdb "github.com/campus-commons/clubhub-bot/app/modules/membership/infrastructure/repositories"
	transferdb "github.com/campus-commons/clubhub-bot/app/modules/transfer/infrastructure/repositories"
	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	membershiptypes "github.com/campus-commons/clubhub-bot/app/types/membership"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
	transfertypes "github.com/campus-commons/clubhub-bot/app/types/transfer"
)

// ------------------------
// Fake Transfer Repo
// ------------------------

type FakeTransferRepo struct {
	trace []string

	CreateFunc           func(ctx context.Context, db bun.IDB, req *transferdb.PendingTransferRequest) error
	GetByIDFunc          func(ctx context.Context, db bun.IDB, transferID transfertypes.TransferID) (*transferdb.PendingTransferRequest, error)
	ResolveFunc          func(ctx context.Context, db bun.IDB, transferID transfertypes.TransferID, status transfertypes.Status, resolvedBy sharedtypes.UserID) (bool, error)
	ExpirePendingFunc    func(ctx context.Context, db bun.IDB, cutoff time.Time) (int, error)
	HasPendingByClubFunc func(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID) (bool, error)
}

func NewFakeTransferRepo() *FakeTransferRepo {
	return &FakeTransferRepo{trace: []string{}}
}

func (f *FakeTransferRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeTransferRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeTransferRepo) Create(ctx context.Context, db bun.IDB, req *transferdb.PendingTransferRequest) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, req)
	}
	return nil
}

func (f *FakeTransferRepo) GetByID(ctx context.Context, db bun.IDB, transferID transfertypes.TransferID) (*transferdb.PendingTransferRequest, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, transferID)
	}
	return nil, transferdb.ErrNotFound
}

func (f *FakeTransferRepo) Resolve(ctx context.Context, db bun.IDB, transferID transfertypes.TransferID, status transfertypes.Status, resolvedBy sharedtypes.UserID) (bool, error) {
	f.record("Resolve")
	if f.ResolveFunc != nil {
		return f.ResolveFunc(ctx, db, transferID, status, resolvedBy)
	}
	return true, nil
}

func (f *FakeTransferRepo) ExpirePending(ctx context.Context, db bun.IDB, cutoff time.Time) (int, error) {
	f.record("ExpirePending")
	if f.ExpirePendingFunc != nil {
		return f.ExpirePendingFunc(ctx, db, cutoff)
	}
	return 0, nil
}

func (f *FakeTransferRepo) HasPendingByClub(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID) (bool, error) {
	f.record("HasPendingByClub")
	if f.HasPendingByClubFunc != nil {
		return f.HasPendingByClubFunc(ctx, db, clubID)
	}
	return false, nil
}

var _ transferdb.Repository = (*FakeTransferRepo)(nil)

// ------------------------
// Fake Club Repo (reads + president writes)
// ------------------------

type FakeClubRepo struct {
	trace []string

	GetByIDFunc      func(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID) (*clubdb.Club, error)
	SetPresidentFunc func(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) error
}

func (f *FakeClubRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeClubRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeClubRepo) GetByID(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID) (*clubdb.Club, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, clubID)
	}
	return nil, clubdb.ErrNotFound
}

func (f *FakeClubRepo) SetPresident(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) error {
	f.record("SetPresident")
	if f.SetPresidentFunc != nil {
		return f.SetPresidentFunc(ctx, db, clubID, userID)
	}
	return nil
}

func (f *FakeClubRepo) Lock(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID) error {
	f.record("Lock")
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

var _ clubdb.Repository = (*FakeClubRepo)(nil)

// ------------------------
// Fake Membership Repo (member lookups + role flips)
// ------------------------

type FakeMembershipRepo struct {
	trace []string

	GetMemberFunc        func(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (*membershipdb.ClubMember, error)
	UpdateMemberRoleFunc func(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID, role membershiptypes.MemberRole) error
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

func (f *FakeMembershipRepo) UpdateMemberRole(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID, role membershiptypes.MemberRole) error {
	f.record("UpdateMemberRole(" + string(userID) + "," + string(role) + ")")
	if f.UpdateMemberRoleFunc != nil {
		return f.UpdateMemberRoleFunc(ctx, db, clubID, userID, role)
	}
	return nil
}

func (f *FakeMembershipRepo) UpsertMember(ctx context.Context, db bun.IDB, member *membershipdb.ClubMember) error {
	f.record("UpsertMember")
	return nil
}

func (f *FakeMembershipRepo) MarkRemoved(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error) {
	return true, nil
}

func (f *FakeMembershipRepo) CountActiveMembers(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID) (int, error) {
	return 0, nil
}

func (f *FakeMembershipRepo) ListActiveByRole(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, roles ...membershiptypes.MemberRole) ([]membershipdb.ClubMember, error) {
	return nil, nil
}

func (f *FakeMembershipRepo) IncrementAttendance(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userIDs []sharedtypes.UserID) error {
	return nil
}

func (f *FakeMembershipRepo) CreateJoinRequest(ctx context.Context, db bun.IDB, req *membershipdb.JoinRequest) error {
	return nil
}

func (f *FakeMembershipRepo) GetJoinRequest(ctx context.Context, db bun.IDB, requestID membershiptypes.JoinRequestID) (*membershipdb.JoinRequest, error) {
	return nil, membershipdb.ErrJoinRequestNotFound
}

func (f *FakeMembershipRepo) HasPendingJoinRequest(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error) {
	return false, nil
}

func (f *FakeMembershipRepo) ResolveJoinRequest(ctx context.Context, db bun.IDB, requestID membershiptypes.JoinRequestID, status membershiptypes.JoinRequestStatus, reviewedBy sharedtypes.UserID) (bool, error) {
	return true, nil
}

func (f *FakeMembershipRepo) IsTrusted(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error) {
	return false, nil
}

func (f *FakeMembershipRepo) AddTrusted(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error) {
	return true, nil
}

func (f *FakeMembershipRepo) RemoveTrusted(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error) {
	return true, nil
}

var _ membershipdb.Repository = (*FakeMembershipRepo)(nil)
