package clubservice

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/campus-commons/clubhub-bot/app/modules/club/infrastructure/provision"
	clubdb "github.com/campus-commons/clubhub-bot/app/modules/club/infrastructure/repositories"
	membershipdb "github.com/campus-commons/clubhub-bot/app/modules/membership/infrastructure/repositories"
	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	membershiptypes "github.com/campus-commons/clubhub-bot/app/types/membership"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
	"github.com/campus-commons/clubhub-bot/internal/platform"
)

// ------------------------
// Fake Club Repo
// ------------------------

type FakeClubRepo struct {
	trace []string

	GetByIDFunc            func(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID) (*clubdb.Club, error)
	GetBySlugFunc          func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, slug string) (*clubdb.Club, error)
	NameExistsFunc         func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, name string) (bool, error)
	SlugExistsFunc         func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, slug string) (bool, error)
	GetLiveByPresidentFunc func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (*clubdb.Club, error)
	ListByGuildFunc        func(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, statuses ...clubtypes.Status) ([]clubdb.Club, error)
	CreateFunc             func(ctx context.Context, db bun.IDB, club *clubdb.Club) error
	MarkActiveFunc         func(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, res clubdb.ProvisionedResources) (bool, error)
	TransitionStatusFunc   func(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, from, to clubtypes.Status) (bool, error)
	SetPresidentFunc       func(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) error
}

func NewFakeClubRepo() *FakeClubRepo {
	return &FakeClubRepo{trace: []string{}}
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

func (f *FakeClubRepo) Lock(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID) error {
	f.record("Lock")
	return nil
}

func (f *FakeClubRepo) GetBySlug(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, slug string) (*clubdb.Club, error) {
	f.record("GetBySlug")
	if f.GetBySlugFunc != nil {
		return f.GetBySlugFunc(ctx, db, guildID, slug)
	}
	return nil, clubdb.ErrNotFound
}

func (f *FakeClubRepo) NameExists(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, name string) (bool, error) {
	f.record("NameExists")
	if f.NameExistsFunc != nil {
		return f.NameExistsFunc(ctx, db, guildID, name)
	}
	return false, nil
}

func (f *FakeClubRepo) SlugExists(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, slug string) (bool, error) {
	f.record("SlugExists")
	if f.SlugExistsFunc != nil {
		return f.SlugExistsFunc(ctx, db, guildID, slug)
	}
	return false, nil
}

func (f *FakeClubRepo) GetLiveByPresident(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (*clubdb.Club, error) {
	f.record("GetLiveByPresident")
	if f.GetLiveByPresidentFunc != nil {
		return f.GetLiveByPresidentFunc(ctx, db, guildID, userID)
	}
	return nil, clubdb.ErrNotFound
}

func (f *FakeClubRepo) ListByGuild(ctx context.Context, db bun.IDB, guildID sharedtypes.GuildID, statuses ...clubtypes.Status) ([]clubdb.Club, error) {
	f.record("ListByGuild")
	if f.ListByGuildFunc != nil {
		return f.ListByGuildFunc(ctx, db, guildID, statuses...)
	}
	return nil, nil
}

func (f *FakeClubRepo) Create(ctx context.Context, db bun.IDB, club *clubdb.Club) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, club)
	}
	return nil
}

func (f *FakeClubRepo) MarkActive(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, res clubdb.ProvisionedResources) (bool, error) {
	f.record("MarkActive")
	if f.MarkActiveFunc != nil {
		return f.MarkActiveFunc(ctx, db, clubID, res)
	}
	return true, nil
}

func (f *FakeClubRepo) TransitionStatus(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, from, to clubtypes.Status) (bool, error) {
	f.record("TransitionStatus")
	if f.TransitionStatusFunc != nil {
		return f.TransitionStatusFunc(ctx, db, clubID, from, to)
	}
	return true, nil
}

func (f *FakeClubRepo) SetPresident(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) error {
	f.record("SetPresident")
	if f.SetPresidentFunc != nil {
		return f.SetPresidentFunc(ctx, db, clubID, userID)
	}
	return nil
}

var _ clubdb.Repository = (*FakeClubRepo)(nil)

// ------------------------
// Fake Membership Repo
// ------------------------

type FakeMembershipRepo struct {
	trace []string

	UpsertMemberFunc func(ctx context.Context, db bun.IDB, member *membershipdb.ClubMember) error
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
	return true, nil
}

func (f *FakeMembershipRepo) UpdateMemberRole(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID, role membershiptypes.MemberRole) error {
	f.record("UpdateMemberRole")
	return nil
}

func (f *FakeMembershipRepo) CountActiveMembers(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID) (int, error) {
	f.record("CountActiveMembers")
	return 0, nil
}

func (f *FakeMembershipRepo) ListActiveByRole(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, roles ...membershiptypes.MemberRole) ([]membershipdb.ClubMember, error) {
	f.record("ListActiveByRole")
	return nil, nil
}

func (f *FakeMembershipRepo) IncrementAttendance(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userIDs []sharedtypes.UserID) error {
	f.record("IncrementAttendance")
	return nil
}

func (f *FakeMembershipRepo) CreateJoinRequest(ctx context.Context, db bun.IDB, req *membershipdb.JoinRequest) error {
	f.record("CreateJoinRequest")
	return nil
}

func (f *FakeMembershipRepo) GetJoinRequest(ctx context.Context, db bun.IDB, requestID membershiptypes.JoinRequestID) (*membershipdb.JoinRequest, error) {
	f.record("GetJoinRequest")
	return nil, membershipdb.ErrJoinRequestNotFound
}

func (f *FakeMembershipRepo) HasPendingJoinRequest(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error) {
	f.record("HasPendingJoinRequest")
	return false, nil
}

func (f *FakeMembershipRepo) ResolveJoinRequest(ctx context.Context, db bun.IDB, requestID membershiptypes.JoinRequestID, status membershiptypes.JoinRequestStatus, reviewedBy sharedtypes.UserID) (bool, error) {
	f.record("ResolveJoinRequest")
	return true, nil
}

func (f *FakeMembershipRepo) IsTrusted(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error) {
	f.record("IsTrusted")
	return false, nil
}

func (f *FakeMembershipRepo) AddTrusted(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error) {
	f.record("AddTrusted")
	return true, nil
}

func (f *FakeMembershipRepo) RemoveTrusted(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error) {
	f.record("RemoveTrusted")
	return true, nil
}

var _ membershipdb.Repository = (*FakeMembershipRepo)(nil)

// ------------------------
// Fake Provisioner
// ------------------------

type FakeProvisioner struct {
	trace []string

	ProvisionFunc func(ctx context.Context, req provision.Request) (provision.Resources, error)
}

func NewFakeProvisioner() *FakeProvisioner {
	return &FakeProvisioner{trace: []string{}}
}

func (f *FakeProvisioner) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeProvisioner) Provision(ctx context.Context, req provision.Request) (provision.Resources, error) {
	f.trace = append(f.trace, "Provision")
	if f.ProvisionFunc != nil {
		return f.ProvisionFunc(ctx, req)
	}
	return provision.Resources{
		Role:          platformRole("role-1", req.ClubName),
		ModeratorRole: platformRole("role-2", req.ClubName+" Moderator"),
		TextChannel:   platformChannel("chan-1", req.Slug),
		VoiceChannel:  platformChannel("chan-2", req.Slug+"-voice"),
	}, nil
}

var _ ResourceProvisioner = (*FakeProvisioner)(nil)

func platformRole(id sharedtypes.RoleID, name string) platform.Role {
	return platform.Role{ID: id, Name: name}
}

func platformChannel(id sharedtypes.ChannelID, name string) platform.Channel {
	return platform.Channel{ID: id, Name: name, Type: platform.ChannelText}
}
