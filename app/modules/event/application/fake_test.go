package eventservice

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	clubdb "github.com/campus-commons/clubhub-bot/app/modules/club/infrastructure/repositories"
	eventdb "github.com/campus-commons/clubhub-bot/app/modules/event/infrastructure/repositories"
	membershipdb "github.com/campus-commons/clubhub-bot/app/modules/membership/infrastructure/repositories"
	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	eventtypes "github.com/campus-commons/clubhub-bot/app/types/event"
	membershiptypes "github.com/campus-commons/clubhub-bot/app/types/membership"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// ------------------------
// Fake Event Repo
// ------------------------

type FakeEventRepo struct {
	trace []string

	CreateFunc              func(ctx context.Context, db bun.IDB, event *eventdb.Event) error
	GetByIDFunc             func(ctx context.Context, db bun.IDB, eventID eventtypes.EventID) (*eventdb.Event, error)
	LockFunc                func(ctx context.Context, db bun.IDB, eventID eventtypes.EventID) error
	MarkScheduledFunc       func(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, approvedBy sharedtypes.UserID) (bool, error)
	TransitionStatusFunc    func(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, from, to eventtypes.Status) (bool, error)
	SetListingRefFunc       func(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, channelID sharedtypes.ChannelID, messageID sharedtypes.MessageID) error
	ListScheduledByClubFunc func(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID) ([]eventdb.Event, error)
	ListOverdueFunc         func(ctx context.Context, db bun.IDB, cutoff time.Time) ([]eventdb.Event, error)
	UpsertParticipantFunc   func(ctx context.Context, db bun.IDB, participant *eventdb.Participant) error
	GetParticipantFunc      func(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, userID sharedtypes.UserID) (*eventdb.Participant, error)
	CountCountedFunc        func(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, statuses ...eventtypes.RSVPStatus) (int, error)
	WithdrawFunc            func(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, userID sharedtypes.UserID) (bool, error)
	TransitionRSVPFunc      func(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, userID sharedtypes.UserID, from, to eventtypes.RSVPStatus) (bool, error)
	ListParticipantsFunc    func(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, statuses ...eventtypes.RSVPStatus) ([]eventdb.Participant, error)
}

func NewFakeEventRepo() *FakeEventRepo {
	return &FakeEventRepo{trace: []string{}}
}

func (f *FakeEventRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeEventRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeEventRepo) Create(ctx context.Context, db bun.IDB, event *eventdb.Event) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, event)
	}
	return nil
}

func (f *FakeEventRepo) GetByID(ctx context.Context, db bun.IDB, eventID eventtypes.EventID) (*eventdb.Event, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, eventID)
	}
	return nil, eventdb.ErrEventNotFound
}

func (f *FakeEventRepo) Lock(ctx context.Context, db bun.IDB, eventID eventtypes.EventID) error {
	f.record("Lock")
	if f.LockFunc != nil {
		return f.LockFunc(ctx, db, eventID)
	}
	return nil
}

func (f *FakeEventRepo) MarkScheduled(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, approvedBy sharedtypes.UserID) (bool, error) {
	f.record("MarkScheduled")
	if f.MarkScheduledFunc != nil {
		return f.MarkScheduledFunc(ctx, db, eventID, approvedBy)
	}
	return true, nil
}

func (f *FakeEventRepo) TransitionStatus(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, from, to eventtypes.Status) (bool, error) {
	f.record("TransitionStatus(" + string(from) + "," + string(to) + ")")
	if f.TransitionStatusFunc != nil {
		return f.TransitionStatusFunc(ctx, db, eventID, from, to)
	}
	return true, nil
}

func (f *FakeEventRepo) SetListingRef(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, channelID sharedtypes.ChannelID, messageID sharedtypes.MessageID) error {
	f.record("SetListingRef")
	if f.SetListingRefFunc != nil {
		return f.SetListingRefFunc(ctx, db, eventID, channelID, messageID)
	}
	return nil
}

func (f *FakeEventRepo) ListScheduledByClub(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID) ([]eventdb.Event, error) {
	f.record("ListScheduledByClub")
	if f.ListScheduledByClubFunc != nil {
		return f.ListScheduledByClubFunc(ctx, db, clubID)
	}
	return nil, nil
}

func (f *FakeEventRepo) ListOverdue(ctx context.Context, db bun.IDB, cutoff time.Time) ([]eventdb.Event, error) {
	f.record("ListOverdue")
	if f.ListOverdueFunc != nil {
		return f.ListOverdueFunc(ctx, db, cutoff)
	}
	return nil, nil
}

func (f *FakeEventRepo) UpsertParticipant(ctx context.Context, db bun.IDB, participant *eventdb.Participant) error {
	f.record("UpsertParticipant")
	if f.UpsertParticipantFunc != nil {
		return f.UpsertParticipantFunc(ctx, db, participant)
	}
	return nil
}

func (f *FakeEventRepo) GetParticipant(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, userID sharedtypes.UserID) (*eventdb.Participant, error) {
	f.record("GetParticipant")
	if f.GetParticipantFunc != nil {
		return f.GetParticipantFunc(ctx, db, eventID, userID)
	}
	return nil, eventdb.ErrParticipantNotFound
}

func (f *FakeEventRepo) CountCounted(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, statuses ...eventtypes.RSVPStatus) (int, error) {
	f.record("CountCounted")
	if f.CountCountedFunc != nil {
		return f.CountCountedFunc(ctx, db, eventID, statuses...)
	}
	return 0, nil
}

func (f *FakeEventRepo) Withdraw(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, userID sharedtypes.UserID) (bool, error) {
	f.record("Withdraw")
	if f.WithdrawFunc != nil {
		return f.WithdrawFunc(ctx, db, eventID, userID)
	}
	return true, nil
}

func (f *FakeEventRepo) TransitionRSVP(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, userID sharedtypes.UserID, from, to eventtypes.RSVPStatus) (bool, error) {
	f.record("TransitionRSVP(" + string(from) + "," + string(to) + ")")
	if f.TransitionRSVPFunc != nil {
		return f.TransitionRSVPFunc(ctx, db, eventID, userID, from, to)
	}
	return true, nil
}

func (f *FakeEventRepo) ListParticipants(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, statuses ...eventtypes.RSVPStatus) ([]eventdb.Participant, error) {
	f.record("ListParticipants")
	if f.ListParticipantsFunc != nil {
		return f.ListParticipantsFunc(ctx, db, eventID, statuses...)
	}
	return nil, nil
}

var _ eventdb.Repository = (*FakeEventRepo)(nil)

// ------------------------
// Fake Club Repo (reads only)
// ------------------------

type FakeClubRepo struct {
	trace []string

	GetByIDFunc func(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID) (*clubdb.Club, error)
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

// ------------------------
// Fake Membership Repo (member lookups + attendance credit)
// ------------------------

type FakeMembershipRepo struct {
	trace []string

	GetMemberFunc           func(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (*membershipdb.ClubMember, error)
	IsTrustedFunc           func(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error)
	IncrementAttendanceFunc func(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userIDs []sharedtypes.UserID) error
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

func (f *FakeMembershipRepo) IsTrusted(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error) {
	f.record("IsTrusted")
	if f.IsTrustedFunc != nil {
		return f.IsTrustedFunc(ctx, db, clubID, userID)
	}
	return false, nil
}

func (f *FakeMembershipRepo) IncrementAttendance(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userIDs []sharedtypes.UserID) error {
	f.record("IncrementAttendance")
	if f.IncrementAttendanceFunc != nil {
		return f.IncrementAttendanceFunc(ctx, db, clubID, userIDs)
	}
	return nil
}

func (f *FakeMembershipRepo) UpsertMember(ctx context.Context, db bun.IDB, member *membershipdb.ClubMember) error {
	return nil
}

func (f *FakeMembershipRepo) MarkRemoved(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error) {
	return true, nil
}

func (f *FakeMembershipRepo) UpdateMemberRole(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID, role membershiptypes.MemberRole) error {
	return nil
}

func (f *FakeMembershipRepo) CountActiveMembers(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID) (int, error) {
	return 0, nil
}

func (f *FakeMembershipRepo) ListActiveByRole(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, roles ...membershiptypes.MemberRole) ([]membershipdb.ClubMember, error) {
	return nil, nil
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

func (f *FakeMembershipRepo) AddTrusted(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error) {
	return true, nil
}

func (f *FakeMembershipRepo) RemoveTrusted(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID, userID sharedtypes.UserID) (bool, error) {
	return true, nil
}

var _ membershipdb.Repository = (*FakeMembershipRepo)(nil)

// ------------------------
// Fake Scheduler
// ------------------------

type FakeScheduler struct {
	trace []string

	ScheduleEventCompletionFunc   func(ctx context.Context, eventID eventtypes.EventID, guildID sharedtypes.GuildID, at time.Time) error
	ScheduleRegistrationCloseFunc func(ctx context.Context, eventID eventtypes.EventID, at time.Time) error
}

func (f *FakeScheduler) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeScheduler) ScheduleEventCompletion(ctx context.Context, eventID eventtypes.EventID, guildID sharedtypes.GuildID, at time.Time) error {
	f.trace = append(f.trace, "ScheduleEventCompletion")
	if f.ScheduleEventCompletionFunc != nil {
		return f.ScheduleEventCompletionFunc(ctx, eventID, guildID, at)
	}
	return nil
}

func (f *FakeScheduler) ScheduleRegistrationClose(ctx context.Context, eventID eventtypes.EventID, at time.Time) error {
	f.trace = append(f.trace, "ScheduleRegistrationClose")
	if f.ScheduleRegistrationCloseFunc != nil {
		return f.ScheduleRegistrationCloseFunc(ctx, eventID, at)
	}
	return nil
}

var _ Scheduler = (*FakeScheduler)(nil)
