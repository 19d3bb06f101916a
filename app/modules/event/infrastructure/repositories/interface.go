package eventdb

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	eventtypes "github.com/campus-commons/clubhub-bot/app/types/event"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// Repository defines the data access contract for events and their
// participants. Every method accepts an optional bun.IDB so callers can
// pass a transaction; nil falls back to the repository's own handle.
type Repository interface {
	// Create inserts a new event row.
	Create(ctx context.Context, db bun.IDB, event *Event) error
	// GetByID retrieves an event by id. Returns ErrEventNotFound when absent.
	GetByID(ctx context.Context, db bun.IDB, eventID eventtypes.EventID) (*Event, error)
	// Lock row-locks the event for the rest of the transaction. Capacity
	// checks take it before counting participants.
	Lock(ctx context.Context, db bun.IDB, eventID eventtypes.EventID) error
	// MarkScheduled flips a pending event to scheduled and stamps the
	// approver. Returns false when the event was not pending.
	MarkScheduled(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, approvedBy sharedtypes.UserID) (bool, error)
	// TransitionStatus moves an event from one status to another. Returns
	// false when the event was not in the expected status.
	TransitionStatus(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, from, to eventtypes.Status) (bool, error)
	// SetListingRef records the channel and message of the published listing.
	SetListingRef(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, channelID sharedtypes.ChannelID, messageID sharedtypes.MessageID) error
	// ListScheduledByClub returns a club's scheduled events.
	ListScheduledByClub(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID) ([]Event, error)
	// ListOverdue returns scheduled events whose end time (start time when no
	// end is set) passed before the cutoff. Used by the periodic sweep.
	ListOverdue(ctx context.Context, db bun.IDB, cutoff time.Time) ([]Event, error)

	// UpsertParticipant inserts a registration row, or revives a withdrawn
	// one. Returns ErrAlreadyRegistered when the user holds a live row.
	UpsertParticipant(ctx context.Context, db bun.IDB, participant *Participant) error
	// GetParticipant retrieves a registration row regardless of status.
	// Returns ErrParticipantNotFound when absent.
	GetParticipant(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, userID sharedtypes.UserID) (*Participant, error)
	// CountCounted counts participants holding any of the given RSVP
	// statuses. Used for capacity checks.
	CountCounted(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, statuses ...eventtypes.RSVPStatus) (int, error)
	// Withdraw flips a live registration to withdrawn. Returns false when
	// the user had no live registration.
	Withdraw(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, userID sharedtypes.UserID) (bool, error)
	// TransitionRSVP moves a registration from one RSVP status to another.
	// Returns false when the registration was not in the expected status.
	TransitionRSVP(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, userID sharedtypes.UserID, from, to eventtypes.RSVPStatus) (bool, error)
	// ListParticipants returns an event's registrations holding any of the
	// given RSVP statuses.
	ListParticipants(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, statuses ...eventtypes.RSVPStatus) ([]Participant, error)
}
