package eventdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"

	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	eventtypes "github.com/campus-commons/clubhub-bot/app/types/event"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// Sentinel errors surfaced to the application layer.
var (
	ErrEventNotFound       = errors.New("event not found")
	ErrParticipantNotFound = errors.New("event participant not found")
	ErrAlreadyRegistered   = errors.New("user is already registered for this event")
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new event repository.
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
	return errors.As(err, &pgErr) && pgErr.IntegrityViolation()
}

// Create inserts a new event row.
func (r *Impl) Create(ctx context.Context, db bun.IDB, event *Event) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	event.UpdatedAt = now
	if _, err := db.NewInsert().Model(event).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// GetByID retrieves an event by id.
func (r *Impl) GetByID(ctx context.Context, db bun.IDB, eventID eventtypes.EventID) (*Event, error) {
	db = r.resolveDB(db)
	event := new(Event)
	err := db.NewSelect().
		Model(event).
		Where("id = ?", eventID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

// Lock takes a row lock on the event until the surrounding transaction
// ends. Capacity is a count-then-insert; holding the event row serializes
// concurrent registrations so the count sees every committed row.
func (r *Impl) Lock(ctx context.Context, db bun.IDB, eventID eventtypes.EventID) error {
	db = r.resolveDB(db)
	var id eventtypes.EventID
	err := db.NewSelect().
		Model((*Event)(nil)).
		Column("id").
		Where("id = ?", eventID).
		For("UPDATE").
		Scan(ctx, &id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to lock event: %w", err)
	}
	return nil
}

// MarkScheduled flips a pending event to scheduled.
func (r *Impl) MarkScheduled(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, approvedBy sharedtypes.UserID) (bool, error) {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*Event)(nil)).
		Set("status = ?", eventtypes.StatusScheduled).
		Set("approved_by = ?", approvedBy).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", eventID).
		Where("status = ?", eventtypes.StatusPending).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to mark event scheduled: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

// TransitionStatus moves an event between lifecycle statuses.
func (r *Impl) TransitionStatus(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, from, to eventtypes.Status) (bool, error) {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*Event)(nil)).
		Set("status = ?", to).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", eventID).
		Where("status = ?", from).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to transition event status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

// SetListingRef records where the event listing was published.
func (r *Impl) SetListingRef(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, channelID sharedtypes.ChannelID, messageID sharedtypes.MessageID) error {
	db = r.resolveDB(db)
	_, err := db.NewUpdate().
		Model((*Event)(nil)).
		Set("channel_id = ?", channelID).
		Set("message_id = ?", messageID).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", eventID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set event listing ref: %w", err)
	}
	return nil
}

// ListScheduledByClub returns a club's scheduled events, soonest first.
func (r *Impl) ListScheduledByClub(ctx context.Context, db bun.IDB, clubID clubtypes.ClubID) ([]Event, error) {
	db = r.resolveDB(db)
	var events []Event
	err := db.NewSelect().
		Model(&events).
		Where("club_id = ?", clubID).
		Where("status = ?", eventtypes.StatusScheduled).
		Order("start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled events: %w", err)
	}
	return events, nil
}

// ListOverdue returns scheduled events whose effective end passed the cutoff.
func (r *Impl) ListOverdue(ctx context.Context, db bun.IDB, cutoff time.Time) ([]Event, error) {
	db = r.resolveDB(db)
	var events []Event
	err := db.NewSelect().
		Model(&events).
		Where("status = ?", eventtypes.StatusScheduled).
		Where("COALESCE(end_time, start_time) < ?", cutoff).
		Order("start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue events: %w", err)
	}
	return events, nil
}

// UpsertParticipant inserts a registration row, reviving a withdrawn one.
// A live row (going or pending_payment) is left untouched and reported as
// ErrAlreadyRegistered.
func (r *Impl) UpsertParticipant(ctx context.Context, db bun.IDB, participant *Participant) error {
	db = r.resolveDB(db)
	if participant.RegistrationDate.IsZero() {
		participant.RegistrationDate = time.Now().UTC()
	}
	result, err := db.NewInsert().
		Model(participant).
		On("CONFLICT (event_id, user_id) DO UPDATE").
		Set("rsvp_status = EXCLUDED.rsvp_status").
		Set("registration_date = EXCLUDED.registration_date").
		Set("team_name = EXCLUDED.team_name").
		Set("is_team_captain = EXCLUDED.is_team_captain").
		Set("registration_data = EXCLUDED.registration_data").
		Where("ep.rsvp_status = ?", eventtypes.RSVPWithdrawn).
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyRegistered
		}
		return fmt.Errorf("failed to upsert event participant: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrAlreadyRegistered
	}
	return nil
}

// GetParticipant retrieves a registration row regardless of status.
func (r *Impl) GetParticipant(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, userID sharedtypes.UserID) (*Participant, error) {
	db = r.resolveDB(db)
	participant := new(Participant)
	err := db.NewSelect().
		Model(participant).
		Where("event_id = ?", eventID).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get event participant: %w", err)
	}
	return participant, nil
}

// CountCounted counts registrations holding any of the given statuses.
func (r *Impl) CountCounted(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, statuses ...eventtypes.RSVPStatus) (int, error) {
	db = r.resolveDB(db)
	q := db.NewSelect().
		Model((*Participant)(nil)).
		Where("event_id = ?", eventID)
	if len(statuses) > 0 {
		q = q.Where("rsvp_status IN (?)", bun.In(statuses))
	}
	count, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count event participants: %w", err)
	}
	return count, nil
}

// Withdraw flips a live registration to withdrawn.
func (r *Impl) Withdraw(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, userID sharedtypes.UserID) (bool, error) {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*Participant)(nil)).
		Set("rsvp_status = ?", eventtypes.RSVPWithdrawn).
		Where("event_id = ?", eventID).
		Where("user_id = ?", userID).
		Where("rsvp_status IN (?)", bun.In([]eventtypes.RSVPStatus{eventtypes.RSVPGoing, eventtypes.RSVPPendingPayment})).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to withdraw event participant: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

// TransitionRSVP moves a registration between RSVP statuses.
func (r *Impl) TransitionRSVP(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, userID sharedtypes.UserID, from, to eventtypes.RSVPStatus) (bool, error) {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*Participant)(nil)).
		Set("rsvp_status = ?", to).
		Where("event_id = ?", eventID).
		Where("user_id = ?", userID).
		Where("rsvp_status = ?", from).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to transition rsvp status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

// ListParticipants returns an event's registrations with the given statuses.
func (r *Impl) ListParticipants(ctx context.Context, db bun.IDB, eventID eventtypes.EventID, statuses ...eventtypes.RSVPStatus) ([]Participant, error) {
	db = r.resolveDB(db)
	var participants []Participant
	q := db.NewSelect().
		Model(&participants).
		Where("event_id = ?", eventID)
	if len(statuses) > 0 {
		q = q.Where("rsvp_status IN (?)", bun.In(statuses))
	}
	if err := q.Order("registration_date ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list event participants: %w", err)
	}
	return participants, nil
}

var _ Repository = (*Impl)(nil)
