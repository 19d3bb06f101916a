package eventdb

import (
	"time"

	"github.com/uptrace/bun"

	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	eventtypes "github.com/campus-commons/clubhub-bot/app/types/event"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// Event is the persistence model for an event. Registration, team, and
// eligibility settings are JSONB blobs; they are opaque to SQL and always
// read and written whole.
type Event struct {
	bun.BaseModel `bun:"table:events,alias:e"`

	ID              eventtypes.EventID             `bun:"id,pk,type:uuid"`
	ClubID          clubtypes.ClubID               `bun:"club_id,notnull,type:uuid"`
	GuildID         sharedtypes.GuildID            `bun:"guild_id,notnull,type:varchar(20)"`
	Title           string                         `bun:"title,notnull,type:varchar(200)"`
	Description     string                         `bun:"description,nullzero"`
	EventType       string                         `bun:"event_type,nullzero,type:varchar(30)"`
	Status          eventtypes.Status              `bun:"status,notnull,type:varchar(12)"`
	StartTime       time.Time                      `bun:"start_time,notnull"`
	EndTime         *time.Time                     `bun:"end_time,nullzero"`
	LocationType    eventtypes.LocationType        `bun:"location_type,notnull,type:varchar(10)"`
	Location        string                         `bun:"location,nullzero"`
	MinParticipants int                            `bun:"min_participants,nullzero"`
	MaxParticipants int                            `bun:"max_participants,nullzero"`
	Registration    eventtypes.RegistrationSettings `bun:"registration,type:jsonb"`
	Team            eventtypes.TeamSettings        `bun:"team,type:jsonb"`
	Eligibility     eventtypes.EligibilityCriteria `bun:"eligibility,type:jsonb"`
	PosterURL       string                         `bun:"poster_url,nullzero"`
	ChannelID       sharedtypes.ChannelID          `bun:"channel_id,nullzero,type:varchar(20)"`
	MessageID       sharedtypes.MessageID          `bun:"message_id,nullzero,type:varchar(20)"`
	CreatedBy       sharedtypes.UserID             `bun:"created_by,notnull,type:varchar(20)"`
	ApprovedBy      sharedtypes.UserID             `bun:"approved_by,nullzero,type:varchar(20)"`
	CreatedAt       time.Time                      `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt       time.Time                      `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// ToDomain converts the persistence model to the domain view.
func (e *Event) ToDomain() eventtypes.Event {
	return eventtypes.Event{
		ID:              e.ID,
		ClubID:          e.ClubID,
		GuildID:         e.GuildID,
		Title:           e.Title,
		Description:     e.Description,
		EventType:       e.EventType,
		Status:          e.Status,
		StartTime:       e.StartTime,
		EndTime:         e.EndTime,
		LocationType:    e.LocationType,
		Location:        e.Location,
		MinParticipants: e.MinParticipants,
		MaxParticipants: e.MaxParticipants,
		Registration:    e.Registration,
		Team:            e.Team,
		Eligibility:     e.Eligibility,
		PosterURL:       e.PosterURL,
		ChannelID:       e.ChannelID,
		MessageID:       e.MessageID,
		CreatedBy:       e.CreatedBy,
		ApprovedBy:      e.ApprovedBy,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

// Participant is the persistence model for an event registration. The
// (event_id, user_id) pair is the primary key; a withdrawn participant
// re-joining reuses the row.
type Participant struct {
	bun.BaseModel `bun:"table:event_participants,alias:ep"`

	EventID          eventtypes.EventID    `bun:"event_id,pk,type:uuid"`
	UserID           sharedtypes.UserID    `bun:"user_id,pk,type:varchar(20)"`
	GuildID          sharedtypes.GuildID   `bun:"guild_id,notnull,type:varchar(20)"`
	RSVPStatus       eventtypes.RSVPStatus `bun:"rsvp_status,notnull,type:varchar(16)"`
	RegistrationDate time.Time             `bun:"registration_date,nullzero,notnull,default:current_timestamp"`
	CheckedIn        bool                  `bun:"checked_in,notnull,default:false"`
	TeamName         string                `bun:"team_name,nullzero"`
	IsTeamCaptain    bool                  `bun:"is_team_captain,notnull,default:false"`
	RegistrationData map[string]string     `bun:"registration_data,type:jsonb,nullzero"`
}

// ToDomain converts the persistence model to the domain view.
func (p *Participant) ToDomain() eventtypes.Participant {
	return eventtypes.Participant{
		EventID:          p.EventID,
		UserID:           p.UserID,
		GuildID:          p.GuildID,
		RSVPStatus:       p.RSVPStatus,
		RegistrationDate: p.RegistrationDate,
		CheckedIn:        p.CheckedIn,
		TeamName:         p.TeamName,
		IsTeamCaptain:    p.IsTeamCaptain,
		RegistrationData: p.RegistrationData,
	}
}
