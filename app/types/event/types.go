package eventtypes

import (
	"time"

	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
	"github.com/google/uuid"
)

// EventID identifies an event.
type EventID = uuid.UUID

// Status is the lifecycle state of an event.
type Status string

const (
	StatusPending   Status = "pending"
	StatusScheduled Status = "scheduled"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

// LocationType describes where an event takes place.
type LocationType string

const (
	LocationPhysical LocationType = "physical"
	LocationVirtual  LocationType = "virtual"
	LocationHybrid   LocationType = "hybrid"
)

// RSVPStatus is a participant's registration state.
type RSVPStatus string

const (
	RSVPGoing          RSVPStatus = "going"
	RSVPPendingPayment RSVPStatus = "pending_payment"
	RSVPWithdrawn      RSVPStatus = "withdrawn"
)

// PaymentStatus mirrors the payment collaborator's verdict on a registration.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentVerified PaymentStatus = "verified"
	PaymentRejected PaymentStatus = "rejected"
)

// TeamSettings holds team-event constraints.
type TeamSettings struct {
	IsTeamEvent    bool `json:"is_team_event"`
	TeamSizeMin    int  `json:"team_size_min,omitempty"`
	TeamSizeMax    int  `json:"team_size_max,omitempty"`
	RequireCaptain bool `json:"require_captain,omitempty"`
}

// RegistrationSettings holds registration gating for an event.
type RegistrationSettings struct {
	Required        bool       `json:"required"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	Fee             int        `json:"fee,omitempty"` // smallest currency unit; zero means free
	ExternalFormURL string     `json:"external_form_url,omitempty"`
}

// EligibilityCriteria is a structured participant filter applied on top of
// the platform verification every registration requires.
type EligibilityCriteria struct {
	AllowedRoles          []sharedtypes.RoleID `json:"allowed_roles,omitempty"`
	MinAttendanceCount    int                  `json:"min_attendance_count,omitempty"`
	MinContributionPoints int                  `json:"min_contribution_points,omitempty"`
	MembersOnly           bool                 `json:"members_only,omitempty"`
}

// Event is the domain view of an event.
type Event struct {
	ID              EventID               `json:"id"`
	ClubID          clubtypes.ClubID      `json:"club_id"`
	GuildID         sharedtypes.GuildID   `json:"guild_id"`
	Title           string                `json:"title"`
	Description     string                `json:"description,omitempty"`
	EventType       string                `json:"event_type,omitempty"`
	Status          Status                `json:"status"`
	StartTime       time.Time             `json:"start_time"`
	EndTime         *time.Time            `json:"end_time,omitempty"`
	LocationType    LocationType          `json:"location_type"`
	Location        string                `json:"location,omitempty"`
	MinParticipants int                   `json:"min_participants,omitempty"`
	MaxParticipants int                   `json:"max_participants,omitempty"` // zero means unbounded
	Registration    RegistrationSettings  `json:"registration"`
	Team            TeamSettings          `json:"team"`
	Eligibility     EligibilityCriteria   `json:"eligibility"`
	PosterURL       string                `json:"poster_url,omitempty"`
	ChannelID       sharedtypes.ChannelID `json:"channel_id,omitempty"`
	MessageID       sharedtypes.MessageID `json:"message_id,omitempty"`
	CreatedBy       sharedtypes.UserID    `json:"created_by"`
	ApprovedBy      sharedtypes.UserID    `json:"approved_by,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// Participant is the domain view of an event participant.
type Participant struct {
	EventID          EventID             `json:"event_id"`
	UserID           sharedtypes.UserID  `json:"user_id"`
	GuildID          sharedtypes.GuildID `json:"guild_id"`
	RSVPStatus       RSVPStatus          `json:"rsvp_status"`
	RegistrationDate time.Time           `json:"registration_date"`
	CheckedIn        bool                `json:"checked_in"`
	TeamName         string              `json:"team_name,omitempty"`
	IsTeamCaptain    bool                `json:"is_team_captain,omitempty"`
	RegistrationData map[string]string   `json:"registration_data,omitempty"`
}
