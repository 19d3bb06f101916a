package clubtypes

import (
	"time"

	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
	"github.com/google/uuid"
)

// ClubID identifies a club.
type ClubID = uuid.UUID

// Category classifies a club.
type Category string

const (
	CategoryTechnical     Category = "technical"
	CategoryCultural      Category = "cultural"
	CategorySports        Category = "sports"
	CategorySocialService Category = "social_service"
	CategoryAcademic      Category = "academic"
	CategoryGeneral       Category = "general"
)

// Categories lists every valid club category.
var Categories = []Category{
	CategoryTechnical,
	CategoryCultural,
	CategorySports,
	CategorySocialService,
	CategoryAcademic,
	CategoryGeneral,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Status is the lifecycle state of a club.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusRejected  Status = "rejected"
	StatusDissolved Status = "dissolved"
)

// Club is the domain view of a club, used in event payloads and service
// results. The persistence model lives in the club repository.
type Club struct {
	ID              ClubID                 `json:"id"`
	GuildID         sharedtypes.GuildID    `json:"guild_id"`
	Name            string                 `json:"name"`
	Slug            string                 `json:"slug"`
	Description     string                 `json:"description,omitempty"`
	LogoURL         string                 `json:"logo_url,omitempty"`
	Category        Category               `json:"category"`
	PresidentUserID sharedtypes.UserID     `json:"president_user_id"`
	Status          Status                 `json:"status"`
	RoleID          sharedtypes.RoleID     `json:"role_id,omitempty"`
	ModeratorRoleID sharedtypes.RoleID     `json:"moderator_role_id,omitempty"`
	ChannelID       sharedtypes.ChannelID  `json:"channel_id,omitempty"`
	VoiceChannelID  sharedtypes.ChannelID  `json:"voice_channel_id,omitempty"`
	MaxMembers      int                    `json:"max_members,omitempty"`
	RequireApproval bool                   `json:"require_approval"`
	ContactEmail    string                 `json:"contact_email,omitempty"`
	ContactDiscord  string                 `json:"contact_discord,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}
