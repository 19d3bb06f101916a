package clubdb

import (
	"time"

	"github.com/uptrace/bun"

	clubtypes "github.com/campus-commons/clubhub-bot/app/types/club"
	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// Club is the persistence model for a club. Slug is unique per guild; a
// partial unique index keeps a proposer to one pending/active club per guild.
type Club struct {
	bun.BaseModel `bun:"table:clubs,alias:c"`

	ID              clubtypes.ClubID      `bun:"id,pk,type:uuid"`
	GuildID         sharedtypes.GuildID   `bun:"guild_id,notnull,type:varchar(20)"`
	Name            string                `bun:"name,notnull,type:varchar(100)"`
	Slug            string                `bun:"slug,notnull,type:varchar(120)"`
	Description     string                `bun:"description,nullzero"`
	LogoURL         string                `bun:"logo_url,nullzero"`
	Category        clubtypes.Category    `bun:"category,notnull,type:varchar(20)"`
	PresidentUserID sharedtypes.UserID    `bun:"president_user_id,notnull,type:varchar(20)"`
	Status          clubtypes.Status      `bun:"status,notnull,type:varchar(12)"`
	RoleID          sharedtypes.RoleID    `bun:"role_id,nullzero,type:varchar(20)"`
	ModeratorRoleID sharedtypes.RoleID    `bun:"moderator_role_id,nullzero,type:varchar(20)"`
	ChannelID       sharedtypes.ChannelID `bun:"channel_id,nullzero,type:varchar(20)"`
	VoiceChannelID  sharedtypes.ChannelID `bun:"voice_channel_id,nullzero,type:varchar(20)"`
	MaxMembers      int                   `bun:"max_members,nullzero"`
	RequireApproval bool                  `bun:"require_approval,notnull,default:false"`
	ContactEmail    string                `bun:"contact_email,nullzero"`
	ContactDiscord  string                `bun:"contact_discord,nullzero"`
	CreatedAt       time.Time             `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt       time.Time             `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// ProvisionedResources carries the platform resource ids persisted on
// approval.
type ProvisionedResources struct {
	RoleID          sharedtypes.RoleID
	ModeratorRoleID sharedtypes.RoleID
	ChannelID       sharedtypes.ChannelID
	VoiceChannelID  sharedtypes.ChannelID
}

// ToDomain converts the persistence model to the domain view.
func (c *Club) ToDomain() clubtypes.Club {
	return clubtypes.Club{
		ID:              c.ID,
		GuildID:         c.GuildID,
		Name:            c.Name,
		Slug:            c.Slug,
		Description:     c.Description,
		LogoURL:         c.LogoURL,
		Category:        c.Category,
		PresidentUserID: c.PresidentUserID,
		Status:          c.Status,
		RoleID:          c.RoleID,
		ModeratorRoleID: c.ModeratorRoleID,
		ChannelID:       c.ChannelID,
		VoiceChannelID:  c.VoiceChannelID,
		MaxMembers:      c.MaxMembers,
		RequireApproval: c.RequireApproval,
		ContactEmail:    c.ContactEmail,
		ContactDiscord:  c.ContactDiscord,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
