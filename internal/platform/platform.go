// Package platform defines the ports through which the backend reaches the
// host messaging platform: resource provisioning (roles, channels), message
// delivery, and the identity-verification predicate. The gateway worker owns
// the actual platform session; this process talks to it over NATS
// request/reply.
package platform

import (
	"context"
	"errors"

	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// ErrUnavailable is returned when the gateway worker does not answer.
var ErrUnavailable = errors.New("platform gateway unavailable")

// Channel permission bits, matching the platform's permission flags.
const (
	PermViewChannel    int64 = 1 << 10
	PermSendMessages   int64 = 1 << 11
	PermManageMessages int64 = 1 << 13
	PermEmbedLinks     int64 = 1 << 14
	PermReadHistory    int64 = 1 << 16
	PermManageChannel  int64 = 1 << 4
	PermConnect        int64 = 1 << 20
	PermSpeak          int64 = 1 << 21
)

// BotOperatingPermissions is the permission set the bot account must hold on
// every channel it creates. Workflows post into these channels later, so a
// channel without these bits is broken, not cosmetically off.
const BotOperatingPermissions = PermViewChannel |
	PermManageChannel |
	PermSendMessages |
	PermEmbedLinks |
	PermReadHistory |
	PermManageMessages

// OverwriteType distinguishes role and member permission overwrites.
type OverwriteType string

const (
	OverwriteRole   OverwriteType = "role"
	OverwriteMember OverwriteType = "member"
)

// PermissionOverwrite is a per-principal allow/deny pair on a channel.
type PermissionOverwrite struct {
	TargetID string        `json:"target_id"`
	Type     OverwriteType `json:"type"`
	Allow    int64         `json:"allow"`
	Deny     int64         `json:"deny"`
}

// ChannelType is the kind of channel to create.
type ChannelType string

const (
	ChannelText     ChannelType = "text"
	ChannelVoice    ChannelType = "voice"
	ChannelCategory ChannelType = "category"
)

// Role is a platform role.
type Role struct {
	ID    sharedtypes.RoleID `json:"id"`
	Name  string             `json:"name"`
	Color int                `json:"color"`
}

// Channel is a platform channel.
type Channel struct {
	ID       sharedtypes.ChannelID `json:"id"`
	Name     string                `json:"name"`
	Type     ChannelType           `json:"type"`
	ParentID sharedtypes.ChannelID `json:"parent_id,omitempty"`
}

// RoleSpec describes a role to create.
type RoleSpec struct {
	GuildID     sharedtypes.GuildID `json:"guild_id"`
	Name        string              `json:"name"`
	Color       int                 `json:"color"`
	Mentionable bool                `json:"mentionable"`
}

// ChannelSpec describes a channel to create.
type ChannelSpec struct {
	GuildID    sharedtypes.GuildID   `json:"guild_id"`
	Name       string                `json:"name"`
	Type       ChannelType           `json:"type"`
	ParentID   sharedtypes.ChannelID `json:"parent_id,omitempty"`
	Topic      string                `json:"topic,omitempty"`
	Overwrites []PermissionOverwrite `json:"overwrites,omitempty"`
}

// Embed is a minimal rich-message shape; rendering details belong to the
// gateway.
type Embed struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Color       int    `json:"color,omitempty"`
}

// Control is an interactive affordance attached to a message. CustomID
// payloads are structured, not string-parsed composites.
type Control struct {
	CustomID string            `json:"custom_id"`
	Label    string            `json:"label"`
	Style    string            `json:"style,omitempty"`
	Disabled bool              `json:"disabled,omitempty"`
	Data     map[string]string `json:"data,omitempty"`
}

// Message is an outbound message with optional embed and controls.
type Message struct {
	Content  string    `json:"content,omitempty"`
	Embed    *Embed    `json:"embed,omitempty"`
	Controls []Control `json:"controls,omitempty"`
}

// Client is the resource-provisioning and delivery surface. Every call can
// fail (missing permission, deleted resource); callers degrade to a reported
// error rather than crash the workflow.
type Client interface {
	GuildRoles(ctx context.Context, guildID sharedtypes.GuildID) ([]Role, error)
	CreateRole(ctx context.Context, spec RoleSpec) (Role, error)
	AssignRole(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID, roleID sharedtypes.RoleID) error
	RevokeRole(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID, roleID sharedtypes.RoleID) error

	GuildChannels(ctx context.Context, guildID sharedtypes.GuildID) ([]Channel, error)
	CreateChannel(ctx context.Context, spec ChannelSpec) (Channel, error)

	PostMessage(ctx context.Context, channelID sharedtypes.ChannelID, msg Message) (sharedtypes.MessageID, error)
	EditMessage(ctx context.Context, channelID sharedtypes.ChannelID, messageID sharedtypes.MessageID, msg Message) error
	SendDM(ctx context.Context, userID sharedtypes.UserID, msg Message) error
}

// VerificationClient answers the platform-verification predicate. This core
// never issues or validates credentials; it only asks.
type VerificationClient interface {
	IsVerified(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (bool, error)
}
