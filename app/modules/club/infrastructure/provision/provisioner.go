// Package provision creates the platform resources an approved club needs:
// a member role, a moderator role, and a text + voice channel pair under the
// guild's shared club category. Every ensure is idempotent so a retried
// approval reuses what a crashed earlier attempt already created.
package provision

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/campus-commons/clubhub-bot/internal/attr"
	"github.com/campus-commons/clubhub-bot/internal/platform"

	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// CategoryName is the shared grouping container all club channels live under.
const CategoryName = "Clubs"

// palette is the pool of club role colors. Selection prefers colors no other
// active club is using; uniqueness is best-effort, not guaranteed.
var palette = []int{
	0x1ABC9C, // teal
	0x2ECC71, // green
	0x3498DB, // blue
	0x9B59B6, // purple
	0xE91E63, // magenta
	0xF1C40F, // yellow
	0xE67E22, // orange
	0xE74C3C, // red
	0x95A5A6, // gray
	0x34495E, // navy
}

// Request describes the club to provision for.
type Request struct {
	GuildID  sharedtypes.GuildID
	ClubName string
	Slug     string
	// ActiveClubRoleIDs are the role ids of the guild's other active clubs,
	// used to steer the new role away from colors already in use.
	ActiveClubRoleIDs []sharedtypes.RoleID
}

// Resources is the set of created or reused platform resources.
type Resources struct {
	Role          platform.Role
	ModeratorRole platform.Role
	TextChannel   platform.Channel
	VoiceChannel  platform.Channel
}

// Provisioner ensures club platform resources through the gateway client.
type Provisioner struct {
	client    platform.Client
	logger    *slog.Logger
	botUserID sharedtypes.UserID
}

// New creates a Provisioner. botUserID is the gateway bot account, which
// receives an explicit member overwrite on every channel it creates.
func New(client platform.Client, logger *slog.Logger, botUserID sharedtypes.UserID) *Provisioner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provisioner{
		client:    client,
		logger:    logger,
		botUserID: botUserID,
	}
}

// Provision ensures all club resources exist and returns their ids. Partial
// progress is safe to retry: existing roles and channels are matched by exact
// name and reused.
func (p *Provisioner) Provision(ctx context.Context, req Request) (Resources, error) {
	roles, err := p.client.GuildRoles(ctx, req.GuildID)
	if err != nil {
		return Resources{}, fmt.Errorf("failed to list guild roles: %w", err)
	}

	role, err := p.ensureRole(ctx, roles, req, req.ClubName, pickColor(usedColors(roles, req.ActiveClubRoleIDs)))
	if err != nil {
		return Resources{}, err
	}

	modRole, err := p.ensureRole(ctx, roles, req, req.ClubName+" Moderator", role.Color)
	if err != nil {
		return Resources{}, err
	}

	channels, err := p.client.GuildChannels(ctx, req.GuildID)
	if err != nil {
		return Resources{}, fmt.Errorf("failed to list guild channels: %w", err)
	}

	category, err := p.ensureCategory(ctx, channels, req.GuildID)
	if err != nil {
		return Resources{}, err
	}

	overwrites := p.channelOverwrites(req.GuildID, role.ID, modRole.ID)

	text, err := p.ensureChannel(ctx, channels, platform.ChannelSpec{
		GuildID:    req.GuildID,
		Name:       req.Slug,
		Type:       platform.ChannelText,
		ParentID:   category.ID,
		Topic:      req.ClubName,
		Overwrites: overwrites,
	})
	if err != nil {
		return Resources{}, err
	}

	voice, err := p.ensureChannel(ctx, channels, platform.ChannelSpec{
		GuildID:    req.GuildID,
		Name:       req.Slug + "-voice",
		Type:       platform.ChannelVoice,
		ParentID:   category.ID,
		Overwrites: overwrites,
	})
	if err != nil {
		return Resources{}, err
	}

	p.logger.InfoContext(ctx, "Club resources provisioned",
		attr.ExtractCorrelationID(ctx),
		attr.String("guild_id", string(req.GuildID)),
		attr.String("role_id", string(role.ID)),
		attr.String("channel_id", string(text.ID)),
	)

	return Resources{
		Role:          role,
		ModeratorRole: modRole,
		TextChannel:   text,
		VoiceChannel:  voice,
	}, nil
}

// ensureRole reuses an existing role by exact name or creates a new one.
func (p *Provisioner) ensureRole(ctx context.Context, existing []platform.Role, req Request, name string, color int) (platform.Role, error) {
	for _, r := range existing {
		if r.Name == name {
			return r, nil
		}
	}
	role, err := p.client.CreateRole(ctx, platform.RoleSpec{
		GuildID:     req.GuildID,
		Name:        name,
		Color:       color,
		Mentionable: true,
	})
	if err != nil {
		return platform.Role{}, fmt.Errorf("failed to create role %q: %w", name, err)
	}
	return role, nil
}

// ensureCategory reuses the guild's shared club category or creates it.
func (p *Provisioner) ensureCategory(ctx context.Context, existing []platform.Channel, guildID sharedtypes.GuildID) (platform.Channel, error) {
	for _, c := range existing {
		if c.Type == platform.ChannelCategory && c.Name == CategoryName {
			return c, nil
		}
	}
	category, err := p.client.CreateChannel(ctx, platform.ChannelSpec{
		GuildID: guildID,
		Name:    CategoryName,
		Type:    platform.ChannelCategory,
	})
	if err != nil {
		return platform.Channel{}, fmt.Errorf("failed to create club category: %w", err)
	}
	return category, nil
}

// ensureChannel reuses a channel by name+type under the same parent or
// creates it.
func (p *Provisioner) ensureChannel(ctx context.Context, existing []platform.Channel, spec platform.ChannelSpec) (platform.Channel, error) {
	for _, c := range existing {
		if c.Type == spec.Type && c.Name == spec.Name && c.ParentID == spec.ParentID {
			return c, nil
		}
	}
	channel, err := p.client.CreateChannel(ctx, spec)
	if err != nil {
		return platform.Channel{}, fmt.Errorf("failed to create channel %q: %w", spec.Name, err)
	}
	return channel, nil
}

// channelOverwrites builds the overwrite set for a club channel: members and
// moderators can see and use it, everyone else cannot, and the bot account
// always keeps its operating rights. The bot overwrite is the invariant later
// workflow steps depend on to post into the channel.
func (p *Provisioner) channelOverwrites(guildID sharedtypes.GuildID, roleID, modRoleID sharedtypes.RoleID) []platform.PermissionOverwrite {
	memberAllow := platform.PermViewChannel |
		platform.PermSendMessages |
		platform.PermReadHistory |
		platform.PermConnect |
		platform.PermSpeak

	return []platform.PermissionOverwrite{
		{
			// The @everyone role shares the guild's id.
			TargetID: string(guildID),
			Type:     platform.OverwriteRole,
			Deny:     platform.PermViewChannel,
		},
		{
			TargetID: string(roleID),
			Type:     platform.OverwriteRole,
			Allow:    memberAllow,
		},
		{
			TargetID: string(modRoleID),
			Type:     platform.OverwriteRole,
			Allow:    memberAllow | platform.PermManageMessages,
		},
		{
			TargetID: string(p.botUserID),
			Type:     platform.OverwriteMember,
			Allow:    platform.BotOperatingPermissions | platform.PermConnect | platform.PermSpeak,
		},
	}
}

// usedColors maps active club role ids to the colors they hold.
func usedColors(roles []platform.Role, activeRoleIDs []sharedtypes.RoleID) []int {
	active := make(map[sharedtypes.RoleID]bool, len(activeRoleIDs))
	for _, id := range activeRoleIDs {
		active[id] = true
	}
	var used []int
	for _, r := range roles {
		if active[r.ID] {
			used = append(used, r.Color)
		}
	}
	return used
}

// pickColor returns the first palette color not already in use, or a random
// palette entry when every color is taken.
func pickColor(used []int) int {
	taken := make(map[int]bool, len(used))
	for _, c := range used {
		taken[c] = true
	}
	for _, c := range palette {
		if !taken[c] {
			return c
		}
	}
	return palette[rand.Intn(len(palette))]
}
