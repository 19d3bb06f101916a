package provision

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campus-commons/clubhub-bot/internal/platform"
	"github.com/campus-commons/clubhub-bot/internal/platform/platformfake"

	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

const testBotUserID = sharedtypes.UserID("bot-1")

func testRequest() Request {
	return Request{
		GuildID:  "guild-1",
		ClubName: "Chess Club",
		Slug:     "chess-club",
	}
}

func TestProvisionCreatesEverythingFromScratch(t *testing.T) {
	client := platformfake.NewClient()
	p := New(client, slog.Default(), testBotUserID)

	res, err := p.Provision(context.Background(), testRequest())

	assert.NoError(t, err)
	assert.Equal(t, "Chess Club", res.Role.Name)
	assert.Equal(t, "Chess Club Moderator", res.ModeratorRole.Name)
	assert.Equal(t, "chess-club", res.TextChannel.Name)
	assert.Equal(t, "chess-club-voice", res.VoiceChannel.Name)
	assert.Equal(t, []string{
		"GuildRoles",
		"CreateRole(Chess Club)",
		"CreateRole(Chess Club Moderator)",
		"GuildChannels",
		"CreateChannel(Clubs)",
		"CreateChannel(chess-club)",
		"CreateChannel(chess-club-voice)",
	}, client.Trace())
}

func TestProvisionReusesExistingResources(t *testing.T) {
	client := platformfake.NewClient()
	client.GuildRolesFunc = func(ctx context.Context, guildID sharedtypes.GuildID) ([]platform.Role, error) {
		return []platform.Role{
			{ID: "r-1", Name: "Chess Club", Color: palette[0]},
			{ID: "r-2", Name: "Chess Club Moderator", Color: palette[0]},
		}, nil
	}
	client.GuildChannelsFunc = func(ctx context.Context, guildID sharedtypes.GuildID) ([]platform.Channel, error) {
		return []platform.Channel{
			{ID: "cat-1", Name: CategoryName, Type: platform.ChannelCategory},
			{ID: "c-1", Name: "chess-club", Type: platform.ChannelText, ParentID: "cat-1"},
		}, nil
	}
	p := New(client, slog.Default(), testBotUserID)

	res, err := p.Provision(context.Background(), testRequest())

	assert.NoError(t, err)
	assert.Equal(t, sharedtypes.RoleID("r-1"), res.Role.ID)
	assert.Equal(t, sharedtypes.RoleID("r-2"), res.ModeratorRole.ID)
	assert.Equal(t, sharedtypes.ChannelID("c-1"), res.TextChannel.ID)
	// Only the missing voice channel gets created.
	assert.Equal(t, []string{
		"GuildRoles",
		"GuildChannels",
		"CreateChannel(chess-club-voice)",
	}, client.Trace())
}

func TestProvisionChannelOverwritesGrantBotOperatingRights(t *testing.T) {
	client := platformfake.NewClient()
	var specs []platform.ChannelSpec
	client.CreateChannelFunc = func(ctx context.Context, spec platform.ChannelSpec) (platform.Channel, error) {
		specs = append(specs, spec)
		return platform.Channel{ID: sharedtypes.ChannelID("chan-" + spec.Name), Name: spec.Name, Type: spec.Type, ParentID: spec.ParentID}, nil
	}
	p := New(client, slog.Default(), testBotUserID)

	_, err := p.Provision(context.Background(), testRequest())
	assert.NoError(t, err)

	for _, spec := range specs {
		if spec.Type == platform.ChannelCategory {
			continue
		}
		var botAllow int64
		for _, ow := range spec.Overwrites {
			if ow.Type == platform.OverwriteMember && ow.TargetID == string(testBotUserID) {
				botAllow = ow.Allow
			}
		}
		assert.Equal(t, platform.BotOperatingPermissions, botAllow&platform.BotOperatingPermissions,
			"channel %s must grant the bot its operating permissions", spec.Name)
	}
}

func TestProvisionRoleCreationFailure(t *testing.T) {
	client := platformfake.NewClient()
	client.CreateRoleFunc = func(ctx context.Context, spec platform.RoleSpec) (platform.Role, error) {
		return platform.Role{}, errors.New("missing manage roles permission")
	}
	p := New(client, slog.Default(), testBotUserID)

	_, err := p.Provision(context.Background(), testRequest())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create role")
}

func TestProvisionAvoidsColorsOfActiveClubs(t *testing.T) {
	client := platformfake.NewClient()
	client.GuildRolesFunc = func(ctx context.Context, guildID sharedtypes.GuildID) ([]platform.Role, error) {
		return []platform.Role{
			{ID: "other-club", Name: "Robotics Club", Color: palette[0]},
		}, nil
	}
	var roleColors []int
	client.CreateRoleFunc = func(ctx context.Context, spec platform.RoleSpec) (platform.Role, error) {
		roleColors = append(roleColors, spec.Color)
		return platform.Role{ID: sharedtypes.RoleID("role-" + spec.Name), Name: spec.Name, Color: spec.Color}, nil
	}
	p := New(client, slog.Default(), testBotUserID)

	req := testRequest()
	req.ActiveClubRoleIDs = []sharedtypes.RoleID{"other-club"}
	_, err := p.Provision(context.Background(), req)

	assert.NoError(t, err)
	assert.NotEmpty(t, roleColors)
	assert.Equal(t, palette[1], roleColors[0])
}

func TestPickColorPrefersUnused(t *testing.T) {
	assert.Equal(t, palette[0], pickColor(nil))
	assert.Equal(t, palette[1], pickColor([]int{palette[0]}))
	assert.Equal(t, palette[3], pickColor([]int{palette[0], palette[1], palette[2]}))

	// Exhausted palette falls back to some palette entry.
	got := pickColor(palette)
	assert.Contains(t, palette, got)
}
