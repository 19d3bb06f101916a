// Package platformfake provides hand-rolled fakes for the platform ports,
// shared by service and handler tests across modules.
package platformfake

import (
	"context"
	"fmt"
	"sync"

	"github.com/campus-commons/clubhub-bot/internal/platform"

	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// Client is a configurable fake gateway client. Each method records a trace
// step and delegates to the corresponding Func when set; otherwise it returns
// a benign default.
type Client struct {
	mu    sync.Mutex
	trace []string

	GuildRolesFunc    func(ctx context.Context, guildID sharedtypes.GuildID) ([]platform.Role, error)
	CreateRoleFunc    func(ctx context.Context, spec platform.RoleSpec) (platform.Role, error)
	AssignRoleFunc    func(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID, roleID sharedtypes.RoleID) error
	RevokeRoleFunc    func(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID, roleID sharedtypes.RoleID) error
	GuildChannelsFunc func(ctx context.Context, guildID sharedtypes.GuildID) ([]platform.Channel, error)
	CreateChannelFunc func(ctx context.Context, spec platform.ChannelSpec) (platform.Channel, error)
	PostMessageFunc   func(ctx context.Context, channelID sharedtypes.ChannelID, msg platform.Message) (sharedtypes.MessageID, error)
	EditMessageFunc   func(ctx context.Context, channelID sharedtypes.ChannelID, messageID sharedtypes.MessageID, msg platform.Message) error
	SendDMFunc        func(ctx context.Context, userID sharedtypes.UserID, msg platform.Message) error
}

func NewClient() *Client {
	return &Client{trace: []string{}}
}

func (f *Client) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

// Trace returns a copy of the recorded call sequence.
func (f *Client) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *Client) GuildRoles(ctx context.Context, guildID sharedtypes.GuildID) ([]platform.Role, error) {
	f.record("GuildRoles")
	if f.GuildRolesFunc != nil {
		return f.GuildRolesFunc(ctx, guildID)
	}
	return nil, nil
}

func (f *Client) CreateRole(ctx context.Context, spec platform.RoleSpec) (platform.Role, error) {
	f.record(fmt.Sprintf("CreateRole(%s)", spec.Name))
	if f.CreateRoleFunc != nil {
		return f.CreateRoleFunc(ctx, spec)
	}
	return platform.Role{ID: sharedtypes.RoleID("role-" + spec.Name), Name: spec.Name, Color: spec.Color}, nil
}

func (f *Client) AssignRole(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID, roleID sharedtypes.RoleID) error {
	f.record(fmt.Sprintf("AssignRole(%s,%s)", userID, roleID))
	if f.AssignRoleFunc != nil {
		return f.AssignRoleFunc(ctx, guildID, userID, roleID)
	}
	return nil
}

func (f *Client) RevokeRole(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID, roleID sharedtypes.RoleID) error {
	f.record(fmt.Sprintf("RevokeRole(%s,%s)", userID, roleID))
	if f.RevokeRoleFunc != nil {
		return f.RevokeRoleFunc(ctx, guildID, userID, roleID)
	}
	return nil
}

func (f *Client) GuildChannels(ctx context.Context, guildID sharedtypes.GuildID) ([]platform.Channel, error) {
	f.record("GuildChannels")
	if f.GuildChannelsFunc != nil {
		return f.GuildChannelsFunc(ctx, guildID)
	}
	return nil, nil
}

func (f *Client) CreateChannel(ctx context.Context, spec platform.ChannelSpec) (platform.Channel, error) {
	f.record(fmt.Sprintf("CreateChannel(%s)", spec.Name))
	if f.CreateChannelFunc != nil {
		return f.CreateChannelFunc(ctx, spec)
	}
	return platform.Channel{ID: sharedtypes.ChannelID("chan-" + spec.Name), Name: spec.Name, Type: spec.Type, ParentID: spec.ParentID}, nil
}

func (f *Client) PostMessage(ctx context.Context, channelID sharedtypes.ChannelID, msg platform.Message) (sharedtypes.MessageID, error) {
	f.record(fmt.Sprintf("PostMessage(%s)", channelID))
	if f.PostMessageFunc != nil {
		return f.PostMessageFunc(ctx, channelID, msg)
	}
	return sharedtypes.MessageID("msg-1"), nil
}

func (f *Client) EditMessage(ctx context.Context, channelID sharedtypes.ChannelID, messageID sharedtypes.MessageID, msg platform.Message) error {
	f.record(fmt.Sprintf("EditMessage(%s,%s)", channelID, messageID))
	if f.EditMessageFunc != nil {
		return f.EditMessageFunc(ctx, channelID, messageID, msg)
	}
	return nil
}

func (f *Client) SendDM(ctx context.Context, userID sharedtypes.UserID, msg platform.Message) error {
	f.record(fmt.Sprintf("SendDM(%s)", userID))
	if f.SendDMFunc != nil {
		return f.SendDMFunc(ctx, userID, msg)
	}
	return nil
}

var _ platform.Client = (*Client)(nil)

// Verifier is a fake platform-verification client.
type Verifier struct {
	IsVerifiedFunc func(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (bool, error)
}

func (f *Verifier) IsVerified(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (bool, error) {
	if f.IsVerifiedFunc != nil {
		return f.IsVerifiedFunc(ctx, guildID, userID)
	}
	return true, nil
}

var _ platform.VerificationClient = (*Verifier)(nil)
