package platform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	nc "github.com/nats-io/nats.go"
	"golang.org/x/time/rate"

	sharedtypes "github.com/campus-commons/clubhub-bot/app/types/shared"
)

// Gateway request subjects. The gateway worker services these queues.
const (
	subjectRoleList      = "gateway.role.list"
	subjectRoleCreate    = "gateway.role.create"
	subjectRoleAssign    = "gateway.role.assign"
	subjectRoleRevoke    = "gateway.role.revoke"
	subjectChannelList   = "gateway.channel.list"
	subjectChannelCreate = "gateway.channel.create"
	subjectMessagePost   = "gateway.message.post"
	subjectMessageEdit   = "gateway.message.edit"
	subjectDMSend        = "gateway.dm.send"
	subjectVerifyCheck   = "gateway.identity.verified"
)

// NATSClient implements Client and VerificationClient over NATS
// request/reply. Requests are rate limited so a burst of workflow activity
// cannot push the gateway into the platform's API limits.
type NATSClient struct {
	conn    *nc.Conn
	timeout time.Duration
	limiter *rate.Limiter
}

// NATSClientConfig holds tunables for the gateway client.
type NATSClientConfig struct {
	RequestTimeout time.Duration // default 5s
	RequestsPerSec float64       // default 25
	Burst          int           // default 10
}

// NewNATSClient builds a gateway client on an existing NATS connection.
func NewNATSClient(conn *nc.Conn, cfg NATSClientConfig) *NATSClient {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 5 * time.Second
	}
	if cfg.RequestsPerSec <= 0 {
		cfg.RequestsPerSec = 25
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 10
	}
	return &NATSClient{
		conn:    conn,
		timeout: cfg.RequestTimeout,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), cfg.Burst),
	}
}

// gatewayError is the error envelope the gateway replies with.
type gatewayError struct {
	Error string `json:"error,omitempty"`
}

// request performs a rate-limited JSON request/reply round trip.
func (c *NATSClient) request(ctx context.Context, subject string, req any, resp any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter interrupted: %w", err)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", subject, err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reply, err := c.conn.RequestWithContext(reqCtx, subject, body)
	if err != nil {
		if errors.Is(err, nc.ErrNoResponders) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s", ErrUnavailable, subject)
		}
		return fmt.Errorf("%s request failed: %w", subject, err)
	}

	var envelope gatewayError
	if err := json.Unmarshal(reply.Data, &envelope); err == nil && envelope.Error != "" {
		return fmt.Errorf("%s: gateway error: %s", subject, envelope.Error)
	}

	if resp != nil {
		if err := json.Unmarshal(reply.Data, resp); err != nil {
			return fmt.Errorf("failed to unmarshal %s reply: %w", subject, err)
		}
	}
	return nil
}

func (c *NATSClient) GuildRoles(ctx context.Context, guildID sharedtypes.GuildID) ([]Role, error) {
	var resp struct {
		Roles []Role `json:"roles"`
	}
	req := struct {
		GuildID sharedtypes.GuildID `json:"guild_id"`
	}{guildID}
	if err := c.request(ctx, subjectRoleList, req, &resp); err != nil {
		return nil, err
	}
	return resp.Roles, nil
}

func (c *NATSClient) CreateRole(ctx context.Context, spec RoleSpec) (Role, error) {
	var resp struct {
		Role Role `json:"role"`
	}
	if err := c.request(ctx, subjectRoleCreate, spec, &resp); err != nil {
		return Role{}, err
	}
	return resp.Role, nil
}

func (c *NATSClient) AssignRole(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID, roleID sharedtypes.RoleID) error {
	req := struct {
		GuildID sharedtypes.GuildID `json:"guild_id"`
		UserID  sharedtypes.UserID  `json:"user_id"`
		RoleID  sharedtypes.RoleID  `json:"role_id"`
	}{guildID, userID, roleID}
	return c.request(ctx, subjectRoleAssign, req, nil)
}

func (c *NATSClient) RevokeRole(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID, roleID sharedtypes.RoleID) error {
	req := struct {
		GuildID sharedtypes.GuildID `json:"guild_id"`
		UserID  sharedtypes.UserID  `json:"user_id"`
		RoleID  sharedtypes.RoleID  `json:"role_id"`
	}{guildID, userID, roleID}
	return c.request(ctx, subjectRoleRevoke, req, nil)
}

func (c *NATSClient) GuildChannels(ctx context.Context, guildID sharedtypes.GuildID) ([]Channel, error) {
	var resp struct {
		Channels []Channel `json:"channels"`
	}
	req := struct {
		GuildID sharedtypes.GuildID `json:"guild_id"`
	}{guildID}
	if err := c.request(ctx, subjectChannelList, req, &resp); err != nil {
		return nil, err
	}
	return resp.Channels, nil
}

func (c *NATSClient) CreateChannel(ctx context.Context, spec ChannelSpec) (Channel, error) {
	var resp struct {
		Channel Channel `json:"channel"`
	}
	if err := c.request(ctx, subjectChannelCreate, spec, &resp); err != nil {
		return Channel{}, err
	}
	return resp.Channel, nil
}

func (c *NATSClient) PostMessage(ctx context.Context, channelID sharedtypes.ChannelID, msg Message) (sharedtypes.MessageID, error) {
	var resp struct {
		MessageID sharedtypes.MessageID `json:"message_id"`
	}
	req := struct {
		ChannelID sharedtypes.ChannelID `json:"channel_id"`
		Message   Message               `json:"message"`
	}{channelID, msg}
	if err := c.request(ctx, subjectMessagePost, req, &resp); err != nil {
		return "", err
	}
	return resp.MessageID, nil
}

func (c *NATSClient) EditMessage(ctx context.Context, channelID sharedtypes.ChannelID, messageID sharedtypes.MessageID, msg Message) error {
	req := struct {
		ChannelID sharedtypes.ChannelID `json:"channel_id"`
		MessageID sharedtypes.MessageID `json:"message_id"`
		Message   Message               `json:"message"`
	}{channelID, messageID, msg}
	return c.request(ctx, subjectMessageEdit, req, nil)
}

func (c *NATSClient) SendDM(ctx context.Context, userID sharedtypes.UserID, msg Message) error {
	req := struct {
		UserID  sharedtypes.UserID `json:"user_id"`
		Message Message            `json:"message"`
	}{userID, msg}
	return c.request(ctx, subjectDMSend, req, nil)
}

func (c *NATSClient) IsVerified(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID) (bool, error) {
	var resp struct {
		Verified bool `json:"verified"`
	}
	req := struct {
		GuildID sharedtypes.GuildID `json:"guild_id"`
		UserID  sharedtypes.UserID  `json:"user_id"`
	}{guildID, userID}
	if err := c.request(ctx, subjectVerifyCheck, req, &resp); err != nil {
		return false, err
	}
	return resp.Verified, nil
}

var (
	_ Client             = (*NATSClient)(nil)
	_ VerificationClient = (*NATSClient)(nil)
)
