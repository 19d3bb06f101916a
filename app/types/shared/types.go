package sharedtypes

// GuildID is a platform guild (server) snowflake.
type GuildID string

// UserID is a platform user snowflake.
type UserID string

// RoleID is a platform role snowflake.
type RoleID string

// ChannelID is a platform channel snowflake.
type ChannelID string

// MessageID is a platform message snowflake.
type MessageID string

// Actor carries the platform-level facts about the user performing an
// operation. The gateway resolves these from the interaction before the
// message reaches the backend, so services never have to call out to the
// platform to answer "is this the server owner".
type Actor struct {
	UserID        UserID   `json:"user_id"`
	IsServerOwner bool     `json:"is_server_owner"`
	IsServerAdmin bool     `json:"is_server_admin"`
	IsServerMod   bool     `json:"is_server_mod"`
	RoleIDs       []RoleID `json:"role_ids,omitempty"`
}

// HasRole reports whether the actor holds the given platform role.
func (a Actor) HasRole(roleID RoleID) bool {
	if roleID == "" {
		return false
	}
	for _, r := range a.RoleIDs {
		if r == roleID {
			return true
		}
	}
	return false
}
