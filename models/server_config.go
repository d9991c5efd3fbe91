package models

const (
	DefaultPrefix        = "f!"
	DefaultSpawnInterval = 10 // minutes, informational (see scheduler)
	DefaultClaimMessage  = "**{user}** caught the {fish}!"

	MaxPrefixLength  = 5
	MinSpawnInterval = 5
	MaxSpawnInterval = 60
)

// ServerConfig holds per-server settings. Spawning requires both Enabled
// and a bound channel. JSON field names match the original servers.json.
type ServerConfig struct {
	ChannelID            string `json:"channel,omitempty"`
	Enabled              bool   `json:"enabled"`
	Prefix               string `json:"prefix"`
	SpawnIntervalMinutes int    `json:"frequency"`
	ClaimMessage         string `json:"claimMessage,omitempty"`
}

// NewServerConfig returns the safe defaults used on first reference.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Prefix:               DefaultPrefix,
		SpawnIntervalMinutes: DefaultSpawnInterval,
		ClaimMessage:         DefaultClaimMessage,
	}
}

// SpawningActive reports whether the scheduler should consider this server.
func (c *ServerConfig) SpawningActive() bool {
	return c.Enabled && c.ChannelID != ""
}

// ServerConfigPatch is a partial update applied by admin configuration.
// Nil fields are left untouched.
type ServerConfigPatch struct {
	ChannelID            *string `json:"channel_id"`
	Enabled              *bool   `json:"enabled"`
	Prefix               *string `json:"prefix"`
	SpawnIntervalMinutes *int    `json:"frequency"`
	ClaimMessage         *string `json:"claim_message"`
}
