package models

import "time"

// SpawnedEntity is a transient catchable fish bound to a server channel.
// At most one claim ever succeeds per spawn ID; IDs are never recycled.
type SpawnedEntity struct {
	ID        string    `json:"id"`
	ServerID  string    `json:"guildId"`
	ChannelID string    `json:"channelId"`
	Type      FishType  `json:"type"`
	SpawnedAt time.Time `json:"spawnTime"`
	Claimed   bool      `json:"caught"`
	ClaimedBy string    `json:"caughtBy,omitempty"`
}

// CatchEvent is the durable record appended for every successful claim.
type CatchEvent struct {
	ID          string    `json:"id"`
	SpawnID     string    `json:"spawn_id"`
	ServerID    string    `json:"server_id"`
	UserID      string    `json:"user_id"`
	FishKey     string    `json:"fish"`
	CoinsEarned int64     `json:"coins_earned"`
	XPEarned    int64     `json:"xp_earned"`
	LeveledUp   bool      `json:"leveled_up,omitempty"`
	CaughtAt    time.Time `json:"caught_at"`
}
