package models

// UserRecord is the persisted progression ledger entry for one user.
// JSON field names match the on-disk layout of the original data files,
// so existing users.json collections load as-is.
type UserRecord struct {
	Coins       int64            `json:"coins"`
	XP          int64            `json:"xp"`
	Level       int              `json:"level"`
	TotalCaught int64            `json:"total"`
	Collection  map[string]int64 `json:"fishCollection"`
	Inventory   []string         `json:"inventory"`
}

// NewUserRecord returns a fresh record with the configured starting balance.
func NewUserRecord(startingCoins int64) *UserRecord {
	return &UserRecord{
		Coins:      startingCoins,
		Level:      1,
		Collection: map[string]int64{},
		Inventory:  []string{},
	}
}

// XPToNextLevel is the threshold at which the current level rolls over.
func (u *UserRecord) XPToNextLevel() int64 {
	return int64(u.Level) * 100
}

// InventoryCounts groups the ordered inventory into name → quantity for display.
func (u *UserRecord) InventoryCounts() map[string]int64 {
	counts := make(map[string]int64, len(u.Inventory))
	for _, item := range u.Inventory {
		counts[item]++
	}
	return counts
}

// Clone returns a deep copy so callers never share the ledger's maps.
func (u *UserRecord) Clone() UserRecord {
	out := *u
	out.Collection = make(map[string]int64, len(u.Collection))
	for k, v := range u.Collection {
		out.Collection[k] = v
	}
	out.Inventory = append([]string(nil), u.Inventory...)
	return out
}

// LeaderboardEntry is one row of the totalCaught leaderboard.
type LeaderboardEntry struct {
	UserID      string `json:"user_id"`
	TotalCaught int64  `json:"total"`
	Level       int    `json:"level"`
}

// GlobalStats aggregates the whole user namespace for the stats endpoint.
type GlobalStats struct {
	Users       int   `json:"users"`
	TotalCaught int64 `json:"total_caught"`
	TotalCoins  int64 `json:"total_coins"`
}
