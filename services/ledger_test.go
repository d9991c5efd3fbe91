package services

import (
	"testing"

	"fish-catch-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyRewardCreatesUserLazily(t *testing.T) {
	ledger := NewLedgerService(newTestStore(t), 100)

	user, leveledUp, err := ledger.ApplyReward("u1", 10, 5, "red-fish")
	require.NoError(t, err)

	assert.False(t, leveledUp)
	assert.Equal(t, int64(110), user.Coins)
	assert.Equal(t, int64(5), user.XP)
	assert.Equal(t, 1, user.Level)
	assert.Equal(t, int64(1), user.TotalCaught)
	assert.Equal(t, int64(1), user.Collection["red-fish"])
}

func TestApplyRewardLevelUpDiscardsSurplusXP(t *testing.T) {
	ledger := NewLedgerService(newTestStore(t), 0)

	// Bring the user to level 1, xp 95.
	user, leveledUp, err := ledger.ApplyReward("u1", 0, 95, "red-fish")
	require.NoError(t, err)
	require.False(t, leveledUp)
	require.Equal(t, int64(95), user.XP)

	// 95 + 10 crosses the 100 threshold: level 2, xp reset to 0 — the
	// surplus 5 xp is not carried over.
	user, leveledUp, err = ledger.ApplyReward("u1", 0, 10, "red-fish")
	require.NoError(t, err)
	assert.True(t, leveledUp)
	assert.Equal(t, 2, user.Level)
	assert.Equal(t, int64(0), user.XP)
}

func TestApplyRewardXPInvariantHolds(t *testing.T) {
	ledger := NewLedgerService(newTestStore(t), 0)

	deltas := []int64{7, 199, 50, 350, 12, 99, 1000, 3}
	lastLevel := 0
	for _, d := range deltas {
		user, _, err := ledger.ApplyReward("u1", 1, d, "blue-fish")
		require.NoError(t, err)
		assert.Less(t, user.XP, user.XPToNextLevel(), "xp must stay below level*100 after every mutation")
		assert.GreaterOrEqual(t, user.Level, lastLevel, "level is monotonically non-decreasing")
		lastLevel = user.Level
	}
}

func TestSpendInsufficientFundsMutatesNothing(t *testing.T) {
	ledger := NewLedgerService(newTestStore(t), 40)

	user, err := ledger.Spend("u1", 50, "golden-rod")
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, int64(40), user.Coins)
	assert.Empty(t, user.Inventory)

	// The persisted record is untouched too.
	profile, err := ledger.Profile("u1")
	require.NoError(t, err)
	assert.Equal(t, int64(40), profile.Coins)
	assert.Empty(t, profile.Inventory)
}

func TestSpendAppendsInventoryInPurchaseOrder(t *testing.T) {
	ledger := NewLedgerService(newTestStore(t), 500)

	_, err := ledger.Spend("u1", 100, "golden-rod")
	require.NoError(t, err)
	_, err = ledger.Spend("u1", 200, "fish-tank")
	require.NoError(t, err)
	user, err := ledger.Spend("u1", 100, "golden-rod")
	require.NoError(t, err)

	assert.Equal(t, int64(100), user.Coins)
	assert.Equal(t, []string{"golden-rod", "fish-tank", "golden-rod"}, user.Inventory)
	assert.Equal(t, map[string]int64{"golden-rod": 2, "fish-tank": 1}, user.InventoryCounts())
}

func TestLedgerPersistedRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ledger := NewLedgerService(store, 100)

	written, _, err := ledger.ApplyReward("u1", 25, 42, "golden-fish")
	require.NoError(t, err)

	// A fresh ledger over the same store must see the identical record.
	reloaded := NewLedgerService(store, 100)
	read, err := reloaded.Profile("u1")
	require.NoError(t, err)
	assert.Equal(t, written, read)
}

func TestLeaderboardOrdersByTotalCaught(t *testing.T) {
	ledger := NewLedgerService(newTestStore(t), 0)

	for i := 0; i < 3; i++ {
		_, _, err := ledger.ApplyReward("big", 1, 1, "red-fish")
		require.NoError(t, err)
	}
	_, _, err := ledger.ApplyReward("small", 1, 1, "red-fish")
	require.NoError(t, err)
	// Never caught anything: excluded.
	_, err = ledger.Profile("idle")
	require.NoError(t, err)

	board := ledger.Leaderboard(10)
	require.Len(t, board, 2)
	assert.Equal(t, "big", board[0].UserID)
	assert.Equal(t, int64(3), board[0].TotalCaught)
	assert.Equal(t, "small", board[1].UserID)

	assert.Len(t, ledger.Leaderboard(1), 1)
}

func TestStatsAggregatesNamespace(t *testing.T) {
	ledger := NewLedgerService(newTestStore(t), 100)

	_, _, err := ledger.ApplyReward("u1", 10, 5, "red-fish")
	require.NoError(t, err)
	_, _, err = ledger.ApplyReward("u2", 75, 5, "crown-fish")
	require.NoError(t, err)

	stats := ledger.Stats()
	assert.Equal(t, 2, stats.Users)
	assert.Equal(t, int64(2), stats.TotalCaught)
	assert.Equal(t, int64(285), stats.TotalCoins)
}

func TestRecordCatchAndRecentCatches(t *testing.T) {
	ledger := NewLedgerService(newTestStore(t), 0)

	base := models.CatchEvent{ServerID: "g1", UserID: "u1", FishKey: "red-fish"}
	for i, id := range []string{"c1", "c2", "c3"} {
		ev := base
		ev.ID = id
		ev.CaughtAt = ev.CaughtAt.AddDate(0, 0, i)
		require.NoError(t, ledger.RecordCatch(ev))
	}

	recent := ledger.RecentCatches("u1", 2)
	require.Len(t, recent, 2)
	assert.Equal(t, "c3", recent[0].ID)
	assert.Equal(t, "c2", recent[1].ID)

	assert.Empty(t, ledger.RecentCatches("other", 10))
}
