package services

import (
	"os"
	"path/filepath"
	"testing"

	"fish-catch-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestStoreFlushLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	users := map[string]*models.UserRecord{
		"u1": {Coins: 110, XP: 40, Level: 2, TotalCaught: 3, Collection: map[string]int64{"red-fish": 3}, Inventory: []string{"golden-rod"}},
	}
	require.NoError(t, store.Flush(CollectionUsers, users))

	reloaded := map[string]*models.UserRecord{}
	store.Load(CollectionUsers, &reloaded)

	require.Contains(t, reloaded, "u1")
	assert.Equal(t, *users["u1"], *reloaded["u1"])
}

func TestStoreLoadMissingFileLeavesEmpty(t *testing.T) {
	store := newTestStore(t)

	users := map[string]*models.UserRecord{}
	store.Load(CollectionUsers, &users)
	assert.Empty(t, users)
}

func TestStoreLoadCorruptFileLeavesEmpty(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(CollectionUsers), []byte("{not json"), 0o644))

	users := map[string]*models.UserRecord{}
	store.Load(CollectionUsers, &users)
	assert.Empty(t, users)
}

func TestStorePathPerCollection(t *testing.T) {
	store := newTestStore(t)
	assert.Equal(t, filepath.Join(store.Dir(), "users.json"), store.Path(CollectionUsers))
	assert.Equal(t, filepath.Join(store.Dir(), "servers.json"), store.Path(CollectionServers))
}
