package services

import (
	"testing"

	"fish-catch-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func patchClaimMessage(msg string) models.ServerConfigPatch {
	return models.ServerConfigPatch{ClaimMessage: &msg}
}

func TestGetCreatesDefaultsLazily(t *testing.T) {
	reg := NewServerRegistry(newTestStore(t))

	cfg, err := reg.Get("g1")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPrefix, cfg.Prefix)
	assert.Equal(t, models.DefaultSpawnInterval, cfg.SpawnIntervalMinutes)
	assert.Equal(t, models.DefaultClaimMessage, cfg.ClaimMessage)
	assert.False(t, cfg.Enabled)
	assert.Empty(t, cfg.ChannelID)
	assert.False(t, cfg.SpawningActive())
}

func TestSetupBindsChannelAndEnables(t *testing.T) {
	reg := NewServerRegistry(newTestStore(t))

	cfg, err := reg.Setup("g1", "c42")
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "c42", cfg.ChannelID)
	assert.True(t, cfg.SpawningActive())
}

func TestConfigureValidatesBoundsBeforeWriting(t *testing.T) {
	reg := NewServerRegistry(newTestStore(t))

	longPrefix := "toolong"
	_, err := reg.Configure("g1", models.ServerConfigPatch{Prefix: &longPrefix})
	assert.ErrorIs(t, err, ErrPrefixTooLong)

	badInterval := 90
	goodPrefix := "c!"
	_, err = reg.Configure("g1", models.ServerConfigPatch{Prefix: &goodPrefix, SpawnIntervalMinutes: &badInterval})
	assert.ErrorIs(t, err, ErrInvalidInterval)

	// The rejected patch left everything untouched, prefix included.
	cfg, err := reg.Get("g1")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPrefix, cfg.Prefix)
	assert.Equal(t, models.DefaultSpawnInterval, cfg.SpawnIntervalMinutes)
}

func TestConfigureAppliesPartialPatch(t *testing.T) {
	reg := NewServerRegistry(newTestStore(t))
	_, err := reg.Setup("g1", "c1")
	require.NoError(t, err)

	interval := 30
	cfg, err := reg.Configure("g1", models.ServerConfigPatch{SpawnIntervalMinutes: &interval})
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.SpawnIntervalMinutes)
	// Untouched fields keep their values.
	assert.Equal(t, "c1", cfg.ChannelID)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, models.DefaultPrefix, cfg.Prefix)
}

func TestActiveListsOnlySpawnEligibleServers(t *testing.T) {
	store := newTestStore(t)
	reg := NewServerRegistry(store)

	_, err := reg.Setup("ready", "c1")
	require.NoError(t, err)
	_, err = reg.Get("unconfigured")
	require.NoError(t, err)
	disabled := false
	_, err = reg.Setup("paused", "c2")
	require.NoError(t, err)
	_, err = reg.Configure("paused", models.ServerConfigPatch{Enabled: &disabled})
	require.NoError(t, err)

	active := reg.Active()
	require.Len(t, active, 1)
	assert.Contains(t, active, "ready")
}

func TestRegistryPersistedRoundTrip(t *testing.T) {
	store := newTestStore(t)
	reg := NewServerRegistry(store)
	written, err := reg.Setup("g1", "c1")
	require.NoError(t, err)

	reloaded := NewServerRegistry(store)
	read, err := reloaded.Get("g1")
	require.NoError(t, err)
	assert.Equal(t, written, read)
}
