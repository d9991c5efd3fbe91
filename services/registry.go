package services

import (
	"errors"
	"fmt"
	"sync"

	"fish-catch-system/models"
)

var (
	ErrPrefixTooLong   = fmt.Errorf("prefix must be at most %d characters", models.MaxPrefixLength)
	ErrInvalidInterval = fmt.Errorf("frequency must be between %d and %d minutes", models.MinSpawnInterval, models.MaxSpawnInterval)
	ErrNoChannelBound  = errors.New("server has no spawn channel configured")
)

// ServerRegistry owns the per-server settings collection.
type ServerRegistry struct {
	store *Store

	mu      sync.Mutex
	servers map[string]*models.ServerConfig
}

func NewServerRegistry(store *Store) *ServerRegistry {
	r := &ServerRegistry{
		store:   store,
		servers: map[string]*models.ServerConfig{},
	}
	store.Load(CollectionServers, &r.servers)
	return r
}

// ensure creates a config lazily with safe defaults. Caller holds mu.
func (r *ServerRegistry) ensure(serverID string) *models.ServerConfig {
	cfg, ok := r.servers[serverID]
	if !ok {
		cfg = models.NewServerConfig()
		r.servers[serverID] = cfg
	}
	return cfg
}

// Get returns the server's config, creating defaults on first reference.
func (r *ServerRegistry) Get(serverID string) (models.ServerConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, existed := r.servers[serverID]
	cfg := r.ensure(serverID)
	if !existed {
		if err := r.store.Flush(CollectionServers, r.servers); err != nil {
			return models.ServerConfig{}, err
		}
	}
	return *cfg, nil
}

// Setup binds the spawn channel and enables spawning, like the original
// setup command.
func (r *ServerRegistry) Setup(serverID, channelID string) (models.ServerConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cfg := r.ensure(serverID)
	cfg.ChannelID = channelID
	cfg.Enabled = true
	if err := r.store.Flush(CollectionServers, r.servers); err != nil {
		return models.ServerConfig{}, err
	}
	return *cfg, nil
}

// Configure applies an admin patch. Bounds are validated before any field
// is written, so a rejected patch leaves the config untouched.
func (r *ServerRegistry) Configure(serverID string, patch models.ServerConfigPatch) (models.ServerConfig, error) {
	if patch.Prefix != nil && (len(*patch.Prefix) == 0 || len(*patch.Prefix) > models.MaxPrefixLength) {
		return models.ServerConfig{}, ErrPrefixTooLong
	}
	if patch.SpawnIntervalMinutes != nil &&
		(*patch.SpawnIntervalMinutes < models.MinSpawnInterval || *patch.SpawnIntervalMinutes > models.MaxSpawnInterval) {
		return models.ServerConfig{}, ErrInvalidInterval
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cfg := r.ensure(serverID)
	if patch.ChannelID != nil {
		cfg.ChannelID = *patch.ChannelID
	}
	if patch.Enabled != nil {
		cfg.Enabled = *patch.Enabled
	}
	if patch.Prefix != nil {
		cfg.Prefix = *patch.Prefix
	}
	if patch.SpawnIntervalMinutes != nil {
		cfg.SpawnIntervalMinutes = *patch.SpawnIntervalMinutes
	}
	if patch.ClaimMessage != nil {
		cfg.ClaimMessage = *patch.ClaimMessage
	}
	if err := r.store.Flush(CollectionServers, r.servers); err != nil {
		return models.ServerConfig{}, err
	}
	return *cfg, nil
}

// Active returns serverID → config for every server eligible for spawning.
func (r *ServerRegistry) Active() map[string]models.ServerConfig {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := map[string]models.ServerConfig{}
	for id, cfg := range r.servers {
		if cfg.SpawningActive() {
			out[id] = *cfg
		}
	}
	return out
}
