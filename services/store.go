package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Collection names used across the service.
const (
	CollectionUsers   = "users"
	CollectionServers = "servers"
	CollectionSpawns  = "active_spawns"
	CollectionCatches = "catches"
)

// Store is the flat-file document store: one <collection>.json per logical
// collection under the data directory. Mutations are flushed synchronously
// as whole-file overwrites; there are no transactions across collections.
type Store struct {
	dir string
	mu  sync.Mutex
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to ensure data dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory, for the snapshot mirror.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the on-disk file for a collection.
func (s *Store) Path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// Load decodes the last flushed snapshot of a collection into out.
// A missing or unreadable file leaves out untouched: corruption is
// swallowed with a warning and the caller starts from an empty collection.
func (s *Store) Load(collection string, out any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.Path(collection))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️  [Store] Failed to read %s, starting empty: %v", collection, err)
		}
		return
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("⚠️  [Store] Corrupt snapshot for %s, starting empty: %v", collection, err)
	}
}

// Flush durably overwrites the whole collection before returning.
// A crash mid-write may leave a truncated file; accepted limitation.
func (s *Store) Flush(collection string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", collection, err)
	}
	if err := os.WriteFile(s.Path(collection), data, 0o644); err != nil {
		return fmt.Errorf("failed to flush %s: %w", collection, err)
	}
	return nil
}
