package services

import (
	"fmt"
	"log"
	"math/rand"
	"sort"
	"sync"
	"time"

	"fish-catch-system/models"
)

// ClaimOutcome is the result of a claim attempt against a spawn ID.
type ClaimOutcome int

const (
	ClaimNotFound ClaimOutcome = iota // expired, or already claimed and retired
	ClaimAlreadyClaimed
	ClaimSuccess
)

// SpawnRegistry owns the set of currently-active catchable fish. Every state
// transition (spawn, claim, retire, expiry) happens under one registry-wide
// mutex, which is what makes the claim check-and-set single-winner.
type SpawnRegistry struct {
	store   *Store
	ttl     time.Duration
	persist bool
	now     func() time.Time

	mu     sync.Mutex
	active map[string]*models.SpawnedEntity
	timers map[string]*time.Timer
	rng    *rand.Rand
}

func NewSpawnRegistry(store *Store, ttl time.Duration, persist bool) *SpawnRegistry {
	r := &SpawnRegistry{
		store:   store,
		ttl:     ttl,
		persist: persist,
		now:     time.Now,
		active:  map[string]*models.SpawnedEntity{},
		timers:  map[string]*time.Timer{},
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if persist {
		r.restore()
	}
	return r
}

// restore reloads the persisted mirror of active spawns and re-arms their
// expiry timers with whatever TTL remains.
func (r *SpawnRegistry) restore() {
	loaded := map[string]*models.SpawnedEntity{}
	r.store.Load(CollectionSpawns, &loaded)

	r.mu.Lock()
	defer r.mu.Unlock()
	for id, entity := range loaded {
		if entity.Claimed {
			continue
		}
		remaining := r.ttl - r.now().Sub(entity.SpawnedAt)
		if remaining <= 0 {
			continue
		}
		r.active[id] = entity
		r.armTimer(id, remaining)
	}
	if len(r.active) > 0 {
		log.Printf("🐟 [Spawns] Restored %d active spawn(s) from disk", len(r.active))
	}
}

// Spawn picks a fish type by weighted draw, registers it as active and
// schedules its one-shot expiry. The spawn ID is serverID plus creation
// timestamp; IDs are never recycled.
func (r *SpawnRegistry) Spawn(serverID, channelID string) models.SpawnedEntity {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	id := fmt.Sprintf("%s_%d", serverID, now.UnixMilli())
	for n := int64(1); ; n++ {
		if _, taken := r.active[id]; !taken {
			break
		}
		id = fmt.Sprintf("%s_%d", serverID, now.UnixMilli()+n)
	}

	entity := &models.SpawnedEntity{
		ID:        id,
		ServerID:  serverID,
		ChannelID: channelID,
		Type:      models.PickFish(r.rng.Intn(models.CatalogWeightSum)),
		SpawnedAt: now,
	}
	r.active[id] = entity
	r.armTimer(id, r.ttl)
	r.flushLocked()
	return *entity
}

// armTimer schedules the expiry callback. Caller holds mu.
func (r *SpawnRegistry) armTimer(id string, after time.Duration) {
	r.timers[id] = time.AfterFunc(after, func() { r.expire(id) })
}

// expire removes an unclaimed spawn at TTL elapse. It re-checks current
// state under the lock: a late timer firing after claim or retire is a no-op.
func (r *SpawnRegistry) expire(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entity, ok := r.active[id]
	if !ok || entity.Claimed {
		return
	}
	delete(r.active, id)
	delete(r.timers, id)
	r.flushLocked()
}

// Lookup returns a copy of an active spawn.
func (r *SpawnRegistry) Lookup(id string) (models.SpawnedEntity, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entity, ok := r.active[id]
	if !ok {
		return models.SpawnedEntity{}, false
	}
	return *entity, true
}

// Retire removes a spawn from the active set and cancels its expiry timer.
// Retiring an absent ID is a no-op.
func (r *SpawnRegistry) Retire(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.retireLocked(id)
	r.flushLocked()
}

func (r *SpawnRegistry) retireLocked(id string) {
	if timer, ok := r.timers[id]; ok {
		timer.Stop()
		delete(r.timers, id)
	}
	delete(r.active, id)
}

// Claim is the single-winner check-and-set. The flag check, the flag set and
// the retire all happen under the registry mutex, so for any spawn ID exactly
// one caller ever observes ClaimSuccess. The winner's copy carries the
// claimant; applying the reward is the caller's job, exactly once.
func (r *SpawnRegistry) Claim(id, claimantID string) (models.SpawnedEntity, ClaimOutcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entity, ok := r.active[id]
	if !ok {
		return models.SpawnedEntity{}, ClaimNotFound
	}
	if entity.Claimed {
		return models.SpawnedEntity{}, ClaimAlreadyClaimed
	}
	entity.Claimed = true
	entity.ClaimedBy = claimantID
	claimed := *entity
	r.retireLocked(id)
	r.flushLocked()
	return claimed, ClaimSuccess
}

// ActiveSince lists a server's spawns created after the cursor, oldest
// first. Used by the SSE feed.
func (r *SpawnRegistry) ActiveSince(serverID string, since time.Time) []models.SpawnedEntity {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.SpawnedEntity{}
	for _, entity := range r.active {
		if entity.ServerID == serverID && entity.SpawnedAt.After(since) {
			out = append(out, *entity)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SpawnedAt.Before(out[j].SpawnedAt) })
	return out
}

// ActiveCount reports the number of currently active spawns.
func (r *SpawnRegistry) ActiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active)
}

// flushLocked mirrors the active set to disk when persistence is on.
// Spawns are ephemeral; a failed mirror write is logged, not surfaced.
func (r *SpawnRegistry) flushLocked() {
	if !r.persist {
		return
	}
	if err := r.store.Flush(CollectionSpawns, r.active); err != nil {
		log.Printf("⚠️  [Spawns] Failed to mirror active spawns: %v", err)
	}
}
