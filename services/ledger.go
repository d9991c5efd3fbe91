package services

import (
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"fish-catch-system/models"
)

var (
	ErrInsufficientFunds = errors.New("not enough coins")
	ErrUnknownItem       = errors.New("item not found in shop")
)

// LedgerService owns the per-user progression records and the catch history.
// All access goes through its methods; the internal maps are never handed out.
type LedgerService struct {
	store         *Store
	startingCoins int64

	mu      sync.Mutex
	users   map[string]*models.UserRecord
	catches map[string]*models.CatchEvent
}

func NewLedgerService(store *Store, startingCoins int64) *LedgerService {
	s := &LedgerService{
		store:         store,
		startingCoins: startingCoins,
		users:         map[string]*models.UserRecord{},
		catches:       map[string]*models.CatchEvent{},
	}
	store.Load(CollectionUsers, &s.users)
	store.Load(CollectionCatches, &s.catches)
	return s
}

// ensureUser creates a record lazily on first reference. Caller holds mu.
func (s *LedgerService) ensureUser(userID string) *models.UserRecord {
	user, ok := s.users[userID]
	if !ok {
		user = models.NewUserRecord(s.startingCoins)
		s.users[userID] = user
	}
	if user.Collection == nil {
		user.Collection = map[string]int64{}
	}
	return user
}

// ApplyReward credits a successful catch: coins, xp, totalCaught and the
// collection counter, then runs the level-up rule. Excess xp beyond the
// threshold is discarded on level-up, not carried over. The updated record
// is flushed before returning.
func (s *LedgerService) ApplyReward(userID string, coinDelta, xpDelta int64, fishKey string) (models.UserRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.ensureUser(userID)
	user.Coins += coinDelta
	user.XP += xpDelta
	user.TotalCaught++
	user.Collection[fishKey]++

	leveledUp := false
	for user.XP >= user.XPToNextLevel() {
		user.Level++
		user.XP = 0
		leveledUp = true
	}

	if err := s.store.Flush(CollectionUsers, s.users); err != nil {
		return models.UserRecord{}, false, err
	}
	if leveledUp {
		log.Printf("🎮 Level up: %s → Lvl %d", userID, user.Level)
	}
	return user.Clone(), leveledUp, nil
}

// Spend deducts a purchase and appends the item to the inventory.
// On insufficient funds nothing is mutated.
func (s *LedgerService) Spend(userID string, amount int64, itemID string) (models.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.ensureUser(userID)
	if user.Coins < amount {
		return user.Clone(), ErrInsufficientFunds
	}
	user.Coins -= amount
	user.Inventory = append(user.Inventory, itemID)

	if err := s.store.Flush(CollectionUsers, s.users); err != nil {
		return models.UserRecord{}, err
	}
	return user.Clone(), nil
}

// Profile returns the user's record, creating it on first reference.
func (s *LedgerService) Profile(userID string) (models.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, existed := s.users[userID]
	user := s.ensureUser(userID)
	if !existed {
		if err := s.store.Flush(CollectionUsers, s.users); err != nil {
			return models.UserRecord{}, err
		}
	}
	return user.Clone(), nil
}

// Leaderboard returns the top catchers ordered by totalCaught descending.
// Users who never caught anything are excluded.
func (s *LedgerService) Leaderboard(limit int) []models.LeaderboardEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]models.LeaderboardEntry, 0, len(s.users))
	for id, u := range s.users {
		if u.TotalCaught == 0 {
			continue
		}
		entries = append(entries, models.LeaderboardEntry{
			UserID:      id,
			TotalCaught: u.TotalCaught,
			Level:       u.Level,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalCaught != entries[j].TotalCaught {
			return entries[i].TotalCaught > entries[j].TotalCaught
		}
		return entries[i].UserID < entries[j].UserID
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// Stats aggregates the whole user namespace.
func (s *LedgerService) Stats() models.GlobalStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := models.GlobalStats{Users: len(s.users)}
	for _, u := range s.users {
		stats.TotalCaught += u.TotalCaught
		stats.TotalCoins += u.Coins
	}
	return stats
}

// RecordCatch appends a catch event to the durable history.
func (s *LedgerService) RecordCatch(ev models.CatchEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := ev
	s.catches[ev.ID] = &copied
	return s.store.Flush(CollectionCatches, s.catches)
}

// RecentCatches returns a user's catches, newest first.
func (s *LedgerService) RecentCatches(userID string, limit int) []models.CatchEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.CatchEvent{}
	for _, ev := range s.catches {
		if ev.UserID == userID {
			out = append(out, *ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CaughtAt.After(out[j].CaughtAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// CatchesSince returns a server's catches after the cursor, oldest first.
// Used by the SSE feed's polling loop.
func (s *LedgerService) CatchesSince(serverID string, since time.Time) []models.CatchEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.CatchEvent{}
	for _, ev := range s.catches {
		if ev.ServerID == serverID && ev.CaughtAt.After(since) {
			out = append(out, *ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CaughtAt.Before(out[j].CaughtAt) })
	return out
}
