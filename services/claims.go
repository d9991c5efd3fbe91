package services

import (
	"log"
	"math/rand"

	"fish-catch-system/models"

	"github.com/google/uuid"
)

// ClaimResult carries everything the command surface needs to render a
// success or rejection response for a claim gesture.
type ClaimResult struct {
	Outcome        ClaimOutcome      `json:"-"`
	Fish           models.FishType   `json:"fish"`
	CoinsEarned    int64             `json:"coins_earned"`
	XPEarned       int64             `json:"xp_earned"`
	LeveledUp      bool              `json:"leveled_up"`
	Message        string            `json:"message"`
	LevelUpMessage string            `json:"level_up_message,omitempty"`
	User           models.UserRecord `json:"user"`
}

// ClaimService resolves claim gestures: the registry arbitrates the race,
// and on a win the ledger is credited exactly once and a catch event is
// appended to the history.
type ClaimService struct {
	spawns  *SpawnRegistry
	ledger  *LedgerService
	servers *ServerRegistry
}

func NewClaimService(spawns *SpawnRegistry, ledger *LedgerService, servers *ServerRegistry) *ClaimService {
	return &ClaimService{spawns: spawns, ledger: ledger, servers: servers}
}

// Claim attempts to win the spawn for claimantID. Losing the race is an
// expected outcome, reported through Outcome rather than an error.
func (s *ClaimService) Claim(spawnID, claimantID, displayName string) (ClaimResult, error) {
	entity, outcome := s.spawns.Claim(spawnID, claimantID)
	if outcome != ClaimSuccess {
		return ClaimResult{Outcome: outcome}, nil
	}

	coins := entity.Type.Value
	xp := int64(5 + rand.Intn(10))

	user, leveledUp, err := s.ledger.ApplyReward(claimantID, coins, xp, entity.Type.Key)
	if err != nil {
		return ClaimResult{}, err
	}

	event := models.CatchEvent{
		ID:          uuid.NewString(),
		SpawnID:     entity.ID,
		ServerID:    entity.ServerID,
		UserID:      claimantID,
		FishKey:     entity.Type.Key,
		CoinsEarned: coins,
		XPEarned:    xp,
		LeveledUp:   leveledUp,
		CaughtAt:    s.spawns.now(),
	}
	if err := s.ledger.RecordCatch(event); err != nil {
		// The reward is already applied and flushed; losing the history
		// entry is not worth failing the claim over.
		log.Printf("⚠️  [Claims] Failed to record catch event %s: %v", event.ID, err)
	}

	if displayName == "" {
		displayName = claimantID
	}
	result := ClaimResult{
		Outcome:     ClaimSuccess,
		Fish:        entity.Type,
		CoinsEarned: coins,
		XPEarned:    xp,
		LeveledUp:   leveledUp,
		Message:     models.RenderMessage(s.claimTemplate(entity.ServerID), displayName, entity.Type.Name, user.Level),
		User:        user,
	}
	if leveledUp {
		template := models.LevelUpMessages[rand.Intn(len(models.LevelUpMessages))]
		result.LevelUpMessage = models.RenderMessage(template, displayName, entity.Type.Name, user.Level)
	}
	return result, nil
}

// claimTemplate prefers the server's configured claim message and falls
// back to a random line from the stock pool.
func (s *ClaimService) claimTemplate(serverID string) string {
	cfg, err := s.servers.Get(serverID)
	if err == nil && cfg.ClaimMessage != "" {
		return cfg.ClaimMessage
	}
	return models.CatchMessages[rand.Intn(len(models.CatchMessages))]
}
