package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"fish-catch-system/models"
)

// SpawnAnnouncer posts spawn announcements to the chat platform's message
// API. Spawns are queued so the scheduler tick never blocks on the network;
// announce failures are logged and dropped, never fatal.
type SpawnAnnouncer struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client

	queue chan models.SpawnedEntity
}

func NewSpawnAnnouncer() *SpawnAnnouncer {
	baseURL := os.Getenv("PLATFORM_API_URL")
	if baseURL == "" {
		log.Fatal("PLATFORM_API_URL environment variable is required")
	}
	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		log.Fatal("❌ BOT_TOKEN is not set — cannot authenticate with the chat platform")
	}

	return &SpawnAnnouncer{
		BaseURL: baseURL,
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		queue: make(chan models.SpawnedEntity, 64),
	}
}

// AnnounceSpawn enqueues a spawn for announcement. If the queue is full the
// announcement is dropped; the spawn itself stays claimable.
func (a *SpawnAnnouncer) AnnounceSpawn(entity models.SpawnedEntity) {
	select {
	case a.queue <- entity:
	default:
		log.Printf("⚠️  [Announcer] Queue full, dropping announcement for %s", entity.ID)
	}
}

// Start drains the queue until the context is cancelled.
func (a *SpawnAnnouncer) Start(ctx context.Context) {
	log.Println("✅ Spawn announcer running")
	for {
		select {
		case entity := <-a.queue:
			if err := a.post(ctx, entity); err != nil {
				log.Printf("⚠️  [Announcer] Failed to announce %s: %v", entity.ID, err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// post sends one announcement message to the spawn's channel.
func (a *SpawnAnnouncer) post(ctx context.Context, entity models.SpawnedEntity) error {
	line := models.AppearanceMessages[rand.Intn(len(models.AppearanceMessages))]

	body, err := json.Marshal(map[string]any{
		"content":  line,
		"spawn_id": entity.ID,
		"embed": map[string]any{
			"title":  fmt.Sprintf("%s appeared!", entity.Type.Name),
			"rarity": entity.Type.Rarity,
			"value":  fmt.Sprintf("%d coins", entity.Type.Value),
		},
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/channels/%s/messages", a.BaseURL, entity.ChannelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bot "+a.Token)

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("platform returned %d: %s", resp.StatusCode, payload)
	}
	return nil
}
