package workers

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"fish-catch-system/services"
	"fish-catch-system/utils"
)

var mirroredCollections = []string{
	services.CollectionUsers,
	services.CollectionServers,
	services.CollectionCatches,
}

// PollSnapshots periodically mirrors the flat-file collections to R2.
// Purely best-effort off-site backup; the files on local disk stay the
// source of truth.
func PollSnapshots(ctx context.Context, store *services.Store, interval time.Duration) {
	log.Printf("✅ Snapshot mirror running (every %s)", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			mirrorOnce(store)
		case <-ctx.Done():
			return
		}
	}
}

func mirrorOnce(store *services.Store) {
	for _, collection := range mirroredCollections {
		data, err := os.ReadFile(store.Path(collection))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			log.Printf("⚠️  [Mirror] Failed to read %s: %v", collection, err)
			continue
		}

		key := fmt.Sprintf("snapshots/%s.json", collection)
		if _, err := utils.UploadBytesToR2(key, "application/json", data); err != nil {
			log.Printf("⚠️  [Mirror] Failed to upload %s: %v", collection, err)
		}
	}
}
