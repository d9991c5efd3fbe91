package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"fish-catch-system/services"

	"github.com/gofiber/fiber/v2"
)

// SetupFeedRoutes streams a server's spawn and catch events over SSE.
// Same polling-cursor shape as a reward stream: tick, query since cursor,
// emit, advance.
func SetupFeedRoutes(app *fiber.App, spawns *services.SpawnRegistry, ledger *services.LedgerService) {
	app.Get("/feed/:serverID", func(c *fiber.Ctx) error {
		serverID := c.Params("serverID")

		c.Set("Content-Type", "text/event-stream")
		c.Set("Cache-Control", "no-cache")
		c.Set("Connection", "keep-alive")
		c.Set("X-Accel-Buffering", "no") // nginx

		c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()

			spawnCursor := time.Now()
			catchCursor := spawnCursor

			// Initial keepalive (comment event)
			w.WriteString(":\n\n")
			if err := w.Flush(); err != nil {
				return
			}

			for {
				select {
				case <-ticker.C:
					wrote := false
					for _, entity := range spawns.ActiveSince(serverID, spawnCursor) {
						payload, _ := json.Marshal(entity)
						fmt.Fprintf(w, "event: spawn\ndata: %s\n\n", payload)
						spawnCursor = entity.SpawnedAt
						wrote = true
					}
					for _, ev := range ledger.CatchesSince(serverID, catchCursor) {
						payload, _ := json.Marshal(ev)
						fmt.Fprintf(w, "event: catch\ndata: %s\n\n", payload)
						catchCursor = ev.CaughtAt
						wrote = true
					}
					if !wrote {
						continue
					}
					if err := w.Flush(); err != nil {
						// Client disconnected
						return
					}
				case <-c.Context().Done():
					return
				}
			}
		})

		return nil
	})
}
