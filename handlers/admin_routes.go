package handlers

import (
	"errors"
	"log"

	"fish-catch-system/middleware"
	"fish-catch-system/models"
	"fish-catch-system/services"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes wires the admin-gated configuration surface.
func SetupAdminRoutes(app *fiber.App, servers *services.ServerRegistry, spawns *services.SpawnRegistry, announcer services.Announcer) {
	admin := app.Group("/s/admin", middleware.UserContextMiddleware(), middleware.RequireAdmin())

	// Bind the spawn channel and enable spawning, like the setup command.
	admin.Post("/servers/:id/setup", func(c *fiber.Ctx) error {
		var req struct {
			ChannelID string `json:"channel_id"`
		}
		if err := c.BodyParser(&req); err != nil || req.ChannelID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "channel_id is required"})
		}

		cfg, err := servers.Setup(c.Params("id"), req.ChannelID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "setup failed", "cause": err.Error()})
		}
		log.Printf("✅ [Admin] Server %s set up, spawns in channel %s", c.Params("id"), cfg.ChannelID)
		return c.JSON(cfg)
	})

	admin.Get("/servers/:id/config", func(c *fiber.Ctx) error {
		cfg, err := servers.Get(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load config", "cause": err.Error()})
		}
		return c.JSON(cfg)
	})

	admin.Patch("/servers/:id/config", func(c *fiber.Ctx) error {
		var patch models.ServerConfigPatch
		if err := c.BodyParser(&patch); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}

		cfg, err := servers.Configure(c.Params("id"), patch)
		if err != nil {
			if errors.Is(err, services.ErrPrefixTooLong) || errors.Is(err, services.ErrInvalidInterval) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "config update failed", "cause": err.Error()})
		}
		return c.JSON(cfg)
	})

	// Force an immediate spawn into the server's configured channel.
	admin.Post("/servers/:id/spawn", func(c *fiber.Ctx) error {
		serverID := c.Params("id")
		cfg, err := servers.Get(serverID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load config", "cause": err.Error()})
		}
		if cfg.ChannelID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": services.ErrNoChannelBound.Error()})
		}

		entity := spawns.Spawn(serverID, cfg.ChannelID)
		log.Printf("🐟 [Admin] Forced spawn %s in server %s", entity.ID, serverID)
		if announcer != nil {
			announcer.AnnounceSpawn(entity)
		}
		return c.Status(fiber.StatusCreated).JSON(entity)
	})
}
