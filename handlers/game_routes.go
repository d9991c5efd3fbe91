package handlers

import (
	"errors"
	"strconv"

	"fish-catch-system/middleware"
	"fish-catch-system/models"
	"fish-catch-system/services"

	"github.com/gofiber/fiber/v2"
)

// SetupGameRoutes wires the gameplay command surface. All routes here run
// with user context forwarded by the gateway.
func SetupGameRoutes(app *fiber.App, claims *services.ClaimService, ledger *services.LedgerService) {
	user := app.Group("/", middleware.UserContextMiddleware())

	user.Post("/claim", func(c *fiber.Ctx) error {
		var req struct {
			SpawnID string `json:"spawn_id"`
		}
		if err := c.BodyParser(&req); err != nil || req.SpawnID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "spawn_id is required"})
		}

		userID := c.Locals("user_id").(string)
		displayName, _ := c.Locals("user_name").(string)

		result, err := claims.Claim(req.SpawnID, userID, displayName)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "claim failed", "cause": err.Error()})
		}

		switch result.Outcome {
		case services.ClaimNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no fish here — it swam away or was already caught"})
		case services.ClaimAlreadyClaimed:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "this fish was already caught"})
		}
		return c.JSON(result)
	})

	user.Get("/user/profile", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		record, err := ledger.Profile(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load profile", "cause": err.Error()})
		}
		return c.JSON(fiber.Map{
			"user_id":    userID,
			"level":      record.Level,
			"xp":         record.XP,
			"xp_needed":  record.XPToNextLevel(),
			"coins":      record.Coins,
			"total":      record.TotalCaught,
			"collection": record.Collection,
		})
	})

	user.Get("/user/inventory", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		record, err := ledger.Profile(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load inventory", "cause": err.Error()})
		}
		return c.JSON(fiber.Map{
			"items": record.InventoryCounts(),
			"total": len(record.Inventory),
		})
	})

	user.Get("/user/catches", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		limit, _ := strconv.Atoi(c.Query("limit", "20"))
		if limit < 1 || limit > 100 {
			limit = 20
		}
		return c.JSON(ledger.RecentCatches(userID, limit))
	})

	user.Get("/leaderboard", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "10"))
		if limit < 1 || limit > 100 {
			limit = 10
		}
		return c.JSON(ledger.Leaderboard(limit))
	})

	user.Get("/shop", func(c *fiber.Ctx) error {
		return c.JSON(models.ShopCatalog)
	})

	user.Post("/shop/buy", func(c *fiber.Ctx) error {
		var req struct {
			Item string `json:"item"`
		}
		if err := c.BodyParser(&req); err != nil || req.Item == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "item is required"})
		}

		shopItem, ok := models.FindShopItem(req.Item)
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": services.ErrUnknownItem.Error()})
		}

		userID := c.Locals("user_id").(string)
		record, err := ledger.Spend(userID, shopItem.Price, shopItem.ID)
		if err != nil {
			if errors.Is(err, services.ErrInsufficientFunds) {
				return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
					"error": "not enough coins",
					"price": shopItem.Price,
					"coins": record.Coins,
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "purchase failed", "cause": err.Error()})
		}
		return c.JSON(fiber.Map{
			"message": "purchase successful",
			"item":    shopItem,
			"coins":   record.Coins,
		})
	})

	app.Get("/stats", func(c *fiber.Ctx) error {
		return c.JSON(ledger.Stats())
	})
}
