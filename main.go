package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"fish-catch-system/handlers"
	"fish-catch-system/middleware"
	"fish-catch-system/services"
	"fish-catch-system/utils"
	"fish-catch-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	recoverer "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New()

	// Unexpected handler panics become a generic 500 instead of killing
	// the process.
	app.Use(recoverer.New())

	// 🔐 GLOBAL: only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOrigins = "http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     "GET,POST,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-User-ID, X-User-Name, X-User-Roles",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dataDir := envString("DATA_DIR", "./data")
	store, err := services.NewStore(dataDir)
	if err != nil {
		log.Fatal("failed to initialize data store:", err)
	}

	startingCoins := envInt64("STARTING_COINS", 100)
	spawnTTL := time.Duration(envInt64("SPAWN_TTL_SECONDS", 300)) * time.Second
	spawnTick := time.Duration(envInt64("SPAWN_TICK_SECONDS", 180)) * time.Second
	spawnProbability := envFloat("SPAWN_PROBABILITY", 0.8)
	persistSpawns := envBool("PERSIST_ACTIVE_SPAWNS", true)

	ledger := services.NewLedgerService(store, startingCoins)
	servers := services.NewServerRegistry(store)
	spawns := services.NewSpawnRegistry(store, spawnTTL, persistSpawns)
	claims := services.NewClaimService(spawns, ledger, servers)

	// Announcer requires PLATFORM_API_URL and BOT_TOKEN; missing platform
	// credentials are fatal at startup.
	announcer := workers.NewSpawnAnnouncer()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go announcer.Start(ctx)

	if utils.R2Configured() {
		if err := utils.InitR2(); err != nil {
			log.Fatal("failed to initialize R2 client:", err)
		}
		go workers.PollSnapshots(ctx, store, 5*time.Minute)
	}

	scheduler := services.NewSpawnScheduler(servers, spawns, announcer, spawnTick, spawnProbability)
	if err := scheduler.Start(); err != nil {
		log.Fatal("failed to start spawn scheduler:", err)
	}
	defer scheduler.Stop()

	handlers.SetupGameRoutes(app, claims, ledger)
	handlers.SetupAdminRoutes(app, servers, spawns, announcer)
	handlers.SetupFeedRoutes(app, spawns, ledger)

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Server running on http://localhost:5300")
	log.Printf("✅ Data dir: %s (starting coins %d, TTL %s)", dataDir, startingCoins, spawnTTL)
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")

	<-ctx.Done()
	log.Println("Shutting down server...")
	_ = app.Shutdown()
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt64(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, using default %d", key, v, def)
		return def
	}
	return n
}

func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 || f > 1 {
		log.Printf("⚠️  Invalid %s=%q, using default %.2f", key, v, def)
		return def
	}
	return f
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, using default %t", key, v, def)
		return def
	}
	return b
}
