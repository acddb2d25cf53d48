// Package main is the entry point for the community wallet service. It
// loads configuration, opens the actor store, connects the optional global
// registry and starts the HTTP server.
package main

import (
	"os"
	"path/filepath"
	"time"

	"chama/internal/config"
	"chama/internal/repositories"
	"chama/internal/routes"
	"chama/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()

	var log *zap.Logger
	var err error
	if config.IsProduction() {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	dataPath := config.GetEnv("DATA_PATH", "data/chama.db")
	if err := os.MkdirAll(filepath.Dir(dataPath), 0o755); err != nil {
		log.Fatal("failed to create data directory", zap.Error(err))
	}
	st, err := store.Open(dataPath, log)
	if err != nil {
		log.Fatal("failed to open store", zap.Error(err))
	}
	defer st.Close()

	// The global registry is optional; without Redis the wallet still works,
	// it just isn't discoverable through cross-wallet indices.
	var rdb *redis.Client
	if addr := config.GetEnv("REDIS_ADDR", ""); addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: config.GetEnv("REDIS_PASSWORD", ""),
			DB:       config.GetIntEnv("REDIS_DB", 0),
		})
		defer rdb.Close()
		log.Info("global registry enabled", zap.String("addr", addr))
	} else {
		log.Warn("REDIS_ADDR not set, global registry disabled")
	}
	registry := repositories.NewRegistry(rdb, log)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, Stripe-Signature",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use("/api", limiter.New(limiter.Config{
		Max:        config.GetIntEnv("RATE_LIMIT", 60),
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"error":   "rate_limited",
			})
		},
	}))

	routes.SetupRoutes(app, st, registry, log)

	addr := ":" + config.GetEnv("PORT", "3000")
	log.Info("listening", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
