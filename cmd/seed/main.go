package main

import (
	"github.com/joho/godotenv"

	"hatemates/internal/config"
	"hatemates/internal/db"
	"hatemates/internal/logger"
)

// Standalone seeder: drops all data and repopulates the configured database
// with the demo dataset. Useful outside development mode, where the server
// does not seed on boot.
func main() {
	_ = godotenv.Load()

	cfg := config.New()
	logger.InitFromConfig(cfg)
	log := logger.L()

	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}

	if err := db.SeedTestData(database); err != nil {
		log.Error("failed to seed", "err", err)
		return
	}
	log.Info("seed complete")
}
