package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"

	"hatemates/internal/app"
	"hatemates/internal/auth"
	"hatemates/internal/cache"
	"hatemates/internal/config"
	"hatemates/internal/db"
	"hatemates/internal/logger"
	"hatemates/internal/server"
	"hatemates/internal/service/account"
	"hatemates/internal/service/match"
)

func main() {
	// Missing .env is fine, the environment may already be set.
	_ = godotenv.Load()

	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Error("failed to connect to redis", "err", err)
		return
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.TTLMin) * time.Minute,
	}

	appCtx := app.New(cfg, database, redisCache, log, jwter)

	registrars := []server.Registrar{
		account.NewRegistrar(appCtx),
		match.NewRegistrar(appCtx),
	}

	if cfg.App.ENV == "development" {
		if err := db.SeedTestData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	engine := server.NewEngine(appCtx, registrars...)

	addr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Info("starting HTTP server", "addr", addr)

	if err := engine.Run(addr); err != nil {
		log.Error("HTTP server exited", "err", err)
	}
}
