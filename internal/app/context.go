package app

import (
	"log/slog"

	"gorm.io/gorm"

	"hatemates/internal/auth"
	"hatemates/internal/cache"
	"hatemates/internal/config"
)

// AppContext holds shared dependencies (DB, Redis, Logger, JWT, config).
type AppContext struct {
	Cfg        *config.Config
	DB         *gorm.DB
	RedisCache *cache.RedisCache
	Logger     *slog.Logger
	JWT        *auth.JWTer
}

// New creates a new AppContext
func New(cfg *config.Config, db *gorm.DB, rdb *cache.RedisCache, logger *slog.Logger, jwter *auth.JWTer) *AppContext {
	return &AppContext{
		Cfg:        cfg,
		DB:         db,
		RedisCache: rdb,
		Logger:     logger,
		JWT:        jwter,
	}
}
