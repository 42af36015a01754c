package server

import (
	"github.com/gin-gonic/gin"

	"hatemates/internal/app"
	"hatemates/internal/logger"
)

// Registrar is a common interface for all HTTP feature registrars. Public
// routes mount on the first group, token-protected routes on the second.
type Registrar interface {
	Mount(public, authed *gin.RouterGroup)
}

// NewEngine builds the gin engine with the shared middleware stack and
// mounts all provided feature registrars under /api.
func NewEngine(appCtx *app.AppContext, registrars ...Registrar) *gin.Engine {
	if appCtx.Cfg.App.ENV != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		RequestID(),
		gin.Recovery(),
		logger.AccessLog(appCtx.Logger),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": 1}) })

	api := r.Group("/api")
	authed := api.Group("")
	authed.Use(Auth(appCtx))

	for _, reg := range registrars {
		reg.Mount(api, authed)
	}

	return r
}
