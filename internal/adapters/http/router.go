package http

import (
	"context"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ronb12/kaden-adelynn-space-adventures-sub003/internal/adapters/gateway"
	"github.com/ronb12/kaden-adelynn-space-adventures-sub003/internal/app"
	"github.com/ronb12/kaden-adelynn-space-adventures-sub003/internal/config"
)

// ClientTokenMiddleware gives every browser a stable token used as the
// gateway session id, so a reconnect is recognizable across upgrades.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = uuid.NewString()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, registry *app.Registry, store *app.SnapshotStore, ctl *gateway.Controller) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	sessionStore := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("GameSessions", sessionStore))
	r.Use(ClientTokenMiddleware())

	h := &directoryHandlers{registry: registry, store: store}

	r.GET("/healthz", h.health)

	api := r.Group("/api")
	api.GET("/rooms", h.listRooms)
	api.POST("/rooms", h.createRoom)
	api.GET("/rooms/:id", h.getRoom)
	api.POST("/players", h.registerPlayer)
	api.GET("/players/:id", h.getPlayer)

	api.GET("/ws", func(c *gin.Context) {
		ctl.HandleWS(ctx, c)
	})

	log.Info().Str("module", "adapters.http").Msg("router setup")
	return r
}
