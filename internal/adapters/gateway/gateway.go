// Package gateway turns raw websocket frames into registry and broadcast
// operations: one read/write pump pair per connection, an explicit binding
// table for session state, room-scoped fan-out.
package gateway

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/ronb12/kaden-adelynn-space-adventures-sub003/internal/app"
	"github.com/ronb12/kaden-adelynn-space-adventures-sub003/internal/config"
	"github.com/ronb12/kaden-adelynn-space-adventures-sub003/internal/core"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Controller struct {
	cfg         *config.Config
	registry    *app.Registry
	bindings    *Bindings
	chatLimiter *ChatRateLimiter
}

func NewController(cfg *config.Config, registry *app.Registry) *Controller {
	return &Controller{
		cfg:         cfg,
		registry:    registry,
		bindings:    NewBindings(),
		chatLimiter: NewChatRateLimiter(cfg.ChatRateLimit, cfg.ChatRateWindow),
	}
}

// newSessionID derives a per-connection session id. The client token scopes
// it to the browser, but every connection gets its own unique suffix so two
// tabs sharing the cookie never collide in the binding table.
func newSessionID(token string) core.SessionID {
	id := uuid.NewString()
	if token == "" {
		return core.SessionID(id)
	}
	return core.SessionID(token + "." + id)
}

// HandleWS upgrades the request and starts the connection's pumps.
func (ctl *Controller) HandleWS(ctx context.Context, c *gin.Context) {
	sid := newSessionID(c.GetString("client_token"))
	log.Info().Str("module", "gateway").Str("sid", string(sid)).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "gateway").Msg("ws upgrade")
		return
	}
	if ctl.cfg.ReadLimit > 0 {
		ws.SetReadLimit(ctl.cfg.ReadLimit)
	}

	conn := newWSConn(ws)
	ctx, cancel := context.WithCancel(ctx)
	ctl.bindings.Bind(sid, conn, cancel)

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, sid, conn)
}
