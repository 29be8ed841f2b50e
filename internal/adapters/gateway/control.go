package gateway

import (
	"time"

	"github.com/ronb12/kaden-adelynn-space-adventures-sub003/internal/core"
)

func (ctl *Controller) handlePing(c core.Conn) {
	ctl.sendJSON(c, pongFrame{Type: MsgPong, Timestamp: time.Now()})
}
