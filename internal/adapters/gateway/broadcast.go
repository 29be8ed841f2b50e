package gateway

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/ronb12/kaden-adelynn-space-adventures-sub003/internal/core"
	"github.com/ronb12/kaden-adelynn-space-adventures-sub003/internal/domain"
)

// broadcastRoom fans one message out to every connection bound to the room,
// skipping exclude (pass "" to include everyone). Closed or backpressured
// connections are skipped and counted, never pruned here — pruning is the
// disconnect path's job.
func (ctl *Controller) broadcastRoom(roomID domain.RoomID, exclude core.SessionID, v any) core.PublishResult {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "gateway").Msg("broadcast marshal")
		return core.PublishResult{}
	}

	var res core.PublishResult
	for _, rc := range ctl.bindings.InRoom(roomID) {
		if rc.SID == exclude {
			continue
		}
		if err := rc.Conn.TrySend(data); err != nil {
			res.Dropped++
			continue
		}
		res.SentTo++
	}
	if res.Dropped > 0 {
		log.Warn().Str("module", "gateway").Str("room_id", string(roomID)).Int("dropped", res.Dropped).Msg("broadcast dropped frames")
	}
	return res
}

func (ctl *Controller) sendJSON(c core.Conn, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "gateway").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(data)
}

func (ctl *Controller) sendError(c core.Conn, msg string) {
	ctl.sendJSON(c, errorFrame{Type: MsgError, Error: msg})
}
