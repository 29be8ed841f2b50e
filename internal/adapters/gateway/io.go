package gateway

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/ronb12/kaden-adelynn-space-adventures-sub003/internal/core"
)

func (ctl *Controller) writePump(ctx context.Context, c *wsConn) {
	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				log.Error().Err(err).Str("module", "gateway").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "gateway").Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *Controller) readPump(ctx context.Context, sid core.SessionID, c *wsConn) {
	defer func() {
		log.Info().Str("module", "gateway").Str("sid", string(sid)).Msg("readPump closing")
		ctl.handleDisconnect(sid)
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		default:
			if ctl.cfg.ReadTimeout > 0 {
				// Any inbound frame, ping included, refreshes the deadline.
				if err := c.conn.SetReadDeadline(time.Now().Add(ctl.cfg.ReadTimeout)); err != nil {
					return
				}
			}
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				log.Info().Err(err).Str("module", "gateway").Str("sid", string(sid)).Msg("readPump read error")
				return
			}
			ctl.dispatch(sid, c, data)
		}
	}
}

// dispatch decodes the type discriminator and routes to the handler.
// Malformed frames get a targeted error reply and the connection stays
// open; unknown types are logged and dropped without a reply.
func (ctl *Controller) dispatch(sid core.SessionID, c core.Conn, data []byte) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Warn().Err(err).Str("module", "gateway").Str("sid", string(sid)).Msg("undecodable frame")
		ctl.sendError(c, "bad_payload")
		return
	}

	switch env.Type {
	case MsgJoinRoom:
		ctl.handleJoin(sid, c, data)
	case MsgLeaveRoom:
		ctl.handleLeave(sid, c, data)
	case MsgPlayerMove:
		ctl.handleMove(sid, c, data)
	case MsgPlayerShoot:
		ctl.handleShoot(sid, c, data)
	case MsgPlayerHit:
		ctl.handleHit(sid, c, data)
	case MsgChatMessage:
		ctl.handleChat(sid, c, data)
	case MsgGameStateUpdate:
		ctl.handleGameState(sid, c, data)
	case MsgPing:
		ctl.handlePing(c)
	default:
		log.Warn().Str("module", "gateway").Str("type", string(env.Type)).Msg("unknown message type")
	}
}

// handleDisconnect is the only cleanup path for a closed connection: it
// synthesizes a leave for the bound (room, player) pair, then drops the
// binding.
func (ctl *Controller) handleDisconnect(sid core.SessionID) {
	if b, ok := ctl.bindings.Get(sid); ok && b.RoomID != "" {
		ctl.registry.DetachMember(b.RoomID, b.PlayerID)
		ctl.broadcastRoom(b.RoomID, sid, playerLeftFrame{Type: MsgPlayerLeft, PlayerID: b.PlayerID})
		log.Info().Str("module", "gateway").Str("sid", string(sid)).Str("room_id", string(b.RoomID)).Msg("disconnect leave")
	}
	ctl.bindings.Unbind(sid)
}
