package gateway

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/ronb12/kaden-adelynn-space-adventures-sub003/internal/core"
	"github.com/ronb12/kaden-adelynn-space-adventures-sub003/internal/domain"
)

func (ctl *Controller) handleJoin(sid core.SessionID, c core.Conn, data []byte) {
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "gateway").Msg("bad join payload")
		ctl.sendError(c, "bad_payload")
		return
	}
	if p.RoomID == "" || p.PlayerID == "" || p.PlayerName == "" {
		ctl.sendError(c, "roomId, playerId and playerName are required")
		return
	}

	// One (room, player) pair per connection: joining while already in a
	// room leaves the old one first.
	if b, ok := ctl.bindings.Get(sid); ok && b.RoomID != "" && b.RoomID != p.RoomID {
		ctl.registry.DetachMember(b.RoomID, b.PlayerID)
		ctl.broadcastRoom(b.RoomID, sid, playerLeftFrame{Type: MsgPlayerLeft, PlayerID: b.PlayerID})
	}

	member, err := ctl.registry.AttachMember(p.RoomID, p.PlayerID, p.PlayerName)
	switch {
	case errors.Is(err, domain.ErrRoomNotFound):
		ctl.sendError(c, "room not found")
		return
	case errors.Is(err, domain.ErrRoomFull):
		ctl.sendError(c, "room is full")
		return
	case err != nil:
		ctl.sendError(c, "join failed")
		return
	}

	ctl.bindings.SetRoom(sid, p.RoomID, p.PlayerID)
	log.Info().Str("module", "gateway").Str("sid", string(sid)).Str("room_id", string(p.RoomID)).Str("player_id", string(p.PlayerID)).Msg("join")

	room, _ := ctl.registry.GetRoom(p.RoomID)
	state := roomStateFrame{
		Type:    MsgRoomState,
		Room:    room,
		Members: ctl.registry.MembersOf(p.RoomID),
	}
	if gs, ok := ctl.registry.GetGameState(p.RoomID); ok {
		state.GameState = gs
	}
	ctl.sendJSON(c, state)

	ctl.broadcastRoom(p.RoomID, sid, playerJoinedFrame{Type: MsgPlayerJoined, Member: member})
}

func (ctl *Controller) handleLeave(sid core.SessionID, c core.Conn, data []byte) {
	var p leavePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "gateway").Msg("bad leave payload")
		ctl.sendError(c, "bad_payload")
		return
	}

	b, bound := ctl.bindings.Get(sid)
	roomID, playerID := p.RoomID, p.PlayerID
	if roomID == "" && bound {
		roomID = b.RoomID
	}
	if playerID == "" && bound {
		playerID = b.PlayerID
	}
	if roomID == "" || playerID == "" {
		ctl.sendJSON(c, envelope{Type: MsgLeft})
		return
	}

	ctl.registry.DetachMember(roomID, playerID)
	// Only drop the association when the connection left its own room; an
	// explicit leave naming some other pair must not orphan this one.
	if bound && b.RoomID == roomID && b.PlayerID == playerID {
		ctl.bindings.ClearRoom(sid)
	}
	log.Info().Str("module", "gateway").Str("sid", string(sid)).Str("room_id", string(roomID)).Msg("leave")

	ctl.sendJSON(c, envelope{Type: MsgLeft})
	ctl.broadcastRoom(roomID, sid, playerLeftFrame{Type: MsgPlayerLeft, PlayerID: playerID})
}
