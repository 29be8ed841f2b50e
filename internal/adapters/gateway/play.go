package gateway

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ronb12/kaden-adelynn-space-adventures-sub003/internal/core"
)

// handleMove relays a position update to everyone else in the room.
// Unbound connections and departed members are silently dropped: position
// churn racing a disconnect is expected traffic, not an error.
func (ctl *Controller) handleMove(sid core.SessionID, c core.Conn, data []byte) {
	var p movePayload
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendError(c, "bad_payload")
		return
	}
	b, ok := ctl.bindings.Get(sid)
	if !ok || b.RoomID == "" {
		return
	}
	ctl.registry.UpdateMemberPosition(b.RoomID, b.PlayerID, p.Position)
	ctl.broadcastRoom(b.RoomID, sid, playerMovedFrame{
		Type:     MsgPlayerMoved,
		PlayerID: b.PlayerID,
		Position: p.Position,
	})
}

// handleShoot relays the bullet descriptor, sender excluded. Nothing is
// stored server-side.
func (ctl *Controller) handleShoot(sid core.SessionID, c core.Conn, data []byte) {
	var p shootPayload
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendError(c, "bad_payload")
		return
	}
	b, ok := ctl.bindings.Get(sid)
	if !ok || b.RoomID == "" {
		ctl.sendError(c, "not in a room")
		return
	}
	ctl.broadcastRoom(b.RoomID, sid, playerShotFrame{
		Type:     MsgPlayerShot,
		PlayerID: b.PlayerID,
		Bullet:   p.Bullet,
	})
}

// handleHit relays reported damage to the whole room, sender included. The
// server mirrors the damage onto the target's occupancy record but applies
// no combat authority of its own.
func (ctl *Controller) handleHit(sid core.SessionID, c core.Conn, data []byte) {
	var p hitPayload
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendError(c, "bad_payload")
		return
	}
	b, ok := ctl.bindings.Get(sid)
	if !ok || b.RoomID == "" {
		ctl.sendError(c, "not in a room")
		return
	}

	health, killed, _ := ctl.registry.ApplyMemberDamage(b.RoomID, p.TargetID, p.Damage)
	if killed {
		ctl.registry.AddMemberScore(b.RoomID, p.AttackerID, 1)
	}

	ctl.broadcastRoom(b.RoomID, "", playerHitFrame{
		Type:       MsgPlayerHit,
		AttackerID: p.AttackerID,
		TargetID:   p.TargetID,
		Damage:     p.Damage,
		Health:     health,
	})
}

// handleChat relays the message with a server-stamped timestamp, sender
// excluded. Flood control applies per player.
func (ctl *Controller) handleChat(sid core.SessionID, c core.Conn, data []byte) {
	var p chatPayload
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendError(c, "bad_payload")
		return
	}
	b, ok := ctl.bindings.Get(sid)
	if !ok || b.RoomID == "" {
		ctl.sendError(c, "not in a room")
		return
	}
	if !ctl.chatLimiter.Allow(b.PlayerID) {
		log.Warn().Str("module", "gateway").Str("player_id", string(b.PlayerID)).Msg("chat rate limited")
		ctl.sendError(c, "too many messages")
		return
	}

	var name string
	for _, m := range ctl.registry.MembersOf(b.RoomID) {
		if m.PlayerID == b.PlayerID {
			name = m.Name
			break
		}
	}
	ctl.broadcastRoom(b.RoomID, sid, chatFrame{
		Type:       MsgChatMessage,
		PlayerID:   b.PlayerID,
		PlayerName: name,
		Message:    p.Message,
		Timestamp:  time.Now(),
	})
}

// handleGameState stores the opaque blob (last-write-wins) and mirrors it
// to everyone else in the room.
func (ctl *Controller) handleGameState(sid core.SessionID, c core.Conn, data []byte) {
	var p gameStatePayload
	if err := json.Unmarshal(data, &p); err != nil {
		ctl.sendError(c, "bad_payload")
		return
	}
	b, ok := ctl.bindings.Get(sid)
	if !ok || b.RoomID == "" {
		ctl.sendError(c, "not in a room")
		return
	}
	ctl.registry.SetGameState(b.RoomID, p.GameState)
	ctl.broadcastRoom(b.RoomID, sid, gameStateFrame{
		Type:      MsgGameStateUpdated,
		GameState: p.GameState,
	})
}
