package gateway

import (
	"encoding/json"
	"time"

	"github.com/ronb12/kaden-adelynn-space-adventures-sub003/internal/domain"
)

// MessageType discriminates inbound and outbound frames. Adding a message
// kind means adding a constant, a payload struct and a case in dispatch —
// there is no stringly-typed fallthrough outside this file.
type MessageType string

// Inbound.
const (
	MsgJoinRoom        MessageType = "join_room"
	MsgLeaveRoom       MessageType = "leave_room"
	MsgPlayerMove      MessageType = "player_move"
	MsgPlayerShoot     MessageType = "player_shoot"
	MsgPlayerHit       MessageType = "player_hit"
	MsgChatMessage     MessageType = "chat_message"
	MsgGameStateUpdate MessageType = "game_state_update"
	MsgPing            MessageType = "ping"
)

// Outbound.
const (
	MsgRoomState        MessageType = "room_state"
	MsgPlayerJoined     MessageType = "player_joined"
	MsgPlayerLeft       MessageType = "player_left"
	MsgLeft             MessageType = "left"
	MsgPlayerMoved      MessageType = "player_moved"
	MsgPlayerShot       MessageType = "player_shot"
	MsgGameStateUpdated MessageType = "game_state_updated"
	MsgPong             MessageType = "pong"
	MsgError            MessageType = "error"
)

type envelope struct {
	Type MessageType `json:"type"`
}

type joinPayload struct {
	RoomID     domain.RoomID   `json:"roomId"`
	PlayerID   domain.PlayerID `json:"playerId"`
	PlayerName string          `json:"playerName"`
}

type leavePayload struct {
	RoomID   domain.RoomID   `json:"roomId,omitempty"`
	PlayerID domain.PlayerID `json:"playerId,omitempty"`
}

type movePayload struct {
	Position domain.Vector2D `json:"position"`
}

type shootPayload struct {
	Bullet json.RawMessage `json:"bullet"`
}

type hitPayload struct {
	AttackerID domain.PlayerID `json:"attackerId"`
	TargetID   domain.PlayerID `json:"targetId"`
	Damage     int             `json:"damage"`
}

type chatPayload struct {
	Message string `json:"message"`
}

type gameStatePayload struct {
	GameState json.RawMessage `json:"gameState"`
}

type roomStateFrame struct {
	Type      MessageType         `json:"type"`
	Room      domain.Room         `json:"room"`
	Members   []domain.RoomMember `json:"members"`
	GameState json.RawMessage     `json:"gameState,omitempty"`
}

type playerJoinedFrame struct {
	Type   MessageType       `json:"type"`
	Member domain.RoomMember `json:"member"`
}

type playerLeftFrame struct {
	Type     MessageType     `json:"type"`
	PlayerID domain.PlayerID `json:"playerId"`
}

type playerMovedFrame struct {
	Type     MessageType     `json:"type"`
	PlayerID domain.PlayerID `json:"playerId"`
	Position domain.Vector2D `json:"position"`
}

type playerShotFrame struct {
	Type     MessageType     `json:"type"`
	PlayerID domain.PlayerID `json:"playerId"`
	Bullet   json.RawMessage `json:"bullet"`
}

type playerHitFrame struct {
	Type       MessageType     `json:"type"`
	AttackerID domain.PlayerID `json:"attackerId"`
	TargetID   domain.PlayerID `json:"targetId"`
	Damage     int             `json:"damage"`
	Health     int             `json:"health"`
}

type chatFrame struct {
	Type       MessageType     `json:"type"`
	PlayerID   domain.PlayerID `json:"playerId"`
	PlayerName string          `json:"playerName"`
	Message    string          `json:"message"`
	Timestamp  time.Time       `json:"timestamp"`
}

type gameStateFrame struct {
	Type      MessageType     `json:"type"`
	GameState json.RawMessage `json:"gameState"`
}

type pongFrame struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
}

type errorFrame struct {
	Type  MessageType `json:"type"`
	Error string      `json:"error"`
}
