package domain

// Vector2D is a position in the game plane. The server never interprets
// coordinates beyond relaying them.
type Vector2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Default spawn for new members; clients may move immediately after join.
var DefaultSpawn = Vector2D{X: 400, Y: 500}

const DefaultHealth = 100

// RoomMember is the live occupancy record for a player inside one room.
// It is transient: created on join, dropped on leave/disconnect, and never
// part of the durable snapshot.
type RoomMember struct {
	PlayerID PlayerID `json:"playerId"`
	Name     string   `json:"name"`
	Position Vector2D `json:"position"`
	Health   int      `json:"health"`
	Score    int      `json:"score"`
	IsAlive  bool     `json:"isAlive"`
}

// NewRoomMember places the member at the default spawn with full health.
func NewRoomMember(id PlayerID, name string) *RoomMember {
	return &RoomMember{
		PlayerID: id,
		Name:     name,
		Position: DefaultSpawn,
		Health:   DefaultHealth,
		IsAlive:  true,
	}
}
