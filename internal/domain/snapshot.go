package domain

import (
	"encoding/json"
	"time"
)

// Snapshot is the full durable state written to disk. Live occupancy and
// connection bindings are deliberately absent: after a restart, rooms
// reload with zero members.
type Snapshot struct {
	Rooms      map[RoomID]*Room           `json:"rooms"`
	Players    map[PlayerID]*Player       `json:"players"`
	GameStates map[RoomID]json.RawMessage `json:"gameStates"`
	Timestamp  time.Time                  `json:"timestamp"`
}

func EmptySnapshot() Snapshot {
	return Snapshot{
		Rooms:      make(map[RoomID]*Room),
		Players:    make(map[PlayerID]*Player),
		GameStates: make(map[RoomID]json.RawMessage),
	}
}
