// Package domain contains entities without logic, just meta-data.
package domain

import (
	"time"

	"github.com/google/uuid"
)

const MaxRoomNameLen = 36

type (
	RoomID   string
	GameMode string
)

const (
	ModeCooperative GameMode = "cooperative"
	ModeCompetitive GameMode = "competitive"
)

const DefaultMaxPlayers = 4

// Room is the durable room record. Live occupancy is not part of it;
// it lives in core.Occupancy and is never snapshotted.
type Room struct {
	ID         RoomID    `json:"id"`
	Name       string    `json:"name"`
	GameMode   GameMode  `json:"gameMode"`
	MaxPlayers int       `json:"maxPlayers"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewRoom validates parameters and assigns a fresh id.
func NewRoom(name string, maxPlayers int, mode GameMode) (*Room, error) {
	if name == "" {
		return nil, ErrNameEmpty
	}
	if len(name) > MaxRoomNameLen {
		return nil, ErrNameTooLong
	}
	if maxPlayers < 1 {
		return nil, ErrInvalidCapacity
	}
	if mode == "" {
		mode = ModeCooperative
	}
	return &Room{
		ID:         RoomID(uuid.NewString()),
		Name:       name,
		GameMode:   mode,
		MaxPlayers: maxPlayers,
		CreatedAt:  time.Now(),
	}, nil
}

// RoomSummary is the list-view shape served by the directory API.
type RoomSummary struct {
	ID         RoomID   `json:"id"`
	Name       string   `json:"name"`
	Players    int      `json:"players"`
	MaxPlayers int      `json:"maxPlayers"`
	GameMode   GameMode `json:"gameMode"`
	IsActive   bool     `json:"isActive"`
}
