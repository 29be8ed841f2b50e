package domain

import (
	"time"

	"github.com/google/uuid"
)

const MaxPlayerNameLen = 36

type PlayerID string

// PlayerStats are lifetime aggregates, updated out-of-band from live play.
type PlayerStats struct {
	GamesPlayed int `json:"gamesPlayed"`
	Wins        int `json:"wins"`
	Kills       int `json:"kills"`
	Deaths      int `json:"deaths"`
}

// Player is the persistent identity record. It exists independently of any
// room or connection.
type Player struct {
	ID           PlayerID    `json:"id"`
	Name         string      `json:"name"`
	Avatar       string      `json:"avatar"`
	Level        int         `json:"level"`
	Experience   int64       `json:"experience"`
	Achievements []string    `json:"achievements"`
	Stats        PlayerStats `json:"stats"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// NewPlayer assigns a fresh id and zero-initializes progression.
func NewPlayer(name, avatar string) (*Player, error) {
	if name == "" {
		return nil, ErrNameEmpty
	}
	if len(name) > MaxPlayerNameLen {
		return nil, ErrNameTooLong
	}
	return &Player{
		ID:           PlayerID(uuid.NewString()),
		Name:         name,
		Avatar:       avatar,
		Level:        1,
		Achievements: []string{},
		CreatedAt:    time.Now(),
	}, nil
}
