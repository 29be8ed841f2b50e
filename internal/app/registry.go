package app

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/ronb12/kaden-adelynn-space-adventures-sub003/internal/core"
	"github.com/ronb12/kaden-adelynn-space-adventures-sub003/internal/domain"
)

type roomEntry struct {
	room      *domain.Room
	occupancy *core.Occupancy
}

// Registry is the authoritative store of rooms, players and per-room game
// state. All mutation goes through its methods; no component reaches into
// its maps. The registry mutex guards the maps themselves, each room's
// occupancy carries its own lock for the capacity critical section.
type Registry struct {
	mu         sync.RWMutex
	rooms      map[domain.RoomID]*roomEntry
	players    map[domain.PlayerID]*domain.Player
	gameStates map[domain.RoomID]json.RawMessage
}

func NewRegistry() *Registry {
	return &Registry{
		rooms:      make(map[domain.RoomID]*roomEntry),
		players:    make(map[domain.PlayerID]*domain.Player),
		gameStates: make(map[domain.RoomID]json.RawMessage),
	}
}

func (r *Registry) CreateRoom(name string, maxPlayers int, mode domain.GameMode) (*domain.Room, error) {
	room, err := domain.NewRoom(name, maxPlayers, mode)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.rooms[room.ID] = &roomEntry{
		room:      room,
		occupancy: core.NewOccupancy(room.MaxPlayers),
	}
	r.mu.Unlock()
	log.Info().Str("module", "app.registry").Str("room_id", string(room.ID)).Str("name", name).Msg("created room")

	out := *room
	return &out, nil
}

// GetRoom returns a copy with IsActive derived from live occupancy.
func (r *Registry) GetRoom(id domain.RoomID) (domain.Room, error) {
	r.mu.RLock()
	e, ok := r.rooms[id]
	r.mu.RUnlock()
	if !ok {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	room := *e.room
	room.IsActive = e.occupancy.Count() > 0
	return room, nil
}

func (r *Registry) ListRooms() []domain.RoomSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.RoomSummary, 0, len(r.rooms))
	for id, e := range r.rooms {
		count := e.occupancy.Count()
		out = append(out, domain.RoomSummary{
			ID:         id,
			Name:       e.room.Name,
			Players:    count,
			MaxPlayers: e.room.MaxPlayers,
			GameMode:   e.room.GameMode,
			IsActive:   count > 0,
		})
	}
	return out
}

func (r *Registry) RegisterPlayer(name, avatar string) (*domain.Player, error) {
	player, err := domain.NewPlayer(name, avatar)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.players[player.ID] = player
	r.mu.Unlock()
	log.Info().Str("module", "app.registry").Str("player_id", string(player.ID)).Str("name", name).Msg("registered player")

	out := *player
	return &out, nil
}

func (r *Registry) GetPlayer(id domain.PlayerID) (domain.Player, error) {
	r.mu.RLock()
	p, ok := r.players[id]
	r.mu.RUnlock()
	if !ok {
		return domain.Player{}, domain.ErrPlayerNotFound
	}
	return *p, nil
}

// AttachMember joins a player into a room's live occupancy. Re-joining with
// the same player id replaces the existing record instead of duplicating.
func (r *Registry) AttachMember(roomID domain.RoomID, playerID domain.PlayerID, name string) (domain.RoomMember, error) {
	r.mu.RLock()
	e, ok := r.rooms[roomID]
	r.mu.RUnlock()
	if !ok {
		return domain.RoomMember{}, domain.ErrRoomNotFound
	}
	m, err := e.occupancy.Attach(playerID, name)
	if err != nil {
		return domain.RoomMember{}, err
	}
	log.Info().Str("module", "app.registry").Str("room_id", string(roomID)).Str("player_id", string(playerID)).Msg("member attached")
	return *m, nil
}

// DetachMember is a no-op when the room or member is absent: leave and
// disconnect are expected to race.
func (r *Registry) DetachMember(roomID domain.RoomID, playerID domain.PlayerID) {
	r.mu.RLock()
	e, ok := r.rooms[roomID]
	r.mu.RUnlock()
	if !ok {
		return
	}
	if e.occupancy.Detach(playerID) {
		log.Info().Str("module", "app.registry").Str("room_id", string(roomID)).Str("player_id", string(playerID)).Msg("member detached")
	}
}

func (r *Registry) UpdateMemberPosition(roomID domain.RoomID, playerID domain.PlayerID, pos domain.Vector2D) {
	r.mu.RLock()
	e, ok := r.rooms[roomID]
	r.mu.RUnlock()
	if !ok {
		return
	}
	e.occupancy.UpdatePosition(playerID, pos)
}

// ApplyMemberDamage mirrors client-reported damage into the occupancy
// record. The server stores what was reported and never simulates combat.
func (r *Registry) ApplyMemberDamage(roomID domain.RoomID, playerID domain.PlayerID, damage int) (health int, killed bool, ok bool) {
	r.mu.RLock()
	e, found := r.rooms[roomID]
	r.mu.RUnlock()
	if !found {
		return 0, false, false
	}
	return e.occupancy.ApplyDamage(playerID, damage)
}

func (r *Registry) AddMemberScore(roomID domain.RoomID, playerID domain.PlayerID, delta int) {
	r.mu.RLock()
	e, ok := r.rooms[roomID]
	r.mu.RUnlock()
	if !ok {
		return
	}
	e.occupancy.AddScore(playerID, delta)
}

func (r *Registry) MembersOf(roomID domain.RoomID) []domain.RoomMember {
	r.mu.RLock()
	e, ok := r.rooms[roomID]
	r.mu.RUnlock()
	if !ok {
		return nil
	}
	return e.occupancy.Snapshot()
}

// SetGameState stores an opaque client blob, last-write-wins. Unknown room
// ids are dropped silently (disconnect races).
func (r *Registry) SetGameState(roomID domain.RoomID, state json.RawMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[roomID]; !ok {
		return
	}
	r.gameStates[roomID] = state
}

func (r *Registry) GetGameState(roomID domain.RoomID) (json.RawMessage, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.gameStates[roomID]
	return s, ok
}

// Snapshot copies the durable subset of the registry: rooms without their
// occupancy, players, game states.
func (r *Registry) Snapshot() domain.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snap := domain.EmptySnapshot()
	for id, e := range r.rooms {
		room := *e.room
		room.IsActive = e.occupancy.Count() > 0
		snap.Rooms[id] = &room
	}
	for id, p := range r.players {
		player := *p
		snap.Players[id] = &player
	}
	for id, s := range r.gameStates {
		snap.GameStates[id] = s
	}
	return snap
}

// Restore replaces registry contents from a loaded snapshot. Rooms come
// back with empty occupancy, so the active flag resets regardless of what
// was saved.
func (r *Registry) Restore(snap domain.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms = make(map[domain.RoomID]*roomEntry, len(snap.Rooms))
	for id, room := range snap.Rooms {
		restored := *room
		restored.IsActive = false
		r.rooms[id] = &roomEntry{
			room:      &restored,
			occupancy: core.NewOccupancy(restored.MaxPlayers),
		}
	}
	r.players = make(map[domain.PlayerID]*domain.Player, len(snap.Players))
	for id, p := range snap.Players {
		player := *p
		r.players[id] = &player
	}
	r.gameStates = make(map[domain.RoomID]json.RawMessage, len(snap.GameStates))
	for id, s := range snap.GameStates {
		r.gameStates[id] = s
	}
	log.Info().Str("module", "app.registry").Int("rooms", len(r.rooms)).Int("players", len(r.players)).Msg("restored registry from snapshot")
}
