package core

import (
	"sync"

	"github.com/ronb12/kaden-adelynn-space-adventures-sub003/internal/domain"
)

// Occupancy is the threadsafe live member set of one room. It owns the
// capacity invariant: the check and the insert happen under one lock, so
// concurrent joins can never both pass the capacity check.
// It holds no transport resources and is never persisted.
type Occupancy struct {
	mu      sync.RWMutex
	max     int
	members []*domain.RoomMember
}

func NewOccupancy(maxPlayers int) *Occupancy {
	return &Occupancy{max: maxPlayers}
}

// Attach adds a member at the default spawn, or replaces the existing
// record in place when the player id is already present (re-join).
// Returns domain.ErrRoomFull when the room is at capacity.
func (o *Occupancy) Attach(id domain.PlayerID, name string) (*domain.RoomMember, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	m := domain.NewRoomMember(id, name)
	for i, existing := range o.members {
		if existing.PlayerID == id {
			o.members[i] = m
			return m, nil
		}
	}
	if len(o.members) >= o.max {
		return nil, domain.ErrRoomFull
	}
	o.members = append(o.members, m)
	return m, nil
}

// Detach removes the member if present. Absence is not an error: leave and
// disconnect race by design.
func (o *Occupancy) Detach(id domain.PlayerID) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i, m := range o.members {
		if m.PlayerID == id {
			o.members = append(o.members[:i], o.members[i+1:]...)
			return true
		}
	}
	return false
}

func (o *Occupancy) UpdatePosition(id domain.PlayerID, pos domain.Vector2D) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, m := range o.members {
		if m.PlayerID == id {
			m.Position = pos
			return true
		}
	}
	return false
}

// ApplyDamage mirrors client-reported damage onto the member record.
// Health clamps at zero; a member at zero is marked not alive. The mirror
// is bookkeeping for room_state, not combat authority.
func (o *Occupancy) ApplyDamage(id domain.PlayerID, damage int) (health int, killed bool, ok bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, m := range o.members {
		if m.PlayerID == id {
			wasAlive := m.IsAlive
			m.Health -= damage
			if m.Health <= 0 {
				m.Health = 0
				m.IsAlive = false
			}
			return m.Health, wasAlive && !m.IsAlive, true
		}
	}
	return 0, false, false
}

func (o *Occupancy) AddScore(id domain.PlayerID, delta int) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, m := range o.members {
		if m.PlayerID == id {
			m.Score += delta
			return true
		}
	}
	return false
}

func (o *Occupancy) Count() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.members)
}

// Snapshot returns member values in join order, detached from internal
// state so callers can serialize without holding the lock.
func (o *Occupancy) Snapshot() []domain.RoomMember {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]domain.RoomMember, 0, len(o.members))
	for _, m := range o.members {
		out = append(out, *m)
	}
	return out
}
