package gateway

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/ronb12/kaden-adelynn-space-adventures-sub003/internal/core"
	"github.com/ronb12/kaden-adelynn-space-adventures-sub003/internal/domain"
)

type bindingEntry struct {
	Conn     core.Conn
	RoomID   domain.RoomID
	PlayerID domain.PlayerID
	Cancel   context.CancelFunc
}

// Binding is the read-only view of one connection's session state.
type Binding struct {
	Conn     core.Conn
	RoomID   domain.RoomID
	PlayerID domain.PlayerID
}

// Bindings is the gateway-owned table mapping a session id to its transport
// and its current (room, player) association. Session state lives here and
// nowhere else — never on the socket object.
type Bindings struct {
	mu      sync.RWMutex
	entries map[core.SessionID]*bindingEntry
}

func NewBindings() *Bindings {
	return &Bindings{entries: make(map[core.SessionID]*bindingEntry)}
}

func (b *Bindings) Bind(sid core.SessionID, conn core.Conn, cancel context.CancelFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[sid] = &bindingEntry{Conn: conn, Cancel: cancel}
	log.Info().Str("module", "gateway.bindings").Str("sid", string(sid)).Msg("bound connection")
}

// SetRoom associates the connection with a (room, player) pair. At most one
// pair per connection; a re-join overwrites the previous association.
func (b *Bindings) SetRoom(sid core.SessionID, roomID domain.RoomID, playerID domain.PlayerID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.entries[sid]
	if !ok {
		return false
	}
	e.RoomID = roomID
	e.PlayerID = playerID
	return true
}

func (b *Bindings) ClearRoom(sid core.SessionID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if e, ok := b.entries[sid]; ok {
		e.RoomID = ""
		e.PlayerID = ""
	}
}

func (b *Bindings) Get(sid core.SessionID) (Binding, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	e, ok := b.entries[sid]
	if !ok {
		return Binding{}, false
	}
	return Binding{Conn: e.Conn, RoomID: e.RoomID, PlayerID: e.PlayerID}, true
}

// Unbind cancels the connection's context and drops its entry. Canceling
// here releases the child context from the server-lifetime parent, so a
// disconnected session leaves nothing behind.
func (b *Bindings) Unbind(sid core.SessionID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.entries[sid]
	if !ok {
		return
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	delete(b.entries, sid)
	log.Info().Str("module", "gateway.bindings").Str("sid", string(sid)).Msg("unbound connection")
}

type roomConn struct {
	SID  core.SessionID
	Conn core.Conn
}

// InRoom lists connections currently associated with the room.
func (b *Bindings) InRoom(roomID domain.RoomID) []roomConn {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]roomConn, 0, len(b.entries))
	for sid, e := range b.entries {
		if e.RoomID == roomID {
			out = append(out, roomConn{SID: sid, Conn: e.Conn})
		}
	}
	return out
}
