package core

// Frame is a raw outbound payload (already-encoded JSON text).
type Frame []byte

// SessionID identifies one live connection, not a player. A player that
// reconnects gets a new session id.
type SessionID string

// Conn abstracts the messaging transport.
// Owned by the adapter; the adapter must Close() it.
type Conn interface {
	TrySend(Frame) error
	Close()
}

// PublishResult reports delivery stats for one broadcast.
type PublishResult struct {
	SentTo  int
	Dropped int
}
