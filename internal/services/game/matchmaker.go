package game

import (
	"sync"

	"github.com/Sixteen1-6/Pong/internal/model"
)

// Ticket is one admitted connection's place in a match. Attachment carries
// whatever the transport layer needs to start the player's worker later
// (the first player of a pair is parked until an opponent arrives).
type Ticket struct {
	Session    *Session
	Side       model.Side
	Username   string
	Attachment any

	// Peer is the parked opposing ticket, set only on the admission that
	// completed the pair; both workers start at that point.
	Peer *Ticket
}

// Ready reports whether this admission completed a pair
func (t *Ticket) Ready() bool {
	return t.Peer != nil
}

// Matchmaker pairs admitted connections into sessions. There is exactly one
// pending slot: the first arrival occupies it as left, the next completes
// the pair as right, and an arrival after that starts a brand-new session.
type Matchmaker struct {
	registry *Registry

	mu      sync.Mutex
	pending *Ticket
}

// NewMatchmaker creates a Matchmaker backed by the registry
func NewMatchmaker(registry *Registry) *Matchmaker {
	return &Matchmaker{registry: registry}
}

// Admit places an authenticated connection. The returned ticket's Ready
// reports whether a pair just completed; if so, Peer is the waiting left
// player whose worker has not started yet.
func (m *Matchmaker) Admit(username string, attachment any) *Ticket {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending == nil {
		m.pending = &Ticket{
			Session:    m.registry.Create(),
			Side:       model.SideLeft,
			Username:   username,
			Attachment: attachment,
		}
		return m.pending
	}

	left := m.pending
	m.pending = nil

	return &Ticket{
		Session:    left.Session,
		Side:       model.SideRight,
		Username:   username,
		Attachment: attachment,
		Peer:       left,
	}
}

// Pending reports whether a player is parked waiting for an opponent
func (m *Matchmaker) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending != nil
}
