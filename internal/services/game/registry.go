package game

import "sync"

// Registry holds all live sessions by id. Ids increment monotonically and
// are never reused; sessions are removed once they reach a terminal state
// rather than accumulating for the life of the process.
type Registry struct {
	mu       sync.Mutex
	nextID   int64
	sessions map[int64]*Session
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[int64]*Session),
	}
}

// Create allocates the next session id and registers a new empty session
func (r *Registry) Create() *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := NewSession(r.nextID)
	r.sessions[r.nextID] = s
	r.nextID++
	return s
}

// Get returns the session with the given id, or nil
func (r *Registry) Get(id int64) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[id]
}

// Remove evicts a session. Removing an already-evicted id is a no-op.
func (r *Registry) Remove(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
