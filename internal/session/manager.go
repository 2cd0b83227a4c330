package session

import (
	"sync"

	"cinematch-engine/internal/catalog"
)

// Manager holds the live sessions, one per username. Sessions are created at
// login and destroyed at logout; nothing outlives them except snapshots the
// caller chooses to persist.
type Manager struct {
	mu       sync.Mutex
	cat      *catalog.Catalog
	sessions map[string]*Session
}

func NewManager(cat *catalog.Catalog) *Manager {
	return &Manager{
		cat:      cat,
		sessions: make(map[string]*Session),
	}
}

// Login returns the session for username, creating an empty one if needed.
// Auth is accept-any by design; the credential check lives with the caller.
func (m *Manager) Login(username string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[username]; ok {
		return s
	}
	s := New(username, m.cat)
	m.sessions[username] = s
	return s
}

// Get returns the live session for username, if any.
func (m *Manager) Get(username string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[username]
	return s, ok
}

// Logout destroys the session. Reports whether one existed.
func (m *Manager) Logout(username string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[username]
	delete(m.sessions, username)
	return ok
}
