package session

import (
	"context"
	"sync"
)

// MemoryStore is a process-local session store for single-instance
// deployments and tests. Not safe to share across instances.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[int64]*Session)}
}

// Get returns a copy of the stored session, or nil when absent.
func (m *MemoryStore) Get(_ context.Context, chatID int64) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[chatID]
	if !ok {
		return nil, nil
	}
	cp := *sess
	return &cp, nil
}

// Put stores a copy of the session.
func (m *MemoryStore) Put(_ context.Context, sess *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *sess
	m.sessions[sess.ChatID] = &cp
	return nil
}

// Clear removes a session.
func (m *MemoryStore) Clear(_ context.Context, chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, chatID)
	return nil
}
