package session

import (
	"context"
	"sync"
	"time"

	"storefront/internal/domain"
)

type memoryStore struct {
	mu       sync.Mutex
	sessions map[string]Session
	now      func() time.Time
}

// NewMemory returns a process-local Store. Expired entries are dropped lazily.
func NewMemory() Store {
	return &memoryStore{sessions: make(map[string]Session), now: time.Now}
}

func (m *memoryStore) Put(_ context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.sessions[s.Token]; ok && !cur.Expired(m.now()) {
		return domain.ErrAlreadyExists
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = m.now()
	}
	m.sessions[s.Token] = s
	return nil
}

func (m *memoryStore) Get(_ context.Context, token string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if s.Expired(m.now()) {
		delete(m.sessions, token)
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (m *memoryStore) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		return domain.ErrNotFound
	}
	delete(m.sessions, token)
	if s.Expired(m.now()) {
		return domain.ErrNotFound
	}
	return nil
}
