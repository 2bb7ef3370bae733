package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store with a mutex-guarded in-process map. It is
// the default backend for single-process deployments and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	now      func() time.Time
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

// Create generates a token and records the session.
func (m *MemoryStore) Create(ctx context.Context, userID int64) (string, error) {
	if userID <= 0 {
		return "", ErrInvalidUserID
	}

	token, err := generateToken()
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.sessions[token] = Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: m.now(),
	}
	m.mu.Unlock()

	return token, nil
}

// Resolve returns the user id behind token, applying the lazy ttl check.
func (m *MemoryStore) Resolve(ctx context.Context, token string, ttl time.Duration) (int64, error) {
	if token == "" {
		return 0, ErrSessionNotFound
	}

	m.mu.RLock()
	record, ok := m.sessions[token]
	m.mu.RUnlock()

	if !ok {
		return 0, ErrSessionNotFound
	}
	if expired(record.CreatedAt, ttl, m.now()) {
		return 0, ErrSessionExpired
	}
	return record.UserID, nil
}

// Destroy removes every session owned by userID.
func (m *MemoryStore) Destroy(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for token, record := range m.sessions {
		if record.UserID == userID {
			delete(m.sessions, token)
		}
	}
	return nil
}

// Len returns the number of live records, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
