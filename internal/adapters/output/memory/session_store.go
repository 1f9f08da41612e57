package memory

import (
	"sync"
	"time"

	"line-knowledge-bot/internal/domain"
	"line-knowledge-bot/internal/ports/output"
)

// Compile-time check to ensure MemorySessionStore implements SessionStore interface
var _ output.SessionStore = (*MemorySessionStore)(nil)

// MemorySessionStore struct - Output adapter for in-memory session storage
// A mutex-guarded map so that expiry checks, refreshes and replacements of one
// entry are atomic with respect to each other.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[domain.SessionKey]*domain.SessionEntry
	timeout  time.Duration
	now      func() time.Time
}

// NewMemorySessionStore creates a new in-memory session store.
// timeout: Duration of inactivity after which sessions expire
func NewMemorySessionStore(timeout time.Duration) *MemorySessionStore {
	return NewMemorySessionStoreWithClock(timeout, time.Now)
}

// NewMemorySessionStoreWithClock creates a session store reading time from now
func NewMemorySessionStoreWithClock(timeout time.Duration, now func() time.Time) *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[domain.SessionKey]*domain.SessionEntry),
		timeout:  timeout,
		now:      now,
	}
}

// GetTimeout returns the configured session timeout duration.
func (m *MemorySessionStore) GetTimeout() time.Duration {
	return m.timeout
}

// GetSession retrieves the session stored under key.
// Expired sessions are deleted (lazy cleanup) and nil is returned.
// LastActiveAt is refreshed for valid sessions.
func (m *MemorySessionStore) GetSession(key domain.SessionKey) *domain.SessionEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.sessions[key]
	if !exists {
		return nil
	}

	now := m.now()
	if entry.IsExpired(now, m.timeout) {
		delete(m.sessions, key)
		return nil
	}

	entry.Touch(now)
	snapshot := *entry
	return &snapshot
}

// PeekSession returns a snapshot without refreshing LastActiveAt. Expired entries read as absent.
func (m *MemorySessionStore) PeekSession(key domain.SessionKey) *domain.SessionEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.sessions[key]
	if !exists || entry.IsExpired(m.now(), m.timeout) {
		return nil
	}
	snapshot := *entry
	return &snapshot
}

// UpdateSession creates or replaces the session under entry.Key.
func (m *MemorySessionStore) UpdateSession(entry *domain.SessionEntry) {
	stored := *entry
	m.mu.Lock()
	defer m.mu.Unlock()

	stored.Touch(m.now())
	m.sessions[stored.Key] = &stored
}

// DeleteSession removes the session under key and reports whether an entry was removed,
// including an expired entry the sweeper has not reached yet.
func (m *MemorySessionStore) DeleteSession(key domain.SessionKey) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[key]; !exists {
		return false
	}
	delete(m.sessions, key)
	return true
}

// SweepExpired removes all expired sessions and returns how many were removed.
func (m *MemorySessionStore) SweepExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for key, entry := range m.sessions {
		if entry.IsExpired(now, m.timeout) {
			delete(m.sessions, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions, expired or not
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
