package output

import "line-knowledge-bot/internal/domain"

// SessionStore interface - Output port
// Defines what the application needs for keeping one conversational context per session key.
// Implementations must be safe for concurrent access.
type SessionStore interface {
	// GetSession retrieves the session stored under key.
	// Returns nil if the session does not exist or has expired. Expired sessions are
	// discarded on access (lazy cleanup) and valid sessions have LastActiveAt refreshed.
	// The returned entry is a snapshot; mutating it does not affect the store.
	GetSession(key domain.SessionKey) *domain.SessionEntry

	// UpdateSession creates or replaces the session under entry.Key (last write wins).
	// LastActiveAt is set to the current time.
	UpdateSession(entry *domain.SessionEntry)

	// DeleteSession removes the session under key and reports whether an entry was removed.
	DeleteSession(key domain.SessionKey) bool

	// SweepExpired removes every expired session and returns how many were removed.
	SweepExpired() int

	// PeekSession returns a snapshot of the session without refreshing it, or nil.
	PeekSession(key domain.SessionKey) *domain.SessionEntry
}
