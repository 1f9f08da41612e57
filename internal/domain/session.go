package domain

import "time"

// SessionKey identifies a session: one per user per logical store, so a user
// talking in a 1:1 chat and in a group holds two independent conversations
type SessionKey string

// NewSessionKey builds the session key of userID within logicalID
func NewSessionKey(userID string, logicalID LogicalStoreID) SessionKey {
	return SessionKey(userID + "|" + string(logicalID))
}

// SessionEntry is the conversational context owned by one user in one logical store
type SessionEntry struct {
	Key              SessionKey
	Conversation     Conversation
	CreatedAt        time.Time
	LastActiveAt     time.Time
	BoundStoreHandle StoreHandle
	RetrievalEnabled bool
}

// NewSessionEntry creates an entry that is active as of now
func NewSessionEntry(key SessionKey, conversation Conversation, handle StoreHandle, retrieval bool, now time.Time) *SessionEntry {
	return &SessionEntry{
		Key:              key,
		Conversation:     conversation,
		CreatedAt:        now,
		LastActiveAt:     now,
		BoundStoreHandle: handle,
		RetrievalEnabled: retrieval,
	}
}

// IsExpired reports whether the entry is no longer valid at now.
// An entry is valid only while now - LastActiveAt < timeout.
func (s *SessionEntry) IsExpired(now time.Time, timeout time.Duration) bool {
	return now.Sub(s.LastActiveAt) >= timeout
}

// Touch marks the entry as active at now
func (s *SessionEntry) Touch(now time.Time) {
	s.LastActiveAt = now
}

// SessionInfo is a read-only snapshot of a session entry
type SessionInfo struct {
	Key              SessionKey
	BoundStoreHandle StoreHandle
	RetrievalEnabled bool
	LastActiveAt     time.Time
	// Age is the time since the session was opened
	Age time.Duration
	// Idle is the time since the last activity
	Idle time.Duration
}
