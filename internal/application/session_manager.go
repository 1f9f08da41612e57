package application

import (
	"context"
	"fmt"
	"time"

	"line-knowledge-bot/internal/domain"
	"line-knowledge-bot/internal/ports/output"
	"line-knowledge-bot/pkg/metrics"

	"github.com/sirupsen/logrus"
)

// DefaultSystemPrompt is the fixed role description of every conversation
const DefaultSystemPrompt = `你是一個專業的文件分析助理。
- 使用 File Search 工具從使用者上傳的文件中找出相關內容來回答問題。
- 回答時請引用文件中的具體段落。
- 如果文件中沒有相關資訊，請誠實告知。
- 記住對話中先前提到的內容，讓後續問題可以延續上下文。
- 使用與使用者相同的語言回答。`

// SessionManager struct - keeps one conversational context per user per logical store
type SessionManager struct {
	store        output.SessionStore
	client       output.ConversationClient
	systemPrompt string
	timeout      time.Duration
	now          func() time.Time
}

// NewSessionManager func - Creates new session manager
func NewSessionManager(store output.SessionStore, client output.ConversationClient, systemPrompt string, timeout time.Duration) *SessionManager {
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}
	return &SessionManager{
		store:        store,
		client:       client,
		systemPrompt: systemPrompt,
		timeout:      timeout,
		now:          time.Now,
	}
}

// Timeout returns the inactivity timeout of sessions
func (m *SessionManager) Timeout() time.Duration {
	return m.timeout
}

// GetOrCreate func - Returns the live conversation under key, opening a new one when
// none exists or the previous one expired. The store binding is fixed at creation.
func (m *SessionManager) GetOrCreate(ctx context.Context, key domain.SessionKey, handle domain.StoreHandle, enableRetrieval bool) (domain.Conversation, error) {
	if entry := m.store.GetSession(key); entry != nil {
		metrics.SessionEvent("reused")
		return entry.Conversation, nil
	}

	bound := handle
	if !enableRetrieval {
		bound = ""
	}

	conversation, err := m.client.CreateConversation(ctx, m.systemPrompt, bound)
	if err != nil {
		return nil, fmt.Errorf("open conversation for %s: %w", key, err)
	}

	m.store.UpdateSession(domain.NewSessionEntry(key, conversation, bound, enableRetrieval, m.now()))
	metrics.SessionEvent("created")
	logrus.WithFields(logrus.Fields{"session": key, "store": bound}).Info("Opened new conversation")

	return conversation, nil
}

// Clear func - Discards the session under key and reports whether one existed
func (m *SessionManager) Clear(key domain.SessionKey) bool {
	cleared := m.store.DeleteSession(key)
	if cleared {
		metrics.SessionEvent("cleared")
	}
	return cleared
}

// SweepExpired func - Removes every expired session
func (m *SessionManager) SweepExpired() int {
	removed := m.store.SweepExpired()
	metrics.SessionsSwept(removed)
	if removed > 0 {
		logrus.Infof("Swept %d expired sessions", removed)
	}
	return removed
}

// Info func - Snapshot of the session under key without refreshing it
func (m *SessionManager) Info(key domain.SessionKey) (*domain.SessionInfo, bool) {
	entry := m.store.PeekSession(key)
	if entry == nil {
		return nil, false
	}
	return &domain.SessionInfo{
		Key:              entry.Key,
		BoundStoreHandle: entry.BoundStoreHandle,
		RetrievalEnabled: entry.RetrievalEnabled,
		LastActiveAt:     entry.LastActiveAt,
		Age:              m.now().Sub(entry.CreatedAt),
		Idle:             m.now().Sub(entry.LastActiveAt),
	}, true
}
