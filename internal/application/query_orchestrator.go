package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"line-knowledge-bot/internal/domain"
	"line-knowledge-bot/internal/ports/output"
	"line-knowledge-bot/pkg/metrics"

	"github.com/sirupsen/logrus"
)

// QueryOrchestrator struct - answers questions against the documents of a logical store
type QueryOrchestrator struct {
	resolver      *StoreResolver
	store         output.DocumentStore
	sessions      *SessionManager
	conversations output.ConversationClient
	citations     output.CitationCache
	useSession    bool
}

// NewQueryOrchestrator func - Creates new query orchestrator
// useSession routes non-stateless questions through the per-user conversation.
func NewQueryOrchestrator(
	resolver *StoreResolver,
	store output.DocumentStore,
	sessions *SessionManager,
	conversations output.ConversationClient,
	citations output.CitationCache,
	useSession bool,
) *QueryOrchestrator {
	return &QueryOrchestrator{
		resolver:      resolver,
		store:         store,
		sessions:      sessions,
		conversations: conversations,
		citations:     citations,
		useSession:    useSession,
	}
}

// Ask func - Use case: answer a question. Never returns an error; every failure becomes a reply text.
func (o *QueryOrchestrator) Ask(ctx context.Context, req domain.AskRequest) domain.Reply {
	log := logrus.WithFields(logrus.Fields{"logical_id": req.LogicalID, "user_id": req.UserID})

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return domain.Reply{Text: msgEmptyQuery}
	}

	docs, err := o.documents(ctx, req.LogicalID)
	if err != nil {
		log.Errorf("Failed to check documents: %v", err)
		return domain.Reply{Text: msgSystemError}
	}
	if len(docs) == 0 {
		return domain.Reply{Text: msgNoDocuments}
	}

	handle, err := o.resolver.Resolve(ctx, req.LogicalID)
	if err != nil {
		log.Errorf("%v: %d documents listed but store handle unresolved: %v", domain.ErrStoreInconsistent, len(docs), err)
		return domain.Reply{Text: msgSystemError}
	}

	answer, err := o.answer(ctx, req, handle, query)
	if err != nil {
		log.Errorf("Failed to answer query: %v", err)
		return domain.Reply{Text: msgQueryFailed}
	}

	o.citations.Store(req.LogicalID, answer.Citations)

	text := strings.TrimSpace(answer.Text)
	if text == "" {
		text = msgEmptyAnswer
	}
	return domain.Reply{
		Text:         text,
		QuickActions: citationActions(min(len(answer.Citations), domain.MaxCitations)),
	}
}

// ViewCitation func - Use case: show a citation of the latest answer
func (o *QueryOrchestrator) ViewCitation(logicalID domain.LogicalStoreID, index int) domain.Reply {
	citation, err := o.citations.Get(logicalID, index)
	if err != nil {
		metrics.CitationLookup("stale")
		return domain.Reply{Text: msgStaleCitation}
	}
	metrics.CitationLookup("hit")
	return domain.Reply{Text: citationMessage(index, citation)}
}

// documents lists the live documents of a logical store. A store that does not
// exist yet holds zero documents.
func (o *QueryOrchestrator) documents(ctx context.Context, logicalID domain.LogicalStoreID) ([]domain.DocumentDescriptor, error) {
	handle, err := o.resolver.Resolve(ctx, logicalID)
	if errors.Is(err, domain.ErrStoreNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	docs, err := o.store.ListDocuments(ctx, handle)
	if errors.Is(err, domain.ErrStoreNotFound) {
		return nil, nil
	}
	return docs, err
}

func (o *QueryOrchestrator) answer(ctx context.Context, req domain.AskRequest, handle domain.StoreHandle, query string) (*domain.Answer, error) {
	if !o.useSession || req.Stateless {
		return o.conversations.Generate(ctx, query, handle)
	}

	conversation, err := o.sessions.GetOrCreate(ctx, domain.NewSessionKey(req.UserID, req.LogicalID), handle, true)
	if err != nil {
		return nil, err
	}
	answer, err := conversation.Send(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("send to conversation: %w", err)
	}
	return answer, nil
}

func citationActions(n int) []domain.QuickAction {
	if n == 0 {
		return nil
	}
	actions := make([]domain.QuickAction, 0, n)
	for i := 1; i <= n; i++ {
		actions = append(actions, domain.QuickAction{
			Label: fmt.Sprintf(citationLabelFormat, i),
			Data:  viewCitationData(i),
		})
	}
	return actions
}
