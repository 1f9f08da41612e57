package application

import (
	"sync"
	"time"

	"line-knowledge-bot/internal/adapters/output/memory"
	"line-knowledge-bot/internal/domain"
)

const testTimeout = time.Hour

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fixture wires every application service on top of mocks and the in-memory caches
type fixture struct {
	clock     *testClock
	line      *MockLineClient
	store     *MockDocumentStore
	conv      *MockConversationClient
	converter *MockConverter
	stager    *MockStager
	records   *MockIngestionRepository
	citations *memory.CitationCache

	resolver  *StoreResolver
	sessions  *SessionManager
	queries   *QueryOrchestrator
	catalog   *DocumentCatalog
	ingestion *IngestionPipeline
	service   *LineWebhookService
}

func newFixture(useSession bool) *fixture {
	f := &fixture{
		clock:     &testClock{now: time.Date(2025, 1, 8, 14, 0, 0, 0, time.UTC)},
		line:      &MockLineClient{},
		store:     &MockDocumentStore{Documents: map[domain.StoreHandle][]domain.DocumentDescriptor{}},
		conv:      &MockConversationClient{},
		converter: &MockConverter{},
		stager:    &MockStager{},
		records:   &MockIngestionRepository{},
		citations: memory.NewCitationCache(100, 0),
	}

	f.resolver = NewStoreResolver(f.store, memory.NewStoreHandleCache(), false)

	f.sessions = NewSessionManager(memory.NewMemorySessionStoreWithClock(testTimeout, f.clock.Now), f.conv, "", testTimeout)
	f.sessions.now = f.clock.Now

	f.queries = NewQueryOrchestrator(f.resolver, f.store, f.sessions, f.conv, f.citations, useSession)
	f.catalog = NewDocumentCatalog(f.resolver, f.store)
	f.ingestion = NewIngestionPipeline(f.resolver, f.store, f.converter, f.stager, f.records, time.Millisecond, 30*time.Millisecond)

	f.service = NewLineWebhookService(LineWebhookDeps{
		LineClient:    f.line,
		Conversations: f.conv,
		Stager:        f.stager,
		Queries:       f.queries,
		Catalog:       f.catalog,
		Ingestion:     f.ingestion,
		Sessions:      f.sessions,
	})
	return f
}

// withDocuments registers a store for logicalID holding the named documents
func (f *fixture) withDocuments(logicalID domain.LogicalStoreID, names ...string) domain.StoreHandle {
	handle := domain.StoreHandle("fileSearchStores/" + string(logicalID))
	f.store.Stores = append(f.store.Stores, domain.StoreInfo{Handle: handle, DisplayName: string(logicalID)})
	for i, name := range names {
		f.store.Documents[handle] = append(f.store.Documents[handle], domain.DocumentDescriptor{
			BackendName: string(handle) + "/documents/" + name,
			DisplayName: name,
			CreatedAt:   f.clock.Now().Add(time.Duration(i) * time.Minute),
		})
	}
	return handle
}
