package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"line-knowledge-bot/internal/domain"
)

// MockLineClient implements output.LineClient for testing
type MockLineClient struct {
	ReplyMessageFunc      func(request domain.LineReplyMessageRequest) (*domain.LineMessageResponse, error)
	PushMessageFunc       func(request domain.LinePushMessageRequest) (*domain.LineMessageResponse, error)
	GetMessageContentFunc func(messageID string) (io.ReadCloser, error)
	GetProfileFunc        func(userID string) (string, error)

	// Captured values for assertions
	ReplyRequests []domain.LineReplyMessageRequest
	PushRequests  []domain.LinePushMessageRequest
}

func (m *MockLineClient) ReplyMessage(request domain.LineReplyMessageRequest) (*domain.LineMessageResponse, error) {
	m.ReplyRequests = append(m.ReplyRequests, request)
	if m.ReplyMessageFunc != nil {
		return m.ReplyMessageFunc(request)
	}
	return &domain.LineMessageResponse{Status: "ok"}, nil
}

func (m *MockLineClient) PushMessage(request domain.LinePushMessageRequest) (*domain.LineMessageResponse, error) {
	m.PushRequests = append(m.PushRequests, request)
	if m.PushMessageFunc != nil {
		return m.PushMessageFunc(request)
	}
	return &domain.LineMessageResponse{Status: "ok"}, nil
}

func (m *MockLineClient) GetProfile(userID string) (string, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(userID)
	}
	return "tester", nil
}

func (m *MockLineClient) GetMessageContent(messageID string) (io.ReadCloser, error) {
	if m.GetMessageContentFunc != nil {
		return m.GetMessageContentFunc(messageID)
	}
	return io.NopCloser(strings.NewReader("content of " + messageID)), nil
}

// LastReplyText returns the text of the last reply message
func (m *MockLineClient) LastReplyText() string {
	if len(m.ReplyRequests) == 0 {
		return ""
	}
	msgs := m.ReplyRequests[len(m.ReplyRequests)-1].Messages
	return msgs[len(msgs)-1].Text
}

// LastPush returns the last pushed message
func (m *MockLineClient) LastPush() domain.LineOutgoingMessage {
	if len(m.PushRequests) == 0 {
		return domain.LineOutgoingMessage{}
	}
	msgs := m.PushRequests[len(m.PushRequests)-1].Messages
	return msgs[len(msgs)-1]
}

// MockDocumentStore implements output.DocumentStore for testing.
// Stores and documents live in memory; Func fields override the defaults.
type MockDocumentStore struct {
	mu sync.Mutex

	Stores    []domain.StoreInfo
	Documents map[domain.StoreHandle][]domain.DocumentDescriptor

	ListStoresFunc     func(ctx context.Context) ([]domain.StoreInfo, error)
	ListDocumentsFunc  func(ctx context.Context, handle domain.StoreHandle) ([]domain.DocumentDescriptor, error)
	UploadFunc         func(ctx context.Context, handle domain.StoreHandle, filePath, displayName string) (*domain.OperationRef, error)
	PollOperationFunc  func(ctx context.Context, ref *domain.OperationRef) (bool, error)
	DeleteDocumentFunc func(ctx context.Context, documentName string) error

	// Call tracking
	ListStoresCalls int
	CreateCalls     []string
	UploadCalls     []string
	PollCalls       int
	DeleteCalls     []string
}

func (m *MockDocumentStore) ListStores(ctx context.Context) ([]domain.StoreInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListStoresCalls++
	if m.ListStoresFunc != nil {
		return m.ListStoresFunc(ctx)
	}
	return append([]domain.StoreInfo(nil), m.Stores...), nil
}

func (m *MockDocumentStore) CreateStore(ctx context.Context, displayName string) (domain.StoreHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, displayName)
	handle := domain.StoreHandle("fileSearchStores/" + displayName)
	m.Stores = append(m.Stores, domain.StoreInfo{Handle: handle, DisplayName: displayName})
	return handle, nil
}

func (m *MockDocumentStore) ListDocuments(ctx context.Context, handle domain.StoreHandle) ([]domain.DocumentDescriptor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListDocumentsFunc != nil {
		return m.ListDocumentsFunc(ctx, handle)
	}
	return append([]domain.DocumentDescriptor(nil), m.Documents[handle]...), nil
}

func (m *MockDocumentStore) Upload(ctx context.Context, handle domain.StoreHandle, filePath, displayName string) (*domain.OperationRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UploadCalls = append(m.UploadCalls, filePath)
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, handle, filePath, displayName)
	}
	if m.Documents == nil {
		m.Documents = make(map[domain.StoreHandle][]domain.DocumentDescriptor)
	}
	m.Documents[handle] = append(m.Documents[handle], domain.DocumentDescriptor{
		BackendName: string(handle) + "/documents/" + displayName,
		DisplayName: displayName,
	})
	return &domain.OperationRef{Name: "operations/" + displayName}, nil
}

func (m *MockDocumentStore) PollOperation(ctx context.Context, ref *domain.OperationRef) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PollCalls++
	if m.PollOperationFunc != nil {
		return m.PollOperationFunc(ctx, ref)
	}
	return true, nil
}

func (m *MockDocumentStore) DeleteDocument(ctx context.Context, documentName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, documentName)
	if m.DeleteDocumentFunc != nil {
		return m.DeleteDocumentFunc(ctx, documentName)
	}
	return nil
}

// MockConversation implements domain.Conversation for testing
type MockConversation struct {
	ID       int
	SendFunc func(ctx context.Context, text string) (*domain.Answer, error)
	Sent     []string
}

func (m *MockConversation) Send(ctx context.Context, text string) (*domain.Answer, error) {
	m.Sent = append(m.Sent, text)
	if m.SendFunc != nil {
		return m.SendFunc(ctx, text)
	}
	return &domain.Answer{Text: "answer to " + text}, nil
}

// MockConversationClient implements output.ConversationClient for testing
type MockConversationClient struct {
	CreateConversationFunc func(ctx context.Context, systemPrompt string, handle domain.StoreHandle) (domain.Conversation, error)
	GenerateFunc           func(ctx context.Context, query string, handle domain.StoreHandle) (*domain.Answer, error)
	DescribeImageFunc      func(ctx context.Context, data []byte, mimeType string) (string, error)

	// Captured values for assertions
	Created         []*MockConversation
	CreatedHandles  []domain.StoreHandle
	GenerateQueries []string
	LastImageMIME   string
}

func (m *MockConversationClient) CreateConversation(ctx context.Context, systemPrompt string, handle domain.StoreHandle) (domain.Conversation, error) {
	m.CreatedHandles = append(m.CreatedHandles, handle)
	if m.CreateConversationFunc != nil {
		return m.CreateConversationFunc(ctx, systemPrompt, handle)
	}
	conv := &MockConversation{ID: len(m.Created) + 1}
	m.Created = append(m.Created, conv)
	return conv, nil
}

func (m *MockConversationClient) Generate(ctx context.Context, query string, handle domain.StoreHandle) (*domain.Answer, error) {
	m.GenerateQueries = append(m.GenerateQueries, query)
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, query, handle)
	}
	return &domain.Answer{Text: "generated " + query}, nil
}

func (m *MockConversationClient) DescribeImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	m.LastImageMIME = mimeType
	if m.DescribeImageFunc != nil {
		return m.DescribeImageFunc(ctx, data, mimeType)
	}
	return "a cat", nil
}

// MockConverter implements output.DocumentConverter for testing
type MockConverter struct {
	ConvertFunc func(ctx context.Context, sourcePath, fromExt, toExt string) domain.ConversionJob
	Calls       []string
}

func (m *MockConverter) Convert(ctx context.Context, sourcePath, fromExt, toExt string) domain.ConversionJob {
	m.Calls = append(m.Calls, sourcePath)
	if m.ConvertFunc != nil {
		return m.ConvertFunc(ctx, sourcePath, fromExt, toExt)
	}
	return domain.ConversionJob{
		SourcePath:   sourcePath,
		TargetFormat: toExt,
		OutputPath:   domain.SwapExtension(sourcePath, toExt),
	}
}

// MockStager implements output.FileStager for testing
type MockStager struct {
	StageFunc func(content io.Reader, ext string) (string, error)
	Staged    []string
	Removed   []string
}

func (m *MockStager) Stage(content io.Reader, ext string) (string, error) {
	if m.StageFunc != nil {
		return m.StageFunc(content, ext)
	}
	if _, err := io.ReadAll(content); err != nil {
		return "", err
	}
	path := "/tmp/staged" + ext
	m.Staged = append(m.Staged, path)
	return path, nil
}

func (m *MockStager) Remove(path string) error {
	m.Removed = append(m.Removed, path)
	return nil
}

// MockIngestionRepository implements output.IngestionRepository for testing
type MockIngestionRepository struct {
	Records   []domain.IngestionRecord
	Condition *domain.QueryIngestionRequest
	PingErr   error
}

func (m *MockIngestionRepository) CreateRecord(record *domain.IngestionRecord) (*domain.IngestionResponse, error) {
	m.Records = append(m.Records, *record)
	return &domain.IngestionResponse{LogicalID: record.LogicalID, Outcome: record.Outcome}, nil
}

func (m *MockIngestionRepository) GetRecords(condition domain.QueryIngestionRequest) (*domain.IngestionListResponse, error) {
	m.Condition = &condition
	return &domain.IngestionListResponse{CurrentPage: condition.Page}, nil
}

func (m *MockIngestionRepository) Ping() error {
	return m.PingErr
}

// MockStoreHandleCache implements output.StoreHandleCache and never remembers anything
type MockStoreHandleCache struct{}

func (MockStoreHandleCache) Get(domain.LogicalStoreID) (domain.StoreHandle, bool) { return "", false }
func (MockStoreHandleCache) Set(domain.LogicalStoreID, domain.StoreHandle)        {}

var errBoom = errors.New("boom")
