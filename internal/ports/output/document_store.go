package output

import (
	"context"

	"line-knowledge-bot/internal/domain"
)

// DocumentStore interface - Output port
// Remote document store keyed by opaque store handles. Every listing call fetches
// live server state; implementations must page through the full result.
type DocumentStore interface {
	// ListStores returns every store visible to the API key
	ListStores(ctx context.Context) ([]domain.StoreInfo, error)

	// CreateStore creates a store with the given display name
	CreateStore(ctx context.Context, displayName string) (domain.StoreHandle, error)

	// ListDocuments returns the documents inside a store
	ListDocuments(ctx context.Context, handle domain.StoreHandle) ([]domain.DocumentDescriptor, error)

	// Upload submits a local file for import into the store and returns the long-running operation
	Upload(ctx context.Context, handle domain.StoreHandle, filePath, displayName string) (*domain.OperationRef, error)

	// PollOperation refreshes a long-running operation and reports whether it is done.
	// A finished operation that carries an error is returned as an error.
	PollOperation(ctx context.Context, ref *domain.OperationRef) (bool, error)

	// DeleteDocument force-deletes a document (including its chunks)
	DeleteDocument(ctx context.Context, documentName string) error
}
