package gemini

import (
	"context"
	"errors"
	"fmt"
	"time"

	"line-knowledge-bot/internal/domain"
	"line-knowledge-bot/internal/ports/output"
	"line-knowledge-bot/pkg/metrics"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

var _ output.DocumentStore = (*DocumentStore)(nil)

const listPageSize = 20

// DocumentStore struct - Output adapter for Gemini File Search stores
type DocumentStore struct {
	client *Client
}

// NewDocumentStore func - Create document store adapter
func NewDocumentStore(client *Client) *DocumentStore {
	return &DocumentStore{client: client}
}

// ListStores func - Page through every File Search store
func (s *DocumentStore) ListStores(ctx context.Context) ([]domain.StoreInfo, error) {
	defer metrics.ObserveRemote("list_stores", time.Now())

	stores, err := retry(ctx, s.client, "list stores", func() ([]domain.StoreInfo, error) {
		var out []domain.StoreInfo
		page, err := s.client.genai.FileSearchStores.List(ctx, &genai.ListFileSearchStoresConfig{PageSize: listPageSize})
		for {
			if errors.Is(err, genai.ErrPageDone) {
				return out, nil
			}
			if err != nil {
				return nil, err
			}
			for _, store := range page.Items {
				out = append(out, domain.StoreInfo{
					Handle:      domain.StoreHandle(store.Name),
					DisplayName: store.DisplayName,
				})
			}
			if page.NextPageToken == "" {
				return out, nil
			}
			page, err = page.Next(ctx)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("list file search stores: %w: %v", domain.ErrRemoteFault, err)
	}
	return stores, nil
}

// CreateStore func - Create a File Search store
func (s *DocumentStore) CreateStore(ctx context.Context, displayName string) (domain.StoreHandle, error) {
	defer metrics.ObserveRemote("create_store", time.Now())

	store, err := s.client.genai.FileSearchStores.Create(ctx, &genai.CreateFileSearchStoreConfig{
		DisplayName: displayName,
	})
	if err != nil {
		return "", fmt.Errorf("create file search store %s: %w: %v", displayName, domain.ErrRemoteFault, err)
	}

	logrus.Infof("Created file search store %s for %s", store.Name, displayName)
	return domain.StoreHandle(store.Name), nil
}

// ListDocuments func - Page through every document of a store
func (s *DocumentStore) ListDocuments(ctx context.Context, handle domain.StoreHandle) ([]domain.DocumentDescriptor, error) {
	defer metrics.ObserveRemote("list_documents", time.Now())

	docs, err := retry(ctx, s.client, "list documents", func() ([]domain.DocumentDescriptor, error) {
		var out []domain.DocumentDescriptor
		page, err := s.client.genai.FileSearchStores.Documents.List(ctx, string(handle), &genai.ListDocumentsConfig{PageSize: listPageSize})
		for {
			if errors.Is(err, genai.ErrPageDone) {
				return out, nil
			}
			if err != nil {
				return nil, err
			}
			for _, doc := range page.Items {
				out = append(out, toDocumentDescriptor(doc))
			}
			if page.NextPageToken == "" {
				return out, nil
			}
			page, err = page.Next(ctx)
		}
	})
	if err != nil {
		return nil, remoteFault("list documents of "+string(handle), err)
	}
	return docs, nil
}

// Upload func - Upload a local file into a store
func (s *DocumentStore) Upload(ctx context.Context, handle domain.StoreHandle, filePath, displayName string) (*domain.OperationRef, error) {
	defer metrics.ObserveRemote("upload", time.Now())

	op, err := s.client.genai.FileSearchStores.UploadToFileSearchStoreFromPath(ctx, filePath, string(handle), &genai.UploadToFileSearchStoreConfig{
		DisplayName: displayName,
	})
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w: %v", displayName, domain.ErrRemoteFault, err)
	}
	return &domain.OperationRef{Name: op.Name, Raw: op}, nil
}

// PollOperation func - Refresh an upload operation
func (s *DocumentStore) PollOperation(ctx context.Context, ref *domain.OperationRef) (bool, error) {
	op, ok := ref.Raw.(*genai.UploadToFileSearchStoreOperation)
	if !ok || op == nil {
		return false, fmt.Errorf("poll operation %s: %w: unexpected operation type %T", ref.Name, domain.ErrRemoteFault, ref.Raw)
	}

	if !op.Done {
		refreshed, err := s.client.genai.Operations.GetUploadToFileSearchStoreOperation(ctx, op, nil)
		if err != nil {
			return false, fmt.Errorf("poll operation %s: %w: %v", ref.Name, domain.ErrRemoteFault, err)
		}
		op = refreshed
		ref.Raw = refreshed
	}

	if !op.Done {
		return false, nil
	}
	if len(op.Error) > 0 {
		return true, fmt.Errorf("operation %s failed: %w: %v", ref.Name, domain.ErrRemoteFault, op.Error)
	}
	return true, nil
}

// DeleteDocument func - Force-delete a document and its chunks
func (s *DocumentStore) DeleteDocument(ctx context.Context, documentName string) error {
	defer metrics.ObserveRemote("delete_document", time.Now())

	err := s.client.genai.FileSearchStores.Documents.Delete(ctx, documentName, &genai.DeleteDocumentConfig{
		Force: genai.Ptr(true),
	})
	if err != nil {
		return remoteFault("delete document "+documentName, err)
	}
	return nil
}

func toDocumentDescriptor(doc *genai.Document) domain.DocumentDescriptor {
	return domain.DocumentDescriptor{
		BackendName: doc.Name,
		DisplayName: doc.DisplayName,
		CreatedAt:   doc.CreateTime,
	}
}
