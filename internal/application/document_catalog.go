package application

import (
	"context"
	"errors"
	"sort"
	"strings"

	"line-knowledge-bot/internal/domain"
	"line-knowledge-bot/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// DocumentsPerPage fills a carousel together with the navigation bubble
const DocumentsPerPage = 11

// DocumentCatalog struct - lists and deletes the documents of a logical store
type DocumentCatalog struct {
	resolver *StoreResolver
	store    output.DocumentStore
}

// NewDocumentCatalog func - Creates new document catalog
func NewDocumentCatalog(resolver *StoreResolver, store output.DocumentStore) *DocumentCatalog {
	return &DocumentCatalog{
		resolver: resolver,
		store:    store,
	}
}

// List func - Use case: one page of the document carousel, newest first
func (c *DocumentCatalog) List(ctx context.Context, logicalID domain.LogicalStoreID, page int) domain.Reply {
	handle, err := c.resolver.Resolve(ctx, logicalID)
	if errors.Is(err, domain.ErrStoreNotFound) {
		return domain.Reply{Text: msgNoDocuments}
	}
	if err != nil {
		logrus.WithField("logical_id", logicalID).Errorf("Failed to resolve store: %v", err)
		return domain.Reply{Text: msgSystemError}
	}

	docs, err := c.store.ListDocuments(ctx, handle)
	if errors.Is(err, domain.ErrStoreNotFound) {
		return domain.Reply{Text: msgNoDocuments}
	}
	if err != nil {
		logrus.WithField("logical_id", logicalID).Errorf("Failed to list documents: %v", err)
		return domain.Reply{Text: msgSystemError}
	}
	if len(docs) == 0 {
		return domain.Reply{Text: msgNoDocuments}
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})

	totalPages := (len(docs) + DocumentsPerPage - 1) / DocumentsPerPage
	page = max(1, min(page, totalPages))
	start := (page - 1) * DocumentsPerPage
	end := min(start+DocumentsPerPage, len(docs))

	carousel := &domain.DocumentCarousel{
		Page:       page,
		TotalPages: totalPages,
		TotalDocs:  len(docs),
	}
	for _, doc := range docs[start:end] {
		carousel.Documents = append(carousel.Documents, domain.CarouselDocument{
			Document:   doc,
			DeleteData: deleteFileData(doc.BackendName),
		})
	}
	if page > 1 {
		carousel.PrevData = listFilesData(page-1, logicalID)
	}
	if page < totalPages {
		carousel.NextData = listFilesData(page+1, logicalID)
	}

	return domain.Reply{
		Text:     listAltText(len(docs), page, totalPages),
		Carousel: carousel,
	}
}

// Delete func - Use case: force-delete a document of the logical store.
// Documents outside the store bound to logicalID are refused.
func (c *DocumentCatalog) Delete(ctx context.Context, logicalID domain.LogicalStoreID, documentName string) domain.Reply {
	log := logrus.WithFields(logrus.Fields{"logical_id": logicalID, "document": documentName})

	handle, err := c.resolver.Resolve(ctx, logicalID)
	if err != nil {
		log.Warnf("Refusing delete, store unresolved: %v", err)
		return domain.Reply{Text: msgDeleteFailed}
	}
	if !strings.HasPrefix(documentName, string(handle)+"/") {
		log.Warnf("Refusing delete of document outside store %s", handle)
		return domain.Reply{Text: msgDeleteFailed}
	}

	if err := c.store.DeleteDocument(ctx, documentName); err != nil {
		log.Errorf("Failed to delete document: %v", err)
		return domain.Reply{Text: msgDeleteFailed}
	}

	log.Info("Document deleted")
	return domain.Reply{
		Text:         msgDeleteSucceeded,
		QuickActions: []domain.QuickAction{{Label: labelListFiles, Data: listFilesData(1, logicalID)}},
	}
}
