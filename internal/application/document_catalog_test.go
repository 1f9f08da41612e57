package application

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"line-knowledge-bot/internal/domain"
)

func TestListPaginatesElevenPerPage(t *testing.T) {
	f := newFixture(true)
	var names []string
	for i := 1; i <= 25; i++ {
		names = append(names, fmt.Sprintf("doc%02d.pdf", i))
	}
	f.withDocuments("user_U1", names...)

	first := f.catalog.List(context.Background(), "user_U1", 1)
	if first.Carousel == nil {
		t.Fatal("expected a carousel")
	}
	if len(first.Carousel.Documents) != DocumentsPerPage || first.Carousel.TotalPages != 3 || first.Carousel.TotalDocs != 25 {
		t.Errorf("unexpected first page %+v", first.Carousel)
	}
	if first.Carousel.Documents[0].Document.DisplayName != "doc25.pdf" {
		t.Errorf("expected newest first, got %s", first.Carousel.Documents[0].Document.DisplayName)
	}
	if first.Carousel.PrevData != "" || first.Carousel.NextData != "action=list_files&page=2&store=user_U1" {
		t.Errorf("unexpected navigation %q / %q", first.Carousel.PrevData, first.Carousel.NextData)
	}

	last := f.catalog.List(context.Background(), "user_U1", 9)
	if last.Carousel.Page != 3 || len(last.Carousel.Documents) != 3 {
		t.Errorf("expected clamped last page with 3 documents, got page %d with %d", last.Carousel.Page, len(last.Carousel.Documents))
	}
	if last.Carousel.NextData != "" {
		t.Error("expected no next page on the last page")
	}
}

func TestListWithoutStore(t *testing.T) {
	f := newFixture(true)

	if reply := f.catalog.List(context.Background(), "user_U1", 1); reply.Text != msgNoDocuments || reply.Carousel != nil {
		t.Errorf("expected no documents reply, got %+v", reply)
	}
	if len(f.store.CreateCalls) != 0 {
		t.Error("expected listing never to create a store")
	}
}

func TestDeleteDocumentOfOwnStore(t *testing.T) {
	f := newFixture(true)
	handle := f.withDocuments("user_U1", "a.pdf")
	name := string(handle) + "/documents/a.pdf"

	reply := f.catalog.Delete(context.Background(), "user_U1", name)

	if reply.Text != msgDeleteSucceeded {
		t.Errorf("unexpected reply %q", reply.Text)
	}
	if len(f.store.DeleteCalls) != 1 || f.store.DeleteCalls[0] != name {
		t.Errorf("expected delete of %s, got %v", name, f.store.DeleteCalls)
	}
	if len(reply.QuickActions) != 1 || !strings.HasPrefix(reply.QuickActions[0].Data, "action=list_files") {
		t.Errorf("expected list files quick action, got %+v", reply.QuickActions)
	}
}

func TestDeleteRefusesForeignDocument(t *testing.T) {
	f := newFixture(true)
	f.withDocuments("user_U1", "a.pdf")
	other := f.withDocuments("group_G1", "b.pdf")

	reply := f.catalog.Delete(context.Background(), "user_U1", string(other)+"/documents/b.pdf")

	if reply.Text != msgDeleteFailed {
		t.Errorf("expected refusal, got %q", reply.Text)
	}
	if len(f.store.DeleteCalls) != 0 {
		t.Error("expected no delete call for a foreign document")
	}
}

func TestDeleteFailure(t *testing.T) {
	f := newFixture(true)
	handle := f.withDocuments("user_U1", "a.pdf")
	f.store.DeleteDocumentFunc = func(ctx context.Context, documentName string) error {
		return domain.ErrRemoteFault
	}

	if reply := f.catalog.Delete(context.Background(), "user_U1", string(handle)+"/documents/a.pdf"); reply.Text != msgDeleteFailed {
		t.Errorf("expected delete failure reply, got %q", reply.Text)
	}
}
