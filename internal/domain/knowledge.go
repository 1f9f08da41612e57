package domain

import (
	"context"
	"path/filepath"
	"strings"
	"time"
)

// LogicalStoreID is the conversation-scoped identity used to partition uploaded knowledge.
// It doubles as the display name of the backend store.
type LogicalStoreID string

// StoreHandle is the opaque backend-assigned identifier bound to a logical store
type StoreHandle string

// StoreInfo is one entry of a backend store listing
type StoreInfo struct {
	Handle      StoreHandle
	DisplayName string
}

// DocumentDescriptor describes a document inside a store. Always fetched live.
type DocumentDescriptor struct {
	BackendName string
	DisplayName string
	CreatedAt   time.Time
}

// OperationRef references a long-running backend operation
type OperationRef struct {
	Name string
	// Raw carries the adapter-specific operation value between Upload and PollOperation.
	Raw any
}

// CitationKind is the kind of evidence a citation points at
type CitationKind string

const (
	// CitationKindFile - excerpt retrieved from an uploaded document
	CitationKindFile CitationKind = "file"
	// CitationKindWeb - web source
	CitationKindWeb CitationKind = "web"
)

// MaxCitations is the number of citations kept per answer
const MaxCitations = 3

// CitationExcerptLimit is the maximum excerpt length (in runes) stored for file citations
const CitationExcerptLimit = 500

// Citation is an evidence snippet returned alongside a generated answer
type Citation struct {
	Kind    CitationKind
	Title   string
	Excerpt string // file citations
	URI     string // web citations
}

// Truncated reports whether the excerpt reached the stored length limit
func (c Citation) Truncated() bool {
	return c.Kind == CitationKindFile && len([]rune(c.Excerpt)) >= CitationExcerptLimit
}

// Answer is a generated reply with its grounding
type Answer struct {
	Text      string
	Citations []Citation
}

// Conversation is a live conversational-memory context. Sending keeps accumulating turns
// on the same context.
type Conversation interface {
	Send(ctx context.Context, text string) (*Answer, error)
}

var nativeExtensions = map[string]bool{
	".pdf":  true,
	".txt":  true,
	".docx": true,
	".html": true,
	".htm":  true,
	".md":   true,
	".csv":  true,
	".xml":  true,
	".rtf":  true,
}

var convertibleExtensions = map[string]string{
	".doc": ".docx",
	".ppt": ".pptx",
}

// FileExtension returns the lower-cased extension of a file name, including the dot
func FileExtension(fileName string) string {
	return strings.ToLower(filepath.Ext(fileName))
}

// IsNativeFormat reports whether the store accepts the extension as is
func IsNativeFormat(ext string) bool {
	return nativeExtensions[strings.ToLower(ext)]
}

// ConversionTarget returns the extension a legacy format converts to
func ConversionTarget(ext string) (string, bool) {
	target, ok := convertibleExtensions[strings.ToLower(ext)]
	return target, ok
}

// IsAcceptedFormat reports whether the extension passes the format gate
func IsAcceptedFormat(ext string) bool {
	if IsNativeFormat(ext) {
		return true
	}
	_, ok := ConversionTarget(ext)
	return ok
}

// NativeExtensions lists the natively supported extensions in display order
func NativeExtensions() []string {
	return []string{".pdf", ".txt", ".docx", ".html", ".htm", ".md", ".csv", ".xml", ".rtf"}
}

// SwapExtension replaces the extension of a file name
func SwapExtension(fileName, newExt string) string {
	return strings.TrimSuffix(fileName, filepath.Ext(fileName)) + newExt
}
