package output

import "line-knowledge-bot/internal/domain"

// CitationCache interface - Output port
// Holds the citations of the most recent answer per logical store.
type CitationCache interface {
	// Store replaces the citations of a logical store. At most domain.MaxCitations are kept.
	Store(logicalID domain.LogicalStoreID, citations []domain.Citation)

	// Get returns the citation at the 1-based index of the current entry.
	// Returns domain.ErrStaleReference for a missing key or an out-of-range index.
	Get(logicalID domain.LogicalStoreID, index int) (domain.Citation, error)
}
