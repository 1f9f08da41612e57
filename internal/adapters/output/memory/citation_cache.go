package memory

import (
	"time"

	"line-knowledge-bot/internal/domain"
	"line-knowledge-bot/internal/ports/output"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

var _ output.CitationCache = (*CitationCache)(nil)

// CitationCache struct - Output adapter keeping the last answer's citations per logical store.
// Bounded by number of stores (least recently answered stores are dropped first).
type CitationCache struct {
	entries *expirable.LRU[domain.LogicalStoreID, []domain.Citation]
}

// NewCitationCache creates a citation cache holding at most maxStores entries.
// maxStores <= 0 means unbounded, ttl <= 0 means entries never expire.
func NewCitationCache(maxStores int, ttl time.Duration) *CitationCache {
	if maxStores < 0 {
		maxStores = 0
	}
	return &CitationCache{
		entries: expirable.NewLRU[domain.LogicalStoreID, []domain.Citation](maxStores, nil, ttl),
	}
}

// Store replaces the citations of a logical store. Only the first domain.MaxCitations are kept.
// Storing an empty list clears the entry so older indexes cannot resolve.
func (c *CitationCache) Store(logicalID domain.LogicalStoreID, citations []domain.Citation) {
	if len(citations) == 0 {
		c.entries.Remove(logicalID)
		return
	}
	n := min(len(citations), domain.MaxCitations)
	kept := make([]domain.Citation, n)
	copy(kept, citations[:n])
	c.entries.Add(logicalID, kept)
}

// Get returns the citation at the 1-based index of the current entry.
func (c *CitationCache) Get(logicalID domain.LogicalStoreID, index int) (domain.Citation, error) {
	citations, ok := c.entries.Get(logicalID)
	if !ok || index < 1 || index > len(citations) {
		return domain.Citation{}, domain.ErrStaleReference
	}
	return citations[index-1], nil
}
