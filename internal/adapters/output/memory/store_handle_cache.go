package memory

import (
	"line-knowledge-bot/internal/domain"
	"line-knowledge-bot/internal/ports/output"

	"github.com/patrickmn/go-cache"
)

var _ output.StoreHandleCache = (*StoreHandleCache)(nil)

// StoreHandleCache struct - process-lifetime memo of logical store -> backend handle.
// No expiration and no janitor: a logical store is never deleted by this service.
type StoreHandleCache struct {
	cache *cache.Cache
}

// NewStoreHandleCache creates an empty store handle cache
func NewStoreHandleCache() *StoreHandleCache {
	return &StoreHandleCache{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// Get returns the memoized handle of a logical store
func (s *StoreHandleCache) Get(logicalID domain.LogicalStoreID) (domain.StoreHandle, bool) {
	if x, found := s.cache.Get(string(logicalID)); found {
		return x.(domain.StoreHandle), true
	}
	return "", false
}

// Set memoizes the handle of a logical store
func (s *StoreHandleCache) Set(logicalID domain.LogicalStoreID, handle domain.StoreHandle) {
	s.cache.Set(string(logicalID), handle, cache.NoExpiration)
}

// Len returns the number of memoized handles
func (s *StoreHandleCache) Len() int {
	return s.cache.ItemCount()
}
