package application

import (
	"context"
	"errors"
	"fmt"

	"line-knowledge-bot/internal/domain"
	"line-knowledge-bot/internal/ports/output"
	"line-knowledge-bot/pkg/metrics"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// StoreResolver struct - maps a logical store id to its backend store handle.
// The backend store's display name equals the logical id.
type StoreResolver struct {
	store output.DocumentStore
	cache output.StoreHandleCache

	// group collapses concurrent EnsureExists calls for one key when set
	group *singleflight.Group
}

// NewStoreResolver func - Creates new store resolver
// singleFlight collapses concurrent create-if-missing calls for the same logical id.
// Without it two concurrent first uploads may both list, both miss and both create.
func NewStoreResolver(store output.DocumentStore, cache output.StoreHandleCache, singleFlight bool) *StoreResolver {
	r := &StoreResolver{
		store: store,
		cache: cache,
	}
	if singleFlight {
		r.group = &singleflight.Group{}
	}
	return r
}

// Resolve func - Read-only lookup. Returns domain.ErrStoreNotFound when no store is bound.
func (r *StoreResolver) Resolve(ctx context.Context, logicalID domain.LogicalStoreID) (domain.StoreHandle, error) {
	if handle, ok := r.cache.Get(logicalID); ok {
		metrics.ResolverEvent("hit")
		return handle, nil
	}
	metrics.ResolverEvent("miss")

	handle, err := r.lookup(ctx, logicalID)
	if err != nil {
		return "", err
	}
	if handle == "" {
		metrics.ResolverEvent("not_found")
		return "", fmt.Errorf("resolve %s: %w", logicalID, domain.ErrStoreNotFound)
	}

	r.cache.Set(logicalID, handle)
	return handle, nil
}

// EnsureExists func - Resolve or create the store of a logical id
func (r *StoreResolver) EnsureExists(ctx context.Context, logicalID domain.LogicalStoreID) (domain.StoreHandle, error) {
	if r.group == nil {
		return r.ensureExists(ctx, logicalID)
	}

	v, err, _ := r.group.Do(string(logicalID), func() (interface{}, error) {
		return r.ensureExists(ctx, logicalID)
	})
	if err != nil {
		return "", err
	}
	return v.(domain.StoreHandle), nil
}

func (r *StoreResolver) ensureExists(ctx context.Context, logicalID domain.LogicalStoreID) (domain.StoreHandle, error) {
	handle, err := r.Resolve(ctx, logicalID)
	if err == nil {
		return handle, nil
	}
	if !errors.Is(err, domain.ErrStoreNotFound) {
		return "", err
	}

	handle, err = r.store.CreateStore(ctx, string(logicalID))
	if err != nil {
		return "", fmt.Errorf("create store for %s: %w", logicalID, err)
	}
	metrics.ResolverEvent("created")
	logrus.WithField("logical_id", logicalID).Infof("Created store %s", handle)

	r.cache.Set(logicalID, handle)
	return handle, nil
}

// lookup lists the backend stores afresh and returns the handle whose display name matches
func (r *StoreResolver) lookup(ctx context.Context, logicalID domain.LogicalStoreID) (domain.StoreHandle, error) {
	stores, err := r.store.ListStores(ctx)
	if err != nil {
		return "", fmt.Errorf("list stores for %s: %w", logicalID, err)
	}

	for _, info := range stores {
		if info.DisplayName == string(logicalID) {
			return info.Handle, nil
		}
	}
	return "", nil
}
