package output

import "line-knowledge-bot/internal/domain"

// StoreHandleCache interface - Output port
// Process-lifetime memo of logical store -> backend handle. Entries never expire.
type StoreHandleCache interface {
	Get(logicalID domain.LogicalStoreID) (domain.StoreHandle, bool)
	Set(logicalID domain.LogicalStoreID, handle domain.StoreHandle)
}
