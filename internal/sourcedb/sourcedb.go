// Package sourcedb stores ingested index sources in SQL databases.
package sourcedb

import (
	"sync"

	"github.com/huangsam/ensoview/internal/contract"
)

// SourceStoreManager holds the process-wide SourceStore.
type SourceStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	store        contract.SourceStore
}

// GetStore returns the database store, or nil when the file backend is active.
func (mgr *SourceStoreManager) GetStore() contract.SourceStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.store
}
