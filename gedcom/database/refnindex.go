package database

import "sync"

// RefnIndex maps user-reference (REFN) values to the single record key
// that owns them; insertion is rejected on collision (spec §4.5).
type RefnIndex struct {
	mu    sync.RWMutex
	index map[string]string
}

// NewRefnIndex creates an empty RefnIndex.
func NewRefnIndex() *RefnIndex {
	return &RefnIndex{index: make(map[string]string)}
}

// Add maps refn to key. Returns true ("added") if refn was new; otherwise
// returns false ("already-present") and leaves the existing mapping
// unchanged.
func (idx *RefnIndex) Add(refn, key string) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if _, ok := idx.index[refn]; ok {
		return false
	}
	idx.index[refn] = key
	return true
}

// Search returns the record key mapped to refn, or "", false if none.
func (idx *RefnIndex) Search(refn string) (string, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	key, ok := idx.index[refn]
	return key, ok
}

// Len returns the number of distinct REFN values indexed.
func (idx *RefnIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.index)
}
