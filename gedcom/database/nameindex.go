package database

import (
	"sort"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/lesfleursdelanuitdev/deadends-go/gedcom"
)

// defaultNameKeyCacheSize bounds the memoized name-to-namekey cache; large
// Gedcom files repeat surnames heavily, so this buys real hit rate without
// holding every distinct name string forever.
const defaultNameKeyCacheSize = 4096

// NameIndex maps phonetic name keys (spec §4.6) to the set of record keys
// of persons with a matching NAME value. Gedcom.NameKey computations are
// memoized in an LRU cache since the same surname recurs across many
// persons in a typical file.
type NameIndex struct {
	mu       sync.RWMutex
	index    map[string]map[string]struct{}
	keyCache *lru.Cache[string, string]
}

// NewNameIndex creates an empty NameIndex with a memoized name-key cache.
func NewNameIndex() *NameIndex {
	cache, _ := lru.New[string, string](defaultNameKeyCacheSize)
	return &NameIndex{
		index:    make(map[string]map[string]struct{}),
		keyCache: cache,
	}
}

// nameKeyOf returns the memoized NameKey for a Gedcom name value.
func (idx *NameIndex) nameKeyOf(name string) string {
	if cached, ok := idx.keyCache.Get(name); ok {
		return cached
	}
	key := gedcom.NameKey(name)
	idx.keyCache.Add(name, key)
	return key
}

// InsertName computes name's phonetic key and adds recordKey to its set,
// returning the computed key.
func (idx *NameIndex) InsertName(name, recordKey string) string {
	nameKey := idx.nameKeyOf(name)
	idx.Insert(nameKey, recordKey)
	return nameKey
}

// Insert adds recordKey to the set mapped by nameKey. Set membership
// deduplicates (spec §4.6).
func (idx *NameIndex) Insert(nameKey, recordKey string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	set, ok := idx.index[nameKey]
	if !ok {
		set = make(map[string]struct{})
		idx.index[nameKey] = set
	}
	set[recordKey] = struct{}{}
}

// Search returns the record keys mapped by nameKey, sorted for a
// deterministic result; callers needing the sorted-sequence guarantee of
// spec §4.9 should copy into a Sequence first regardless.
func (idx *NameIndex) Search(nameKey string) []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	set, ok := idx.index[nameKey]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// Stats returns the number of distinct name keys and the total number of
// record-key memberships across all of them.
func (idx *NameIndex) Stats() (numNameKeys, numRecordKeys int) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	numNameKeys = len(idx.index)
	for _, set := range idx.index {
		numRecordKeys += len(set)
	}
	return numNameKeys, numRecordKeys
}
