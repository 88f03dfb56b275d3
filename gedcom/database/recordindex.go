package database

import (
	"fmt"
	"sync"

	"github.com/lesfleursdelanuitdev/deadends-go/gedcom"
)

// recordEntry pairs an indexed record root with the line it was defined at,
// so a later duplicate-key insert can report both locations (spec §4.3).
type recordEntry struct {
	root   *gedcom.Node
	lineNo int
}

// RecordIndex is the primary key index: every record with a key maps to its
// root node. Lookup is O(1) expected; insert rejects a second record under
// the same key.
type RecordIndex struct {
	mu      sync.RWMutex
	entries map[string]*recordEntry
}

// NewRecordIndex creates an empty RecordIndex.
func NewRecordIndex() *RecordIndex {
	return &RecordIndex{entries: make(map[string]*recordEntry)}
}

// Insert adds root under key, reporting a gedcom/severe error with both
// line numbers to log if key is already present. Returns true if the
// insert succeeded.
func (idx *RecordIndex) Insert(key string, root *gedcom.Node, lineNo int, log *gedcom.ErrorLog, filename string) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if existing, ok := idx.entries[key]; ok {
		log.Add(gedcom.ErrorGedcom, gedcom.SeveritySevere, filename, lineNo,
			fmt.Sprintf("duplicate key %s (first defined at line %d)", key, existing.lineNo))
		return false
	}
	idx.entries[key] = &recordEntry{root: root, lineNo: lineNo}
	return true
}

// Get returns the root stored under key, or nil if there is none.
func (idx *RecordIndex) Get(key string) *gedcom.Node {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	entry, ok := idx.entries[key]
	if !ok {
		return nil
	}
	return entry.root
}

// GetOfKind returns the root stored under key only if it has the given
// record kind, mirroring the original library's keyToPerson/keyToFamily/…
// family of accessors.
func (idx *RecordIndex) GetOfKind(key string, kind gedcom.RecordKind) *gedcom.Node {
	root := idx.Get(key)
	if root == nil || gedcom.KindOf(root) != kind {
		return nil
	}
	return root
}

// LineOf returns the line number key was defined at, or 0, false if key is
// not indexed. Combined with gedcom.CountBefore, this turns a node deep
// inside a record into the precise diagnostic line validators report
// (spec §4.8).
func (idx *RecordIndex) LineOf(key string) (int, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	entry, ok := idx.entries[key]
	if !ok {
		return 0, false
	}
	return entry.lineNo, true
}

// Has reports whether key is already indexed; used by key generation to
// probe for collisions.
func (idx *RecordIndex) Has(key string) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	_, ok := idx.entries[key]
	return ok
}

// Len returns the number of indexed records.
func (idx *RecordIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// CountOfKind returns the number of indexed records of the given kind.
func (idx *RecordIndex) CountOfKind(kind gedcom.RecordKind) int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	n := 0
	for _, entry := range idx.entries {
		if gedcom.KindOf(entry.root) == kind {
			n++
		}
	}
	return n
}

// ForEach calls fn for every indexed root, in unspecified order (spec
// §4.9's "Ordering guarantees": hash-indexed structures expose none).
func (idx *RecordIndex) ForEach(fn func(key string, root *gedcom.Node)) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	for key, entry := range idx.entries {
		fn(key, entry.root)
	}
}

// Roots returns every indexed root, in unspecified order (same guarantee
// as ForEach). Used by callers that want a slice rather than a callback,
// such as the randomize-keys command's emit step.
func (idx *RecordIndex) Roots() []*gedcom.Node {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	roots := make([]*gedcom.Node, 0, len(idx.entries))
	for _, entry := range idx.entries {
		roots = append(roots, entry.root)
	}
	return roots
}

// Rekey replaces the index's key->entry mapping with one reflecting
// old->new in remap, after callers have already relabeled each affected
// root's own Key field. Keys not present in remap are left untouched.
// Used by the randomize-keys command, which generates new keys through
// gedcom.GenerateKey (collision-checked against this same index's Has
// method and the keys it has already minted) before calling Rekey.
func (idx *RecordIndex) Rekey(remap map[string]string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	next := make(map[string]*recordEntry, len(idx.entries))
	for oldKey, entry := range idx.entries {
		newKey, ok := remap[oldKey]
		if !ok {
			newKey = oldKey
		}
		next[newKey] = entry
	}
	idx.entries = next
}
