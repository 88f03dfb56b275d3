package database

import (
	"sort"
	"sync"

	"github.com/lesfleursdelanuitdev/deadends-go/gedcom"
)

// keyLess orders two record keys with the short-before-long rule of spec
// §3: a shorter key sorts before a longer one regardless of content;
// equal-length keys break ties lexicographically.
func keyLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

// RootList is a sorted set of record roots of one kind, maintained in key
// order. Insert rejects a key already present; the per-type list is a
// denormalization of the primary index kept for deterministic iteration.
type RootList struct {
	mu    sync.RWMutex
	roots []*gedcom.Node
}

// NewRootList creates an empty RootList.
func NewRootList() *RootList {
	return &RootList{}
}

// Insert adds root at its sorted position. Returns false, leaving the list
// unchanged, if a root with the same key is already present.
func (l *RootList) Insert(root *gedcom.Node) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := sort.Search(len(l.roots), func(i int) bool {
		return !keyLess(l.roots[i].Key, root.Key)
	})
	if i < len(l.roots) && l.roots[i].Key == root.Key {
		return false
	}
	l.roots = append(l.roots, nil)
	copy(l.roots[i+1:], l.roots[i:])
	l.roots[i] = root
	return true
}

// Roots returns the list's roots in sorted key order. The slice is a copy;
// mutating it does not affect the RootList.
func (l *RootList) Roots() []*gedcom.Node {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*gedcom.Node, len(l.roots))
	copy(out, l.roots)
	return out
}

// Len returns the number of roots in the list.
func (l *RootList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.roots)
}
