package lineage

import (
	"sort"

	"github.com/lesfleursdelanuitdev/deadends-go/gedcom"
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom/database"
)

// SortState is a Sequence's current sort state (spec §3 "Sequence").
type SortState int

const (
	SortNone SortState = iota
	SortByKey
	SortByName
)

// element is one entry in a Sequence: a record key, its cached name (only
// meaningful once name-sorted, or for a person element), and an arbitrary
// caller payload.
type element struct {
	key     string
	name    string
	payload interface{}
}

// Sequence is an ordered, possibly-duplicating collection of
// {record-key, cached-name?, payload?} tuples (spec §3). It carries a
// sort-state flag and a reference to the database whose record index
// resolves its keys.
type Sequence struct {
	elements []element
	sort     SortState
	db       *database.Database
}

// NewSequence creates an empty Sequence bound to db's record index.
func NewSequence(db *database.Database) *Sequence {
	return &Sequence{db: db}
}

// Len returns the number of elements, duplicates included.
func (s *Sequence) Len() int { return len(s.elements) }

// SortState returns the sequence's current sort state.
func (s *Sequence) SortState() SortState { return s.sort }

// Append adds (key, payload) to the end of the sequence; duplicates are
// permitted and this always invalidates any prior sort state (spec §4.10).
func (s *Sequence) Append(key string, payload interface{}) {
	s.elements = append(s.elements, element{key: key, payload: payload})
	s.sort = SortNone
}

// IsIn reports whether key appears anywhere in the sequence (linear scan,
// spec §4.10).
func (s *Sequence) IsIn(key string) bool {
	for _, e := range s.elements {
		if e.key == key {
			return true
		}
	}
	return false
}

// RemoveFirst removes the earliest element with the given key. Returns
// true if an element was removed.
func (s *Sequence) RemoveFirst(key string) bool {
	for i, e := range s.elements {
		if e.key == key {
			s.elements = append(s.elements[:i], s.elements[i+1:]...)
			return true
		}
	}
	return false
}

// Keys returns the sequence's record keys in its current order.
func (s *Sequence) Keys() []string {
	out := make([]string, len(s.elements))
	for i, e := range s.elements {
		out[i] = e.key
	}
	return out
}

// KeySort stably sorts the sequence by the short-before-long key order of
// spec §3.
func (s *Sequence) KeySort() {
	sort.SliceStable(s.elements, func(i, j int) bool {
		return sequenceKeyLess(s.elements[i].key, s.elements[j].key)
	})
	s.sort = SortByKey
}

func sequenceKeyLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

// NameSort resolves each element's person (non-persons sort with name =
// "", spec §4.10), caches the NAME value on the element, then stably sorts
// by gedcom.CompareNames.
func (s *Sequence) NameSort() {
	for i, e := range s.elements {
		s.elements[i].name = s.nameOf(e.key)
	}
	sort.SliceStable(s.elements, func(i, j int) bool {
		return gedcom.CompareNames(s.elements[i].name, s.elements[j].name) < 0
	})
	s.sort = SortByName
}

func (s *Sequence) nameOf(key string) string {
	if s.db == nil {
		return ""
	}
	person := s.db.KeyToPerson(key)
	if person == nil {
		return ""
	}
	name := person.FirstChildWithTag("NAME")
	if name == nil {
		return ""
	}
	return name.Value
}

// Unique returns a new sequence containing only the first occurrence of
// each key, preserving order (spec §4.10).
func (s *Sequence) Unique() *Sequence {
	out := &Sequence{db: s.db, sort: s.sort}
	seen := make(map[string]struct{})
	for _, e := range s.elements {
		if _, ok := seen[e.key]; ok {
			continue
		}
		seen[e.key] = struct{}{}
		out.elements = append(out.elements, e)
	}
	return out
}

// UniqueInPlace collapses adjacent equal keys in place. The caller must
// sort first for full deduplication (spec §4.10).
func (s *Sequence) UniqueInPlace() {
	if len(s.elements) == 0 {
		return
	}
	out := s.elements[:1]
	for _, e := range s.elements[1:] {
		if e.key != out[len(out)-1].key {
			out = append(out, e)
		}
	}
	s.elements = out
}

// Union returns the set union of a and b's keys, as a new unsorted
// sequence (each distinct key appears once, with a's payload preferred).
func Union(a, b *Sequence) *Sequence {
	out := &Sequence{db: pickDB(a, b)}
	seen := make(map[string]struct{})
	for _, seq := range []*Sequence{a, b} {
		for _, e := range seq.elements {
			if _, ok := seen[e.key]; ok {
				continue
			}
			seen[e.key] = struct{}{}
			out.elements = append(out.elements, e)
		}
	}
	return out
}

// Intersect returns the set intersection of a and b's keys, preserving a's
// order and payloads, via a hash-set membership test (spec §4.10 leaves
// the sort-merge-vs-hash-set choice to the implementer).
func Intersect(a, b *Sequence) *Sequence {
	out := &Sequence{db: pickDB(a, b)}
	inB := make(map[string]struct{}, len(b.elements))
	for _, e := range b.elements {
		inB[e.key] = struct{}{}
	}
	seen := make(map[string]struct{})
	for _, e := range a.elements {
		if _, ok := seen[e.key]; ok {
			continue
		}
		if _, ok := inB[e.key]; ok {
			seen[e.key] = struct{}{}
			out.elements = append(out.elements, e)
		}
	}
	return out
}

// Difference returns the keys of a that do not appear in b, preserving a's
// order and payloads. The result is a subset of a (spec §8).
func Difference(a, b *Sequence) *Sequence {
	out := &Sequence{db: pickDB(a, b)}
	inB := make(map[string]struct{}, len(b.elements))
	for _, e := range b.elements {
		inB[e.key] = struct{}{}
	}
	seen := make(map[string]struct{})
	for _, e := range a.elements {
		if _, ok := seen[e.key]; ok {
			continue
		}
		if _, ok := inB[e.key]; ok {
			continue
		}
		seen[e.key] = struct{}{}
		out.elements = append(out.elements, e)
	}
	return out
}

func pickDB(a, b *Sequence) *database.Database {
	if a != nil && a.db != nil {
		return a.db
	}
	if b != nil {
		return b.db
	}
	return nil
}

// ChildSequence returns the one-step expansion of s to every child of
// every person in s (spec §4.10).
func (s *Sequence) ChildSequence() *Sequence {
	out := NewSequence(s.db)
	for _, e := range s.elements {
		person := s.db.KeyToPerson(e.key)
		for _, family := range ForFamSs(person, s.db) {
			for _, child := range ForChildren(family, s.db) {
				out.Append(child.Key, nil)
			}
		}
	}
	return out
}

// ParentSequence returns the one-step expansion of s to every parent of
// every person in s (spec §4.10).
func (s *Sequence) ParentSequence() *Sequence {
	out := NewSequence(s.db)
	for _, e := range s.elements {
		person := s.db.KeyToPerson(e.key)
		if father := PersonToFather(person, s.db); father != nil {
			out.Append(father.Key, nil)
		}
		if mother := PersonToMother(person, s.db); mother != nil {
			out.Append(mother.Key, nil)
		}
	}
	return out
}

// SpouseSequence returns the one-step expansion of s to every spouse of
// every person in s (spec §4.10).
func (s *Sequence) SpouseSequence() *Sequence {
	out := NewSequence(s.db)
	for _, e := range s.elements {
		person := s.db.KeyToPerson(e.key)
		for _, spouse := range ForSpouses(person, s.db) {
			out.Append(spouse.Key, nil)
		}
	}
	return out
}

// SiblingSequence returns the one-step expansion of s to every sibling of
// every person in s, via FAMC→CHIL, excluding self unless close is true
// (spec §4.10).
func (s *Sequence) SiblingSequence(close bool) *Sequence {
	out := NewSequence(s.db)
	for _, e := range s.elements {
		person := s.db.KeyToPerson(e.key)
		famc := PersonToFamilyAsChild(person, s.db)
		for _, sibling := range ForChildren(famc, s.db) {
			if !close && sibling.Key == e.key {
				continue
			}
			out.Append(sibling.Key, nil)
		}
	}
	return out
}

// AncestorSequence returns the smallest sequence containing every person
// reachable from s via any chain of FAMC→HUSB/WIFE edges, excluding each
// starting person unless close is true (spec §4.10). Terminates because
// the record graph is finite; a visited-set is the only cycle guard
// needed.
func (s *Sequence) AncestorSequence(close bool) *Sequence {
	out := NewSequence(s.db)
	visited := make(map[string]struct{})
	var walk func(key string, isStart bool)
	walk = func(key string, isStart bool) {
		if _, ok := visited[key]; ok {
			return
		}
		visited[key] = struct{}{}
		if !isStart || close {
			out.Append(key, nil)
		}
		person := s.db.KeyToPerson(key)
		if father := PersonToFather(person, s.db); father != nil {
			walk(father.Key, false)
		}
		if mother := PersonToMother(person, s.db); mother != nil {
			walk(mother.Key, false)
		}
	}
	for _, e := range s.elements {
		walk(e.key, true)
	}
	return out
}

// DescendentSequence returns the smallest sequence containing every person
// reachable from s via any chain of FAMS→CHIL edges, excluding each
// starting person unless close is true (spec §4.10).
func (s *Sequence) DescendentSequence(close bool) *Sequence {
	out := NewSequence(s.db)
	visited := make(map[string]struct{})
	var walk func(key string, isStart bool)
	walk = func(key string, isStart bool) {
		if _, ok := visited[key]; ok {
			return
		}
		visited[key] = struct{}{}
		if !isStart || close {
			out.Append(key, nil)
		}
		person := s.db.KeyToPerson(key)
		for _, family := range ForFamSs(person, s.db) {
			for _, child := range ForChildren(family, s.db) {
				walk(child.Key, false)
			}
		}
	}
	for _, e := range s.elements {
		walk(e.key, true)
	}
	return out
}
