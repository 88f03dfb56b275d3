package lineage

import (
	"testing"
)

func TestSequenceAppendAndIsIn(t *testing.T) {
	s := NewSequence(nil)
	s.Append("@I1@", nil)
	s.Append("@I2@", nil)
	s.Append("@I1@", nil)
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if !s.IsIn("@I2@") {
		t.Errorf("expected @I2@ to be in the sequence")
	}
	if s.IsIn("@I9@") {
		t.Errorf("expected @I9@ to not be in the sequence")
	}
}

func TestSequenceRemoveFirst(t *testing.T) {
	s := NewSequence(nil)
	s.Append("@I1@", nil)
	s.Append("@I2@", nil)
	s.Append("@I1@", nil)
	if !s.RemoveFirst("@I1@") {
		t.Fatalf("expected RemoveFirst to find @I1@")
	}
	if s.Keys()[0] != "@I2@" {
		t.Errorf("expected the first @I1@ removed, got %v", s.Keys())
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestSequenceKeySortShortBeforeLong(t *testing.T) {
	s := NewSequence(nil)
	s.Append("@I10@", nil)
	s.Append("@I2@", nil)
	s.Append("@I1@", nil)
	s.KeySort()
	keys := s.Keys()
	if keys[0] != "@I2@" && keys[0] != "@I1@" {
		t.Fatalf("expected a short key first, got %v", keys)
	}
	if len(keys[0]) > len(keys[len(keys)-1]) {
		t.Errorf("expected shorter keys before longer ones: %v", keys)
	}
}

func TestSequenceUnique(t *testing.T) {
	s := NewSequence(nil)
	s.Append("@I1@", nil)
	s.Append("@I2@", nil)
	s.Append("@I1@", nil)
	u := s.Unique()
	if u.Len() != 2 {
		t.Fatalf("Unique().Len() = %d, want 2", u.Len())
	}
}

func TestSequenceUniqueInPlaceCollapsesAdjacentOnly(t *testing.T) {
	s := NewSequence(nil)
	s.Append("@I1@", nil)
	s.Append("@I1@", nil)
	s.Append("@I2@", nil)
	s.Append("@I1@", nil)
	s.UniqueInPlace()
	keys := s.Keys()
	if len(keys) != 3 {
		t.Fatalf("expected only adjacent duplicates collapsed, got %v", keys)
	}
}

func TestUnionIntersectDifference(t *testing.T) {
	a := NewSequence(nil)
	a.Append("@I1@", nil)
	a.Append("@I2@", nil)
	b := NewSequence(nil)
	b.Append("@I2@", nil)
	b.Append("@I3@", nil)

	u := Union(a, b)
	if u.Len() != 3 {
		t.Fatalf("Union Len() = %d, want 3", u.Len())
	}
	i := Intersect(a, b)
	if i.Len() != 1 || i.Keys()[0] != "@I2@" {
		t.Fatalf("Intersect = %v, want [@I2@]", i.Keys())
	}
	d := Difference(a, b)
	if d.Len() != 1 || d.Keys()[0] != "@I1@" {
		t.Fatalf("Difference = %v, want [@I1@]", d.Keys())
	}
}

func TestAncestorSequence(t *testing.T) {
	db := buildDB(t, familyFile)
	s := NewSequence(db)
	s.Append("@I3@", nil)
	ancestors := s.AncestorSequence(false)
	keys := ancestors.Keys()
	if len(keys) != 2 {
		t.Fatalf("AncestorSequence(@I3@) = %v, want 2 ancestors", keys)
	}
	found := map[string]bool{}
	for _, k := range keys {
		found[k] = true
	}
	if !found["@I1@"] || !found["@I2@"] {
		t.Fatalf("expected both parents in ancestor sequence, got %v", keys)
	}
	if found["@I3@"] {
		t.Errorf("expected the starting person excluded when close=false")
	}
}

func TestAncestorSequenceCloseIncludesStart(t *testing.T) {
	db := buildDB(t, familyFile)
	s := NewSequence(db)
	s.Append("@I3@", nil)
	ancestors := s.AncestorSequence(true)
	if !ancestors.IsIn("@I3@") {
		t.Errorf("expected starting person included when close=true")
	}
}

func TestDescendentSequence(t *testing.T) {
	db := buildDB(t, familyFile)
	s := NewSequence(db)
	s.Append("@I1@", nil)
	descendants := s.DescendentSequence(false)
	if descendants.Len() != 2 || !descendants.IsIn("@I3@") || !descendants.IsIn("@I4@") {
		t.Fatalf("DescendentSequence(@I1@) = %v, want [@I3@ @I4@]", descendants.Keys())
	}
}

func TestSiblingSequenceExcludesSelf(t *testing.T) {
	db := buildDB(t, familyFile)
	s := NewSequence(db)
	s.Append("@I3@", nil)
	siblings := s.SiblingSequence(false)
	if siblings.Len() != 1 || siblings.Keys()[0] != "@I4@" {
		t.Fatalf("SiblingSequence(@I3@) = %v, want [@I4@]", siblings.Keys())
	}
}
