package gedcom

import "testing"

func tagsOf(root *Node) []string {
	var tags []string
	for c := root.Child; c != nil; c = c.Sibling {
		tags = append(tags, c.Tag)
	}
	return tags
}

func samePairwise(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func buildScrambledPerson() *Node {
	p := NewNode("@I1@", "INDI", "")
	p.AddChild(NewNode("", "FAMS", "@F2@"))
	p.AddChild(NewNode("", "NAME", "John /Smith/"))
	p.AddChild(NewNode("", "BIRT", ""))
	p.AddChild(NewNode("", "FAMC", "@F1@"))
	p.AddChild(NewNode("", "SEX", "M"))
	p.AddChild(NewNode("", "REFN", "r1"))
	p.AddChild(NewNode("", "NAME", "Jack /Smith/"))
	return p
}

func TestNormalizePersonCanonicalOrder(t *testing.T) {
	p := buildScrambledPerson()
	NormalizePerson(p)
	want := []string{"NAME", "NAME", "REFN", "SEX", "BIRT", "FAMC", "FAMS"}
	got := tagsOf(p)
	if !samePairwise(got, want) {
		t.Fatalf("canonical order = %v, want %v", got, want)
	}
	// Original relative order within a group is preserved.
	names := p.ChildrenWithTag("NAME")
	if names[0].Value != "John /Smith/" || names[1].Value != "Jack /Smith/" {
		t.Fatalf("NAME order not preserved: %v / %v", names[0].Value, names[1].Value)
	}
}

func TestSplitJoinRoundTripIsIdempotent(t *testing.T) {
	p := buildScrambledPerson()
	NormalizePerson(p)
	first := tagsOf(p)
	NormalizePerson(p)
	second := tagsOf(p)
	if !samePairwise(first, second) {
		t.Fatalf("second normalize pass changed order: %v vs %v", first, second)
	}
}

func TestNormalizeFamilyCanonicalOrder(t *testing.T) {
	f := NewNode("@F1@", "FAM", "")
	f.AddChild(NewNode("", "CHIL", "@I3@"))
	f.AddChild(NewNode("", "MARR", ""))
	f.AddChild(NewNode("", "HUSB", "@I1@"))
	f.AddChild(NewNode("", "REFN", "fr1"))
	f.AddChild(NewNode("", "WIFE", "@I2@"))
	NormalizeFamily(f)
	want := []string{"REFN", "HUSB", "WIFE", "CHIL", "MARR"}
	if got := tagsOf(f); !samePairwise(got, want) {
		t.Fatalf("family canonical order = %v, want %v", got, want)
	}
}

func TestAddChildToFamily(t *testing.T) {
	fam := NewNode("@F1@", "FAM", "")
	fam.AddChild(NewNode("", "HUSB", "@I1@"))
	fam.AddChild(NewNode("", "CHIL", "@I3@"))
	child := NewNode("@I4@", "INDI", "")
	child.AddChild(NewNode("", "NAME", "New /Child/"))

	AddChildToFamily(fam, child, -1) // append
	chils := fam.ChildrenWithTag("CHIL")
	if len(chils) != 2 || chils[1].Value != "@I4@" {
		t.Fatalf("expected child appended at end, got %v", chils)
	}
	famcs := child.ChildrenWithTag("FAMC")
	if len(famcs) != 1 || famcs[0].Value != "@F1@" {
		t.Fatalf("expected FAMC added to child, got %v", famcs)
	}
}

func TestAddChildToFamilyAtIndex(t *testing.T) {
	fam := NewNode("@F1@", "FAM", "")
	fam.AddChild(NewNode("", "CHIL", "@I3@"))
	fam.AddChild(NewNode("", "CHIL", "@I5@"))
	child := NewNode("@I4@", "INDI", "")

	AddChildToFamily(fam, child, 1)
	chils := fam.ChildrenWithTag("CHIL")
	values := []string{chils[0].Value, chils[1].Value, chils[2].Value}
	want := []string{"@I3@", "@I4@", "@I5@"}
	if !samePairwise(values, want) {
		t.Fatalf("insert at index 1 = %v, want %v", values, want)
	}
}

func TestRemoveChildFromFamily(t *testing.T) {
	fam := NewNode("@F1@", "FAM", "")
	fam.AddChild(NewNode("", "CHIL", "@I3@"))
	child := NewNode("@I3@", "INDI", "")
	child.AddChild(NewNode("", "FAMC", "@F1@"))

	log := NewErrorLog()
	RemoveChildFromFamily(fam, child, log)
	if log.Len() != 0 {
		t.Fatalf("expected no errors, got %d", log.Len())
	}
	if len(fam.ChildrenWithTag("CHIL")) != 0 {
		t.Fatalf("expected CHIL link removed")
	}
	if len(child.ChildrenWithTag("FAMC")) != 0 {
		t.Fatalf("expected FAMC link removed")
	}
}

func TestRemoveChildFromFamilyMissingLinkLeavesUnchanged(t *testing.T) {
	fam := NewNode("@F1@", "FAM", "")
	fam.AddChild(NewNode("", "HUSB", "@I1@"))
	child := NewNode("@I3@", "INDI", "")
	child.AddChild(NewNode("", "NAME", "No /Link/"))

	log := NewErrorLog()
	RemoveChildFromFamily(fam, child, log)
	if log.Len() != 1 {
		t.Fatalf("expected one linkage error, got %d", log.Len())
	}
	if len(fam.ChildrenWithTag("HUSB")) != 1 {
		t.Fatalf("family was mutated despite missing link")
	}
}

func TestAddAndRemoveSpouse(t *testing.T) {
	fam := NewNode("@F1@", "FAM", "")
	husband := NewNode("@I1@", "INDI", "")
	husband.AddChild(NewNode("", "SEX", "M"))

	if !AddSpouseToFamily(fam, husband) {
		t.Fatalf("AddSpouseToFamily should succeed for a definite sex")
	}
	if got := fam.FirstChildWithTag("HUSB"); got == nil || got.Value != "@I1@" {
		t.Fatalf("expected HUSB link, got %v", got)
	}
	if got := husband.FirstChildWithTag("FAMS"); got == nil || got.Value != "@F1@" {
		t.Fatalf("expected FAMS link, got %v", got)
	}

	log := NewErrorLog()
	RemoveSpouseFromFamily(fam, husband, log)
	if log.Len() != 0 {
		t.Fatalf("expected no errors removing existing spouse, got %d", log.Len())
	}
	if len(fam.ChildrenWithTag("HUSB")) != 0 || len(husband.ChildrenWithTag("FAMS")) != 0 {
		t.Fatalf("expected both spouse links removed")
	}
}

func TestAddSpouseRequiresDefiniteSex(t *testing.T) {
	fam := NewNode("@F1@", "FAM", "")
	person := NewNode("@I9@", "INDI", "")
	if AddSpouseToFamily(fam, person) {
		t.Fatalf("AddSpouseToFamily should fail without a definite sex")
	}
}

func TestNormalizeOtherKeepsRestOrderAndMovesRefnFirst(t *testing.T) {
	src := NewNode("@S1@", "SOUR", "")
	src.AddChild(NewNode("", "TITL", "A Source"))
	src.AddChild(NewNode("", "REFN", "s1"))
	src.AddChild(NewNode("", "AUTH", "Someone"))
	NormalizeOther(src)
	want := []string{"REFN", "TITL", "AUTH"}
	if got := tagsOf(src); !samePairwise(got, want) {
		t.Fatalf("other canonical order = %v, want %v", got, want)
	}
}

func TestNormalizeRecordDispatch(t *testing.T) {
	p := NewNode("@I1@", "INDI", "")
	p.AddChild(NewNode("", "SEX", "M"))
	p.AddChild(NewNode("", "NAME", "A /B/"))
	NormalizeRecord(p)
	if p.Child.Tag != "NAME" {
		t.Fatalf("NormalizeRecord did not apply person canonical order")
	}
}
