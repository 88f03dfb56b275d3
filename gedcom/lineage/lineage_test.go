package lineage

import (
	"testing"

	"github.com/lesfleursdelanuitdev/deadends-go/gedcom"
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom/database"
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom/parser"
)

const familyFile = `0 @I1@ INDI
1 NAME Dad /Smith/
1 SEX M
1 FAMS @F1@
0 @I2@ INDI
1 NAME Mom /Jones/
1 SEX F
1 FAMS @F1@
0 @I3@ INDI
1 NAME First /Smith/
1 SEX M
1 FAMC @F1@
0 @I4@ INDI
1 NAME Second /Smith/
1 SEX F
1 FAMC @F1@
0 @F1@ FAM
1 HUSB @I1@
1 WIFE @I2@
1 CHIL @I3@
1 CHIL @I4@
`

func buildDB(t *testing.T, text string) *database.Database {
	t.Helper()
	var lexErrs []*parser.LexError
	lines := parser.ReadLines(parser.NewStringSource(text), &lexErrs)
	if len(lexErrs) != 0 {
		t.Fatalf("unexpected lex errors: %v", lexErrs)
	}
	log := gedcom.NewErrorLog()
	roots, rootLines := parser.BuildForest(lines, "t.ged", log)
	db := database.NewDatabase("t.ged")
	for i, root := range roots {
		db.StoreRecord(root, rootLines[i], log)
	}
	if log.HasSevereOrWorse() {
		t.Fatalf("unexpected errors: %v", log.Entries())
	}
	return db
}

func TestPersonToFatherAndMother(t *testing.T) {
	db := buildDB(t, familyFile)
	child := db.KeyToPerson("@I3@")
	father := PersonToFather(child, db)
	mother := PersonToMother(child, db)
	if father == nil || father.Key != "@I1@" {
		t.Fatalf("PersonToFather = %v, want @I1@", father)
	}
	if mother == nil || mother.Key != "@I2@" {
		t.Fatalf("PersonToMother = %v, want @I2@", mother)
	}
}

func TestPersonToSiblings(t *testing.T) {
	db := buildDB(t, familyFile)
	first := db.KeyToPerson("@I3@")
	second := db.KeyToPerson("@I4@")
	if PersonToPreviousSibling(first, db) != nil {
		t.Errorf("expected first child to have no previous sibling")
	}
	next := PersonToNextSibling(first, db)
	if next == nil || next.Key != "@I4@" {
		t.Fatalf("PersonToNextSibling(first) = %v, want @I4@", next)
	}
	if PersonToNextSibling(second, db) != nil {
		t.Errorf("expected last child to have no next sibling")
	}
	prev := PersonToPreviousSibling(second, db)
	if prev == nil || prev.Key != "@I3@" {
		t.Fatalf("PersonToPreviousSibling(second) = %v, want @I3@", prev)
	}
}

func TestFamilyToFirstAndLastChild(t *testing.T) {
	db := buildDB(t, familyFile)
	family := db.KeyToFamily("@F1@")
	first := FamilyToFirstChild(family, db)
	last := FamilyToLastChild(family, db)
	if first == nil || first.Key != "@I3@" {
		t.Fatalf("FamilyToFirstChild = %v, want @I3@", first)
	}
	if last == nil || last.Key != "@I4@" {
		t.Fatalf("FamilyToLastChild = %v, want @I4@", last)
	}
}

func TestNumberOfSpouses(t *testing.T) {
	db := buildDB(t, familyFile)
	dad := db.KeyToPerson("@I1@")
	if n := NumberOfSpouses(dad, db); n != 1 {
		t.Errorf("NumberOfSpouses(dad) = %d, want 1", n)
	}
}

func TestForSpousesExcludesSelf(t *testing.T) {
	db := buildDB(t, familyFile)
	dad := db.KeyToPerson("@I1@")
	spouses := ForSpouses(dad, db)
	if len(spouses) != 1 || spouses[0].Key != "@I2@" {
		t.Fatalf("ForSpouses(dad) = %v, want [@I2@]", spouses)
	}
}
