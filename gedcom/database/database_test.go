package database

import (
	"strings"
	"testing"

	"github.com/lesfleursdelanuitdev/deadends-go/gedcom"
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom/parser"
)

func buildDatabase(t *testing.T, text string) (*Database, *gedcom.ErrorLog) {
	t.Helper()
	var lexErrs []*parser.LexError
	lines := parser.ReadLines(parser.NewStringSource(text), &lexErrs)
	if len(lexErrs) != 0 {
		t.Fatalf("unexpected lex errors: %v", lexErrs)
	}
	log := gedcom.NewErrorLog()
	roots, rootLines := parser.BuildForest(lines, "t.ged", log)
	db := NewDatabase("t.ged")
	for i, root := range roots {
		db.StoreRecord(root, rootLines[i], log)
	}
	db.IndexNames()
	db.IndexRefns(log)
	return db, log
}

const sampleFile = `0 HEAD
0 @I1@ INDI
1 NAME John /Smith/
1 SEX M
1 FAMS @F1@
0 @I2@ INDI
1 NAME Jane /Doe/
1 SEX F
1 FAMS @F1@
0 @F1@ FAM
1 HUSB @I1@
1 WIFE @I2@
0 TRLR
`

func TestStoreRecordIndexesPersonsAndFamilies(t *testing.T) {
	db, log := buildDatabase(t, sampleFile)
	if log.HasSevereOrWorse() {
		t.Fatalf("unexpected errors: %v", log.Entries())
	}
	if db.NumberPersons() != 2 {
		t.Errorf("NumberPersons() = %d, want 2", db.NumberPersons())
	}
	if db.NumberFamilies() != 1 {
		t.Errorf("NumberFamilies() = %d, want 1", db.NumberFamilies())
	}
	if db.KeyToPerson("@I1@") == nil {
		t.Errorf("expected @I1@ to resolve to a person")
	}
	if db.KeyToFamily("@I1@") != nil {
		t.Errorf("expected @I1@ to not resolve as a family")
	}
	if db.Header == nil || db.Header.Tag != "HEAD" {
		t.Errorf("expected header to be captured, got %v", db.Header)
	}
}

func TestStoreRecordRejectsDuplicateKey(t *testing.T) {
	text := "0 @I1@ INDI\n1 NAME A /B/\n0 @I1@ INDI\n1 NAME C /D/\n"
	_, log := buildDatabase(t, text)
	if log.Len() != 1 {
		t.Fatalf("expected 1 duplicate-key error, got %d: %v", log.Len(), log.Entries())
	}
	msg := log.Entries()[0].Message
	if !strings.Contains(msg, "duplicate key") {
		t.Errorf("expected duplicate-key message, got %q", msg)
	}
}

func TestRootListsAreSortedByKey(t *testing.T) {
	db, _ := buildDatabase(t, sampleFile)
	roots := db.PersonRoots.Roots()
	if len(roots) != 2 || roots[0].Key != "@I1@" || roots[1].Key != "@I2@" {
		t.Fatalf("unexpected person root order: %v, %v", roots[0].Key, roots[1].Key)
	}
}

func TestIndexNamesBuildsSearchableNameIndex(t *testing.T) {
	db, _ := buildDatabase(t, sampleFile)
	nameKey := gedcom.NameKey("John /Smith/")
	keys := db.NameIndex.Search(nameKey)
	if len(keys) != 1 || keys[0] != "@I1@" {
		t.Fatalf("Search(%q) = %v, want [@I1@]", nameKey, keys)
	}
}

func TestIndexRefnsAddsAndDetectsDuplicates(t *testing.T) {
	text := "0 @I1@ INDI\n1 REFN abc123\n0 @I2@ INDI\n1 REFN abc123\n"
	db, log := buildDatabase(t, text)
	if db.RefnIndex.Len() != 1 {
		t.Fatalf("expected 1 distinct REFN value, got %d", db.RefnIndex.Len())
	}
	key, ok := db.RefnIndex.Search("abc123")
	if !ok || key != "@I1@" {
		t.Fatalf("Search(abc123) = %q, %v, want @I1@, true", key, ok)
	}
	foundDuplicateWarning := false
	for _, e := range log.Entries() {
		if strings.Contains(e.Message, "duplicates an existing reference") {
			foundDuplicateWarning = true
		}
	}
	if !foundDuplicateWarning {
		t.Errorf("expected a duplicate-REFN warning in the log")
	}
}

func TestGeneratePersonAndFamilyKeysAvoidCollisions(t *testing.T) {
	db, _ := buildDatabase(t, sampleFile)
	key, err := db.GeneratePersonKey()
	if err != nil {
		t.Fatalf("GeneratePersonKey() error: %v", err)
	}
	if db.Records.Has(key) {
		t.Errorf("generated key %q collides with an existing record", key)
	}
	if key[1] != 'I' {
		t.Errorf("expected person key prefix 'I', got %q", key)
	}
	famKey, err := db.GenerateFamilyKey()
	if err != nil {
		t.Fatalf("GenerateFamilyKey() error: %v", err)
	}
	if famKey[1] != 'F' {
		t.Errorf("expected family key prefix 'F', got %q", famKey)
	}
}

func TestIsEmpty(t *testing.T) {
	db := NewDatabase("empty.ged")
	if !db.IsEmpty() {
		t.Errorf("expected a freshly created database to be empty")
	}
}
