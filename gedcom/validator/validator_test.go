package validator

import (
	"strings"
	"testing"

	"github.com/lesfleursdelanuitdev/deadends-go/gedcom"
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom/database"
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom/parser"
)

func loadText(t *testing.T, text string) (*database.Database, *gedcom.ErrorLog) {
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
	db.IndexNames()
	return db, log
}

const wellFormedFile = `0 HEAD
0 @I1@ INDI
1 NAME John /Smith/
1 SEX M
1 FAMS @F1@
0 @I2@ INDI
1 NAME Jane /Doe/
1 SEX F
1 FAMS @F1@
0 @I3@ INDI
1 NAME Kid /Smith/
1 SEX M
1 FAMC @F1@
0 @F1@ FAM
1 HUSB @I1@
1 WIFE @I2@
1 CHIL @I3@
0 TRLR
`

func TestValidatorAcceptsWellFormedFile(t *testing.T) {
	db, log := loadText(t, wellFormedFile)
	NewValidator().Validate(db, log)
	if log.Len() != 0 {
		t.Fatalf("unexpected errors on a well-formed file: %v", log.Entries())
	}
}

func TestKeyRuleCatchesDanglingReference(t *testing.T) {
	text := "0 @I1@ INDI\n1 FAMS @F9@\n"
	db, log := loadText(t, text)
	KeyRule{}.Validate(db, log)
	if log.Len() == 0 {
		t.Fatalf("expected a dangling-reference error")
	}
	if !strings.Contains(log.Entries()[0].Message, "undefined key") {
		t.Errorf("unexpected message: %s", log.Entries()[0].Message)
	}
}

func TestPersonRuleRequiresNameAndSex(t *testing.T) {
	text := "0 @I1@ INDI\n1 NOTE nothing useful\n"
	db, log := loadText(t, text)
	PersonRule{}.Validate(db, log)
	if log.Len() != 2 {
		t.Fatalf("expected 2 errors (missing NAME, missing SEX), got %d: %v", log.Len(), log.Entries())
	}
}

func TestPersonRuleCatchesBrokenFamcBackLink(t *testing.T) {
	text := "0 @I1@ INDI\n1 NAME A /B/\n1 SEX M\n1 FAMC @F1@\n0 @F1@ FAM\n1 HUSB @I1@\n"
	db, log := loadText(t, text)
	PersonRule{}.Validate(db, log)
	found := false
	for _, e := range log.Entries() {
		if strings.Contains(e.Message, "want exactly 1") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a FAMC back-link count error, got: %v", log.Entries())
	}
}

func TestFamilyRuleRequiresAtLeastOneLink(t *testing.T) {
	text := "0 @F1@ FAM\n1 NOTE empty family\n"
	db, log := loadText(t, text)
	FamilyRule{}.Validate(db, log)
	if log.Len() != 1 || !strings.Contains(log.Entries()[0].Message, "none of HUSB, WIFE, CHIL") {
		t.Fatalf("expected a missing-members error, got: %v", log.Entries())
	}
}

func TestRefnRuleCatchesDuplicatesAndEmpty(t *testing.T) {
	text := "0 @I1@ INDI\n1 REFN abc\n0 @I2@ INDI\n1 REFN abc\n0 @I3@ INDI\n1 REFN \n"
	db, log := loadText(t, text)
	RefnRule{}.Validate(db, log)
	if log.Len() != 2 {
		t.Fatalf("expected 2 REFN errors (duplicate + empty), got %d: %v", log.Len(), log.Entries())
	}
}
