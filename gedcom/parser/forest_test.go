package parser

import (
	"testing"

	"github.com/lesfleursdelanuitdev/deadends-go/gedcom"
)

func lex(t *testing.T, text string) []Line {
	t.Helper()
	var errs []*LexError
	lines := ReadLines(NewStringSource(text), &errs)
	if len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	return lines
}

func TestBuildForestMinimal(t *testing.T) {
	text := "0 HEAD\n0 @I1@ INDI\n1 NAME John /Smith/\n1 SEX M\n0 TRLR\n"
	lines := lex(t, text)
	log := gedcom.NewErrorLog()
	roots, _ := BuildForest(lines, "test.ged", log)
	if log.Len() != 0 {
		t.Fatalf("unexpected errors: %v", log.Entries())
	}
	if len(roots) != 3 {
		t.Fatalf("expected 3 roots (HEAD, INDI, TRLR), got %d", len(roots))
	}
	indi := roots[1]
	if indi.Tag != "INDI" || indi.Key != "@I1@" {
		t.Fatalf("roots[1] = %+v, want INDI @I1@", indi)
	}
	name := indi.FirstChildWithTag("NAME")
	if name == nil || name.Value != "John /Smith/" {
		t.Fatalf("expected NAME child, got %v", name)
	}
	sex := indi.FirstChildWithTag("SEX")
	if sex == nil || sex.Value != "M" {
		t.Fatalf("expected SEX child, got %v", sex)
	}
}

func TestBuildForestSiblingsAndUncleWalk(t *testing.T) {
	// A DATE at level 2 under BIRT, then a level-1 sibling of BIRT (DEAT),
	// exercising the "walk up from level 2 to level 1" branch.
	text := "0 @I1@ INDI\n1 BIRT\n2 DATE 1900\n1 DEAT\n2 DATE 1970\n"
	lines := lex(t, text)
	log := gedcom.NewErrorLog()
	roots, _ := BuildForest(lines, "t.ged", log)
	if log.Len() != 0 {
		t.Fatalf("unexpected errors: %v", log.Entries())
	}
	indi := roots[0]
	children := indi.Children()
	if len(children) != 2 || children[0].Tag != "BIRT" || children[1].Tag != "DEAT" {
		t.Fatalf("expected BIRT, DEAT children, got %v", children)
	}
	birtDate := children[0].FirstChildWithTag("DATE")
	deatDate := children[1].FirstChildWithTag("DATE")
	if birtDate == nil || birtDate.Value != "1900" {
		t.Fatalf("expected BIRT/DATE=1900, got %v", birtDate)
	}
	if deatDate == nil || deatDate.Value != "1970" {
		t.Fatalf("expected DEAT/DATE=1970, got %v", deatDate)
	}
	if children[1].Parent != indi {
		t.Fatalf("DEAT's parent should be the INDI root")
	}
}

func TestBuildForestIllegalFirstLevel(t *testing.T) {
	text := "1 INDI\n0 @I2@ INDI\n1 NAME A /B/\n"
	lines := lex(t, text)
	log := gedcom.NewErrorLog()
	roots, _ := BuildForest(lines, "t.ged", log)
	if log.Len() != 1 {
		t.Fatalf("expected 1 syntax error for illegal first level, got %d", log.Len())
	}
	if len(roots) != 1 || roots[0].Key != "@I2@" {
		t.Fatalf("expected recovery onto @I2@, got %v", roots)
	}
}

func TestBuildForestIllegalLevelJumpRecovers(t *testing.T) {
	// level jumps from 0 to 2 directly: an error, and the in-progress
	// root (HEAD) is still emitted before recovering at the next level 0.
	text := "0 HEAD\n2 BAD\n0 @I1@ INDI\n1 NAME A /B/\n"
	lines := lex(t, text)
	log := gedcom.NewErrorLog()
	roots, _ := BuildForest(lines, "t.ged", log)
	if log.Len() != 1 {
		t.Fatalf("expected 1 syntax error, got %d: %v", log.Len(), log.Entries())
	}
	if len(roots) != 2 {
		t.Fatalf("expected HEAD and INDI roots despite the error, got %d: %v", len(roots), roots)
	}
	if roots[0].Tag != "HEAD" || roots[1].Key != "@I1@" {
		t.Fatalf("unexpected roots: %+v", roots)
	}
}

func TestBuildForestEndsWhileInMainAppendsLastRoot(t *testing.T) {
	text := "0 @I1@ INDI\n1 NAME A /B/\n"
	lines := lex(t, text)
	log := gedcom.NewErrorLog()
	roots, _ := BuildForest(lines, "t.ged", log)
	if len(roots) != 1 {
		t.Fatalf("expected the final in-progress root to be appended at EOF, got %d", len(roots))
	}
}
