package lineage

import (
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom"
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom/database"
)

// PersonToFamilyAsChild returns the first family a person is a child in, or
// nil if the person has no FAMC.
func PersonToFamilyAsChild(person *gedcom.Node, db *database.Database) *gedcom.Node {
	if person == nil {
		return nil
	}
	famc := person.FirstChildWithTag("FAMC")
	if famc == nil {
		return nil
	}
	return db.KeyToFamily(famc.Value)
}

// FamilyToHusband returns the first HUSB of a family resolved to a person,
// or nil.
func FamilyToHusband(family *gedcom.Node, db *database.Database) *gedcom.Node {
	if family == nil {
		return nil
	}
	husb := family.FirstChildWithTag("HUSB")
	if husb == nil {
		return nil
	}
	return db.KeyToPerson(husb.Value)
}

// FamilyToWife returns the first WIFE of a family resolved to a person, or
// nil.
func FamilyToWife(family *gedcom.Node, db *database.Database) *gedcom.Node {
	if family == nil {
		return nil
	}
	wife := family.FirstChildWithTag("WIFE")
	if wife == nil {
		return nil
	}
	return db.KeyToPerson(wife.Value)
}

// FamilyToSpouse returns the first spouse of the given sex in family, or
// nil if sex is not definite.
func FamilyToSpouse(family *gedcom.Node, sex gedcom.Sex, db *database.Database) *gedcom.Node {
	switch sex {
	case gedcom.SexMale:
		return FamilyToHusband(family, db)
	case gedcom.SexFemale:
		return FamilyToWife(family, db)
	default:
		return nil
	}
}

// PersonToFather returns the father of a person: the HUSB of the person's
// first FAMC (spec §4.9).
func PersonToFather(person *gedcom.Node, db *database.Database) *gedcom.Node {
	return FamilyToHusband(PersonToFamilyAsChild(person, db), db)
}

// PersonToMother returns the mother of a person: the WIFE of the person's
// first FAMC (spec §4.9).
func PersonToMother(person *gedcom.Node, db *database.Database) *gedcom.Node {
	return FamilyToWife(PersonToFamilyAsChild(person, db), db)
}

// PersonToPreviousSibling returns the person immediately before indi in
// its first FAMC's CHIL list, or nil if indi is first or has no FAMC.
func PersonToPreviousSibling(indi *gedcom.Node, db *database.Database) *gedcom.Node {
	famc := PersonToFamilyAsChild(indi, db)
	if famc == nil {
		return nil
	}
	var prev *gedcom.Node
	for _, chil := range famc.ChildrenWithTag("CHIL") {
		if chil.Value == indi.Key {
			if prev == nil {
				return nil
			}
			return db.KeyToPerson(prev.Value)
		}
		prev = chil
	}
	return nil
}

// PersonToNextSibling returns the person immediately after indi in its
// first FAMC's CHIL list, or nil if indi is last or has no FAMC.
func PersonToNextSibling(indi *gedcom.Node, db *database.Database) *gedcom.Node {
	famc := PersonToFamilyAsChild(indi, db)
	if famc == nil {
		return nil
	}
	chils := famc.ChildrenWithTag("CHIL")
	for i, chil := range chils {
		if chil.Value == indi.Key {
			if i+1 >= len(chils) {
				return nil
			}
			return db.KeyToPerson(chils[i+1].Value)
		}
	}
	return nil
}

// FamilyToFirstChild returns the first CHIL of family resolved to a
// person, or nil.
func FamilyToFirstChild(family *gedcom.Node, db *database.Database) *gedcom.Node {
	if family == nil {
		return nil
	}
	chils := family.ChildrenWithTag("CHIL")
	if len(chils) == 0 {
		return nil
	}
	return db.KeyToPerson(chils[0].Value)
}

// FamilyToLastChild returns the last CHIL of family resolved to a person,
// or nil.
func FamilyToLastChild(family *gedcom.Node, db *database.Database) *gedcom.Node {
	if family == nil {
		return nil
	}
	chils := family.ChildrenWithTag("CHIL")
	if len(chils) == 0 {
		return nil
	}
	return db.KeyToPerson(chils[len(chils)-1].Value)
}

// NumberOfSpouses returns the number of distinct spouses across all of
// person's FAMS families (spec §4.9).
func NumberOfSpouses(person *gedcom.Node, db *database.Database) int {
	if person == nil {
		return 0
	}
	seen := make(map[string]struct{})
	for _, spouse := range ForSpouses(person, db) {
		seen[spouse.Key] = struct{}{}
	}
	return len(seen)
}

// ForChildren returns the persons in family's CHIL list, in order,
// skipping any CHIL value that fails to resolve.
func ForChildren(family *gedcom.Node, db *database.Database) []*gedcom.Node {
	return resolveAll(family, "CHIL", db.KeyToPerson)
}

// ForFamCs returns the families person is a child in, in FAMC order.
func ForFamCs(person *gedcom.Node, db *database.Database) []*gedcom.Node {
	return resolveAll(person, "FAMC", db.KeyToFamily)
}

// ForFamSs returns the families person is a spouse in, in FAMS order.
func ForFamSs(person *gedcom.Node, db *database.Database) []*gedcom.Node {
	return resolveAll(person, "FAMS", db.KeyToFamily)
}

// ForHusbands returns the persons in family's HUSB list, in order.
func ForHusbands(family *gedcom.Node, db *database.Database) []*gedcom.Node {
	return resolveAll(family, "HUSB", db.KeyToPerson)
}

// ForWives returns the persons in family's WIFE list, in order.
func ForWives(family *gedcom.Node, db *database.Database) []*gedcom.Node {
	return resolveAll(family, "WIFE", db.KeyToPerson)
}

// ForSpouses returns, for every family person is a spouse in, every
// husband and wife other than person themself, in FAMS order.
func ForSpouses(person *gedcom.Node, db *database.Database) []*gedcom.Node {
	var out []*gedcom.Node
	for _, family := range ForFamSs(person, db) {
		for _, spouse := range append(ForHusbands(family, db), ForWives(family, db)...) {
			if spouse.Key != person.Key {
				out = append(out, spouse)
			}
		}
	}
	return out
}

// ForTraverse calls visit for every node in root's subtree, in the same
// depth-first pre-order gedcom.Traverse uses; it stops early if visit
// returns false. Exposed here (rather than calling gedcom.Traverse
// directly) because it is one of the named FOR* iteration primitives of
// spec §4.9.
func ForTraverse(root *gedcom.Node, visit func(*gedcom.Node) bool) bool {
	return gedcom.Traverse(root, visit)
}

// resolveAll resolves every childTag-tagged child of root through
// resolve, in sibling order, skipping any value that fails to resolve
// (spec §4.9 "ignore non-matching siblings once a matching run ends" —
// only the first contiguous run of childTag children is visited).
func resolveAll(root *gedcom.Node, childTag string, resolve func(string) *gedcom.Node) []*gedcom.Node {
	if root == nil {
		return nil
	}
	var out []*gedcom.Node
	inRun := false
	for child := root.Child; child != nil; child = child.Sibling {
		if child.Tag != childTag {
			if inRun {
				break
			}
			continue
		}
		inRun = true
		if resolved := resolve(child.Value); resolved != nil {
			out = append(out, resolved)
		}
	}
	return out
}
