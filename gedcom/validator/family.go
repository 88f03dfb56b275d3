package validator

import (
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom"
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom/database"
)

// FamilyRule implements spec §4.8's family checks: HUSB/WIFE/CHIL back-link
// round trips, and the "at least one of HUSB/WIFE/CHIL" presence rule.
type FamilyRule struct{}

func (FamilyRule) Name() string { return "families" }

func (FamilyRule) Validate(db *database.Database, log *gedcom.ErrorLog) {
	for _, family := range db.FamilyRoots.Roots() {
		validateFamily(db, family, log)
	}
}

func validateFamily(db *database.Database, family *gedcom.Node, log *gedcom.ErrorLog) {
	key := family.Key
	husbs := family.ChildrenWithTag("HUSB")
	wifes := family.ChildrenWithTag("WIFE")
	chils := family.ChildrenWithTag("CHIL")

	if len(husbs)+len(wifes)+len(chils) == 0 {
		reportf(log, gedcom.ErrorGedcom, gedcom.SeverityWarning, db.FilePath,
			diagnosticLine(db, family, family), "%s has none of HUSB, WIFE, CHIL", key)
	}

	for _, husb := range husbs {
		validateSpouseLink(db, family, husb, "FAMS", log)
	}
	for _, wife := range wifes {
		validateSpouseLink(db, family, wife, "FAMS", log)
	}
	for _, chil := range chils {
		person := db.KeyToPerson(chil.Value)
		if person == nil {
			reportf(log, gedcom.ErrorLinkage, gedcom.SeveritySevere, db.FilePath,
				diagnosticLine(db, family, chil), "%s CHIL %s: person does not exist", key, chil.Value)
			continue
		}
		matches := 0
		for _, famc := range person.ChildrenWithTag("FAMC") {
			if famc.Value == key {
				matches++
			}
		}
		if matches != 1 {
			reportf(log, gedcom.ErrorLinkage, gedcom.SeveritySevere, db.FilePath,
				diagnosticLine(db, family, chil),
				"%s CHIL %s: person has %d FAMC links back to this family, want exactly 1", key, chil.Value, matches)
		}
	}
}

func validateSpouseLink(db *database.Database, family, link *gedcom.Node, backTag string, log *gedcom.ErrorLog) {
	person := db.KeyToPerson(link.Value)
	if person == nil {
		reportf(log, gedcom.ErrorLinkage, gedcom.SeveritySevere, db.FilePath,
			diagnosticLine(db, family, link), "%s %s %s: person does not exist", family.Key, link.Tag, link.Value)
		return
	}
	matches := 0
	for _, fams := range person.ChildrenWithTag(backTag) {
		if fams.Value == family.Key {
			matches++
		}
	}
	if matches != 1 {
		reportf(log, gedcom.ErrorLinkage, gedcom.SeveritySevere, db.FilePath,
			diagnosticLine(db, family, link),
			"%s %s %s: person has %d %s links back to this family, want exactly 1",
			family.Key, link.Tag, link.Value, matches, backTag)
	}
}
