package validator

import (
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom"
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom/database"
)

// PersonRule implements spec §4.8's person checks: FAMC/FAMS back-link
// round trips, and the presence of a valid NAME and SEX.
type PersonRule struct{}

func (PersonRule) Name() string { return "persons" }

func (PersonRule) Validate(db *database.Database, log *gedcom.ErrorLog) {
	for _, person := range db.PersonRoots.Roots() {
		validatePerson(db, person, log)
	}
}

func validatePerson(db *database.Database, person *gedcom.Node, log *gedcom.ErrorLog) {
	key := person.Key

	hasName := false
	for _, name := range person.ChildrenWithTag("NAME") {
		if name.Value != "" {
			hasName = true
			break
		}
	}
	if !hasName {
		reportf(log, gedcom.ErrorGedcom, gedcom.SeverityWarning, db.FilePath,
			diagnosticLine(db, person, person), "%s has no valid NAME", key)
	}

	sex := gedcom.PersonSex(person)
	if person.FirstChildWithTag("SEX") == nil || sex == gedcom.SexError {
		reportf(log, gedcom.ErrorGedcom, gedcom.SeverityWarning, db.FilePath,
			diagnosticLine(db, person, person), "%s has no valid SEX", key)
	}

	for _, famc := range person.ChildrenWithTag("FAMC") {
		family := db.KeyToFamily(famc.Value)
		if family == nil {
			reportf(log, gedcom.ErrorLinkage, gedcom.SeveritySevere, db.FilePath,
				diagnosticLine(db, person, famc), "%s FAMC %s: family does not exist", key, famc.Value)
			continue
		}
		matches := 0
		for _, chil := range family.ChildrenWithTag("CHIL") {
			if chil.Value == key {
				matches++
			}
		}
		if matches != 1 {
			reportf(log, gedcom.ErrorLinkage, gedcom.SeveritySevere, db.FilePath,
				diagnosticLine(db, person, famc),
				"%s FAMC %s: family has %d CHIL links back to this person, want exactly 1", key, famc.Value, matches)
		}
	}

	for _, fams := range person.ChildrenWithTag("FAMS") {
		family := db.KeyToFamily(fams.Value)
		if family == nil {
			reportf(log, gedcom.ErrorLinkage, gedcom.SeveritySevere, db.FilePath,
				diagnosticLine(db, person, fams), "%s FAMS %s: family does not exist", key, fams.Value)
			continue
		}
		if !sex.IsDefinite() {
			reportf(log, gedcom.ErrorLinkage, gedcom.SeverityWarning, db.FilePath,
				diagnosticLine(db, person, fams),
				"%s FAMS %s: person has no definite sex to resolve a HUSB/WIFE back-link", key, fams.Value)
			continue
		}
		tag := "WIFE"
		if sex == gedcom.SexMale {
			tag = "HUSB"
		}
		resolved := false
		for _, spouse := range family.ChildrenWithTag(tag) {
			if spouse.Value == key {
				resolved = true
				break
			}
		}
		if !resolved {
			reportf(log, gedcom.ErrorLinkage, gedcom.SeveritySevere, db.FilePath,
				diagnosticLine(db, person, fams),
				"%s FAMS %s: no matching %s back-link in family", key, fams.Value, tag)
		}
	}
}
