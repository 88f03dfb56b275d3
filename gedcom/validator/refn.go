package validator

import (
	"sort"

	"github.com/lesfleursdelanuitdev/deadends-go/gedcom"
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom/database"
)

// RefnRule implements spec §4.8's REFN checks: every REFN value must be
// non-empty and unique across the file. It re-derives uniqueness from the
// records themselves rather than trusting Database.RefnIndex, so it gives
// the same answer whether or not the caller already ran
// Database.IndexRefns.
type RefnRule struct{}

func (RefnRule) Name() string { return "refns" }

func (RefnRule) Validate(db *database.Database, log *gedcom.ErrorLog) {
	roots := make(map[string]*gedcom.Node)
	db.Records.ForEach(func(key string, root *gedcom.Node) {
		roots[key] = root
	})
	keys := make([]string, 0, len(roots))
	for key := range roots {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	seen := make(map[string]string)
	for _, key := range keys {
		root := roots[key]
		for _, refn := range root.ChildrenWithTag("REFN") {
			if refn.Value == "" {
				reportf(log, gedcom.ErrorGedcom, gedcom.SeverityWarning, db.FilePath,
					diagnosticLine(db, root, refn), "%s has an empty REFN value", key)
				continue
			}
			if owner, ok := seen[refn.Value]; ok {
				reportf(log, gedcom.ErrorGedcom, gedcom.SeverityWarning, db.FilePath,
					diagnosticLine(db, root, refn),
					"REFN value %q on %s duplicates the one on %s", refn.Value, key, owner)
				continue
			}
			seen[refn.Value] = key
		}
	}
}
