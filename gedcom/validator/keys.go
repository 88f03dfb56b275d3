package validator

import (
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom"
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom/database"
)

// KeyRule implements spec §4.8's "Keys and references" first pass: every
// key-shaped field value anywhere in the database must resolve to a key
// actually present in the record index. (Missing-key and duplicate-key
// detection already happen earlier, at Database.StoreRecord time — spec
// §4.3 — so nothing stored in the database can lack a key or collide with
// one; this rule only has the dangling-reference check left to do.)
type KeyRule struct{}

func (KeyRule) Name() string { return "keys-and-references" }

func (KeyRule) Validate(db *database.Database, log *gedcom.ErrorLog) {
	db.Records.ForEach(func(key string, root *gedcom.Node) {
		gedcom.Traverse(root, func(n *gedcom.Node) bool {
			if n.Value != "" && gedcom.IsKey(n.Value) && db.Records.Get(n.Value) == nil {
				reportf(log, gedcom.ErrorGedcom, gedcom.SeveritySevere, db.FilePath,
					diagnosticLine(db, root, n),
					"%s.%s references undefined key %s", key, n.Tag, n.Value)
			}
			return true
		})
	})
}
