package validator

import (
	"fmt"

	"github.com/lesfleursdelanuitdev/deadends-go/gedcom"
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom/database"
)

// Rule is one independently-registerable validation pass.
type Rule interface {
	Name() string
	Validate(db *database.Database, log *gedcom.ErrorLog)
}

// Validator runs a pluggable sequence of Rules over a Database. Each rule's
// failures are appended to the log; a rule's errors never stop the rules
// that follow it (spec §4.8 "validation continues so the complete error
// set is reported").
type Validator struct {
	rules []Rule
}

// NewValidator builds a Validator with the default rule sequence: keys and
// references first (spec §4.8 requires this to run "before index
// construction" conceptually, though here it runs against the already-
// indexed database and simply doesn't depend on later rules' results),
// then persons, families, and REFNs.
func NewValidator() *Validator {
	return &Validator{
		rules: []Rule{
			KeyRule{},
			PersonRule{},
			FamilyRule{},
			RefnRule{},
		},
	}
}

// AddRule registers an additional Rule to run after the default sequence.
func (v *Validator) AddRule(rule Rule) {
	v.rules = append(v.rules, rule)
}

// Validate runs every registered rule against db, appending every failure
// to log.
func (v *Validator) Validate(db *database.Database, log *gedcom.ErrorLog) {
	for _, rule := range v.rules {
		rule.Validate(db, log)
	}
}

// diagnosticLine turns a node found somewhere inside root's subtree into
// the record's line of definition plus the count of nodes strictly
// preceding it in depth-first pre-order (spec §4.8).
func diagnosticLine(db *database.Database, root, node *gedcom.Node) int {
	defLine, ok := db.Records.LineOf(root.Key)
	if !ok {
		return 0
	}
	before := gedcom.CountBefore(root, node)
	if before < 0 {
		return defLine
	}
	return defLine + before
}

func reportf(log *gedcom.ErrorLog, kind gedcom.ErrorKind, severity gedcom.Severity, file string, line int, format string, args ...interface{}) {
	log.Add(kind, severity, file, line, fmt.Sprintf(format, args...))
}
