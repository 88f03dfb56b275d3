package commands

import (
	"fmt"
	"os"

	"github.com/lesfleursdelanuitdev/deadends-go/cmd/deadends/internal"
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom"
	"github.com/spf13/cobra"
)

// NewPatchSexCommand returns the "patch-sex" command: loads a GEDCOM file
// and rewrites every INDI so it has exactly one SEX line with value M, F,
// or U, inserting a missing one and normalizing an invalid one to U
// (spec.md §6's CLI surface).
func NewPatchSexCommand() *cobra.Command {
	var gedcomPath string
	var indent bool

	cmd := &cobra.Command{
		Use:   "patch-sex",
		Short: "Normalize every person record's SEX line",
		RunE: func(cmd *cobra.Command, args []string) error {
			if gedcomPath == "" {
				return fmt.Errorf("-g/--gedcom is required")
			}
			resolved, ok := internal.ResolveGedcomFile(gedcomPath)
			if !ok {
				return fmt.Errorf("%s: not found", gedcomPath)
			}
			db, log, err := internal.LoadFileWithProgress(resolved)
			if err != nil {
				return err
			}
			internal.PrintErrorLog(cmd.ErrOrStderr(), log)
			if log.HasFatal() {
				return fmt.Errorf("%s: fatal errors, refusing to patch SEX lines", gedcomPath)
			}

			patched := patchSex(db.PersonRoots.Roots())
			internal.PrintInfo("patched %d of %d person records\n", patched, len(db.PersonRoots.Roots()))

			return gedcom.EmitDatabaseIndented(os.Stdout, db.Header, db.Records.Roots(), indent)
		},
	}

	cmd.Flags().StringVarP(&gedcomPath, "gedcom", "g", "", "GEDCOM file to load")
	cmd.Flags().BoolVar(&indent, "indent", false, "Indent emitted GEDCOM lines by level")
	return cmd
}

// patchSex ensures each person in persons has exactly one SEX child with a
// valid M/F/U value, returning the count of records it changed. A missing
// SEX line is appended; an invalid value is normalized to U; a second or
// later SEX line is dropped outright so exactly one remains.
func patchSex(persons []*gedcom.Node) int {
	var patched int
	for _, person := range persons {
		sexNodes := person.ChildrenWithTag("SEX")
		switch {
		case len(sexNodes) == 0:
			person.AddChild(gedcom.NewNode("", "SEX", gedcom.SexUnknown.String()))
			patched++
		case len(sexNodes) == 1 && gedcom.ParseSex(sexNodes[0].Value) != gedcom.SexError:
			// already well-formed
		default:
			if gedcom.ParseSex(sexNodes[0].Value) == gedcom.SexError {
				sexNodes[0].Value = gedcom.SexUnknown.String()
			}
			if len(sexNodes) > 1 {
				removeChildren(person, sexNodes[1:])
			}
			patched++
		}
	}
	return patched
}

// removeChildren unlinks each node in drop from parent's child list.
func removeChildren(parent *gedcom.Node, drop []*gedcom.Node) {
	remove := make(map[*gedcom.Node]bool, len(drop))
	for _, n := range drop {
		remove[n] = true
	}
	var head, tail *gedcom.Node
	for c := parent.Child; c != nil; {
		next := c.Sibling
		if !remove[c] {
			c.Sibling = nil
			if head == nil {
				head = c
			} else {
				tail.Sibling = c
			}
			tail = c
		}
		c = next
	}
	parent.Child = head
}
