package commands

import (
	"fmt"
	"os"

	"github.com/lesfleursdelanuitdev/deadends-go/cmd/deadends/internal"
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom"
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom/database"
	"github.com/spf13/cobra"
)

var keyRefTags = []string{"FAMC", "FAMS", "HUSB", "WIFE", "CHIL"}

// NewRandomizeKeysCommand returns the "randomize-keys" command: loads a
// GEDCOM file, remints every person and family key to a fresh
// collision-free one, rewrites every FAMC/FAMS/HUSB/WIFE/CHIL value that
// pointed at an old key, and emits the result to stdout (spec.md §6's CLI
// surface). Source, event and other records keep their original keys, and
// values under any other tag are not rewritten.
func NewRandomizeKeysCommand() *cobra.Command {
	var gedcomPath string
	var indent bool

	cmd := &cobra.Command{
		Use:   "randomize-keys",
		Short: "Rewrite every person and family key to a fresh random one",
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
				return fmt.Errorf("%s: fatal errors, refusing to randomize keys", gedcomPath)
			}

			remap, err := randomizeKeys(db)
			if err != nil {
				return err
			}
			rewriteKeyReferences(db, remap)

			return gedcom.EmitDatabaseIndented(os.Stdout, db.Header, db.Records.Roots(), indent)
		},
	}

	cmd.Flags().StringVarP(&gedcomPath, "gedcom", "g", "", "GEDCOM file to load")
	cmd.Flags().BoolVar(&indent, "indent", false, "Indent emitted GEDCOM lines by level")
	return cmd
}

// randomizeKeys mints a fresh key for every stored person and family record
// and relabels its
// root node and key index entry in place, returning the old-to-new key
// mapping for rewriteKeyReferences.
func randomizeKeys(db *database.Database) (map[string]string, error) {
	remap := make(map[string]string)
	used := make(map[string]bool)
	exists := func(key string) bool { return used[key] || db.Records.Has(key) }

	var roots []*gedcom.Node
	db.Records.ForEach(func(key string, root *gedcom.Node) {
		roots = append(roots, root)
	})

	for _, root := range roots {
		oldKey := root.Key
		kind := gedcom.KindOf(root)
		if kind != gedcom.KindPerson && kind != gedcom.KindFamily {
			continue
		}
		newKey, err := gedcom.GenerateKey(kind, exists)
		if err != nil {
			return nil, fmt.Errorf("generating key for %s: %w", oldKey, err)
		}
		used[newKey] = true
		remap[oldKey] = newKey
		root.Key = newKey
	}

	db.Records.Rekey(remap)
	return remap, nil
}

// rewriteKeyReferences walks every record and rewrites any FAMC/FAMS/HUSB/
// WIFE/CHIL value that names a key in remap to its new key, so links
// survive randomizeKeys relabeling the targets (spec §4.2's pointer-field
// convention).
func rewriteKeyReferences(db *database.Database, remap map[string]string) {
	db.Records.ForEach(func(key string, root *gedcom.Node) {
		gedcom.Traverse(root, func(n *gedcom.Node) bool {
			for _, tag := range keyRefTags {
				if n.Tag == tag {
					if newKey, ok := remap[n.Value]; ok {
						n.Value = newKey
					}
					break
				}
			}
			return true
		})
	})
}
