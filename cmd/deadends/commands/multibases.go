package commands

import (
	"fmt"
	"strings"

	"github.com/lesfleursdelanuitdev/deadends-go/cmd/deadends/internal"
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom/database"
	"github.com/spf13/cobra"
)

// NewMultibasesCommand returns the "multibases" command: load several
// GEDCOM files as independent databases in one process, report each
// file's error log, and exit non-zero if any file failed to load cleanly
// (spec.md §6's CLI surface, multi-database load path).
func NewMultibasesCommand() *cobra.Command {
	var fileList string

	cmd := &cobra.Command{
		Use:   "multibases",
		Short: "Load multiple GEDCOM files as separate databases",
		Long:  "Loads a comma-separated list of GEDCOM files, each into its own in-memory database, and reports a summary and error log per file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fileList == "" {
				return fmt.Errorf("-m/--files is required")
			}
			paths := splitNonEmpty(fileList, ",")
			if len(paths) == 0 {
				return fmt.Errorf("no file paths given in -m/--files")
			}

			var failed bool
			dbs := make([]*database.Database, 0, len(paths))
			for _, path := range paths {
				resolved, ok := internal.ResolveGedcomFile(path)
				if !ok {
					internal.PrintError("%s: not found\n", path)
					failed = true
					continue
				}
				internal.PrintInfo("loading %s\n", resolved)
				db, log, err := internal.LoadFileWithProgress(resolved)
				if err != nil {
					internal.PrintError("%s: %v\n", path, err)
					failed = true
					continue
				}
				internal.PrintErrorLog(cmd.ErrOrStderr(), log)
				if log.HasFatal() {
					internal.PrintError("%s: fatal errors, database discarded\n", path)
					failed = true
					continue
				}
				internal.PrintSuccess("%s: %d persons, %d families\n", path, db.NumberPersons(), db.NumberFamilies())
				dbs = append(dbs, db)
			}

			internal.PrintInfo("loaded %d of %d databases\n", len(dbs), len(paths))
			if failed {
				return fmt.Errorf("one or more files failed to load")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&fileList, "files", "m", "", "Comma-separated list of GEDCOM files to load")
	return cmd
}

func splitNonEmpty(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
