package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/lesfleursdelanuitdev/deadends-go/cmd/deadends/internal"
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom/database"
	"github.com/lesfleursdelanuitdev/deadends-go/interp"
	"github.com/lesfleursdelanuitdev/deadends-go/interp/lexer"
	"github.com/lesfleursdelanuitdev/deadends-go/interp/parser"
	"github.com/spf13/cobra"
)

// interactiveState holds the loaded database and evaluator a running REPL
// line is evaluated against. Grounded on cmd/gedcom/commands/interactive.go's
// InteractiveState, adapted from a query.Graph/QueryBuilder pair to a
// database.Database plus an interp.Evaluator.
type interactiveState struct {
	db  *database.Database
	ev  *interp.Evaluator
	out *interp.Output
}

var state *interactiveState

// NewInteractiveCommand returns the "interactive" command: load a GEDCOM
// file once, then repeatedly read a line of script source from stdin,
// parse it as a single "proc main(){ ... }" body, and run it against the
// loaded database (spec.md §6's CLI surface; spec §4.11's script runtime).
func NewInteractiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interactive [input.ged]",
		Short: "Interactive mode",
		Long:  "Load a GEDCOM file once, then evaluate script statements against it one line at a time.",
		Args:  cobra.ExactArgs(1),
		RunE:  runInteractive,
	}
	return cmd
}

func runInteractive(cmd *cobra.Command, args []string) error {
	path := args[0]
	resolved, ok := internal.ResolveGedcomFile(path)
	if !ok {
		return fmt.Errorf("%s: not found", path)
	}

	internal.PrintInfo("loading %s\n", resolved)
	db, log, err := internal.LoadFileWithProgress(resolved)
	if err != nil {
		internal.PrintError("load failed: %v\n", err)
		return err
	}
	internal.PrintErrorLog(cmd.ErrOrStderr(), log)
	if log.HasFatal() {
		return fmt.Errorf("%s: fatal errors, refusing to start interactive mode", path)
	}
	internal.PrintSuccess("loaded %d persons, %d families\n", db.NumberPersons(), db.NumberFamilies())

	state = &interactiveState{
		db:  db,
		ev:  interp.NewEvaluator(),
		out: interp.NewOutput(os.Stdout, "stdout"),
	}

	internal.PrintInfo("type a script statement (wrapped in an implicit \"proc main(){}\"), or 'exit'/'quit'\n")
	startREPL()
	return nil
}

func startREPL() {
	defer func() {
		if r := recover(); r != nil {
			internal.PrintInfo("note: falling back to simple input mode\n")
			startSimpleREPL()
		}
	}()

	fileInfo, err := os.Stdin.Stat()
	if err != nil || (fileInfo.Mode()&os.ModeCharDevice) == 0 {
		startSimpleREPL()
		return
	}

	p := prompt.New(
		executeLine,
		completeLine,
		prompt.OptionPrefix("deadends> "),
		prompt.OptionTitle("DeadEnds Interactive Mode"),
		prompt.OptionPrefixTextColor(prompt.Cyan),
	)
	p.Run()
}

func startSimpleREPL() {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("deadends> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		executeLine(line)
	}
	if err := scanner.Err(); err != nil {
		internal.PrintError("error reading input: %v\n", err)
	}
}

func executeLine(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	switch line {
	case "exit", "quit", "q":
		internal.PrintInfo("goodbye\n")
		os.Exit(0)
	case "help", "h":
		internal.PrintInfo("enter one or more DeadEnds script statements; 'exit' to leave\n")
		return
	}

	source := "proc main(){" + line + "}"
	l := lexer.New(source)
	ps := parser.New(l)
	program := ps.ParseProgram()
	if errs := ps.Errors(); len(errs) > 0 {
		internal.PrintError("parse error: %s\n", strings.Join(errs, "; "))
		return
	}

	ctx := interp.NewContext(state.db, program, state.out)
	if err := state.ev.CallProcedure("main", ctx, nil); err != nil {
		internal.PrintError("%v\n", err)
	}
}

func completeLine(d prompt.Document) []prompt.Suggest {
	suggestions := []prompt.Suggest{
		{Text: "father", Description: "father(indi)"},
		{Text: "mother", Description: "mother(indi)"},
		{Text: "children", Description: "children(fam, n, v, body)"},
		{Text: "print", Description: "print(args...)"},
		{Text: "indiset", Description: "indiset()"},
		{Text: "exit", Description: "leave interactive mode"},
	}
	return prompt.FilterHasPrefix(suggestions, d.GetWordBeforeCursor(), true)
}
