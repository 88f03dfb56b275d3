// Package internal holds the small pieces cmd/deadends' commands share:
// severity-colored diagnostic printing and GEDCOM-load progress display.
// Grounded on the teacher's cmd/gedcom/internal package (referenced from
// cmd/gedcom/commands but never checked in to this pack), rebuilt here
// against the teacher's own color/progressbar dependencies.
package internal

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/lesfleursdelanuitdev/deadends-go/config"
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom"
	"github.com/schollz/progressbar/v3"
)

var (
	quiet       bool
	noColor     bool
	gedcomPath  []string
	scriptsPath []string
)

// SetQuietMode suppresses progress bars and informational output.
func SetQuietMode(q bool) { quiet = q }

// SetColor enables or disables ANSI color on all PrintX helpers.
func SetColor(enabled bool) {
	noColor = !enabled
	color.NoColor = !enabled
}

// SetSearchPaths records the DE_GEDCOM_PATH/DE_SCRIPTS_PATH-derived search
// directories ResolveGedcomFile and ResolveScriptFile consult, loaded once
// at startup by main's PersistentPreRun (spec.md §6 environment variables).
func SetSearchPaths(cfg *config.Config) {
	gedcomPath = cfg.GedcomPath
	scriptsPath = cfg.ScriptsPath
}

// ResolveGedcomFile finds name as given, or else within the configured
// DE_GEDCOM_PATH search directories.
func ResolveGedcomFile(name string) (string, bool) {
	if _, err := os.Stat(name); err == nil {
		return name, true
	}
	return config.ResolveFile(gedcomPath, name)
}

// ResolveScriptFile finds name as given, or else within the configured
// DE_SCRIPTS_PATH search directories.
func ResolveScriptFile(name string) (string, bool) {
	if _, err := os.Stat(name); err == nil {
		return name, true
	}
	return config.ResolveFile(scriptsPath, name)
}

// PrintInfo writes a plain informational line to stderr.
func PrintInfo(format string, args ...interface{}) {
	if quiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}

// PrintSuccess writes a green success line to stderr.
func PrintSuccess(format string, args ...interface{}) {
	if quiet {
		return
	}
	color.New(color.FgGreen).Fprintf(os.Stderr, format, args...)
}

// PrintWarning writes a yellow warning line to stderr.
func PrintWarning(format string, args ...interface{}) {
	color.New(color.FgYellow).Fprintf(os.Stderr, format, args...)
}

// PrintError writes a red error line to stderr, ignoring quiet mode.
func PrintError(format string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(os.Stderr, format, args...)
}

// severityColor returns the color to print an error log entry of the given
// severity in (spec §7's severity ladder: fatal/severe/warning/comment).
func severityColor(s gedcom.Severity) *color.Color {
	switch s {
	case gedcom.SeverityFatal, gedcom.SeveritySevere:
		return color.New(color.FgRed, color.Bold)
	case gedcom.SeverityWarning:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgCyan)
	}
}

// PrintErrorLog prints every entry of log, sorted by (file, line), colored
// by severity (spec §7 "prints a sorted error log").
func PrintErrorLog(w io.Writer, log *gedcom.ErrorLog) {
	for _, e := range log.Entries() {
		severityColor(e.Severity).Fprintf(w, "%s:%d: [%s/%s] %s\n",
			e.File, e.Line, e.Kind, e.Severity, e.Message)
	}
}

// NewLoadBar returns a progress bar tracking bytes read while loading a
// GEDCOM file of the given size, or a no-op bar in quiet mode (spec.md §6
// load path; grounded on the teacher's go.mod-listed but previously-unwired
// schollz/progressbar/v3 dependency).
func NewLoadBar(name string, size int64) *progressbar.ProgressBar {
	if quiet {
		return progressbar.NewOptions64(-1, progressbar.OptionSetWriter(io.Discard))
	}
	if size <= 0 {
		return progressbar.DefaultBytes(-1, "loading "+name)
	}
	return progressbar.DefaultBytes(size, "loading "+name)
}
