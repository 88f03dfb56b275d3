package main

import (
	"fmt"
	"os"

	"github.com/lesfleursdelanuitdev/deadends-go/cmd/deadends/commands"
	"github.com/lesfleursdelanuitdev/deadends-go/cmd/deadends/internal"
	"github.com/lesfleursdelanuitdev/deadends-go/config"
	"github.com/spf13/cobra"
)

var (
	version    = "1.0.0"
	configPath string
	quiet      bool
	verbose    bool
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:     "deadends",
	Short:   "DeadEnds GEDCOM database and script command-line tool",
	Long:    "Loads GEDCOM files into an in-memory genealogical database, validates lineage integrity, and runs DeadEnds scripts against it.",
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
			cfg = config.DefaultConfig()
		}

		internal.SetQuietMode(quiet)
		internal.SetColor(!noColor)
		internal.SetSearchPaths(cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (suppress progress bars and info lines)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(commands.NewMultibasesCommand())
	rootCmd.AddCommand(commands.NewRandomizeKeysCommand())
	rootCmd.AddCommand(commands.NewPatchSexCommand())
	rootCmd.AddCommand(commands.NewInteractiveCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		internal.PrintError("error: %v\n", err)
		os.Exit(1)
	}
}
