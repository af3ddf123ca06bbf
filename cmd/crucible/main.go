// crucible finds the cheapest constrained-run path across a digit grid.
//
// Usage:
//
//	crucible solve [file]     - Print the minimum cost for each profile
//	crucible render [file]    - Draw the optimal path over the grid
//	crucible history          - List recorded runs
//
// The grid is read from stdin when no file is given.
//
// Global flags:
//
//	--config <path>     - Configuration file (default search: ~/.crucible/config.yaml, ./configs/crucible.yaml)
//	--log-level <level> - debug, info, warn or error
//	--db <path>         - Run history database (default: ~/.crucible/runs.db)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/crucible/internal/config"
	"github.com/katalvlaran/crucible/internal/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries the global flags and what PersistentPreRunE builds from them.
type app struct {
	configPath string
	logLevel   string
	dbPath     string

	cfg    config.Config
	logger *log.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "crucible",
		Short: "Constrained-run shortest paths over weighted grids",
		Long: `crucible computes the minimum total cost of crossing a grid of digit
weights when the mover must travel at least min-run and at most max-run
cells in a straight line and may never reverse.

Available commands:
  solve    - Print the minimum cost for each profile
  render   - Draw the optimal path over the grid
  history  - List recorded runs

Examples:
  crucible solve input.txt
  crucible solve --profile all input.txt
  crucible solve --min-run 2 --max-run 5 --goal 3,7 < input.txt
  crucible render --profile ultra input.txt
  crucible history --limit 5`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&a.dbPath, "db", "", "Path to run history database (empty uses config)")

	// Add subcommands
	rootCmd.AddCommand(newSolveCmd(a))
	rootCmd.AddCommand(newRenderCmd(a))
	rootCmd.AddCommand(newHistoryCmd(a))

	return rootCmd
}

// setup loads configuration, applies global flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.dbPath != "" {
		cfg.Storage.Path = a.dbPath
	}
	lvl, err := cfg.Log.ParseLevel()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		ReportTimestamp: true,
		Prefix:          "crucible",
		Level:           lvl,
	})
	a.logger.Debug("configuration loaded", "path", a.configPath, "db", cfg.Storage.Path)

	return nil
}

// openStore opens the run history, or returns nil when storage is disabled.
// Failures are logged and the command continues without history.
func (a *app) openStore() *store.Store {
	if a.cfg.Storage.Path == "" {
		return nil
	}
	s, err := store.Open(a.cfg.Storage.Path)
	if err != nil {
		a.logger.Warn("could not open run database", "error", err)
		return nil
	}

	return s
}
