// Package cli implements the command-line interface for gocube.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	gocube "github.com/SeamusWaldron/gocube_solver"
	"github.com/SeamusWaldron/gocube_solver/internal/config"
	"github.com/SeamusWaldron/gocube_solver/internal/solver"
	"github.com/SeamusWaldron/gocube_solver/internal/tables"
)

const version = "0.2.0"

var (
	// Global flags
	configPath string
	logLevel   string
	dbPath     string

	// cfg is loaded before every command runs.
	cfg = config.DefaultConfig()
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "gocube",
	Short: "Rubik's cube solver",
	Long: `gocube - A two-phase Rubik's cube solver.

Describe a cube by its 54 stickers or by the moves that scrambled it, and
gocube finds a short sequence of moves that solves it.

Facelet strings list the stickers face by face in the order U, R, F, D, L, B,
naming each sticker after the face whose center has its color:

  UUUUUUUUURRRRRRRRRFFFFFFFFFDDDDDDDDDLLLLLLLLLBBBBBBBBB`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.gocube/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite file for session logs (default: in memory)")
}

// setup loads the config and installs the default logger.
func setup(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			slog.Warn("using default config", "error", err)
			path = ""
		}
	}
	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.LogLevel = logLevel
	}
	if dbPath != "" {
		loaded.Database = dbPath
	}
	level, err := loaded.Level()
	if err != nil {
		return err
	}
	cfg = loaded

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	tables.SetDefaultOptions(cfg.TablesOptions(slog.Default()))
	slog.Debug("config loaded", "path", path, "target_length", cfg.Solver.TargetLength,
		"timeout", cfg.Solver.Timeout)
	return nil
}

// budget returns the solver section of the config with any per-command
// flag overrides applied.
func budget(cmd *cobra.Command) config.SolverConfig {
	s := cfg.Solver
	flags := cmd.Flags()
	if flags.Changed("max-length") {
		s.MaxLength, _ = flags.GetInt("max-length")
	}
	if flags.Changed("target") {
		s.TargetLength, _ = flags.GetInt("target")
	}
	if flags.Changed("timeout") {
		s.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("max-nodes") {
		s.MaxNodes, _ = flags.GetInt64("max-nodes")
	}
	return s
}

// solveOptions converts budget(cmd) for the public API.
func solveOptions(cmd *cobra.Command) []gocube.Option {
	s := budget(cmd)
	return []gocube.Option{
		gocube.WithMaxLength(s.MaxLength),
		gocube.WithTargetLength(s.TargetLength),
		gocube.WithTimeout(s.Timeout),
		gocube.WithMaxNodes(s.MaxNodes),
		gocube.WithPhase2MaxDepth(s.Phase2MaxDepth),
		gocube.WithLogger(slog.Default()),
	}
}

// solverOptions converts budget(cmd) for the internal solver.
func solverOptions(cmd *cobra.Command) solver.Options {
	c := cfg
	c.Solver = budget(cmd)
	opts := c.SolverOptions()
	opts.Logger = slog.Default()
	return opts
}

// addBudgetFlags registers the per-command search budget flags read by
// solveOptions.
func addBudgetFlags(cmd *cobra.Command) {
	cmd.Flags().Int("max-length", 0, "Longest solution accepted")
	cmd.Flags().Int("target", 0, "Stop at the first solution this short (0: search for the shortest)")
	cmd.Flags().Duration("timeout", 0, "Time limit for the search (0: none)")
	cmd.Flags().Int64("max-nodes", 0, "Node limit for the search (0: none)")
}

// readCube builds a cube from a facelet string or, if moves is set, from the
// solved cube with the moves applied.
func readCube(args []string, moves string) (*gocube.Cube, error) {
	if moves != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("give either a facelet string or --moves, not both")
		}
		c := gocube.NewCube()
		if err := c.ApplyNotation(moves); err != nil {
			return nil, err
		}
		return c, nil
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("missing facelet string")
	}
	return gocube.ParseCube(args[0])
}
