package cli

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_solver/internal/tables"
)

var tablesNoCache bool

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Build the lookup tables and print their statistics",
	Long: `Build the move and pruning tables and print their statistics.

The phase-1 pruning table is read from the table cache directory when
present, and written there after a fresh build. Set table_cache in the
config file or GOCUBE_TABLE_CACHE to move it, or use --no-cache to build
from scratch without touching the cache.`,
	Args: cobra.NoArgs,
	RunE: runTables,
}

func init() {
	rootCmd.AddCommand(tablesCmd)
	tablesCmd.Flags().BoolVar(&tablesNoCache, "no-cache", false, "Build every table from scratch and leave the cache alone")
}

func runTables(cmd *cobra.Command, args []string) error {
	opts := cfg.TablesOptions(slog.Default())
	if tablesNoCache {
		opts.CacheDir = ""
	}
	t, err := tables.Build(cmd.Context(), opts)
	if err != nil {
		return err
	}
	st := t.Stats()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("Solver tables"))
	fmt.Fprintf(out, "Build time:   %s\n", st.BuildTime.Round(time.Millisecond))
	if opts.CacheDir != "" {
		fmt.Fprintf(out, "Cache:        %s (hit: %v)\n", opts.CacheDir, st.Cached)
	}
	fmt.Fprintf(out, "Memory:       %.1f MB\n", float64(st.Bytes())/(1<<20))
	fmt.Fprintf(out, "Move entries: %d\n\n", st.MoveTableEntries)

	fmt.Fprintf(out, "%-16s %10s %6s  %s\n", "Pruning", "Entries", "Depth", "Cells per depth")
	fmt.Fprintln(out, strings.Repeat("-", 60))
	for _, p := range st.Prune {
		depths := make([]string, len(p.Depths))
		for d, n := range p.Depths {
			depths[d] = fmt.Sprint(n)
		}
		fmt.Fprintf(out, "%-16s %10d %6d  %s\n", p.Name, p.Entries, p.MaxDepth,
			statusStyle.Render(strings.Join(depths, " ")))
	}
	return nil
}
