package cli

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_solver/internal/cubie"
	"github.com/SeamusWaldron/gocube_solver/internal/solver"
	"github.com/SeamusWaldron/gocube_solver/internal/tables"
)

var (
	benchCount   int
	benchSeed    uint64
	benchWorkers int
	benchMetrics bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Solve a batch of random cubes and report statistics",
	Long: `Solve random-state cubes in parallel and print length, node and time
statistics. Tables are built before the clock starts.`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().IntVarP(&benchCount, "count", "n", 20, "Number of cubes")
	benchCmd.Flags().Uint64Var(&benchSeed, "seed", 1, "Random seed")
	benchCmd.Flags().IntVarP(&benchWorkers, "workers", "w", 0, "Parallel searches (0: from config, then one per CPU)")
	benchCmd.Flags().BoolVar(&benchMetrics, "metrics", false, "Print the solver metrics after the run")
	addBudgetFlags(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	t, err := tables.Build(cmd.Context(), cfg.TablesOptions(slog.Default()))
	if err != nil {
		return err
	}
	s, err := solver.New(t, solverOptions(cmd))
	if err != nil {
		return err
	}

	r := rand.New(rand.NewPCG(benchSeed, benchSeed))
	cubes := make([]cubie.Cube, benchCount)
	for i := range cubes {
		cubes[i] = cubie.Random(r)
	}
	workers := benchWorkers
	if workers == 0 {
		workers = cfg.Workers
	}

	start := time.Now()
	results, err := s.SolveAll(cmd.Context(), cubes, workers)
	wall := time.Since(start)
	if err != nil {
		return err
	}

	var solved, optimal, totalLen, longest int
	var nodes int64
	shortest := -1
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		n := res.Solution.Len()
		solved++
		totalLen += n
		nodes += res.Solution.Nodes
		longest = max(longest, n)
		if shortest < 0 || n < shortest {
			shortest = n
		}
		if res.Solution.Optimal {
			optimal++
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("Benchmark"))
	fmt.Fprintf(out, "Cubes:    %d (%d solved, %d proven optimal)\n", len(cubes), solved, optimal)
	if solved > 0 {
		fmt.Fprintf(out, "Length:   avg %.2f, min %d, max %d\n", float64(totalLen)/float64(solved), shortest, longest)
		fmt.Fprintf(out, "Nodes:    avg %d\n", nodes/int64(solved))
	}
	fmt.Fprintf(out, "Wall:     %s (%.1f cubes/s)\n", wall.Round(time.Millisecond), float64(len(cubes))/wall.Seconds())

	if benchMetrics {
		return printMetrics(cmd)
	}
	return nil
}

// printMetrics dumps the gocube_* series from the default registry.
func printMetrics(cmd *cobra.Command) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "gocube_") {
			continue
		}
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(out, "%-50s %g\n", name, m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				fmt.Fprintf(out, "%-50s count=%d sum=%g\n", name, h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}
	return nil
}
