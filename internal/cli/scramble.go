package cli

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	gocube "github.com/SeamusWaldron/gocube_solver"
)

var (
	scrambleSeed  uint64
	scrambleCount int
	scrambleNet   bool
)

var scrambleCmd = &cobra.Command{
	Use:   "scramble",
	Short: "Generate random-state scrambles",
	Long: `Pick cube states uniformly at random and print a move sequence that
produces each one from the solved cube, followed by its facelet string.`,
	Args: cobra.NoArgs,
	RunE: runScramble,
}

func init() {
	rootCmd.AddCommand(scrambleCmd)
	scrambleCmd.Flags().Uint64Var(&scrambleSeed, "seed", 0, "Random seed (0: random)")
	scrambleCmd.Flags().IntVarP(&scrambleCount, "count", "n", 1, "Number of scrambles")
	scrambleCmd.Flags().BoolVar(&scrambleNet, "net", false, "Print each cube as a net")
	addBudgetFlags(scrambleCmd)
}

func runScramble(cmd *cobra.Command, args []string) error {
	var r *rand.Rand
	if scrambleSeed != 0 {
		r = rand.New(rand.NewPCG(scrambleSeed, scrambleSeed))
	}

	out := cmd.OutOrStdout()
	for i := 0; i < scrambleCount; i++ {
		c, moves, err := gocube.Scramble(cmd.Context(), r, solveOptions(cmd)...)
		if err != nil {
			return fmt.Errorf("scramble %d: %w", i+1, err)
		}
		fmt.Fprintln(out, moveStyle.Render(gocube.FormatMoves(moves)))
		fmt.Fprintln(out, c.Facelets())
		if scrambleNet {
			fmt.Fprintln(out, renderNet(c))
		}
	}
	return nil
}
