package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	solveMoves    string
	solveShowNet  bool
	solveSimplify bool
)

var solveCmd = &cobra.Command{
	Use:   "solve [facelets]",
	Short: "Find a solution for a cube",
	Long: `Search for a short move sequence that solves a cube.

The cube is given either as a 54-character facelet string or, with --moves,
as the scramble that produced it from the solved state.

Examples:
  gocube solve DRLUUBFBRBLURRLRUBLRDDFDLFUFUFFDBRDUBRUFLLFDDBFLUBLRBD
  gocube solve --moves "R U R' U' F2" --target 0`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().StringVar(&solveMoves, "moves", "", "Scramble to apply to a solved cube instead of a facelet string")
	solveCmd.Flags().BoolVar(&solveShowNet, "net", false, "Print the cube before solving")
	solveCmd.Flags().BoolVar(&solveSimplify, "simplify", false, "Simplify --moves before applying (R R becomes R2)")
	addBudgetFlags(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	moves := solveMoves
	if solveSimplify && moves != "" {
		simplified, err := simplifyNotation(moves)
		if err != nil {
			return err
		}
		moves = simplified
	}
	c, err := readCube(args, moves)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if solveShowNet {
		fmt.Fprintln(out, renderNet(c))
	}

	sol, err := c.Solve(cmd.Context(), solveOptions(cmd)...)
	if err != nil {
		return err
	}

	if sol.Len() == 0 {
		fmt.Fprintln(out, "Cube is already solved")
	} else {
		fmt.Fprintln(out, sol)
	}
	fmt.Fprintln(out, statusStyle.Render(fmt.Sprintf("%d moves, %d nodes, %s, optimal: %v",
		sol.Len(), sol.Nodes, sol.Elapsed.Round(time.Microsecond), sol.Optimal)))
	return nil
}
