package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	gocube "github.com/SeamusWaldron/gocube_solver"
)

var (
	applyFrom string
	applyNet  bool
)

var applyCmd = &cobra.Command{
	Use:   "apply <moves>",
	Short: "Apply moves and print the resulting facelets",
	Long: `Apply a move sequence to a cube (solved by default) and print the
facelet string of the result.

Examples:
  gocube apply "R U R' U'"
  gocube apply --from <facelets> "F2 D'" --net`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

var verifyCmd = &cobra.Command{
	Use:   "verify <facelets>",
	Short: "Check that a facelet string describes a reachable cube",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := gocube.ParseCube(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok (solved: %v)\n", c.IsSolved())
		return nil
	},
}

var simplifyCmd = &cobra.Command{
	Use:   "simplify <moves>",
	Short: "Merge consecutive turns of the same face",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := simplifyNotation(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(applyCmd, verifyCmd, simplifyCmd)
	applyCmd.Flags().StringVar(&applyFrom, "from", "", "Start from this facelet string instead of solved")
	applyCmd.Flags().BoolVar(&applyNet, "net", false, "Print the resulting cube as a net")
}

func runApply(cmd *cobra.Command, args []string) error {
	c := gocube.NewCube()
	if applyFrom != "" {
		var err error
		if c, err = gocube.ParseCube(applyFrom); err != nil {
			return err
		}
	}
	if err := c.ApplyNotation(args[0]); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, c.Facelets())
	if applyNet {
		fmt.Fprintln(out, renderNet(c))
	}
	return nil
}

func simplifyNotation(s string) (string, error) {
	moves, err := gocube.ParseMoves(s)
	if err != nil {
		return "", err
	}
	return gocube.FormatMoves(gocube.SimplifyMoves(moves)), nil
}
