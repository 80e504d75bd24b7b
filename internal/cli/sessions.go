package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	gocube "github.com/SeamusWaldron/gocube_solver"
	"github.com/SeamusWaldron/gocube_solver/internal/session"
	"github.com/SeamusWaldron/gocube_solver/internal/storage"
)

var (
	sessionsLimit    int
	sessionsSimplify bool
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List logged play sessions",
	Long: `List the sessions logged to the database given by --db, newest first,
with the number of moves applied to each.

Sessions are only kept between runs when --db (or database in the config
file) names a file.`,
	Args: cobra.NoArgs,
	RunE: runSessions,
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show the moves and solver runs of a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsShow,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.Flags().IntVar(&sessionsLimit, "limit", 20, "Number of sessions to list")
	sessionsShowCmd.Flags().BoolVar(&sessionsSimplify, "simplify", false, "Also print the simplified move sequence")
}

func runSessions(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db, err := storage.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	sessions, err := storage.NewSessionRepository(db).List(ctx, sessionsLimit)
	if err != nil {
		return err
	}
	moveRepo := storage.NewMoveRepository(db)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("Sessions"))
	fmt.Fprintln(out, statusStyle.Render(db.DSN()))
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions")
		return nil
	}
	for _, s := range sessions {
		n, err := moveRepo.Count(ctx, s.SessionID)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s  %s  %4d moves\n", s.SessionID,
			s.CreatedAt.Local().Format(time.DateTime), n)
	}
	return nil
}

func runSessionsShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db, err := storage.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := storage.NewSessionRepository(db).Get(ctx, args[0])
	if err != nil {
		return err
	}
	records, err := storage.NewMoveRepository(db).GetBySession(ctx, s.SessionID)
	if err != nil {
		return err
	}
	solves, err := storage.NewSolveRepository(db).ListBySession(ctx, s.SessionID)
	if err != nil {
		return err
	}
	moves := session.Moves(records)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("Session "+s.SessionID))
	fmt.Fprintf(out, "Created: %s\n", s.CreatedAt.Local().Format(time.DateTime))
	fmt.Fprintf(out, "Start:   %s\n", s.InitialFacelets)
	fmt.Fprintf(out, "Moves:   %s\n", gocube.FormatMoves(moves))
	if sessionsSimplify {
		fmt.Fprintf(out, "Simple:  %s\n", gocube.FormatMoves(gocube.SimplifyMoves(moves)))
	}
	for i, m := range moves {
		var gap time.Duration
		if i > 0 {
			gap = m.Time.Sub(moves[i-1].Time)
		}
		fmt.Fprintf(out, "  %3d %-3s %s %s\n", i+1, m, m.Time.Local().Format(time.TimeOnly),
			statusStyle.Render("+"+gap.Round(time.Millisecond).String()))
	}

	if len(solves) > 0 {
		fmt.Fprintln(out, "\nSolves:")
	}
	for _, r := range solves {
		when := r.CreatedAt.Local().Format(time.TimeOnly)
		if r.Error != nil {
			fmt.Fprintf(out, "  %s %s\n", when, errorStyle.Render(*r.Error))
			continue
		}
		fmt.Fprintf(out, "  %s %s (%d moves, %d nodes, optimal: %v)\n", when, *r.Solution,
			*r.Length, r.Nodes, r.Optimal)
	}
	return nil
}
