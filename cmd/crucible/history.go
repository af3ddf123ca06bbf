package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Long: `Display the most recent solver runs from the history database.

Examples:
  crucible history
  crucible history --limit 25`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st := a.openStore()
			if st == nil {
				return fmt.Errorf("run history is disabled (no database path)")
			}
			defer st.Close()

			runs, err := st.Recent(limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet.")
				return nil
			}

			// Print header
			fmt.Fprintf(out, "  %-4s  %-16s  %-7s  %-7s  %-8s  %-6s  %-11s  %s\n",
				"ID", "Date", "Grid", "Runs", "Frontier", "Ms", "Cost", "Digest")
			for _, r := range runs {
				cost := "unreachable"
				if r.Reachable {
					cost = fmt.Sprint(r.Cost)
				}
				digest := r.Key.GridDigest
				if len(digest) > 12 {
					digest = digest[:12]
				}
				fmt.Fprintf(out, "  %-4d  %-16s  %-7s  %-7s  %-8s  %-6d  %-11s  %s\n",
					r.ID,
					r.CreatedAt.Format("2006-01-02 15:04"),
					fmt.Sprintf("%dx%d", r.Height, r.Width),
					fmt.Sprintf("%d..%d", r.Key.MinRun, r.Key.MaxRun),
					r.Frontier,
					r.Duration.Milliseconds(),
					cost,
					digest,
				)
			}

			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of runs to show")

	return cmd
}
