package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/crucible/crucible"
	"github.com/katalvlaran/crucible/internal/render"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		flags solverFlags
		plain bool
	)
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Draw the optimal path over the grid",
		Long: `Render solves the grid and prints it with the optimal path drawn as
^ > v < glyphs, one grid per selected profile.

Examples:
  crucible render input.txt
  crucible render --profile ultra --plain input.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := a.resolve(cmd, args, &flags)
			if err != nil {
				return err
			}
			ctx, cancel := q.context(cmd.Context())
			defer cancel()

			opts := append(q.opts, crucible.WithReturnPath())
			results, err := crucible.SolveMany(ctx, q.grid, q.start, q.goal, q.profiles, opts...)
			if err != nil {
				return err
			}

			draw := render.Styled
			if plain {
				draw = render.Plain
			}
			out := cmd.OutOrStdout()
			for i, res := range results {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, render.Summary(res))
				if res.Reachable() {
					fmt.Fprintln(out, draw(q.grid, res.Path))
				}
			}

			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&plain, "plain", false, "Disable colours")

	return cmd
}
