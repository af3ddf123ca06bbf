package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/crucible/crucible"
	"github.com/katalvlaran/crucible/gridgraph"
	"github.com/katalvlaran/crucible/internal/config"
	"github.com/katalvlaran/crucible/internal/render"
	"github.com/katalvlaran/crucible/internal/store"
)

// solverFlags are the per-query flags shared by solve and render.
type solverFlags struct {
	profile    string
	minRun     int
	maxRun     int
	start      string
	goal       string
	frontier   string
	maxSteps   int
	timeout    time.Duration
	stopAtGoal bool
}

func (f *solverFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.profile, "profile", "", "Run profile: standard, ultra or all")
	cmd.Flags().IntVar(&f.minRun, "min-run", 0, "Minimum straight run (overrides the profile's lower bound)")
	cmd.Flags().IntVar(&f.maxRun, "max-run", 0, "Maximum straight run (overrides the profile's upper bound)")
	cmd.Flags().StringVar(&f.start, "start", "", "Start cell as row,col (default: top-left)")
	cmd.Flags().StringVar(&f.goal, "goal", "", "Goal cell as row,col (default: bottom-right)")
	cmd.Flags().StringVar(&f.frontier, "frontier", "", "Frontier: heap or bucket")
	cmd.Flags().IntVar(&f.maxSteps, "max-steps", 0, "Abort after settling this many states (0 = unlimited)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "Abort the search after this long (0 = no limit)")
	cmd.Flags().BoolVar(&f.stopAtGoal, "stop-at-goal", false, "Stop at the first optimal goal state")
}

// apply overlays the flags the user actually set on the configured solver settings.
func (f *solverFlags) apply(cmd *cobra.Command, s config.SolverConfig) config.SolverConfig {
	changed := cmd.Flags().Changed
	if changed("profile") {
		s.Profile = f.profile
		s.MinRun, s.MaxRun = 0, 0
	}
	if changed("min-run") {
		s.MinRun = f.minRun
	}
	if changed("max-run") {
		s.MaxRun = f.maxRun
	}
	if changed("start") {
		s.Start = f.start
	}
	if changed("goal") {
		s.Goal = f.goal
	}
	if changed("frontier") {
		s.Frontier = f.frontier
	}
	if changed("max-steps") {
		s.MaxSteps = f.maxSteps
	}
	if changed("timeout") {
		s.Timeout = f.timeout
	}
	if changed("stop-at-goal") {
		s.StopAtGoal = f.stopAtGoal
	}

	return s
}

// query is a fully resolved solver request.
type query struct {
	grid     *gridgraph.GridGraph
	digest   string
	start    gridgraph.Point
	goal     gridgraph.Point
	profiles []crucible.Profile
	opts     []crucible.Option
	frontier string
	timeout  time.Duration
}

func (q query) key(p crucible.Profile) store.Key {
	return store.Key{
		GridDigest: q.digest,
		Start:      q.start.String(),
		Goal:       q.goal.String(),
		MinRun:     p.MinRun,
		MaxRun:     p.MaxRun,
	}
}

// context derives the search context, applying the configured timeout.
func (q query) context(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if q.timeout > 0 {
		return context.WithTimeout(parent, q.timeout)
	}

	return context.WithCancel(parent)
}

// readGrid parses the grid from the named file, or from in when args is empty.
func readGrid(in io.Reader, args []string) (*gridgraph.GridGraph, error) {
	if len(args) == 0 {
		return gridgraph.Parse(in)
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("cannot open grid: %w", err)
	}
	defer f.Close()

	return gridgraph.Parse(f)
}

// resolve builds the query from config, flags and the input grid.
func (a *app) resolve(cmd *cobra.Command, args []string, f *solverFlags) (query, error) {
	s := f.apply(cmd, a.cfg.Solver)

	g, err := readGrid(cmd.InOrStdin(), args)
	if err != nil {
		return query{}, err
	}
	profiles, err := s.Profiles()
	if err != nil {
		return query{}, err
	}
	start, goal, err := s.Endpoints(g)
	if err != nil {
		return query{}, err
	}
	opts, err := s.Options()
	if err != nil {
		return query{}, err
	}
	opts = append(opts, crucible.WithLogger(a.logger))

	digest := g.Digest()
	a.logger.Debug("grid loaded", "width", g.Width, "height", g.Height, "digest", digest[:12])

	return query{
		grid:     g,
		digest:   digest,
		start:    start,
		goal:     goal,
		profiles: profiles,
		opts:     opts,
		frontier: s.Frontier,
		timeout:  s.Timeout,
	}, nil
}

func newSolveCmd(a *app) *cobra.Command {
	var (
		flags solverFlags
		cache bool
	)
	cmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Print the minimum cost for each profile",
		Long: `Solve reads a digit grid and prints the minimum total cost from start
to goal for each selected profile, or "unreachable".

Examples:
  crucible solve input.txt
  crucible solve --profile all --frontier bucket input.txt
  crucible solve --cache input.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := a.resolve(cmd, args, &flags)
			if err != nil {
				return err
			}
			useCache := a.cfg.Storage.Cache
			if cmd.Flags().Changed("cache") {
				useCache = cache
			}

			return a.runSolve(cmd, q, useCache)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&cache, "cache", false, "Reuse a recorded result for an identical grid and parameters")

	return cmd
}

// runSolve answers cached profiles from the store, solves the rest
// concurrently and records the new runs.
func (a *app) runSolve(cmd *cobra.Command, q query, useCache bool) error {
	st := a.openStore()
	if st != nil {
		defer st.Close()
	}

	out := cmd.OutOrStdout()
	lines := make([]string, len(q.profiles))
	var (
		pending []crucible.Profile
		slots   []int
	)
	for i, p := range q.profiles {
		if useCache && st != nil {
			run, err := st.Lookup(q.key(p))
			switch {
			case err == nil:
				lines[i] = cachedLine(p, run)
				a.logger.Debug("cache hit", "profile", p, "run", run.ID)
				continue
			case !errors.Is(err, store.ErrNotFound):
				a.logger.Warn("cache lookup failed", "profile", p, "error", err)
			}
		}
		pending = append(pending, p)
		slots = append(slots, i)
	}

	if len(pending) > 0 {
		ctx, cancel := q.context(cmd.Context())
		defer cancel()

		results, err := crucible.SolveMany(ctx, q.grid, q.start, q.goal, pending, q.opts...)
		if err != nil {
			return err
		}

		for k, res := range results {
			lines[slots[k]] = render.Summary(res)
			if st != nil {
				a.record(st, q, res)
			}
		}
	}

	for _, line := range lines {
		fmt.Fprintln(out, line)
	}

	return nil
}

func cachedLine(p crucible.Profile, run store.Run) string {
	res := "unreachable"
	if run.Reachable {
		res = fmt.Sprint(run.Cost)
	}

	return fmt.Sprintf("%s %s (cached)", p, res)
}

// record saves res; failures are logged, not returned.
func (a *app) record(st *store.Store, q query, res crucible.Result) {
	cost, reachable := res.Cost()
	frontier := q.frontier
	if frontier == "" {
		frontier = crucible.FrontierHeap.String()
	}
	id, err := st.SaveRun(store.Run{
		Key:       q.key(res.Profile),
		Width:     q.grid.Width,
		Height:    q.grid.Height,
		Frontier:  frontier,
		Reachable: reachable,
		Cost:      cost,
		Settled:   res.Stats.Settled,
		Duration:  res.Elapsed,
	})
	if err != nil {
		a.logger.Warn("could not record run", "error", err)
		return
	}
	a.logger.Debug("run recorded", "id", id, "profile", res.Profile)
}
