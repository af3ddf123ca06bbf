// Package crucible implements a generalized Dijkstra search over the augmented
// state graph (position, heading, run) of a weighted grid.
//
// Complexity:
//
//   - Time:  O(S log S) with the heap frontier, O(S + C) with the bucket frontier,
//     where S = W·H·4·R states (R = clamped MaxRun + 1) and C = the optimal cost.
//   - Space: O(S) for the distance table, settled flags and optional predecessors.
//
// Notes on implementation choices:
//
//   - We pre-scan all cells (O(W·H)) to detect negative weights and fail fast.
//   - We use a “lazy” decrease-key strategy: pushing duplicates into the frontier
//     and ignoring entries whose state has already been settled.
//   - Distances are only ever lowered, and only with a strictly smaller value.
//   - The answer is the cheapest settled state at the goal that satisfies MinRun.
package crucible

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/katalvlaran/crucible/gridgraph"
)

// unreached marks a state with no recorded distance yet.
const unreached = math.MaxInt64

// ctxCheckMask controls how often the context is polled (every 1024 pops).
const ctxCheckMask = 1<<10 - 1

// Solve computes the minimum cost of moving from start to goal on g under the
// run-length bounds in opts (Standard profile by default).
//
// Returns:
//
//   - Result: the cost or an unreachable outcome, plus optional path and stats.
//   - err:    a configuration error wrapping ErrInvalidConfiguration,
//     ErrStepLimit, ErrCostOverflow, or the context error if the search was cancelled.
//
// Preconditions and validation (in order):
//  1. Options must be valid (ErrOptionViolation).
//  2. g must be non-nil (ErrNilGrid).
//  3. MinRun ≥ 1 (ErrBadMinRun) and MaxRun ≥ MinRun (ErrBadRunRange).
//  4. start and goal must be on the grid (ErrStartOutOfBounds, ErrGoalOutOfBounds).
//  5. No cell can have a negative weight (ErrNegativeWeight).
//
// The grid is never modified; concurrent Solve calls on one grid are safe.
func Solve(g *gridgraph.GridGraph, start, goal gridgraph.Point, opts ...Option) (Result, error) {
	// 1) Build and validate Options
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return Result{}, cfg.err
	}

	// 2) Validate inputs before any search work
	if err := validate(g, start, goal, cfg); err != nil {
		return Result{}, err
	}

	// 3) Run the search
	began := time.Now()
	r := newRunner(g, start, goal, cfg)
	r.init()
	if err := r.process(); err != nil {
		cfg.Logger.Debug("search aborted", "err", err, "settled", r.stats.Settled)
		return Result{}, err
	}

	res := r.result()
	res.Elapsed = time.Since(began)
	cfg.Logger.Debug("search complete",
		"profile", res.Profile,
		"frontier", r.kind,
		"result", res,
		"settled", res.Stats.Settled,
		"pushed", res.Stats.Pushed,
		"stale", res.Stats.Stale,
		"elapsed", res.Elapsed,
	)

	return res, nil
}

// validate applies the eager configuration checks documented on Solve.
func validate(g *gridgraph.GridGraph, start, goal gridgraph.Point, cfg Options) error {
	if g == nil {
		return ErrNilGrid
	}
	if err := (Profile{MinRun: cfg.MinRun, MaxRun: cfg.MaxRun}).Validate(); err != nil {
		return err
	}
	if !g.InBounds(start) {
		return fmt.Errorf("%w: %v not in %dx%d", ErrStartOutOfBounds, start, g.Height, g.Width)
	}
	if !g.InBounds(goal) {
		return fmt.Errorf("%w: %v not in %dx%d", ErrGoalOutOfBounds, goal, g.Height, g.Width)
	}
	for r, row := range g.CellValues {
		for c, v := range row {
			if v < 0 {
				return fmt.Errorf("%w: cell %d,%d weight=%d", ErrNegativeWeight, r, c, v)
			}
		}
	}

	return nil
}

// runner holds the mutable state for a single query.
type runner struct {
	g       *gridgraph.GridGraph // read-only input grid
	opts    Options              // validated configuration
	start   gridgraph.Point      // start cell
	goal    gridgraph.Point      // goal cell
	space   stateSpace           // dense state indexing
	dist    []int64              // best known distance per state, unreached if undiscovered
	settled []bool               // finalized states
	prev    []int                // predecessor index per state, -1 for none; nil unless ReturnPath
	pq      frontier             // lazy-deletion priority frontier
	kind    FrontierKind         // frontier actually in use
	buf     []Successor          // reused expansion buffer
	best    int                  // first settled qualifying goal state, -1 if none
	stats   Stats                // work counters
}

func newRunner(g *gridgraph.GridGraph, start, goal gridgraph.Point, cfg Options) *runner {
	space := newStateSpace(g, cfg.MaxRun)
	n := space.size()

	r := &runner{
		g:       g,
		opts:    cfg,
		start:   start,
		goal:    goal,
		space:   space,
		dist:    make([]int64, n),
		settled: make([]bool, n),
		buf:     make([]Successor, 0, len(Headings)),
		best:    -1,
	}
	if cfg.ReturnPath {
		r.prev = make([]int, n)
	}
	r.pq, r.kind = r.newFrontier()

	return r
}

// newFrontier builds the configured frontier, falling back to the heap when
// the bucket ring would exceed MaxBucketSpan.
func (r *runner) newFrontier() (frontier, FrontierKind) {
	if r.opts.Frontier == FrontierBucket {
		maxW := r.g.MaxWeight()
		if maxW < MaxBucketSpan {
			return newBucketFrontier(maxW), FrontierBucket
		}
		r.opts.Logger.Warn("bucket frontier span too large, falling back to heap",
			"maxWeight", maxW, "limit", MaxBucketSpan)
	}

	return newHeapFrontier(r.g.Width * r.g.Height), FrontierHeap
}

// init seeds the initial state at distance 0.
func (r *runner) init() {
	for i := range r.dist {
		r.dist[i] = unreached
	}
	for i := range r.prev {
		r.prev[i] = -1
	}

	src := r.space.index(Initial(r.start))
	r.dist[src] = 0
	r.pq.push(src, 0)
	r.stats.Pushed++
}

// process is the core loop. It repeatedly extracts the unsettled state with
// the minimum distance and relaxes its successors until the frontier is
// exhausted (or, with StopAtGoal, until a qualifying goal state settles).
func (r *runner) process() error {
	for pops := 0; ; pops++ {
		if pops&ctxCheckMask == 0 {
			if err := r.opts.Ctx.Err(); err != nil {
				return fmt.Errorf("crucible: search cancelled: %w", err)
			}
		}

		idx, _, ok := r.pq.pop()
		if !ok {
			return nil
		}

		// Skip stale entries of already finalized states.
		if r.settled[idx] {
			r.stats.Stale++
			continue
		}

		if r.opts.MaxSteps > 0 && r.stats.Settled >= r.opts.MaxSteps {
			return fmt.Errorf("%w: %d states settled", ErrStepLimit, r.stats.Settled)
		}

		r.settled[idx] = true
		r.stats.Settled++

		s := r.space.state(idx)
		if r.best < 0 && s.Qualifies(r.goal, r.opts.MinRun) {
			// Pops come in non-decreasing distance, so the first
			// qualifying goal state is optimal.
			r.best = idx
			if r.opts.StopAtGoal {
				return nil
			}
		}

		if err := r.relax(idx, s); err != nil {
			return err
		}
	}
}

// relax expands s and lowers the distance of every successor reachable more
// cheaply through s. Assumes r.dist[idx] is final.
func (r *runner) relax(idx int, s State) error {
	base := r.dist[idx]
	r.buf = appendSuccessors(r.buf[:0], r.g, s, r.opts.MinRun, r.opts.MaxRun)
	for _, nb := range r.buf {
		// Safety check: though we pre-scanned for negative weights, double-check nonetheless.
		if nb.Weight < 0 {
			return fmt.Errorf("%w: cell %v weight=%d", ErrNegativeWeight, nb.State.Pos, nb.Weight)
		}

		// unreached doubles as the largest storable distance.
		if nb.Weight > unreached-1-base {
			return fmt.Errorf("%w: entering %v from distance %d", ErrCostOverflow, nb.State.Pos, base)
		}

		j := r.space.index(nb.State)
		if r.settled[j] {
			continue
		}
		nd := base + nb.Weight
		if nd >= r.dist[j] {
			continue
		}

		r.dist[j] = nd
		if r.prev != nil {
			r.prev[j] = idx
		}
		r.pq.push(j, nd)
		r.stats.Pushed++
	}

	return nil
}

// result assembles the Result after the loop has finished.
func (r *runner) result() Result {
	res := Result{
		Profile: Profile{Name: r.opts.profile, MinRun: r.opts.MinRun, MaxRun: r.opts.MaxRun},
		Stats:   r.stats,
	}
	if r.best < 0 {
		return res
	}

	res.cost = r.dist[r.best]
	res.reachable = true
	if r.prev != nil {
		res.Path = r.path(r.best)
	}

	return res
}

// path walks predecessor links back from end to the initial state.
func (r *runner) path(end int) []Step {
	var steps []Step
	for at := end; at >= 0; at = r.prev[at] {
		s := r.space.state(at)
		steps = append(steps, Step{Pos: s.Pos, Heading: s.Heading, Run: s.Run, Cost: r.dist[at]})
	}
	slices.Reverse(steps)

	return steps
}
