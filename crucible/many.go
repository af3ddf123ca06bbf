package crucible

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/crucible/gridgraph"
)

// SolveMany runs one Solve per profile concurrently against the same
// read-only grid. Each query owns its own distance table and frontier, so no
// locking is involved. Results are returned in profile order.
//
// opts apply to every query; the profile's run bounds and a context derived
// from ctx are appended last. The first failing query cancels the others and
// its error is returned.
func SolveMany(ctx context.Context, g *gridgraph.GridGraph, start, goal gridgraph.Point, profiles []Profile, opts ...Option) ([]Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]Result, len(profiles))
	grp, gctx := errgroup.WithContext(ctx)
	for i, p := range profiles {
		grp.Go(func() error {
			o := make([]Option, 0, len(opts)+2)
			o = append(o, opts...)
			o = append(o, WithProfile(p), WithContext(gctx))
			res, err := Solve(g, start, goal, o...)
			if err != nil {
				return fmt.Errorf("crucible: profile %v: %w", p, err)
			}
			results[i] = res

			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
