// Package crucible_test provides runnable examples for the crucible solver.
// Each example runs via “go test -run Example” and checks its printed output.
package crucible_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/crucible/crucible"
	"github.com/katalvlaran/crucible/gridgraph"
)

// ExampleSolve routes around an expensive middle row and prints the path.
func ExampleSolve() {
	// 1) Build the grid; the middle row is costly except at its right edge.
	g := gridgraph.MustParse("111\n991\n111")

	// 2) Solve from the top-left to the bottom-right with runs of 1..3.
	res, err := crucible.Solve(g, g.TopLeft(), g.BottomRight(),
		crucible.WithRuns(1, 3),
		crucible.WithReturnPath(),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// 3) Print the cost and each step after the start.
	fmt.Println("cost:", res)
	for _, st := range res.Path[1:] {
		fmt.Printf("%v %c run=%d total=%d\n", st.Pos, st.Heading.Glyph(), st.Run, st.Cost)
	}
	// Output:
	// cost: 4
	// 0,1 > run=1 total=1
	// 0,2 > run=2 total=2
	// 1,2 v run=1 total=3
	// 2,2 v run=2 total=4
}

// ExampleSolve_unreachable shows that an impossible goal is an outcome, not an error.
func ExampleSolve_unreachable() {
	// A single row cannot hold a run of five cells from its first column.
	g := gridgraph.MustParse("11111")

	res, err := crucible.Solve(g, g.TopLeft(), g.BottomRight(), crucible.WithRuns(5, 5))
	fmt.Println(res, err)

	_, ok := res.Cost()
	fmt.Println("reachable:", ok)
	// Output:
	// unreachable <nil>
	// reachable: false
}

// ExampleSolve_ultra shows that a long minimum run forbids stopping early.
func ExampleSolve_ultra() {
	g := gridgraph.MustParse(ribbonMap)

	res, _ := crucible.Solve(g, g.TopLeft(), g.BottomRight(), crucible.WithProfile(crucible.Ultra))
	fmt.Println(res.Profile, res)
	// Output:
	// ultra[4..10] 71
}

// ExampleSolveMany runs both built-in profiles concurrently on one grid.
func ExampleSolveMany() {
	g := gridgraph.MustParse(sampleMap)

	results, err := crucible.SolveMany(context.Background(), g, g.TopLeft(), g.BottomRight(),
		[]crucible.Profile{crucible.Standard, crucible.Ultra},
		crucible.WithFrontier(crucible.FrontierBucket),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, r := range results {
		fmt.Printf("%s: %v\n", r.Profile.Name, r)
	}
	// Output:
	// standard: 102
	// ultra: 94
}
