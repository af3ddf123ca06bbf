package crucible

import (
	"github.com/katalvlaran/crucible/gridgraph"
)

// Expand lists the legal successors of s on g under the run bounds, each
// paired with the weight of the entered cell. Candidates are produced in
// Headings order, so traces are reproducible.
//
// Rules:
//  1. A committed state (Run ≥ 1) with Run < minRun may only continue straight.
//  2. Reversing the current heading is never allowed, except from the
//     initial state, which has no heading to reverse.
//  3. The next cell must lie on the grid.
//  4. Continuing straight increments the run; turning resets it to 1.
//     Runs above maxRun are rejected.
//
// Complexity: O(1).
func Expand(g *gridgraph.GridGraph, s State, minRun, maxRun int) []Successor {
	return appendSuccessors(make([]Successor, 0, len(Headings)), g, s, minRun, maxRun)
}

// appendSuccessors is Expand without the allocation; the solver reuses dst.
func appendSuccessors(dst []Successor, g *gridgraph.GridGraph, s State, minRun, maxRun int) []Successor {
	if !s.IsInitial() && s.Run < minRun {
		return appendMove(dst, g, s, s.Heading, maxRun)
	}
	for _, h := range Headings {
		if !s.IsInitial() && h == s.Heading.Opposite() {
			continue
		}
		dst = appendMove(dst, g, s, h, maxRun)
	}

	return dst
}

// appendMove appends the successor reached by one step in heading h, if legal.
func appendMove(dst []Successor, g *gridgraph.GridGraph, s State, h Heading, maxRun int) []Successor {
	next := s.Pos.Add(h.Delta())
	if !g.InBounds(next) {
		return dst
	}
	run := 1
	if h == s.Heading {
		run = s.Run + 1
	}
	if run > maxRun {
		return dst
	}

	return append(dst, Successor{
		State:  State{Pos: next, Heading: h, Run: run},
		Weight: int64(g.Weight(next)),
	})
}

// stateSpace maps states to dense indices in [0, size).
// Layout: ((row*W + col)*4 + heading)*(runs+1) + run.
type stateSpace struct {
	g    *gridgraph.GridGraph
	runs int // largest representable run
}

// newStateSpace clamps the run dimension to the longest straight line the
// grid can hold, so huge maxRun values cost no memory.
func newStateSpace(g *gridgraph.GridGraph, maxRun int) stateSpace {
	longest := g.Width
	if g.Height > longest {
		longest = g.Height
	}
	runs := maxRun
	if longest < runs {
		runs = longest
	}

	return stateSpace{g: g, runs: runs}
}

func (sp stateSpace) size() int {
	return sp.g.Width * sp.g.Height * len(Headings) * (sp.runs + 1)
}

func (sp stateSpace) index(s State) int {
	return (sp.g.Index(s.Pos)*len(Headings)+int(s.Heading))*(sp.runs+1) + s.Run
}

func (sp stateSpace) state(idx int) State {
	stride := sp.runs + 1
	run := idx % stride
	idx /= stride
	h := Heading(idx % len(Headings))

	return State{Pos: sp.g.Coordinate(idx / len(Headings)), Heading: h, Run: run}
}
