// Package crucible finds the cheapest way across a weighted grid when movement
// is bound by a run-length constraint: after starting in a heading the mover
// must keep going for at least MinRun cells before it may turn or stop, may
// not go more than MaxRun cells straight, and may never reverse.
//
// Overview:
//
//   - Entering a cell costs its weight; the start cell is free.
//   - Plain Dijkstra over (row, col) cannot enforce the constraint, because the
//     legality of a turn depends on how long the current straight segment is.
//     The search therefore runs over the augmented State (position, heading,
//     run), and Expand encodes the movement rules.
//   - Solve is a generalized Dijkstra over that state graph with a lazy-deletion
//     frontier. The answer is the cheapest settled state at the goal whose run
//     satisfies MinRun.
//
// When to use:
//
//   - Heat-loss style puzzles (Standard profile 1..3, Ultra profile 4..10).
//   - Vehicle or robot routing with minimum straight segments and turn limits.
//   - Any per-cell entry cost problem with momentum-like movement rules.
//
// Key features:
//
//   - Functional options: WithRuns/WithProfile, WithReturnPath, WithStopAtGoal,
//     WithFrontier, WithMaxSteps, WithContext, WithLogger.
//   - Two frontiers: a binary heap (default) and Dial's bucket queue, which is
//     linear in the answer for small integer weights.
//   - Unreachable goals are a normal Result, never an error and never a
//     numeric sentinel: check Result.Cost's second return value.
//   - SolveMany runs several profiles concurrently on one shared grid.
//
// Performance and complexity:
//
//   - States: S = W·H·4·(R+1), where R = min(MaxRun, max(W, H)).
//   - Time:  O(S log S) heap, O(S + C) bucket (C = optimal cost).
//   - Space: O(S) distance table and settled flags; O(S) predecessors with ReturnPath.
//
// Error handling (sentinel errors):
//
//   - ErrInvalidConfiguration wraps every up-front rejection:
//     ErrNilGrid, ErrBadMinRun, ErrBadRunRange, ErrStartOutOfBounds,
//     ErrGoalOutOfBounds, ErrNegativeWeight, ErrOptionViolation.
//   - ErrStepLimit: the WithMaxSteps guard tripped.
//   - ErrCostOverflow: a path cost would not fit in int64; no wrapped answer is returned.
//   - Context cancellation is returned wrapped (errors.Is(err, context.Canceled)).
//
// Thread safety:
//
//   - The grid is read-only during a query and each query owns its working
//     memory, so concurrent Solve calls on one grid need no synchronization.
package crucible
