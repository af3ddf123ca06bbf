// Package crucible defines core types and configuration options
// for the constrained-run shortest-path solver.
//
// Options:
//
//	– MinRun, MaxRun:  run-length bounds (1 ≤ MinRun ≤ MaxRun).
//	– ReturnPath:      if true, reconstruct the optimal path via predecessor links.
//	– StopAtGoal:      stop at the first settled qualifying goal state.
//	– Frontier:        FrontierHeap (default) or FrontierBucket.
//	– MaxSteps:        optional cap on settled states; exceeding it fails with ErrStepLimit.
//	– Ctx:             cancellation and deadlines.
//	– Logger:          structured logger; defaults to a discarding logger.
//
// Errors (sentinel):
//
//	– ErrInvalidConfiguration  umbrella for every configuration error below.
//	– ErrNilGrid               if the provided grid pointer is nil.
//	– ErrBadMinRun             if MinRun < 1.
//	– ErrBadRunRange           if MaxRun < MinRun.
//	– ErrStartOutOfBounds      if start lies outside the grid.
//	– ErrGoalOutOfBounds       if goal lies outside the grid.
//	– ErrNegativeWeight        if any cell weight is negative.
//	– ErrOptionViolation       if an Option received an invalid value.
//	– ErrStepLimit             if the MaxSteps guard tripped (not a configuration error).
//	– ErrCostOverflow          if a tentative distance would exceed int64.
package crucible

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/crucible/gridgraph"
)

// Sentinel errors returned by the solver.
var (
	// ErrInvalidConfiguration is wrapped by every error that rejects a query
	// before any search work begins.
	ErrInvalidConfiguration = errors.New("crucible: invalid configuration")

	// ErrNilGrid indicates that a nil *gridgraph.GridGraph was passed.
	ErrNilGrid = fmt.Errorf("%w: grid is nil", ErrInvalidConfiguration)

	// ErrBadMinRun indicates MinRun < 1.
	ErrBadMinRun = fmt.Errorf("%w: minimum run must be at least 1", ErrInvalidConfiguration)

	// ErrBadRunRange indicates MaxRun < MinRun.
	ErrBadRunRange = fmt.Errorf("%w: maximum run must not be below minimum run", ErrInvalidConfiguration)

	// ErrStartOutOfBounds indicates the start cell lies outside the grid.
	ErrStartOutOfBounds = fmt.Errorf("%w: start outside grid", ErrInvalidConfiguration)

	// ErrGoalOutOfBounds indicates the goal cell lies outside the grid.
	ErrGoalOutOfBounds = fmt.Errorf("%w: goal outside grid", ErrInvalidConfiguration)

	// ErrNegativeWeight indicates a negative cell weight; Dijkstra's
	// settled-is-final invariant does not hold with negative edges.
	ErrNegativeWeight = fmt.Errorf("%w: negative cell weight", ErrInvalidConfiguration)

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = fmt.Errorf("%w: invalid option supplied", ErrInvalidConfiguration)

	// ErrStepLimit indicates the MaxSteps guard stopped the search.
	ErrStepLimit = errors.New("crucible: step limit exceeded")

	// ErrCostOverflow indicates a path cost that no longer fits in int64.
	ErrCostOverflow = errors.New("crucible: path cost overflows int64")
)

// Heading is one of the four cardinal movement directions.
type Heading uint8

// Headings in clockwise order. Opposite headings are two apart.
const (
	North Heading = iota
	East
	South
	West
)

// Headings lists every heading in the fixed order used for expansion.
var Headings = [4]Heading{North, East, South, West}

// Opposite returns the reverse heading.
func (h Heading) Opposite() Heading {
	return (h + 2) & 3
}

// Delta returns the unit step (row, col) for h.
func (h Heading) Delta() (dr, dc int) {
	switch h {
	case North:
		return -1, 0
	case East:
		return 0, 1
	case South:
		return 1, 0
	default:
		return 0, -1
	}
}

func (h Heading) String() string {
	switch h {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}

	return "heading(" + strconv.Itoa(int(h)) + ")"
}

// Glyph is the arrow used when drawing a path: ^ > v <.
func (h Heading) Glyph() byte {
	return "^>v<"[h&3]
}

// State is the search vertex: a position, the heading used to reach it and
// the number of consecutive steps taken in that heading.
// Run == 0 marks the synthetic initial state, which has committed to no
// heading yet; its Heading field is irrelevant.
type State struct {
	Pos     gridgraph.Point
	Heading Heading
	Run     int
}

// Initial returns the uncommitted start state at p.
func Initial(p gridgraph.Point) State {
	return State{Pos: p, Heading: East}
}

// IsInitial reports whether s is the uncommitted start state.
func (s State) IsInitial() bool {
	return s.Run == 0
}

// Qualifies reports whether s is a valid stopping point at goal under minRun.
// The initial state stands for the empty path; it qualifies only when
// minRun == 1, where it yields cost 0 for start == goal.
func (s State) Qualifies(goal gridgraph.Point, minRun int) bool {
	if s.Pos != goal {
		return false
	}
	if s.IsInitial() {
		return minRun <= 1
	}

	return s.Run >= minRun
}

// Successor pairs a reachable state with the cost of entering its cell.
type Successor struct {
	State  State
	Weight int64
}

// Profile names a pair of run-length bounds.
type Profile struct {
	Name           string
	MinRun, MaxRun int
}

// Built-in profiles.
var (
	// Standard crucible: turn whenever, at most three blocks straight.
	Standard = Profile{Name: "standard", MinRun: 1, MaxRun: 3}
	// Ultra crucible: four to ten blocks before turning or stopping.
	Ultra = Profile{Name: "ultra", MinRun: 4, MaxRun: 10}
)

// ParseProfile resolves a built-in profile by name (case-insensitive).
func ParseProfile(name string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Standard.Name:
		return Standard, nil
	case Ultra.Name:
		return Ultra, nil
	}

	return Profile{}, fmt.Errorf("%w: unknown profile %q", ErrOptionViolation, name)
}

// Validate checks the run bounds of p.
func (p Profile) Validate() error {
	if p.MinRun < 1 {
		return fmt.Errorf("%w (got %d)", ErrBadMinRun, p.MinRun)
	}
	if p.MaxRun < p.MinRun {
		return fmt.Errorf("%w (min %d, max %d)", ErrBadRunRange, p.MinRun, p.MaxRun)
	}

	return nil
}

func (p Profile) String() string {
	label := p.Name
	if label == "" {
		label = "custom"
	}

	return fmt.Sprintf("%s[%d..%d]", label, p.MinRun, p.MaxRun)
}

// FrontierKind selects the priority structure behind the search frontier.
type FrontierKind int

const (
	// FrontierHeap is a binary min-heap with lazy deletion.
	FrontierHeap FrontierKind = iota
	// FrontierBucket is Dial's bucket queue, sized by the largest cell weight.
	FrontierBucket
)

// MaxBucketSpan bounds the bucket count of FrontierBucket. Grids whose largest
// weight needs more buckets fall back to FrontierHeap.
const MaxBucketSpan = 1 << 16

func (k FrontierKind) String() string {
	switch k {
	case FrontierHeap:
		return "heap"
	case FrontierBucket:
		return "bucket"
	}

	return "frontier(" + strconv.Itoa(int(k)) + ")"
}

// ParseFrontierKind maps "heap" and "bucket" to their FrontierKind.
func ParseFrontierKind(name string) (FrontierKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "heap":
		return FrontierHeap, nil
	case "bucket":
		return FrontierBucket, nil
	}

	return FrontierHeap, fmt.Errorf("%w: unknown frontier %q", ErrOptionViolation, name)
}

// Options configures the behavior of Solve.
type Options struct {
	MinRun     int             // Minimum consecutive steps before turning or stopping
	MaxRun     int             // Maximum consecutive steps in one heading
	ReturnPath bool            // Whether to reconstruct the optimal path
	StopAtGoal bool            // Stop at the first settled qualifying goal state
	Frontier   FrontierKind    // Priority structure for the frontier
	MaxSteps   int             // Cap on settled states; 0 means unlimited
	Ctx        context.Context // Cancellation and deadlines
	Logger     *log.Logger     // Structured logger

	// name of the profile set by WithProfile, empty after WithRuns
	profile string
	// internal error recorded during option parsing
	err error
}

// Option represents a functional option for configuring Solve.
// Invalid values are recorded and surfaced as ErrOptionViolation by Solve.
type Option func(*Options)

// DefaultOptions returns the Standard profile with a heap frontier,
// no step limit, a background context and a discarding logger.
func DefaultOptions() Options {
	return Options{
		MinRun:   Standard.MinRun,
		MaxRun:   Standard.MaxRun,
		Frontier: FrontierHeap,
		Ctx:      context.Background(),
		Logger:   log.New(io.Discard),
		profile:  Standard.Name,
	}
}

// WithRuns sets both run-length bounds. They are validated by Solve.
func WithRuns(minRun, maxRun int) Option {
	return func(o *Options) {
		o.MinRun, o.MaxRun = minRun, maxRun
		o.profile = ""
	}
}

// WithProfile sets the run-length bounds from p.
func WithProfile(p Profile) Option {
	return func(o *Options) {
		o.MinRun, o.MaxRun = p.MinRun, p.MaxRun
		o.profile = p.Name
	}
}

// WithReturnPath enables path reconstruction in Result.Path.
func WithReturnPath() Option {
	return func(o *Options) {
		o.ReturnPath = true
	}
}

// WithStopAtGoal ends the search as soon as a qualifying goal state settles.
// The cost is the same as the exhaustive search; Stats will be smaller.
func WithStopAtGoal() Option {
	return func(o *Options) {
		o.StopAtGoal = true
	}
}

// WithFrontier selects the frontier implementation.
func WithFrontier(k FrontierKind) Option {
	return func(o *Options) {
		if k != FrontierHeap && k != FrontierBucket {
			o.err = fmt.Errorf("%w: unknown frontier kind %d", ErrOptionViolation, int(k))
			return
		}
		o.Frontier = k
	}
}

// WithMaxSteps bounds the number of settled states.
//
//	n > 0: fail with ErrStepLimit once n states are settled and more remain
//	n == 0: explicit no limit
//	n < 0: invalid option → ErrOptionViolation
func WithMaxSteps(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxSteps cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxSteps = n
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithLogger routes solver diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// Step is one entry of a reconstructed path. Cost is cumulative.
type Step struct {
	Pos     gridgraph.Point
	Heading Heading
	Run     int
	Cost    int64
}

// Stats counts frontier work for one query.
type Stats struct {
	Settled int // states popped and finalized
	Pushed  int // frontier insertions, including the seed
	Stale   int // popped entries discarded because their state was already settled
}

// Result is the outcome of a query. An unreachable goal is a normal Result,
// not an error; use Cost or Reachable to tell the two apart.
type Result struct {
	cost      int64
	reachable bool

	// Profile holds the run bounds the query used.
	Profile Profile
	// Path is the optimal path from the initial state (Path[0], Run 0) to the
	// goal. Only populated with WithReturnPath on a reachable goal.
	Path []Step
	// Stats reports frontier work.
	Stats Stats
	// Elapsed is the wall time of this query's search.
	Elapsed time.Duration
}

// Cost returns the minimum total cost and true, or 0 and false if unreachable.
func (r Result) Cost() (int64, bool) {
	return r.cost, r.reachable
}

// Reachable reports whether any qualifying goal state was settled.
func (r Result) Reachable() bool {
	return r.reachable
}

// String renders the cost, or "unreachable".
func (r Result) String() string {
	if !r.reachable {
		return "unreachable"
	}

	return strconv.FormatInt(r.cost, 10)
}
