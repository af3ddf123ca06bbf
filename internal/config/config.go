// Package config provides YAML-based configuration loading for the crucible
// command line tool.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/crucible/crucible"
	"github.com/katalvlaran/crucible/gridgraph"
)

// ProfileAll selects every built-in profile.
const ProfileAll = "all"

// Config contains all configuration for the crucible CLI.
type Config struct {
	Solver  SolverConfig  `yaml:"solver"`
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
}

// SolverConfig defines query parameters.
type SolverConfig struct {
	Profile    string        `yaml:"profile"`
	MinRun     int           `yaml:"min_run"`
	MaxRun     int           `yaml:"max_run"`
	Start      string        `yaml:"start"`
	Goal       string        `yaml:"goal"`
	Frontier   string        `yaml:"frontier"`
	MaxSteps   int           `yaml:"max_steps"`
	StopAtGoal bool          `yaml:"stop_at_goal"`
	Timeout    time.Duration `yaml:"timeout"`
}

// LogConfig defines logger parameters.
type LogConfig struct {
	Level string `yaml:"level"`
}

// StorageConfig defines the run history database.
type StorageConfig struct {
	Path  string `yaml:"path"`
	Cache bool   `yaml:"cache"`
}

// Profiles resolves the run bounds to query. "all" expands to every built-in
// profile. An explicit MinRun or MaxRun overrides that bound of each named
// profile; with both set the profile name is ignored.
func (s SolverConfig) Profiles() ([]crucible.Profile, error) {
	if s.MinRun != 0 && s.MaxRun != 0 {
		return validated([]crucible.Profile{{MinRun: s.MinRun, MaxRun: s.MaxRun}})
	}

	var named []crucible.Profile
	if strings.EqualFold(strings.TrimSpace(s.Profile), ProfileAll) {
		named = []crucible.Profile{crucible.Standard, crucible.Ultra}
	} else {
		p, err := crucible.ParseProfile(s.Profile)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		named = []crucible.Profile{p}
	}
	if s.MinRun == 0 && s.MaxRun == 0 {
		return named, nil
	}

	out := make([]crucible.Profile, len(named))
	for i, p := range named {
		out[i] = crucible.Profile{MinRun: p.MinRun, MaxRun: p.MaxRun}
		if s.MinRun != 0 {
			out[i].MinRun = s.MinRun
		}
		if s.MaxRun != 0 {
			out[i].MaxRun = s.MaxRun
		}
	}
	return validated(out)
}

func validated(ps []crucible.Profile) ([]crucible.Profile, error) {
	for _, p := range ps {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}
	return ps, nil
}

// Endpoints resolves start and goal on g, defaulting to its corners.
func (s SolverConfig) Endpoints(g *gridgraph.GridGraph) (start, goal gridgraph.Point, err error) {
	start, goal = g.TopLeft(), g.BottomRight()
	if s.Start != "" {
		if start, err = gridgraph.ParsePoint(s.Start); err != nil {
			return start, goal, fmt.Errorf("config: start: %w", err)
		}
	}
	if s.Goal != "" {
		if goal, err = gridgraph.ParsePoint(s.Goal); err != nil {
			return start, goal, fmt.Errorf("config: goal: %w", err)
		}
	}
	return start, goal, nil
}

// Options translates the solver settings other than run bounds into
// crucible options.
func (s SolverConfig) Options() ([]crucible.Option, error) {
	kind, err := crucible.ParseFrontierKind(s.Frontier)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	opts := []crucible.Option{crucible.WithFrontier(kind)}
	if s.MaxSteps > 0 {
		opts = append(opts, crucible.WithMaxSteps(s.MaxSteps))
	}
	if s.StopAtGoal {
		opts = append(opts, crucible.WithStopAtGoal())
	}
	return opts, nil
}

// ParseLevel returns the configured log level, info when unset.
func (l LogConfig) ParseLevel() (log.Level, error) {
	if l.Level == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(l.Level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("config: %w", err)
	}
	return lvl, nil
}
