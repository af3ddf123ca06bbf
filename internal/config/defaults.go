package config

import (
	_ "embed"

	"github.com/katalvlaran/crucible/crucible"
)

//go:embed defaults/crucible.yaml
var defaultYAML []byte

// Default returns the hardcoded default configuration.
func Default() Config {
	return Config{
		Solver: SolverConfig{
			Profile:  crucible.Standard.Name,
			Frontier: crucible.FrontierHeap.String(),
		},
		Log: LogConfig{
			Level: "info",
		},
		Storage: StorageConfig{
			Path: "~/.crucible/runs.db",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
