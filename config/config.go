// Package config loads wrappy.toml, the project configuration of the
// wrappy command.
package config

import "github.com/d-fournier/wrappy/registry"

// Config is the wrappy project configuration
type Config struct {
	// Requires constrains the wrappy versions allowed to run this project
	Requires    string                  `mapstructure:"requires" toml:"requires,omitempty" comment:"Semver constraint on the wrappy version, e.g. \">= 0.3\""`
	Generate    GenerateConfig          `mapstructure:"generate" toml:"generate"`
	Diagnostics DiagnosticsConfig       `mapstructure:"diagnostics" toml:"diagnostics"`
	Watch       WatchConfig             `mapstructure:"watch" toml:"watch"`
	Metrics     MetricsConfig           `mapstructure:"metrics" toml:"metrics"`
	Log         LogConfig               `mapstructure:"log" toml:"log"`
	Strategies  []registry.Registration `mapstructure:"strategies" toml:"strategies" comment:"Strategies requests may name; use picks the built-in implementation"`

	// Path is the file the configuration was read from, empty for defaults
	Path string `mapstructure:"-" toml:"-"`
}

// GenerateConfig configures the generate and check commands
type GenerateConfig struct {
	Output        string `mapstructure:"output" toml:"output" comment:"Directory receiving generated sources; - writes to stdout"`
	Jobs          int    `mapstructure:"jobs" toml:"jobs" comment:"Requests processed concurrently; 0 uses one per CPU"`
	Isolation     string `mapstructure:"isolation" toml:"isolation" comment:"request: a failing request only ends itself; round: it stops the round"`
	FailOnWarning bool   `mapstructure:"fail_on_warning" toml:"fail_on_warning"`
	// PostCommand runs after a successful round with the generated paths appended
	PostCommand string `mapstructure:"post_command" toml:"post_command,omitempty" comment:"Command run after generation with the generated files appended"`
}

// DiagnosticsConfig configures how diagnostics are printed
type DiagnosticsConfig struct {
	Format string `mapstructure:"format" toml:"format" comment:"terminal, plain or json"`
	Max    int    `mapstructure:"max" toml:"max" comment:"Maximum notes and warnings printed per round; errors always print; 0 prints all"`
}

// WatchConfig configures generate --watch
type WatchConfig struct {
	DebounceMS    int `mapstructure:"debounce_ms" toml:"debounce_ms"`
	MinIntervalMS int `mapstructure:"min_interval_ms" toml:"min_interval_ms" comment:"Minimum time between two regenerations"`
}

// MetricsConfig configures the metrics textfile
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile" toml:"textfile,omitempty" comment:"Write Prometheus metrics to this file after each round"`
}

// LogConfig configures logging
type LogConfig struct {
	JSON bool `mapstructure:"json" toml:"json"`
}
