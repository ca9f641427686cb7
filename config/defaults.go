package config

import (
	"github.com/spf13/viper"

	"github.com/d-fournier/wrappy/registry"
)

const (
	// FileName is the project configuration file searched for upwards
	FileName = "wrappy.toml"
	// EnvPrefix prefixes environment overrides, e.g. WRAPPY_GENERATE_JOBS
	EnvPrefix = "WRAPPY"
)

// Default values
const (
	DefaultOutput        = "generated"
	DefaultIsolation     = "request"
	DefaultFormat        = "terminal"
	DefaultDebounceMS    = 200
	DefaultMinIntervalMS = 1000
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("requires", "")

	v.SetDefault("generate.output", DefaultOutput)
	v.SetDefault("generate.jobs", 1)
	v.SetDefault("generate.isolation", DefaultIsolation)
	v.SetDefault("generate.fail_on_warning", false)
	v.SetDefault("generate.post_command", "")

	v.SetDefault("diagnostics.format", DefaultFormat)
	v.SetDefault("diagnostics.max", 0)

	v.SetDefault("watch.debounce_ms", DefaultDebounceMS)
	v.SetDefault("watch.min_interval_ms", DefaultMinIntervalMS)

	v.SetDefault("metrics.textfile", "")
	v.SetDefault("log.json", false)

	regs := registry.DefaultRegistrations()
	strategies := make([]map[string]interface{}, len(regs))
	for i, r := range regs {
		strategies[i] = map[string]interface{}{"name": r.Name, "use": r.Use}
	}
	v.SetDefault("strategies", strategies)
}

// Default returns the configuration used when no wrappy.toml exists.
func Default() *Config {
	return &Config{
		Generate: GenerateConfig{
			Output:    DefaultOutput,
			Jobs:      1,
			Isolation: DefaultIsolation,
		},
		Diagnostics: DiagnosticsConfig{Format: DefaultFormat},
		Watch: WatchConfig{
			DebounceMS:    DefaultDebounceMS,
			MinIntervalMS: DefaultMinIntervalMS,
		},
		Strategies: registry.DefaultRegistrations(),
	}
}
