package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/d-fournier/wrappy/errors"
)

// Load reads the configuration. An empty path searches for wrappy.toml from
// the working directory upwards and falls back to defaults when none is
// found. Environment variables prefixed with WRAPPY_ override both.
func Load(path string) (*Config, error) {
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			path = FindProjectConfig(wd)
		}
	}
	return LoadWithViper(newViper(), path)
}

// LoadWithViper loads configuration into a provided Viper instance, reading
// path when it is not empty.
func LoadWithViper(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(errors.ErrNotFound, "config file %s", path)
		}
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		if path != "" {
			return nil, errors.WithDetailf(err, "in %s", path)
		}
		return nil, err
	}
	return &cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// FindProjectConfig searches for wrappy.toml by walking up from dir.
// Returns the path of the first file found, or empty string if none found.
func FindProjectConfig(dir string) string {
	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
