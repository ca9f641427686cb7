package config

import (
	"github.com/Masterminds/semver/v3"

	"github.com/d-fournier/wrappy/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Jobs: 0 = one per CPU, negative = invalid
	if c.Generate.Jobs < 0 {
		return errors.NewInvalidRequestError("generate.jobs must be >= 0, got %d", c.Generate.Jobs)
	}
	switch c.Generate.Isolation {
	case "request", "round":
	default:
		return errors.WithHint(
			errors.NewInvalidRequestError("generate.isolation must be request or round, got %q", c.Generate.Isolation),
			"request keeps processing the round after a failing request")
	}

	switch c.Diagnostics.Format {
	case "terminal", "plain", "json":
	default:
		return errors.NewInvalidRequestError("diagnostics.format must be terminal, plain or json, got %q", c.Diagnostics.Format)
	}
	if c.Diagnostics.Max < 0 {
		return errors.NewInvalidRequestError("diagnostics.max must be >= 0, got %d", c.Diagnostics.Max)
	}

	if c.Watch.DebounceMS < 0 {
		return errors.NewInvalidRequestError("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}
	if c.Watch.MinIntervalMS < 0 {
		return errors.NewInvalidRequestError("watch.min_interval_ms must be >= 0, got %d", c.Watch.MinIntervalMS)
	}

	for i, s := range c.Strategies {
		if s.Name == "" {
			return errors.NewInvalidRequestError("strategies[%d] has no name", i)
		}
	}

	if c.Requires != "" {
		if _, err := semver.NewConstraint(c.Requires); err != nil {
			return errors.Wrapf(errors.ErrInvalidRequest, "requires: invalid version constraint %q: %v", c.Requires, err)
		}
	}
	return nil
}

// CheckVersion verifies the running wrappy version satisfies Requires.
// Development builds, whose version is not semantic, always pass.
func (c *Config) CheckVersion(running string) error {
	if c.Requires == "" {
		return nil
	}
	v, err := semver.NewVersion(running)
	if err != nil {
		return nil
	}
	constraint, err := semver.NewConstraint(c.Requires)
	if err != nil {
		return errors.Wrapf(err, "invalid version constraint %s", c.Requires)
	}
	if !constraint.Check(v) {
		return errors.WithHint(
			errors.Newf("this project requires wrappy %s, but running %s", c.Requires, running),
			"install a matching wrappy release")
	}
	return nil
}
