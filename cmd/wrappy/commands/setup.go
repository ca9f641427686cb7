// Package commands implements the wrappy subcommands.
package commands

import (
	"fmt"
	"io"

	"github.com/d-fournier/wrappy/config"
	"github.com/d-fournier/wrappy/errors"
	"github.com/d-fournier/wrappy/logger"
	"github.com/d-fournier/wrappy/version"
)

var (
	// cfg is the project configuration loaded by Setup
	cfg = config.Default()
	// verbosity is the -v count given to Setup
	verbosity int
)

// Setup loads the configuration and initializes logging. Commands that can
// run outside a project pass needsConfig false and get the defaults.
func Setup(configPath string, v int, logJSON, needsConfig bool) error {
	c := config.Default()
	if needsConfig {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		c = loaded
	}

	verbosity = v
	logger.Initialize(logJSON || c.Log.JSON, verbosity)
	logger.Debugw("Logging initialized", "verbosity", logger.LevelName(verbosity))

	if needsConfig {
		if err := c.CheckVersion(version.Get().Version); err != nil {
			return err
		}
		if c.Path != "" {
			logger.Debugw("Loaded configuration", logger.FieldFile, c.Path)
		}
	}
	cfg = c
	return nil
}

// PrintError writes err and its hints for the user.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	if hint := errors.FlattenHints(err); hint != "" {
		fmt.Fprintf(w, "Hint: %s\n", hint)
	}
}

// Exit codes of the wrappy command
const (
	ExitFailure = 1 // generation or check failed
	ExitUsage   = 2 // invalid arguments, descriptors or configuration
)

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	if errors.IsInvalidRequestError(err) {
		return ExitUsage
	}
	return ExitFailure
}
