package commands

import (
	"context"
	"io"
	"os/exec"

	"github.com/kballard/go-shellquote"

	"github.com/d-fournier/wrappy/errors"
	"github.com/d-fournier/wrappy/logger"
)

// runPostCommand runs the generate.post_command hook. The command line is
// split like a shell would, without invoking one, and the generated paths
// are appended as arguments.
func runPostCommand(ctx context.Context, command string, paths []string, stdout, stderr io.Writer) error {
	words, err := shellquote.Split(command)
	if err != nil {
		return errors.WithHint(
			errors.NewInvalidRequestError("invalid post command %q: %v", command, err),
			"check the quoting of generate.post_command in wrappy.toml")
	}
	if len(words) == 0 {
		return nil
	}

	args := append(words[1:], paths...)
	logger.Debugw("Running post command", "command", words[0], logger.FieldCount, len(paths))

	cmd := exec.CommandContext(ctx, words[0], args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "post command %s failed", words[0])
	}
	return nil
}
