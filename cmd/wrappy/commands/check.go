package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/d-fournier/wrappy/check"
	"github.com/d-fournier/wrappy/emit"
	"github.com/d-fournier/wrappy/errors"
)

// CheckCmd verifies the generated sources on disk are up to date
var CheckCmd = &cobra.Command{
	Use:   "check [descriptor files...]",
	Short: "Verify generated wrappers are up to date",
	Long: `Generate the round in memory and compare the result with the output
directory. Reports files that are missing or changed, and stale files that
carry the generated header but are no longer produced. Fails when the output
is not up to date; nothing is written.`,
	Example: `  wrappy check api.yaml -o src/generated`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := resolveRoundOptions(cmd, cfg, args)
		if err != nil {
			return err
		}
		if opts.output == stdoutOutput {
			return errors.NewInvalidRequestError("check needs an output directory, not stdout")
		}

		mem := emit.NewMemFiler()
		result, err := runRound(cmd.Context(), cmd.ErrOrStderr(), opts, mem, nil)
		if err != nil {
			return err
		}
		if err := result.Err(); err != nil {
			return err
		}

		cmp, err := check.Compare(mem.Fs, "/", opts.fs, opts.output)
		if err != nil {
			return err
		}
		if cmp.UpToDate {
			pterm.Success.WithWriter(cmd.ErrOrStderr()).Printfln("%d wrappers up to date", len(result.Generated))
			return nil
		}

		problems := cmp.Problems()
		for _, p := range problems {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return errors.WithHint(
			errors.Newf("%d generated files are out of date in %s", len(problems), opts.output),
			"run 'wrappy generate' to regenerate them")
	},
}

func init() {
	addRoundFlags(CheckCmd)
}
