package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/d-fournier/wrappy/config"
	"github.com/d-fournier/wrappy/diag"
	"github.com/d-fournier/wrappy/emit"
	"github.com/d-fournier/wrappy/errors"
	"github.com/d-fournier/wrappy/host"
	"github.com/d-fournier/wrappy/logger"
	"github.com/d-fournier/wrappy/processor"
	"github.com/d-fournier/wrappy/registry"
)

// stdoutOutput is the --output value writing sources to stdout
const stdoutOutput = "-"

// GenerateCmd generates wrappers for a round of descriptors
var GenerateCmd = &cobra.Command{
	Use:   "generate [descriptor files...]",
	Short: "Generate wrappers for a round of descriptors",
	Long: `Load the descriptor files as one round and generate a wrapper for every
request. Diagnostics are printed to stderr; the command fails when any error
was reported, or any warning with --fail-on-warning.

Flags override the [generate] and [diagnostics] sections of wrappy.toml.`,
	Example: `  wrappy generate api.yaml
  wrappy generate api.yaml more.json -o src/generated -j 0
  wrappy generate api.yaml --watch`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := resolveRoundOptions(cmd, cfg, args)
		if err != nil {
			return err
		}

		var metrics *processor.Metrics
		if opts.metricsFile != "" {
			metrics = processor.NewMetrics()
		}

		watch, _ := cmd.Flags().GetBool("watch")
		if watch {
			return watchAndGenerate(cmd, opts, metrics)
		}
		return generateOnce(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, metrics)
	},
}

func init() {
	addRoundFlags(GenerateCmd)
	GenerateCmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this file after each round")
	GenerateCmd.Flags().Bool("fail-on-warning", false, "Fail when any warning is reported")
	GenerateCmd.Flags().BoolP("watch", "w", false, "Regenerate whenever a descriptor or the configuration changes")
}

// roundOptions are the settings of one generate or check invocation, the
// configuration overridden by flags.
type roundOptions struct {
	fs             afero.Fs
	descriptors    []string
	strategies     []registry.Registration
	output         string
	jobs           int
	isolation      processor.Isolation
	format         diag.Format
	maxDiagnostics int
	metricsFile    string
	failOnWarning  bool
	postCommand    string
}

func addRoundFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "Directory receiving generated sources, - for stdout (default from config)")
	cmd.Flags().IntP("jobs", "j", 1, "Requests processed concurrently, 0 for one per CPU (default from config)")
	cmd.Flags().String("isolation", "", "request or round (default from config)")
	cmd.Flags().String("format", "", "Diagnostics format: terminal, plain or json (default from config)")
}

func resolveRoundOptions(cmd *cobra.Command, c *config.Config, args []string) (*roundOptions, error) {
	opts := &roundOptions{
		fs:             afero.NewOsFs(),
		descriptors:    args,
		strategies:     c.Strategies,
		output:         c.Generate.Output,
		jobs:           c.Generate.Jobs,
		format:         diag.Format(c.Diagnostics.Format),
		maxDiagnostics: c.Diagnostics.Max,
		metricsFile:    c.Metrics.Textfile,
		failOnWarning:  c.Generate.FailOnWarning,
		postCommand:    c.Generate.PostCommand,
	}
	isolation := c.Generate.Isolation

	flags := cmd.Flags()
	if flags.Changed("output") {
		opts.output, _ = flags.GetString("output")
	}
	if flags.Changed("jobs") {
		opts.jobs, _ = flags.GetInt("jobs")
	}
	if flags.Changed("isolation") {
		isolation, _ = flags.GetString("isolation")
	}
	if flags.Changed("format") {
		format, _ := flags.GetString("format")
		opts.format = diag.Format(format)
	}
	if flags.Lookup("metrics-file") != nil && flags.Changed("metrics-file") {
		opts.metricsFile, _ = flags.GetString("metrics-file")
	}
	if flags.Lookup("fail-on-warning") != nil && flags.Changed("fail-on-warning") {
		opts.failOnWarning, _ = flags.GetBool("fail-on-warning")
	}

	if opts.jobs < 0 {
		return nil, errors.NewInvalidRequestError("--jobs must not be negative, got %d", opts.jobs)
	}
	if opts.jobs == 0 {
		opts.jobs = runtime.NumCPU()
	}
	var err error
	if opts.isolation, err = processor.ParseIsolation(isolation); err != nil {
		return nil, err
	}
	if _, err := diag.NewFormatter(opts.format); err != nil {
		return nil, err
	}
	if opts.output == "" {
		return nil, errors.WithHint(
			errors.NewInvalidRequestError("no output directory"),
			"pass --output or set generate.output in wrappy.toml")
	}
	return opts, nil
}

// runRound loads a fresh round from the descriptors and processes it,
// printing diagnostics to stderr.
func runRound(ctx context.Context, stderr io.Writer, opts *roundOptions, filer emit.Filer, metrics *processor.Metrics) (*processor.RoundResult, error) {
	round, err := host.LoadFiles(opts.fs, opts.descriptors...)
	if err != nil {
		return nil, err
	}
	reg, err := registry.FromCatalog(registry.DefaultCatalog(), opts.strategies)
	if err != nil {
		return nil, errors.Wrap(err, "invalid strategy registrations")
	}
	formatter, err := diag.NewFormatter(opts.format)
	if err != nil {
		return nil, err
	}

	sink := diag.NewLimitSink(diag.NewWriterSink(stderr, formatter), opts.maxDiagnostics)
	p := processor.New(reg, filer,
		processor.WithJobs(opts.jobs),
		processor.WithIsolation(opts.isolation),
		processor.WithMetrics(metrics))

	result, err := p.ProcessRound(ctx, round, sink)
	if err != nil {
		return nil, err
	}
	if n := sink.Dropped(); n > 0 {
		fmt.Fprintf(stderr, "... %d more diagnostics not shown\n", n)
	}
	return result, nil
}

// generateOnce runs one round into the configured output.
func generateOnce(ctx context.Context, stdout, stderr io.Writer, opts *roundOptions, metrics *processor.Metrics) error {
	var filer emit.Filer
	if opts.output == stdoutOutput {
		filer = emit.NewWriterFiler(stdout)
	} else {
		filer = emit.NewDirFiler(opts.fs, opts.output)
	}

	result, err := runRound(ctx, stderr, opts, filer, metrics)
	if err != nil {
		return err
	}

	if opts.metricsFile != "" {
		if err := metrics.WriteTextfile(opts.metricsFile); err != nil {
			logger.Warnw("Failed to write metrics", logger.FieldPath, opts.metricsFile, logger.FieldError, err)
		}
	}

	if logger.ShouldLogTrace(verbosity) {
		for _, g := range result.Generated {
			logger.Debugw("Wrote unit",
				logger.FieldUnit, g.Unit.QualifiedName(),
				logger.FieldStrategy, g.Strategy,
				"bytes", len(g.Unit.Content))
		}
	}
	printSummary(stderr, result)
	if err := result.Err(); err != nil {
		return err
	}
	if warnings := result.Diagnostics[diag.SeverityWarning]; opts.failOnWarning && warnings > 0 {
		return errors.WithHint(
			errors.Newf("%d warnings reported", warnings),
			"fix the warnings or drop --fail-on-warning")
	}

	if opts.postCommand != "" && len(result.Generated) > 0 {
		if opts.output == stdoutOutput {
			logger.Debugw("Skipping post command for stdout output")
			return nil
		}
		paths := make([]string, 0, len(result.Generated))
		for _, g := range result.Generated {
			paths = append(paths, filepath.Join(opts.output, g.Unit.Path()))
		}
		return runPostCommand(ctx, opts.postCommand, paths, stdout, stderr)
	}
	return nil
}

func printSummary(w io.Writer, result *processor.RoundResult) {
	warnings := result.Diagnostics[diag.SeverityWarning]
	switch {
	case result.Failed > 0:
		pterm.Error.WithWriter(w).Printfln("Generated %d wrappers, %d requests failed, %d skipped",
			len(result.Generated), result.Failed, result.Skipped)
	case warnings > 0:
		pterm.Warning.WithWriter(w).Printfln("Generated %d wrappers with %d warnings",
			len(result.Generated), warnings)
	default:
		pterm.Success.WithWriter(w).Printfln("Generated %d wrappers", len(result.Generated))
	}
}

// watchAndGenerate regenerates on every change of the descriptors or the
// configuration file until interrupted. Failed rounds are reported and
// watching continues.
func watchAndGenerate(cmd *cobra.Command, opts *roundOptions, metrics *processor.Metrics) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if err := generateOnce(ctx, stdout, stderr, opts, metrics); err != nil {
		PrintError(stderr, err)
	}

	paths := append([]string{}, opts.descriptors...)
	if cfg.Path != "" {
		paths = append(paths, cfg.Path)
	}
	w, err := config.NewWatcher(paths,
		time.Duration(cfg.Watch.DebounceMS)*time.Millisecond,
		time.Duration(cfg.Watch.MinIntervalMS)*time.Millisecond)
	if err != nil {
		return err
	}
	defer w.Close()

	pterm.Info.WithWriter(stderr).Printfln("Watching %d files, press Ctrl+C to stop", len(paths))
	return w.Run(ctx, func(ctx context.Context) error {
		if cfg.Path != "" {
			reloaded, err := config.Load(cfg.Path)
			if err != nil {
				return err
			}
			opts.strategies = reloaded.Strategies
		}
		err := generateOnce(ctx, stdout, stderr, opts, metrics)
		if err != nil {
			PrintError(stderr, err)
		}
		return nil
	})
}
