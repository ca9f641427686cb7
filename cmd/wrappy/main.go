package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/d-fournier/wrappy/cmd/wrappy/commands"
	"github.com/d-fournier/wrappy/logger"
)

var rootCmd = &cobra.Command{
	Use:   "wrappy",
	Short: "wrappy - generate wrapper classes from type descriptors",
	Long: `wrappy generates Java wrapper classes around existing types.

A round of descriptor documents (YAML, JSON or TOML) describes the wrapped
types and the generation requests. Each request names a strategy that
renders the wrapper:

  Empty    - delegates every method unchanged
  RxJava2  - wraps results in RxJava 2 Single and Completable
  RxJava3  - wraps results in RxJava 3 Single and Completable

Available commands:
  generate   - Generate wrappers for a round
  check      - Verify generated wrappers are up to date
  strategies - List the configured strategies
  init       - Write a default wrappy.toml
  version    - Show version information

Examples:
  wrappy generate round.yaml              # Write to the configured output
  wrappy generate round.yaml -o -         # Write to stdout
  wrappy generate round.yaml --watch      # Regenerate on change
  wrappy check round.yaml -o src/gen      # Fail when out of date`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		verbosity, _ := cmd.Flags().GetCount("verbose")
		logJSON, _ := cmd.Flags().GetBool("log-json")

		// These work without a valid project configuration
		needsConfig := true
		switch cmd.Name() {
		case "init", "version", "help", "completion":
			needsConfig = false
		}
		return commands.Setup(configPath, verbosity, logJSON, needsConfig)
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().String("config", "", "Configuration file (default: wrappy.toml found upwards from the working directory)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Log as JSON")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.StrategiesCmd)
	rootCmd.AddCommand(commands.InitCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	err := rootCmd.Execute()
	logger.Cleanup()
	if err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(commands.ExitCode(err))
	}
}
