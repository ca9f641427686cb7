package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/d-fournier/wrappy/config"
)

// InitCmd writes a default project configuration
var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default wrappy.toml",
	Long: `Write wrappy.toml with every setting at its default value in the current
directory. An existing file is kept unless --force is given, in which case it
is backed up first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("path")
		force, _ := cmd.Flags().GetBool("force")

		if err := config.WriteFile(afero.NewOsFs(), path, config.Default(), force); err != nil {
			return err
		}
		pterm.Success.WithWriter(cmd.OutOrStdout()).Printfln("Wrote %s", path)
		return nil
	},
}

func init() {
	InitCmd.Flags().String("path", config.FileName, "File to write")
	InitCmd.Flags().BoolP("force", "f", false, "Overwrite an existing file, keeping a backup")
}
