package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/d-fournier/wrappy/registry"
)

// StrategiesCmd lists the strategies requests may name
var StrategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List the configured strategies",
	Long: `List the strategies registered in wrappy.toml, in lookup order, with the
built-in implementation each name resolves to.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := registry.DefaultCatalog()
		reg, err := registry.FromCatalog(catalog, cfg.Strategies)
		if err != nil {
			return err
		}

		// The registry keeps the last registration of a repeated name
		impl := make(map[string]string, len(cfg.Strategies))
		for _, r := range cfg.Strategies {
			use := r.Use
			if use == "" {
				use = r.Name
			}
			impl[r.Name] = use
		}

		if reg.Len() == 0 {
			pterm.Warning.WithWriter(cmd.OutOrStdout()).Println("No strategies are registered")
			return nil
		}

		data := pterm.TableData{{"Name", "Implementation", "Description"}}
		for _, name := range reg.Names() {
			use := impl[name]
			data = append(data, []string{name, use, catalog[use].Description})
		}
		return pterm.DefaultTable.WithHasHeader().WithWriter(cmd.OutOrStdout()).WithData(data).Render()
	},
}
