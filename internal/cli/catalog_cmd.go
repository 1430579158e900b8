package cli

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/focusbox/internal/cli/formatter"
	"github.com/alexanderramin/focusbox/internal/domain"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Labels and their colors",
	}

	cmd.AddCommand(
		newCatalogListCmd(app),
		newCatalogColorCmd(app),
	)

	return cmd
}

func newCatalogListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List known labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := app.Store.Catalog()
			entries := make([]domain.CatalogEntry, 0, len(catalog))
			for _, e := range catalog {
				entries = append(entries, e)
			}
			sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCatalog(entries))
			return nil
		},
	}
}

func newCatalogColorCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "color LABEL HEX",
		Short: "Set the color of a label, e.g. `catalog color writing #fe8019`",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := formatter.ParseHex(args[1])
			if err != nil {
				return err
			}
			if err := app.Store.SetCatalogColor(cmd.Context(), args[0], c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s is now %s\n",
				formatter.Swatch(c, 2), domain.NormalizeLabel(args[0]), formatter.Hex(c))
			return nil
		},
	}
}
