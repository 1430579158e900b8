package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/focusbox/internal/exchange"
	"github.com/alexanderramin/focusbox/internal/service"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all measurements and boxes as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := exportFormat(format, output)
			if err != nil {
				return err
			}
			doc := app.Exchange.Export(cmd.Context())

			if output == "" || output == "-" {
				return exchange.Encode(cmd.OutOrStdout(), doc, f)
			}

			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			if err := exchange.Encode(file, doc, f); err != nil {
				file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d measurements and %d boxes to %s\n",
				len(doc.Measurements), len(doc.Boxes), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "json or yaml (default from --output extension, else json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Add measurements and boxes from an export document (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]

			var res *service.ImportResult
			var err error
			if path == "-" || format != "" {
				f, ferr := exportFormat(format, path)
				if ferr != nil {
					return ferr
				}
				res, err = importWithFormat(cmd, app, path, f)
			} else {
				res, err = app.Exchange.ImportFile(ctx, path)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d measurements, %d boxes, %d new labels",
				res.Measurements, res.Boxes, res.CatalogEntries)
			if res.Skipped > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), " (%d already present, skipped)", res.Skipped)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "json or yaml (default from file extension)")
	return cmd
}

func importWithFormat(cmd *cobra.Command, app *App, path string, f exchange.Format) (*service.ImportResult, error) {
	in := cmd.InOrStdin()
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("reading file: %w", err)
		}
		defer file.Close()
		in = file
	}
	doc, err := exchange.Decode(in, f)
	if err != nil {
		return nil, err
	}
	return app.Exchange.ImportDocument(cmd.Context(), doc)
}

// exportFormat resolves an explicit --format, falling back to the path's
// extension.
func exportFormat(flag, path string) (exchange.Format, error) {
	if flag != "" {
		return exchange.ParseFormat(flag)
	}
	if path == "" || path == "-" {
		return exchange.FormatJSON, nil
	}
	return exchange.FormatForPath(path), nil
}
