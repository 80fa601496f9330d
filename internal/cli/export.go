package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/dental-lab/internal/app"
	"github.com/BruksfildServices01/dental-lab/internal/export"
)

type ExportOptions struct {
	*RootOptions
	Out string
}

func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the admin spreadsheet to a file",
		Example: `  dental-lab export --out reporte.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(cmd.Context(), opts.Config, opts.Log)
			if err != nil {
				return err
			}
			defer a.Close()

			d, err := a.Export.Collect(cmd.Context())
			if err != nil {
				return err
			}

			f, err := os.Create(opts.Out)
			if err != nil {
				return err
			}
			if err := export.WriteSpreadsheet(f, d); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d citas, %d contactos\n", opts.Out, len(d.Appointments), len(d.Contacts))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Out, "out", "", "destination .xlsx file (required)")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
