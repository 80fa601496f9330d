package cli

import (
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/dental-lab/internal/db"
)

func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema and the live slot index",
		RunE: func(cmd *cobra.Command, args []string) error {
			gdb, err := db.Open(opts.Config.DB.Driver, opts.Config.DB.URL, opts.Log)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			if err := db.Migrate(gdb); err != nil {
				return err
			}
			opts.Log.Info("migrate.done", "driver", opts.Config.DB.Driver)
			return nil
		},
	}
}
