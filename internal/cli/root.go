// Package cli wires the dental-lab commands.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/dental-lab/internal/config"
	"github.com/BruksfildServices01/dental-lab/internal/logger"
)

// RootOptions is filled by the persistent pre-run and shared by every
// subcommand.
type RootOptions struct {
	Config *config.Config
	Log    *slog.Logger
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "dental-lab",
		Short:         "Dental laboratory booking and admin API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts.Config = cfg
			opts.Log = logger.New(cfg.IsLocal(), cfg.App.LogLevel)
			return nil
		},
	}

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewAdminCommand(opts))

	return cmd
}
