package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/dental-lab/internal/app"
	ucAdmin "github.com/BruksfildServices01/dental-lab/internal/usecase/admin"
	"github.com/BruksfildServices01/dental-lab/internal/validators"
)

func NewAdminCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage administrator accounts",
	}

	cmd.AddCommand(newAdminCreateCommand(opts))
	cmd.AddCommand(newAdminTokenCommand(opts))
	return cmd
}

type adminCreateOptions struct {
	*RootOptions
	Input       ucAdmin.CreateInput
	CheckDomain bool
}

func newAdminCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &adminCreateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create or replace an administrator with its role defaults",
		Example: `  dental-lab admin create --subject auth0|123 --email jefa@laboratorio-dental.pe --role super_admin
  dental-lab admin create --subject local-ops --email ops@laboratorio-dental.pe --role admin --password 's3cr3t-largo'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.CheckDomain && !validators.IsEmailDomainValid(opts.Input.Email) {
				return fmt.Errorf("email domain of %q does not resolve", opts.Input.Email)
			}

			a, err := app.New(cmd.Context(), opts.Config, opts.Log)
			if err != nil {
				return err
			}
			defer a.Close()

			created, err := a.Admins.Seed(cmd.Context(), opts.Input)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> %s\n", created.Subject, created.Email, created.Role)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Input.Subject, "subject", "", "identity provider subject (required)")
	f.StringVar(&opts.Input.Email, "email", "", "login e-mail (required)")
	f.StringVar(&opts.Input.Name, "name", "", "display name")
	f.StringVar(&opts.Input.Role, "role", "admin", "super_admin|admin|moderator|viewer")
	f.StringVar(&opts.Input.Password, "password", "", "enables the local password login")
	f.BoolVar(&opts.CheckDomain, "check-domain", false, "resolve the e-mail domain first")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newAdminTokenCommand(opts *RootOptions) *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a signed admin token for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(cmd.Context(), opts.Config, opts.Log)
			if err != nil {
				return err
			}
			defer a.Close()

			admin, err := a.Admins.Get(cmd.Context(), subject)
			if err != nil {
				return fmt.Errorf("load administrator %q: %w", subject, err)
			}

			token, err := a.Tokens.Issue(admin.Subject, admin.Email)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "administrator subject (required)")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}
