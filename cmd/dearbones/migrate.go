package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dearbones/dearbones/internal/bootstrap"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(app *bootstrap.App) error {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Database (%s) is up to date\n", app.Config.Database.Driver)
				return nil
			})
		},
	}
}
