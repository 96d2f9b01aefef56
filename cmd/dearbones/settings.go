package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dearbones/dearbones/internal/bootstrap"
	"github.com/dearbones/dearbones/internal/settings"
)

func newSettingsCommand() *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Read and change preferences",
	}
	settingsCmd.AddCommand(
		newSettingsListCommand(),
		newSettingsGetCommand(),
		newSettingsSetCommand(),
	)
	return settingsCmd
}

func newSettingsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every setting with its JSON value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(app *bootstrap.App) error {
				service, err := app.SettingsService()
				if err != nil {
					return err
				}
				stored, err := app.Settings.All(cmd.Context())
				if err != nil {
					return fmt.Errorf("load settings: %w", err)
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				for _, key := range settings.Keys {
					value, err := service.Get(cmd.Context(), key)
					if err != nil {
						return err
					}
					_, _ = fmt.Fprintf(tw, "%s\t%s\n", key, value)
				}
				for _, st := range stored {
					if settings.IsDocumented(st.Name) {
						continue
					}
					_, _ = fmt.Fprintf(tw, "%s\t%s\n", st.Name, st.Value)
				}
				return tw.Flush()
			})
		},
	}
}

func newSettingsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the JSON value of a setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(app *bootstrap.App) error {
				service, err := app.SettingsService()
				if err != nil {
					return err
				}
				value, err := service.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			})
		},
	}
}

func newSettingsSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <json-value>",
		Short: "Store a setting",
		Long:  `Store a setting. The value must be JSON, so strings are quoted: settings set theme '"dark"'.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(app *bootstrap.App) error {
				service, err := app.SettingsService()
				if err != nil {
					return err
				}
				return service.Set(cmd.Context(), args[0], args[1])
			})
		},
	}
}
