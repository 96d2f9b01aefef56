package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dearbones/dearbones/internal/bootstrap"
)

func newAudioCommand() *cobra.Command {
	audioCmd := &cobra.Command{
		Use:   "audio",
		Short: "Manage files in the private audio store",
	}
	audioCmd.AddCommand(
		newAudioAddCommand(),
		newAudioCheckCommand(),
		newAudioRemoveCommand(),
	)
	return audioCmd
}

func newAudioAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <file>",
		Short: "Copy an audio file into the store and print its stored name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(app *bootstrap.App) error {
				if !app.Audio.ValidateAudioFile(args[0]) {
					return fmt.Errorf("%s is not a supported audio file", args[0])
				}
				asset, err := app.Audio.CopyAudioFile(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), asset.InternalPath)
				return nil
			})
		},
	}
}

func newAudioCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <name>",
		Short: "Show where a stored audio file lives and its content type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(app *bootstrap.App) error {
				name := args[0]
				if !app.Audio.AudioFileExists(name) {
					return fmt.Errorf("audio file %s is not in the store", name)
				}
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "Path: %s\n", app.Audio.GetAudioFilePath(name))
				_, _ = fmt.Fprintf(out, "Type: %s\n", app.Audio.MimeType(name))
				return nil
			})
		},
	}
}

func newAudioRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Delete a stored audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(app *bootstrap.App) error {
				return app.Audio.DeleteAudioFile(cmd.Context(), args[0])
			})
		},
	}
}
