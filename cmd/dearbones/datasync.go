package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dearbones/dearbones/internal/bootstrap"
	"github.com/dearbones/dearbones/internal/cli"
	"github.com/dearbones/dearbones/internal/datasync"
)

func newImportCommand() *cobra.Command {
	var deckID string
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import cards from a CSV file",
		Long: "Import cards from a CSV file. Without --deck every row must name its deck in a " +
			"Deck Name column; missing decks are created. Without a file argument the path is prompted for.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(app *bootstrap.App) error {
				out := cmd.OutOrStdout()
				importer := app.Importer(out)

				var (
					result *datasync.ImportResult
					err    error
				)
				if len(args) == 1 {
					result, err = importer.ImportFile(cmd.Context(), args[0], deckID)
				} else {
					picker := cli.NewPromptPathPicker(cmd.InOrStdin(), out, app.Config.Exports.Directory)
					result, err = importer.ImportWithPicker(cmd.Context(), picker, deckID)
				}
				if err != nil {
					return fmt.Errorf("import: %w", err)
				}
				cli.PrintImportResult(out, result)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&deckID, "deck", "", "import every row into this deck id")
	return cmd
}

func newExportCommand() *cobra.Command {
	var (
		deckID string
		output string
		pick   bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a deck, or every deck, to CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(app *bootstrap.App) error {
				out := cmd.OutOrStdout()
				exporter := app.Exporter()

				var (
					result *datasync.ExportResult
					err    error
				)
				switch {
				case pick:
					picker := cli.NewPromptPathPicker(cmd.InOrStdin(), out, app.Config.Exports.Directory)
					result, err = exporter.ExportWithPicker(cmd.Context(), picker, deckID)
				case output != "":
					result, err = exporter.Export(cmd.Context(), deckID, output)
				default:
					result, err = exporter.ExportToDirectory(cmd.Context(), deckID, app.Config.Exports.Directory)
				}
				if err != nil {
					return fmt.Errorf("export: %w", err)
				}
				cli.PrintExportResult(out, result)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&deckID, "deck", "", "deck id; every deck when empty")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	cmd.Flags().BoolVar(&pick, "pick", false, "prompt for the output file")
	cmd.MarkFlagsMutuallyExclusive("output", "pick")
	return cmd
}

func newBackupCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write every deck, card, study session and setting to YAML files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(app *bootstrap.App) error {
				dir := output
				if dir == "" {
					dir = filepath.Join(app.Config.Backups.Directory, time.Now().Format("20060102-150405"))
				}
				if _, err := os.Stat(dir); err == nil {
					entries, err := os.ReadDir(dir)
					if err != nil {
						return fmt.Errorf("os.ReadDir(%s) > %w", dir, err)
					}
					if len(entries) > 0 {
						return fmt.Errorf("backup directory %s is not empty", dir)
					}
				}

				snapshot, err := app.BackupWriter().Backup(cmd.Context(), dir)
				if err != nil {
					return fmt.Errorf("backup: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Backed up %d decks, %d cards, %d study sessions and %d settings to %s\n",
					len(snapshot.Decks), len(snapshot.Cards), len(snapshot.Sessions), len(snapshot.Settings), dir)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory; a timestamped directory under backups.directory when empty")
	return cmd
}
