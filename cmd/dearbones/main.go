package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dearbones/dearbones/internal/config"
)

var (
	configFile string
	debugMode  bool
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintf(os.Stderr, "failed to load .env: %+v\n", err)
		os.Exit(1)
	}

	rootCommand := newRootCommand()
	if err := rootCommand.Execute(); err != nil {
		if _, fprintfErr := fmt.Fprintf(os.Stderr, "failed to execute a command: %+v\n", err); fprintfErr != nil {
			panic(fmt.Errorf("failed to output an error: %w. Reason: %w", err, fprintfErr))
		}
		os.Exit(1)
	}
	os.Exit(0)
}

func newRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:           "dearbones",
		Short:         "Flashcard decks with CSV import and export",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(config.LogConfig{Level: "info", Format: "text"}, debugMode)
			return nil
		},
	}
	rootCommand.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCommand.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode")

	rootCommand.AddCommand(
		newMigrateCommand(),
		newDeckCommand(),
		newCardCommand(),
		newImportCommand(),
		newExportCommand(),
		newBackupCommand(),
		newStudyCommand(),
		newSettingsCommand(),
		newAudioCommand(),
	)
	return rootCommand
}

// setupLogger configures the default logger from the log config; debug mode
// forces the debug level and adds source locations.
func setupLogger(cfg config.LogConfig, debugMode bool) {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.Level)); err != nil {
		logLevel = slog.LevelInfo
	}
	if debugMode {
		logLevel = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: debugMode,
	}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
