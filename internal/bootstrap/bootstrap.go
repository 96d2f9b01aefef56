// Package bootstrap wires the store, the audio manager and the services from a loaded config.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/jmoiron/sqlx"

	"github.com/dearbones/dearbones/internal/audio"
	"github.com/dearbones/dearbones/internal/config"
	"github.com/dearbones/dearbones/internal/database"
	"github.com/dearbones/dearbones/internal/datasync"
	"github.com/dearbones/dearbones/internal/flashcard"
	"github.com/dearbones/dearbones/internal/learning"
	"github.com/dearbones/dearbones/internal/settings"
)

// App holds the open database and everything built on it.
type App struct {
	mu    sync.Mutex
	hooks []func(ctx context.Context) error

	Config   *config.Config
	DB       *sqlx.DB
	Decks    flashcard.DeckRepository
	Cards    flashcard.CardRepository
	Sessions learning.SessionRepository
	Settings settings.Repository
	Audio    *audio.Manager
}

// Open connects to the configured database, applies pending migrations and
// builds the repositories. Close releases the connection.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, DB: db}
	app.AddShutdownHook(func(context.Context) error {
		return db.Close()
	})

	if err := database.Ping(ctx, db, cfg.Database.ConnectAttempts); err != nil {
		return nil, errors.Join(err, app.Close(ctx))
	}
	if err := database.Migrate(db); err != nil {
		return nil, errors.Join(fmt.Errorf("database.Migrate() > %w", err), app.Close(ctx))
	}

	app.Decks = flashcard.NewDBDeckRepository(db)
	app.Cards = flashcard.NewDBCardRepository(db)
	app.Sessions = learning.NewDBSessionRepository(db)
	app.Settings = settings.NewDBRepository(db)
	app.Audio = audio.NewManager(cfg.Audio.Directory)
	return app, nil
}

// AddShutdownHook registers a function to call from Close.
// Hooks run in reverse order (LIFO). Thread-safe.
func (a *App) AddShutdownHook(fn func(ctx context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, fn)
}

// Close runs every shutdown hook once, last registered first.
func (a *App) Close(ctx context.Context) error {
	a.mu.Lock()
	hooks := a.hooks
	a.hooks = nil
	a.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FlashcardService returns the service that deletes decks and cards with their audio.
func (a *App) FlashcardService() *flashcard.Service {
	return flashcard.NewService(a.Decks, a.Cards, a.Audio)
}

// Importer returns a CSV importer writing progress lines to w.
func (a *App) Importer(w io.Writer) *datasync.Importer {
	return datasync.NewImporter(a.Decks, a.Cards, a.Audio, w)
}

func (a *App) Exporter() *datasync.Exporter {
	return datasync.NewExporter(a.Decks, a.Cards)
}

func (a *App) BackupWriter() *datasync.BackupWriter {
	return datasync.NewBackupWriter(a.Decks, a.Cards, a.Sessions, a.Settings)
}

func (a *App) Recorder() (*learning.Recorder, error) {
	return learning.NewRecorder(a.Sessions, a.Cards)
}

func (a *App) SettingsService() (*settings.Service, error) {
	return settings.NewService(a.Settings)
}
