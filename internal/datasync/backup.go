package datasync

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dearbones/dearbones/internal/flashcard"
	"github.com/dearbones/dearbones/internal/learning"
	"github.com/dearbones/dearbones/internal/settings"
)

// SettingLister lists stored settings.
type SettingLister interface {
	All(ctx context.Context) ([]settings.Setting, error)
}

// BackupSnapshot is everything a backup contains.
type BackupSnapshot struct {
	Decks    []flashcard.Deck
	Cards    []flashcard.CardRecord
	Sessions []learning.StudySession
	Settings []settings.Setting
}

// YAMLBackupSink writes a snapshot to YAML files, one per table.
type YAMLBackupSink struct {
	outputDir string
}

// NewYAMLBackupSink creates a new YAMLBackupSink.
func NewYAMLBackupSink(outputDir string) *YAMLBackupSink {
	return &YAMLBackupSink{outputDir: outputDir}
}

// WriteAll writes decks.yml, cards.yml, study_sessions.yml and settings.yml.
func (s *YAMLBackupSink) WriteAll(snapshot BackupSnapshot) error {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	files := []struct {
		name string
		data any
	}{
		{"decks.yml", snapshot.Decks},
		{"cards.yml", snapshot.Cards},
		{"study_sessions.yml", snapshot.Sessions},
		{"settings.yml", snapshot.Settings},
	}
	for _, f := range files {
		if err := writeYAML(filepath.Join(s.outputDir, f.name), f.data); err != nil {
			return fmt.Errorf("write %s: %w", f.name, err)
		}
	}
	return nil
}

func writeYAML(path string, data any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	enc := yaml.NewEncoder(f)
	defer func() { _ = enc.Close() }()
	return enc.Encode(data)
}

// BackupWriter gathers the store's contents for a backup.
type BackupWriter struct {
	decks    flashcard.DeckRepository
	cards    flashcard.CardRepository
	sessions learning.SessionRepository
	settings SettingLister
}

// NewBackupWriter creates a new BackupWriter.
func NewBackupWriter(
	decks flashcard.DeckRepository,
	cards flashcard.CardRepository,
	sessions learning.SessionRepository,
	settings SettingLister,
) *BackupWriter {
	return &BackupWriter{decks: decks, cards: cards, sessions: sessions, settings: settings}
}

// Snapshot reads every deck, card, study session and setting.
func (w *BackupWriter) Snapshot(ctx context.Context) (BackupSnapshot, error) {
	decks, err := w.decks.FindAll(ctx)
	if err != nil {
		return BackupSnapshot{}, fmt.Errorf("load decks: %w", err)
	}
	cards, err := w.cards.FindAll(ctx)
	if err != nil {
		return BackupSnapshot{}, fmt.Errorf("load cards: %w", err)
	}
	sessions, err := w.sessions.FindAll(ctx)
	if err != nil {
		return BackupSnapshot{}, fmt.Errorf("load study sessions: %w", err)
	}
	stored, err := w.settings.All(ctx)
	if err != nil {
		return BackupSnapshot{}, fmt.Errorf("load settings: %w", err)
	}

	records := make([]flashcard.CardRecord, 0, len(cards))
	for _, c := range cards {
		records = append(records, c.Record())
	}
	if decks == nil {
		decks = []flashcard.Deck{}
	}
	if sessions == nil {
		sessions = []learning.StudySession{}
	}
	if stored == nil {
		stored = []settings.Setting{}
	}
	return BackupSnapshot{Decks: decks, Cards: records, Sessions: sessions, Settings: stored}, nil
}

// Backup writes a snapshot of the store into dir.
func (w *BackupWriter) Backup(ctx context.Context, dir string) (BackupSnapshot, error) {
	snapshot, err := w.Snapshot(ctx)
	if err != nil {
		return BackupSnapshot{}, err
	}
	if err := NewYAMLBackupSink(dir).WriteAll(snapshot); err != nil {
		return BackupSnapshot{}, err
	}
	slog.Default().Debug("wrote backup", "directory", dir,
		"decks", len(snapshot.Decks), "cards", len(snapshot.Cards), "sessions", len(snapshot.Sessions))
	return snapshot, nil
}
