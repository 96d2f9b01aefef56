package datasync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dearbones/dearbones/internal/deckcsv"
	"github.com/dearbones/dearbones/internal/flashcard"
)

// ImportedDeckDescription is the description given to decks created by an import.
const ImportedDeckDescription = "Imported from CSV"

// ImportResult summarises an import run. Success is true whenever the file could be
// parsed, even if some rows were skipped; skipped rows are listed in Errors.
type ImportResult struct {
	Success   bool
	Cancelled bool
	Imported  int
	// Errors holds one "Row N: message" entry per skipped row, in file order.
	Errors []string
	// DecksCreated holds the names of decks created by this run, in creation order.
	DecksCreated []string
}

// Importer reads deck CSV files and writes their cards to the store.
type Importer struct {
	decks  flashcard.DeckRepository
	cards  flashcard.CardRepository
	audio  AudioImporter
	writer io.Writer
}

// NewImporter creates a new Importer. Progress lines are written to writer.
func NewImporter(decks flashcard.DeckRepository, cards flashcard.CardRepository, audio AudioImporter, writer io.Writer) *Importer {
	if writer == nil {
		writer = io.Discard
	}
	return &Importer{
		decks:  decks,
		cards:  cards,
		audio:  audio,
		writer: writer,
	}
}

// ImportWithPicker asks picker for the file and imports it. A dismissed dialog
// yields a cancelled result without touching the store.
func (imp *Importer) ImportWithPicker(ctx context.Context, picker PathPicker, targetDeckID string) (*ImportResult, error) {
	path, err := picker.PickOpen(ctx)
	if errors.Is(err, ErrCancelled) {
		return &ImportResult{Cancelled: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pick import file: %w", err)
	}
	return imp.ImportFile(ctx, path, targetDeckID)
}

// ImportFile imports the CSV file at path. Relative audio references are
// resolved against the file's directory.
func (imp *Importer) ImportFile(ctx context.Context, path, targetDeckID string) (*ImportResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	return imp.Import(ctx, string(content), filepath.Dir(path), targetDeckID)
}

// importRun holds the state of one Import call.
type importRun struct {
	result *ImportResult
	target *flashcard.Deck
	// deckIDs memoises deck name to id so a name is created at most once per run.
	deckIDs map[string]string
	baseDir string
}

// Import parses content and creates one card per valid row. A malformed file
// fails as a whole before anything is written. Invalid rows are skipped and
// reported in the result. When targetDeckID is empty each row names its deck,
// which is looked up by exact name and created when missing.
func (imp *Importer) Import(ctx context.Context, content, baseDir, targetDeckID string) (*ImportResult, error) {
	_, records, err := deckcsv.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("parse CSV: %w", err)
	}

	run := &importRun{
		result:  &ImportResult{Success: true, Errors: []string{}, DecksCreated: []string{}},
		deckIDs: make(map[string]string),
		baseDir: baseDir,
	}
	if targetDeckID != "" {
		deck, err := imp.decks.FindByID(ctx, targetDeckID)
		if err != nil {
			return nil, fmt.Errorf("find target deck: %w", err)
		}
		run.target = deck
	}

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := imp.importRecord(ctx, run, rec); err != nil {
			msg := fmt.Sprintf("Row %d: %s", rec.Row, err)
			run.result.Errors = append(run.result.Errors, msg)
			_, _ = fmt.Fprintf(imp.writer, "  [SKIP]  %s\n", msg)
			slog.Default().Debug("skipped CSV row", "row", rec.Row, "error", err)
			continue
		}
		run.result.Imported++
	}
	return run.result, nil
}

func (imp *Importer) importRecord(ctx context.Context, run *importRun, rec deckcsv.Record) error {
	if rec.Back == "" {
		return errors.New("back is required")
	}
	cardType, err := rec.CardType()
	if err != nil {
		return err
	}
	if err := validateRecord(cardType, rec); err != nil {
		return err
	}

	deckID, err := imp.resolveDeck(ctx, run, rec)
	if err != nil {
		return err
	}

	var ref flashcard.AudioRef
	if cardType.NeedsAudio() {
		ref, err = imp.importAudio(ctx, run.baseDir, rec)
		if err != nil {
			return err
		}
	}

	front, err := flashcard.NewFront(cardType, rec.Front, ref)
	if err != nil {
		return err
	}
	card := &flashcard.Card{
		DeckID:     deckID,
		Front:      front,
		Back:       rec.Back,
		Tags:       rec.Tags,
		StudyCount: rec.StudyCount,
		Scheduling: rec.Scheduling,
	}
	if err := imp.cards.Create(ctx, card); err != nil {
		if ref.Path != "" {
			if delErr := imp.audio.DeleteAudioFile(ctx, ref.Path); delErr != nil {
				slog.Default().Warn("could not remove copied audio file", "file", ref.Path, "error", delErr)
			}
		}
		return fmt.Errorf("failed to create card: %w", err)
	}
	_, _ = fmt.Fprintf(imp.writer, "  [IMPORTED]  %s %q\n", cardType, summary(rec))
	return nil
}

// validateRecord checks the fields each card type requires before anything is written.
func validateRecord(cardType flashcard.CardType, rec deckcsv.Record) error {
	switch cardType {
	case flashcard.CardTypeText:
		if rec.Front == "" {
			return errors.New("front is required for text cards")
		}
	case flashcard.CardTypeAudio:
		if rec.FrontAudioFile == "" {
			return errors.New("front audio file is required for audio cards")
		}
	case flashcard.CardTypeMixed:
		if rec.Front == "" {
			return errors.New("front is required for mixed cards")
		}
		if rec.FrontAudioFile == "" {
			return errors.New("front audio file is required for mixed cards")
		}
	default:
		return fmt.Errorf("unsupported card type %q", cardType)
	}
	return nil
}

func (imp *Importer) resolveDeck(ctx context.Context, run *importRun, rec deckcsv.Record) (string, error) {
	if run.target != nil {
		return run.target.ID, nil
	}
	if rec.DeckName == "" {
		return "", errors.New("deck name is required when no target deck is selected")
	}
	if id, ok := run.deckIDs[rec.DeckName]; ok {
		return id, nil
	}

	existing, err := imp.decks.FindByName(ctx, rec.DeckName)
	if err != nil {
		return "", fmt.Errorf("failed to look up deck %q: %w", rec.DeckName, err)
	}
	if existing != nil {
		run.deckIDs[rec.DeckName] = existing.ID
		return existing.ID, nil
	}

	emoji := rec.DeckEmoji
	if emoji == "" {
		emoji = flashcard.DefaultDeckEmoji
	}
	deck := &flashcard.Deck{
		Name:        rec.DeckName,
		Description: ImportedDeckDescription,
		Emoji:       emoji,
		Tags:        flashcard.Tags{},
	}
	if err := imp.decks.Create(ctx, deck); err != nil {
		return "", fmt.Errorf("failed to create deck %q: %w", rec.DeckName, err)
	}
	run.deckIDs[rec.DeckName] = deck.ID
	run.result.DecksCreated = append(run.result.DecksCreated, deck.Name)
	_, _ = fmt.Fprintf(imp.writer, "  [NEW DECK]  %q\n", deck.Name)
	return deck.ID, nil
}

// importAudio copies the row's audio file into the private store. Relative
// references are resolved against baseDir; a reference that is missing there but
// names a file already in the private store (as written by an export) is copied
// from the store instead.
func (imp *Importer) importAudio(ctx context.Context, baseDir string, rec deckcsv.Record) (flashcard.AudioRef, error) {
	src := rec.FrontAudioFile
	if !filepath.IsAbs(src) {
		src = filepath.Join(baseDir, src)
	}
	if _, err := os.Stat(src); errors.Is(err, os.ErrNotExist) && imp.audio.AudioFileExists(rec.FrontAudioFile) {
		src = imp.audio.GetAudioFilePath(rec.FrontAudioFile)
	}

	asset, err := imp.audio.CopyAudioFile(ctx, src)
	if err != nil {
		return flashcard.AudioRef{}, fmt.Errorf("failed to import audio file %s: %w", rec.FrontAudioFile, err)
	}
	name := rec.FrontAudioName
	if name == "" {
		name = filepath.Base(rec.FrontAudioFile)
	}
	return flashcard.AudioRef{Path: asset.InternalPath, Name: name}, nil
}

func summary(rec deckcsv.Record) string {
	s := rec.Front
	if s == "" {
		s = rec.Back
	}
	s = strings.ReplaceAll(s, "\n", " ")
	if r := []rune(s); len(r) > 40 {
		s = string(r[:40]) + "..."
	}
	return s
}
