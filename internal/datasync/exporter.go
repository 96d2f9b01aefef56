package datasync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dearbones/dearbones/internal/deckcsv"
	"github.com/dearbones/dearbones/internal/flashcard"
)

const allDecksFileStem = "all-decks"

// ExportResult describes a finished export.
type ExportResult struct {
	Success   bool
	Cancelled bool
	Path      string
}

// Exporter writes decks to CSV files.
type Exporter struct {
	decks flashcard.DeckRepository
	cards flashcard.CardRepository
}

// NewExporter creates a new Exporter.
func NewExporter(decks flashcard.DeckRepository, cards flashcard.CardRepository) *Exporter {
	return &Exporter{decks: decks, cards: cards}
}

// DefaultFileName suggests a file name for exporting deckID, or every deck when deckID is empty.
func (e *Exporter) DefaultFileName(ctx context.Context, deckID string) (string, error) {
	if deckID == "" {
		return allDecksFileStem + ".csv", nil
	}
	deck, err := e.decks.FindByID(ctx, deckID)
	if err != nil {
		return "", fmt.Errorf("find deck: %w", err)
	}
	return SanitizeFileName(deck.Name) + ".csv", nil
}

// ExportWithPicker asks picker where to save and exports there. A dismissed
// dialog yields a cancelled result.
func (e *Exporter) ExportWithPicker(ctx context.Context, picker PathPicker, deckID string) (*ExportResult, error) {
	name, err := e.DefaultFileName(ctx, deckID)
	if err != nil {
		return nil, err
	}
	path, err := picker.PickSave(ctx, name)
	if errors.Is(err, ErrCancelled) {
		return &ExportResult{Cancelled: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pick export file: %w", err)
	}
	return e.Export(ctx, deckID, path)
}

// ExportToDirectory exports into dir under the default file name.
func (e *Exporter) ExportToDirectory(ctx context.Context, deckID, dir string) (*ExportResult, error) {
	name, err := e.DefaultFileName(ctx, deckID)
	if err != nil {
		return nil, err
	}
	return e.Export(ctx, deckID, filepath.Join(dir, name))
}

// Export writes the cards of deckID to path, or the cards of every deck with
// deck columns when deckID is empty.
func (e *Exporter) Export(ctx context.Context, deckID, path string) (*ExportResult, error) {
	content, err := e.render(ctx, deckID)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	slog.Default().Debug("exported CSV", "deck", deckID, "path", path)
	return &ExportResult{Success: true, Path: path}, nil
}

func (e *Exporter) render(ctx context.Context, deckID string) (string, error) {
	if deckID != "" {
		deck, err := e.decks.FindByID(ctx, deckID)
		if err != nil {
			return "", fmt.Errorf("find deck: %w", err)
		}
		cards, err := e.cards.FindByDeck(ctx, deckID)
		if err != nil {
			return "", fmt.Errorf("load deck cards: %w", err)
		}
		return deckcsv.Serialize(cards, []flashcard.Deck{*deck}, deckcsv.ScopeDeck), nil
	}

	decks, err := e.decks.FindAll(ctx)
	if err != nil {
		return "", fmt.Errorf("load decks: %w", err)
	}
	cards, err := e.cards.FindAll(ctx)
	if err != nil {
		return "", fmt.Errorf("load cards: %w", err)
	}
	return deckcsv.Serialize(cards, decks, deckcsv.ScopeAllDecks), nil
}
