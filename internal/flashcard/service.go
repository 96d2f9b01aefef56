package flashcard

import (
	"context"
	"fmt"
	"log/slog"
)

//go:generate mockgen -source=service.go -destination=../mocks/flashcard/mock_service.go -package=mock_flashcard

// AudioRemover deletes stored audio assets. Deleting a missing asset is not an error.
type AudioRemover interface {
	DeleteAudioFile(ctx context.Context, name string) error
}

// Service performs deletions that must also clean up the audio assets
// referenced by the removed cards.
type Service struct {
	decks DeckRepository
	cards CardRepository
	audio AudioRemover
}

// NewService creates a new Service.
func NewService(decks DeckRepository, cards CardRepository, audio AudioRemover) *Service {
	return &Service{decks: decks, cards: cards, audio: audio}
}

// DeleteCard deletes the card and then its audio asset, if any.
func (s *Service) DeleteCard(ctx context.Context, id string) error {
	card, err := s.cards.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find card: %w", err)
	}
	if err := s.cards.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	s.removeAudio(ctx, *card)
	return nil
}

// DeleteDeck deletes the deck, its cards, and every audio asset those cards referenced.
func (s *Service) DeleteDeck(ctx context.Context, id string) error {
	if _, err := s.decks.FindByID(ctx, id); err != nil {
		return fmt.Errorf("find deck: %w", err)
	}
	cards, err := s.cards.FindByDeck(ctx, id)
	if err != nil {
		return fmt.Errorf("find deck cards: %w", err)
	}
	if err := s.decks.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete deck: %w", err)
	}
	for _, card := range cards {
		s.removeAudio(ctx, card)
	}
	return nil
}

func (s *Service) removeAudio(ctx context.Context, card Card) {
	ref, ok := card.FrontAudio()
	if !ok || ref.Path == "" {
		return
	}
	if err := s.audio.DeleteAudioFile(ctx, ref.Path); err != nil {
		slog.Default().Warn("could not delete audio file", "card", card.ID, "file", ref.Path, "error", err)
	}
}
