package flashcard

import (
	"context"
	"time"
)

//go:generate mockgen -source=repository.go -destination=../mocks/flashcard/mock_repository.go -package=mock_flashcard

// DeckRepository defines operations for managing decks.
type DeckRepository interface {
	FindAll(ctx context.Context) ([]Deck, error)
	// FindByID returns ErrDeckNotFound when no deck has the id.
	FindByID(ctx context.Context, id string) (*Deck, error)
	// FindByName returns the earliest created deck with exactly this name, or nil.
	FindByName(ctx context.Context, name string) (*Deck, error)
	Create(ctx context.Context, deck *Deck) error
	Update(ctx context.Context, id string, patch DeckPatch) error
	// Delete removes the deck together with its cards and study sessions.
	Delete(ctx context.Context, id string) error
}

// CardPatch lists the card fields to change. Nil fields are left untouched.
type CardPatch struct {
	Front       Front
	Back        *string
	Tags        *Tags
	LastStudied *time.Time
	StudyCount  *int
	Scheduling  *Scheduling
}

// CardRepository defines operations for managing cards.
// Create and Delete keep the owning deck's CardCount in step.
type CardRepository interface {
	FindAll(ctx context.Context) ([]Card, error)
	FindByDeck(ctx context.Context, deckID string) ([]Card, error)
	// FindByID returns ErrCardNotFound when no card has the id.
	FindByID(ctx context.Context, id string) (*Card, error)
	Create(ctx context.Context, card *Card) error
	Update(ctx context.Context, id string, patch CardPatch) error
	Delete(ctx context.Context, id string) error
}
