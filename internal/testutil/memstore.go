package testutil

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dearbones/dearbones/internal/flashcard"
	"github.com/dearbones/dearbones/internal/learning"
)

// MemoryStore is an in-memory deck, card and study session store with the same
// contract as the database repositories. Each write advances its clock by one
// second so creation order is deterministic.
type MemoryStore struct {
	mu       sync.Mutex
	clock    time.Time
	decks    map[string]flashcard.Deck
	cards    map[string]flashcard.Card
	sessions []learning.StudySession
}

// NewMemoryStore creates an empty store whose clock starts at 2025-01-01 UTC.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		decks: make(map[string]flashcard.Deck),
		cards: make(map[string]flashcard.Card),
	}
}

func (s *MemoryStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

// Decks returns the store's DeckRepository.
func (s *MemoryStore) Decks() *MemoryDecks { return &MemoryDecks{s} }

// Cards returns the store's CardRepository.
func (s *MemoryStore) Cards() *MemoryCards { return &MemoryCards{s} }

// Sessions returns the store's SessionRepository.
func (s *MemoryStore) Sessions() *MemorySessions { return &MemorySessions{s} }

// MemoryDecks implements flashcard.DeckRepository.
type MemoryDecks struct{ s *MemoryStore }

func (r *MemoryDecks) FindAll(_ context.Context) ([]flashcard.Deck, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	decks := make([]flashcard.Deck, 0, len(r.s.decks))
	for _, d := range r.s.decks {
		decks = append(decks, d)
	}
	slices.SortFunc(decks, func(a, b flashcard.Deck) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return decks, nil
}

func (r *MemoryDecks) FindByID(_ context.Context, id string) (*flashcard.Deck, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.decks[id]
	if !ok {
		return nil, fmt.Errorf("deck %s: %w", id, flashcard.ErrDeckNotFound)
	}
	return &d, nil
}

func (r *MemoryDecks) FindByName(_ context.Context, name string) (*flashcard.Deck, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var found *flashcard.Deck
	for _, d := range r.s.decks {
		if d.Name != name {
			continue
		}
		if found == nil || d.CreatedAt.Before(found.CreatedAt) {
			found = &d
		}
	}
	return found, nil
}

func (r *MemoryDecks) Create(_ context.Context, deck *flashcard.Deck) error {
	if strings.TrimSpace(deck.Name) == "" {
		return errors.New("deck name is required")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if deck.ID == "" {
		deck.ID = uuid.NewString()
	}
	now := r.s.tick()
	if deck.CreatedAt.IsZero() {
		deck.CreatedAt = now
	}
	if deck.UpdatedAt.IsZero() {
		deck.UpdatedAt = deck.CreatedAt
	}
	if deck.Tags == nil {
		deck.Tags = flashcard.Tags{}
	}
	r.s.decks[deck.ID] = *deck
	return nil
}

func (r *MemoryDecks) Update(_ context.Context, id string, patch flashcard.DeckPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.decks[id]
	if !ok {
		return fmt.Errorf("deck %s: %w", id, flashcard.ErrDeckNotFound)
	}
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return errors.New("deck name is required")
		}
		d.Name = *patch.Name
	}
	if patch.Description != nil {
		d.Description = *patch.Description
	}
	if patch.Emoji != nil {
		d.Emoji = *patch.Emoji
	}
	if patch.Tags != nil {
		d.Tags = *patch.Tags
	}
	d.UpdatedAt = r.s.tick()
	r.s.decks[id] = d
	return nil
}

func (r *MemoryDecks) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.decks[id]; !ok {
		return fmt.Errorf("deck %s: %w", id, flashcard.ErrDeckNotFound)
	}
	delete(r.s.decks, id)
	for cid, c := range r.s.cards {
		if c.DeckID == id {
			delete(r.s.cards, cid)
		}
	}
	r.s.sessions = slices.DeleteFunc(r.s.sessions, func(ss learning.StudySession) bool {
		return ss.DeckID == id
	})
	return nil
}

// MemoryCards implements flashcard.CardRepository.
type MemoryCards struct{ s *MemoryStore }

func (r *MemoryCards) sorted(keep func(flashcard.Card) bool) []flashcard.Card {
	cards := make([]flashcard.Card, 0, len(r.s.cards))
	for _, c := range r.s.cards {
		if keep(c) {
			cards = append(cards, c)
		}
	}
	slices.SortFunc(cards, func(a, b flashcard.Card) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return cards
}

func (r *MemoryCards) FindAll(_ context.Context) ([]flashcard.Card, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.sorted(func(flashcard.Card) bool { return true }), nil
}

func (r *MemoryCards) FindByDeck(_ context.Context, deckID string) ([]flashcard.Card, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.sorted(func(c flashcard.Card) bool { return c.DeckID == deckID }), nil
}

func (r *MemoryCards) FindByID(_ context.Context, id string) (*flashcard.Card, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.cards[id]
	if !ok {
		return nil, fmt.Errorf("card %s: %w", id, flashcard.ErrCardNotFound)
	}
	return &c, nil
}

func (r *MemoryCards) Create(_ context.Context, card *flashcard.Card) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("invalid card: %w", err)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	deck, ok := r.s.decks[card.DeckID]
	if !ok {
		return fmt.Errorf("deck %s: %w", card.DeckID, flashcard.ErrDeckNotFound)
	}
	if card.ID == "" {
		card.ID = uuid.NewString()
	}
	now := r.s.tick()
	if card.CreatedAt.IsZero() {
		card.CreatedAt = now
	}
	if card.UpdatedAt.IsZero() {
		card.UpdatedAt = card.CreatedAt
	}
	if card.Tags == nil {
		card.Tags = flashcard.Tags{}
	}
	r.s.cards[card.ID] = *card
	deck.CardCount++
	deck.UpdatedAt = now
	r.s.decks[deck.ID] = deck
	return nil
}

func (r *MemoryCards) Update(_ context.Context, id string, patch flashcard.CardPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.cards[id]
	if !ok {
		return fmt.Errorf("card %s: %w", id, flashcard.ErrCardNotFound)
	}
	if patch.Front != nil {
		c.Front = patch.Front
	}
	if patch.Back != nil {
		if strings.TrimSpace(*patch.Back) == "" {
			return errors.New("back is required")
		}
		c.Back = *patch.Back
	}
	if patch.Tags != nil {
		c.Tags = *patch.Tags
	}
	if patch.LastStudied != nil {
		t := *patch.LastStudied
		c.LastStudied = &t
	}
	if patch.StudyCount != nil {
		c.StudyCount = *patch.StudyCount
	}
	if patch.Scheduling != nil {
		c.Scheduling = *patch.Scheduling
	}
	c.UpdatedAt = r.s.tick()
	r.s.cards[id] = c
	return nil
}

func (r *MemoryCards) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.cards[id]
	if !ok {
		return fmt.Errorf("card %s: %w", id, flashcard.ErrCardNotFound)
	}
	delete(r.s.cards, id)
	r.s.sessions = slices.DeleteFunc(r.s.sessions, func(ss learning.StudySession) bool {
		return ss.CardID == id
	})
	if deck, ok := r.s.decks[c.DeckID]; ok {
		deck.CardCount--
		deck.UpdatedAt = r.s.tick()
		r.s.decks[deck.ID] = deck
	}
	return nil
}

// MemorySessions implements learning.SessionRepository.
type MemorySessions struct{ s *MemoryStore }

func (r *MemorySessions) FindAll(_ context.Context) ([]learning.StudySession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return slices.Clone(r.s.sessions), nil
}

func (r *MemorySessions) FindByDeck(_ context.Context, deckID string) ([]learning.StudySession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []learning.StudySession
	for _, ss := range r.s.sessions {
		if ss.DeckID == deckID {
			out = append(out, ss)
		}
	}
	return out, nil
}

func (r *MemorySessions) Create(_ context.Context, session *learning.StudySession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.StudiedAt.IsZero() {
		session.StudiedAt = r.s.tick()
	}
	r.s.sessions = append(r.s.sessions, *session)
	return nil
}

var (
	_ flashcard.DeckRepository   = (*MemoryDecks)(nil)
	_ flashcard.CardRepository   = (*MemoryCards)(nil)
	_ learning.SessionRepository = (*MemorySessions)(nil)
)
