package flashcard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dearbones/dearbones/internal/database"
)

const (
	deckColumns = "id, name, description, emoji, tags, created_at, updated_at, card_count"
	cardColumns = "id, deck_id, type, front, front_audio_path, front_audio_name, back, tags, " +
		"created_at, updated_at, last_studied, study_count, difficulty, interval_days, ease_factor"
)

// DBDeckRepository implements DeckRepository using sqlx.
type DBDeckRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewDBDeckRepository creates a new DBDeckRepository.
func NewDBDeckRepository(db *sqlx.DB) *DBDeckRepository {
	return &DBDeckRepository{db: db, now: time.Now}
}

// FindAll returns every deck, most recently updated first.
func (r *DBDeckRepository) FindAll(ctx context.Context) ([]Deck, error) {
	var decks []Deck
	if err := r.db.SelectContext(ctx, &decks, "SELECT "+deckColumns+" FROM decks ORDER BY updated_at DESC, id"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(decks) > %w", err)
	}
	return decks, nil
}

func (r *DBDeckRepository) FindByID(ctx context.Context, id string) (*Deck, error) {
	var deck Deck
	err := r.db.GetContext(ctx, &deck, "SELECT "+deckColumns+" FROM decks WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("deck %s: %w", id, ErrDeckNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(deck) > %w", err)
	}
	return &deck, nil
}

// FindByName returns the earliest created deck whose name equals name byte for byte, or nil.
func (r *DBDeckRepository) FindByName(ctx context.Context, name string) (*Deck, error) {
	var candidates []Deck
	// MySQL compares with a case-insensitive collation, so the exact match is done here.
	if err := r.db.SelectContext(ctx, &candidates,
		"SELECT "+deckColumns+" FROM decks WHERE name = ? ORDER BY created_at, id", name); err != nil {
		return nil, fmt.Errorf("db.SelectContext(decks by name) > %w", err)
	}
	for i := range candidates {
		if candidates[i].Name == name {
			return &candidates[i], nil
		}
	}
	return nil, nil
}

// Create inserts a new deck, filling in the id and timestamps when unset.
func (r *DBDeckRepository) Create(ctx context.Context, deck *Deck) error {
	if strings.TrimSpace(deck.Name) == "" {
		return errors.New("deck name is required")
	}
	if deck.ID == "" {
		deck.ID = uuid.NewString()
	}
	now := r.now()
	if deck.CreatedAt.IsZero() {
		deck.CreatedAt = now
	}
	if deck.UpdatedAt.IsZero() {
		deck.UpdatedAt = deck.CreatedAt
	}
	if deck.Tags == nil {
		deck.Tags = Tags{}
	}
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO decks (id, name, description, emoji, tags, created_at, updated_at, card_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		deck.ID, deck.Name, deck.Description, deck.Emoji, deck.Tags,
		deck.CreatedAt, deck.UpdatedAt, deck.CardCount); err != nil {
		return fmt.Errorf("db.ExecContext(insert deck) > %w", err)
	}
	return nil
}

// Update applies the patch and bumps updated_at.
func (r *DBDeckRepository) Update(ctx context.Context, id string, patch DeckPatch) error {
	var (
		sets []string
		args []any
	)
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return errors.New("deck name is required")
		}
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Emoji != nil {
		sets = append(sets, "emoji = ?")
		args = append(args, *patch.Emoji)
	}
	if patch.Tags != nil {
		sets = append(sets, "tags = ?")
		args = append(args, *patch.Tags)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, r.now(), id)

	result, err := r.db.ExecContext(ctx, "UPDATE decks SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update deck) > %w", err)
	}
	return expectAffected(result, fmt.Errorf("deck %s: %w", id, ErrDeckNotFound))
}

// Delete removes the deck. Cards and study sessions go with it through ON DELETE CASCADE.
func (r *DBDeckRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM decks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("db.ExecContext(delete deck) > %w", err)
	}
	return expectAffected(result, fmt.Errorf("deck %s: %w", id, ErrDeckNotFound))
}

// DBCardRepository implements CardRepository using sqlx.
type DBCardRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewDBCardRepository creates a new DBCardRepository.
func NewDBCardRepository(db *sqlx.DB) *DBCardRepository {
	return &DBCardRepository{db: db, now: time.Now}
}

func (r *DBCardRepository) FindAll(ctx context.Context) ([]Card, error) {
	var records []CardRecord
	if err := r.db.SelectContext(ctx, &records, "SELECT "+cardColumns+" FROM cards ORDER BY created_at, id"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(cards) > %w", err)
	}
	return toCards(records)
}

// FindByDeck returns the deck's cards in creation order.
func (r *DBCardRepository) FindByDeck(ctx context.Context, deckID string) ([]Card, error) {
	var records []CardRecord
	if err := r.db.SelectContext(ctx, &records,
		"SELECT "+cardColumns+" FROM cards WHERE deck_id = ? ORDER BY created_at, id", deckID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(cards by deck) > %w", err)
	}
	return toCards(records)
}

func (r *DBCardRepository) FindByID(ctx context.Context, id string) (*Card, error) {
	var record CardRecord
	err := r.db.GetContext(ctx, &record, "SELECT "+cardColumns+" FROM cards WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("card %s: %w", id, ErrCardNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(card) > %w", err)
	}
	card, err := record.Card()
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// Create validates and inserts the card and increments the owning deck's card count
// in the same transaction.
func (r *DBCardRepository) Create(ctx context.Context, card *Card) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("invalid card: %w", err)
	}
	if card.ID == "" {
		card.ID = uuid.NewString()
	}
	now := r.now()
	if card.CreatedAt.IsZero() {
		card.CreatedAt = now
	}
	if card.UpdatedAt.IsZero() {
		card.UpdatedAt = card.CreatedAt
	}
	if card.Tags == nil {
		card.Tags = Tags{}
	}
	rec := card.Record()

	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO cards (`+cardColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, rec.DeckID, rec.Type, rec.Front, rec.FrontAudioPath, rec.FrontAudioName,
			rec.Back, rec.Tags, rec.CreatedAt, rec.UpdatedAt, rec.LastStudied, rec.StudyCount,
			rec.Difficulty, rec.IntervalDays, rec.EaseFactor); err != nil {
			return fmt.Errorf("tx.ExecContext(insert card) > %w", err)
		}
		return adjustCardCount(ctx, tx, rec.DeckID, 1, now)
	})
}

// Update applies the patch and bumps updated_at.
func (r *DBCardRepository) Update(ctx context.Context, id string, patch CardPatch) error {
	var (
		sets []string
		args []any
	)
	if patch.Front != nil {
		audio, _ := Card{Front: patch.Front}.FrontAudio()
		sets = append(sets, "type = ?", "front = ?", "front_audio_path = ?", "front_audio_name = ?")
		args = append(args, patch.Front.Type(), Card{Front: patch.Front}.FrontText(), audio.Path, audio.Name)
	}
	if patch.Back != nil {
		if strings.TrimSpace(*patch.Back) == "" {
			return errors.New("back is required")
		}
		sets = append(sets, "back = ?")
		args = append(args, *patch.Back)
	}
	if patch.Tags != nil {
		sets = append(sets, "tags = ?")
		args = append(args, *patch.Tags)
	}
	if patch.LastStudied != nil {
		sets = append(sets, "last_studied = ?")
		args = append(args, *patch.LastStudied)
	}
	if patch.StudyCount != nil {
		sets = append(sets, "study_count = ?")
		args = append(args, *patch.StudyCount)
	}
	if patch.Scheduling != nil {
		sets = append(sets, "difficulty = ?", "interval_days = ?", "ease_factor = ?")
		args = append(args, patch.Scheduling.Difficulty, patch.Scheduling.Interval, patch.Scheduling.EaseFactor)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, r.now(), id)

	result, err := r.db.ExecContext(ctx, "UPDATE cards SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update card) > %w", err)
	}
	return expectAffected(result, fmt.Errorf("card %s: %w", id, ErrCardNotFound))
}

// Delete removes the card and decrements the owning deck's card count.
// The card's audio asset is not touched; see Service.DeleteCard.
func (r *DBCardRepository) Delete(ctx context.Context, id string) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		var deckID string
		err := tx.GetContext(ctx, &deckID, "SELECT deck_id FROM cards WHERE id = ?", id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("card %s: %w", id, ErrCardNotFound)
		}
		if err != nil {
			return fmt.Errorf("tx.GetContext(card deck) > %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM cards WHERE id = ?", id); err != nil {
			return fmt.Errorf("tx.ExecContext(delete card) > %w", err)
		}
		return adjustCardCount(ctx, tx, deckID, -1, r.now())
	})
}

func adjustCardCount(ctx context.Context, tx *sqlx.Tx, deckID string, delta int, now time.Time) error {
	result, err := tx.ExecContext(ctx,
		"UPDATE decks SET card_count = card_count + ?, updated_at = ? WHERE id = ?",
		delta, now, deckID)
	if err != nil {
		return fmt.Errorf("tx.ExecContext(update deck card_count) > %w", err)
	}
	return expectAffected(result, fmt.Errorf("deck %s: %w", deckID, ErrDeckNotFound))
}

func expectAffected(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func toCards(records []CardRecord) ([]Card, error) {
	cards := make([]Card, 0, len(records))
	for _, rec := range records {
		card, err := rec.Card()
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}
