package flashcard

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DefaultDeckEmoji is used for decks created without an emoji.
const DefaultDeckEmoji = "📚"

type Deck struct {
	ID          string    `db:"id" yaml:"id"`
	Name        string    `db:"name" yaml:"name"`
	Description string    `db:"description" yaml:"description,omitempty"`
	Emoji       string    `db:"emoji" yaml:"emoji,omitempty"`
	Tags        Tags      `db:"tags" yaml:"tags"`
	CreatedAt   time.Time `db:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" yaml:"updated_at"`
	// CardCount is maintained by CardRepository on card create and delete.
	CardCount int `db:"card_count" yaml:"card_count"`
}

// DeckPatch lists the deck fields to change. Nil fields are left untouched.
type DeckPatch struct {
	Name        *string
	Description *string
	Emoji       *string
	Tags        *Tags
}

// Tags is an ordered list of labels persisted as a JSON array.
type Tags []string

// Value implements driver.Valuer.
func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, fmt.Errorf("json.Marshal(tags) > %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (t *Tags) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*t = Tags{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("unsupported tags column type %T", src)
	}
	if len(raw) == 0 {
		*t = Tags{}
		return nil
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return fmt.Errorf("json.Unmarshal(tags) > %w", err)
	}
	if tags == nil {
		tags = []string{}
	}
	*t = tags
	return nil
}
