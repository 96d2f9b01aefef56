// Package flashcard provides the deck and card domain model and its repositories.
package flashcard

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// CardType discriminates the content of a card's front side.
type CardType string

const (
	CardTypeText  CardType = "text"
	CardTypeAudio CardType = "audio"
	CardTypeMixed CardType = "mixed"
)

var (
	ErrDeckNotFound = errors.New("deck not found")
	ErrCardNotFound = errors.New("card not found")
)

// ParseCardType parses a card type case-insensitively. An empty value means text.
func ParseCardType(s string) (CardType, error) {
	switch CardType(strings.ToLower(strings.TrimSpace(s))) {
	case "", CardTypeText:
		return CardTypeText, nil
	case CardTypeAudio:
		return CardTypeAudio, nil
	case CardTypeMixed:
		return CardTypeMixed, nil
	}
	return "", fmt.Errorf("invalid card type %q: must be one of text, audio, mixed", s)
}

// NeedsAudio reports whether cards of this type carry an audio front.
func (t CardType) NeedsAudio() bool {
	return t == CardTypeAudio || t == CardTypeMixed
}

// NeedsText reports whether cards of this type carry a text front.
func (t CardType) NeedsText() bool {
	return t == CardTypeText || t == CardTypeMixed
}

// AudioRef points at an audio asset stored by the audio manager.
type AudioRef struct {
	// Path is the internal stored filename, not the original source path.
	Path string `yaml:"path"`
	// Name is the label shown to the user.
	Name string `yaml:"name"`
}

// Front is the question side of a card. It is implemented only by
// TextFront, AudioFront and MixedFront.
type Front interface {
	Type() CardType
	sealed()
}

type TextFront struct {
	Text string
}

type AudioFront struct {
	Audio AudioRef
}

type MixedFront struct {
	Text  string
	Audio AudioRef
}

func (TextFront) Type() CardType  { return CardTypeText }
func (AudioFront) Type() CardType { return CardTypeAudio }
func (MixedFront) Type() CardType { return CardTypeMixed }

func (TextFront) sealed()  {}
func (AudioFront) sealed() {}
func (MixedFront) sealed() {}

// NewFront builds the front variant for the given type. Fields that the type
// does not carry are dropped.
func NewFront(cardType CardType, text string, audio AudioRef) (Front, error) {
	switch cardType {
	case CardTypeText:
		return TextFront{Text: text}, nil
	case CardTypeAudio:
		return AudioFront{Audio: audio}, nil
	case CardTypeMixed:
		return MixedFront{Text: text, Audio: audio}, nil
	}
	return nil, fmt.Errorf("invalid card type %q", cardType)
}

// Scheduling holds the SM-2 style state carried by every card.
// Nothing in this module derives new values from study sessions yet.
type Scheduling struct {
	Difficulty float64 `yaml:"difficulty"`
	// Interval is the number of days until the next review.
	Interval   int     `yaml:"interval"`
	EaseFactor float64 `yaml:"ease_factor"`
}

// DefaultScheduling returns the state of a card that was never reviewed.
func DefaultScheduling() Scheduling {
	return Scheduling{
		Difficulty: 0,
		Interval:   1,
		EaseFactor: 2.5,
	}
}

type Card struct {
	ID          string
	DeckID      string
	Front       Front
	Back        string
	Tags        Tags
	CreatedAt   time.Time
	UpdatedAt   time.Time
	LastStudied *time.Time
	StudyCount  int
	Scheduling  Scheduling
}

// Type returns the discriminant of the card's front.
func (c Card) Type() CardType {
	if c.Front == nil {
		return ""
	}
	return c.Front.Type()
}

// FrontText returns the text of the front side, or "" for audio-only cards.
func (c Card) FrontText() string {
	switch f := c.Front.(type) {
	case TextFront:
		return f.Text
	case MixedFront:
		return f.Text
	case AudioFront, nil:
		return ""
	default:
		panic(fmt.Sprintf("flashcard: unknown front %T", f))
	}
}

// FrontAudio returns the audio reference of the front side, if any.
func (c Card) FrontAudio() (AudioRef, bool) {
	switch f := c.Front.(type) {
	case AudioFront:
		return f.Audio, true
	case MixedFront:
		return f.Audio, true
	case TextFront, nil:
		return AudioRef{}, false
	default:
		panic(fmt.Sprintf("flashcard: unknown front %T", f))
	}
}

// Validate checks the fields required by the card's type.
func (c Card) Validate() error {
	if strings.TrimSpace(c.DeckID) == "" {
		return errors.New("deck is required")
	}
	if strings.TrimSpace(c.Back) == "" {
		return errors.New("back is required")
	}
	switch f := c.Front.(type) {
	case TextFront:
		if strings.TrimSpace(f.Text) == "" {
			return errors.New("front is required for text cards")
		}
	case AudioFront:
		if strings.TrimSpace(f.Audio.Path) == "" {
			return errors.New("front audio file is required for audio cards")
		}
	case MixedFront:
		if strings.TrimSpace(f.Text) == "" {
			return errors.New("front is required for mixed cards")
		}
		if strings.TrimSpace(f.Audio.Path) == "" {
			return errors.New("front audio file is required for mixed cards")
		}
	case nil:
		return errors.New("front is required")
	default:
		panic(fmt.Sprintf("flashcard: unknown front %T", f))
	}
	if c.StudyCount < 0 {
		return errors.New("study count must not be negative")
	}
	if c.Scheduling.Interval < 1 {
		return errors.New("interval must be at least 1 day")
	}
	return nil
}
