package learning

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/spf13/pflag"

	"github.com/dearbones/dearbones/internal/flashcard"
)

// Mode selects the order in which a deck's cards are studied.
type Mode string

const (
	ModeStandard         Mode = "standard"
	ModeSpacedRepetition Mode = "spaced-repetition"
	ModeShuffle          Mode = "shuffle"
)

// Modes lists every study mode.
var Modes = []Mode{ModeStandard, ModeSpacedRepetition, ModeShuffle}

// ParseMode parses a study mode name.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid study mode %q: must be one of standard, spaced-repetition, shuffle", s)
}

// String implements pflag.Value.
func (m *Mode) String() string {
	if m == nil {
		return ""
	}
	return string(*m)
}

// Set implements pflag.Value.
func (m *Mode) Set(s string) error {
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Type implements pflag.Value.
func (m *Mode) Type() string {
	return "mode"
}

var (
	_ pflag.Value = (*Mode)(nil)
)

// BuildQueue orders cards for a study session and keeps at most limit of them
// (limit <= 0 keeps all). Standard keeps creation order, shuffle permutes with
// rng, and spaced-repetition puts never-studied cards first followed by the
// least recently studied. A card's last study time is the later of its
// LastStudied field and its newest session. No scheduling values are computed.
func BuildQueue(cards []flashcard.Card, sessions []StudySession, mode Mode, limit int, rng *rand.Rand) []flashcard.Card {
	queue := slices.Clone(cards)
	slices.SortStableFunc(queue, func(a, b flashcard.Card) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	switch mode {
	case ModeShuffle:
		rng.Shuffle(len(queue), func(i, j int) {
			queue[i], queue[j] = queue[j], queue[i]
		})
	case ModeSpacedRepetition:
		last := lastStudied(cards, sessions)
		slices.SortStableFunc(queue, func(a, b flashcard.Card) int {
			ta, okA := last[a.ID]
			tb, okB := last[b.ID]
			switch {
			case !okA && !okB:
				return 0
			case !okA:
				return -1
			case !okB:
				return 1
			}
			return ta.Compare(tb)
		})
	case ModeStandard:
	}

	if limit > 0 && len(queue) > limit {
		queue = queue[:limit]
	}
	return queue
}

func lastStudied(cards []flashcard.Card, sessions []StudySession) map[string]time.Time {
	last := make(map[string]time.Time, len(cards))
	for _, c := range cards {
		if c.LastStudied != nil {
			last[c.ID] = *c.LastStudied
		}
	}
	for _, s := range sessions {
		if t, ok := last[s.CardID]; !ok || s.StudiedAt.After(t) {
			last[s.CardID] = s.StudiedAt
		}
	}
	return last
}
