package deckcsv

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/dearbones/dearbones/internal/flashcard"
)

// Scope selects the column shape of an export.
type Scope int

const (
	// ScopeDeck exports the cards of one deck without deck columns.
	ScopeDeck Scope = iota
	// ScopeAllDecks prefixes every row with the deck name and emoji.
	ScopeAllDecks
)

var (
	deckHeader = []string{"Type", "Front", "Front Audio File", "Front Audio Name", "Back", "Tags", "Difficulty", "Interval", "Study Count"}
	allHeader  = append([]string{"Deck Name", "Deck Emoji"}, deckHeader...)
)

// Serialize renders cards in the given scope. decks supplies the deck name and
// emoji for ScopeAllDecks; cards whose deck is not listed get empty deck cells.
func Serialize(cards []flashcard.Card, decks []flashcard.Deck, scope Scope) string {
	byID := make(map[string]flashcard.Deck, len(decks))
	for _, d := range decks {
		byID[d.ID] = d
	}

	sorted := slices.Clone(cards)
	slices.SortStableFunc(sorted, func(a, b flashcard.Card) int {
		if scope == ScopeAllDecks {
			if c := cmp.Compare(byID[a.DeckID].Name, byID[b.DeckID].Name); c != 0 {
				return c
			}
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	var sb strings.Builder
	header := deckHeader
	if scope == ScopeAllDecks {
		header = allHeader
	}
	writeRow(&sb, header)
	for _, card := range sorted {
		fields := cardFields(card)
		if scope == ScopeAllDecks {
			deck := byID[card.DeckID]
			fields = append([]string{deck.Name, deck.Emoji}, fields...)
		}
		writeRow(&sb, fields)
	}
	return sb.String()
}

func cardFields(card flashcard.Card) []string {
	var front, audioFile, audioName string
	switch f := card.Front.(type) {
	case flashcard.TextFront:
		front = f.Text
	case flashcard.AudioFront:
		audioFile, audioName = f.Audio.Path, f.Audio.Name
	case flashcard.MixedFront:
		front = f.Text
		audioFile, audioName = f.Audio.Path, f.Audio.Name
	case nil:
	default:
		panic(fmt.Sprintf("deckcsv: unknown front %T", f))
	}
	return []string{
		string(card.Type()),
		front,
		audioFile,
		audioName,
		card.Back,
		strings.Join(card.Tags, ";"),
		strconv.FormatFloat(card.Scheduling.Difficulty, 'f', -1, 64),
		strconv.Itoa(card.Scheduling.Interval),
		strconv.Itoa(card.StudyCount),
	}
}

func writeRow(sb *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(Quote(f))
	}
	sb.WriteByte('\n')
}

// Quote wraps a field in double quotes, doubling embedded quotes, when it
// contains a comma, a quote or a newline. Other fields are returned unchanged.
func Quote(field string) string {
	if !strings.ContainsAny(field, ",\"\n") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
