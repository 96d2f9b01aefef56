package deckcsv

import (
	"strings"
)

// Header holds the column index of every role found in the header row, or -1.
type Header struct {
	Type           int
	Front          int
	FrontAudioFile int
	FrontAudioName int
	Back           int
	Tags           int
	DeckName       int
	DeckEmoji      int
	Difficulty     int
	Interval       int
	StudyCount     int
}

type headerRule struct {
	target func(h *Header) *int
	match  func(name string) bool
}

func containsAll(name string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(name, p) {
			return false
		}
	}
	return true
}

// headerRules are matched against lower-cased header names. The first column
// matching a rule claims the role.
var headerRules = []headerRule{
	{func(h *Header) *int { return &h.Back }, func(n string) bool { return strings.Contains(n, "back") }},
	{func(h *Header) *int { return &h.Type }, func(n string) bool { return strings.Contains(n, "type") }},
	{func(h *Header) *int { return &h.Front }, func(n string) bool {
		return strings.Contains(n, "front") && !strings.Contains(n, "audio")
	}},
	{func(h *Header) *int { return &h.FrontAudioFile }, func(n string) bool { return containsAll(n, "front", "audio", "file") }},
	{func(h *Header) *int { return &h.FrontAudioName }, func(n string) bool { return containsAll(n, "front", "audio", "name") }},
	{func(h *Header) *int { return &h.Tags }, func(n string) bool { return strings.Contains(n, "tag") }},
	{func(h *Header) *int { return &h.DeckName }, func(n string) bool { return containsAll(n, "deck", "name") }},
	{func(h *Header) *int { return &h.DeckEmoji }, func(n string) bool { return containsAll(n, "deck", "emoji") }},
	{func(h *Header) *int { return &h.Difficulty }, func(n string) bool { return strings.Contains(n, "difficulty") }},
	{func(h *Header) *int { return &h.Interval }, func(n string) bool { return strings.Contains(n, "interval") }},
	{func(h *Header) *int { return &h.StudyCount }, func(n string) bool { return containsAll(n, "study", "count") }},
}

// ResolveHeader maps column roles onto the positions of row. Roles are found by
// substring match so columns may appear in any order. A missing Back column
// is a *FormatError.
func ResolveHeader(row []string) (Header, error) {
	h := Header{
		Type: -1, Front: -1, FrontAudioFile: -1, FrontAudioName: -1, Back: -1, Tags: -1,
		DeckName: -1, DeckEmoji: -1, Difficulty: -1, Interval: -1, StudyCount: -1,
	}
	for _, rule := range headerRules {
		for i, name := range row {
			if rule.match(strings.ToLower(strings.TrimSpace(name))) {
				*rule.target(&h) = i
				break
			}
		}
	}
	if h.Back < 0 {
		return h, &FormatError{Msg: "CSV must contain Back column"}
	}
	return h, nil
}

// HasDeckName reports whether rows can name their own deck.
func (h Header) HasDeckName() bool {
	return h.DeckName >= 0
}

func (h Header) cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
