package deckcsv

import (
	"math"
	"strconv"
	"strings"

	"github.com/dearbones/dearbones/internal/flashcard"
)

// Record is one data row with every column role resolved.
type Record struct {
	// Row is the data row number, counting the header as row 0.
	Row            int
	Type           string
	Front          string
	FrontAudioFile string
	FrontAudioName string
	Back           string
	Tags           flashcard.Tags
	DeckName       string
	DeckEmoji      string
	// Scheduling already has the fallbacks applied for missing or malformed numbers.
	Scheduling flashcard.Scheduling
	StudyCount int
}

// CardType parses the type column. An empty value means text.
func (r Record) CardType() (flashcard.CardType, error) {
	return flashcard.ParseCardType(r.Type)
}

// Decode parses content and resolves every data row against the header.
func Decode(content string) (Header, []Record, error) {
	rows, err := Parse(content)
	if err != nil {
		return Header{}, nil, err
	}
	header, err := ResolveHeader(rows[0])
	if err != nil {
		return Header{}, nil, err
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		records = append(records, header.record(i+1, row))
	}
	return header, records, nil
}

func (h Header) record(n int, row []string) Record {
	defaults := flashcard.DefaultScheduling()
	return Record{
		Row:            n,
		Type:           h.cell(row, h.Type),
		Front:          h.cell(row, h.Front),
		FrontAudioFile: h.cell(row, h.FrontAudioFile),
		FrontAudioName: h.cell(row, h.FrontAudioName),
		Back:           h.cell(row, h.Back),
		Tags:           splitTags(h.cell(row, h.Tags)),
		DeckName:       h.cell(row, h.DeckName),
		DeckEmoji:      h.cell(row, h.DeckEmoji),
		Scheduling: flashcard.Scheduling{
			Difficulty: parseFloat(h.cell(row, h.Difficulty), defaults.Difficulty),
			Interval:   parseInt(h.cell(row, h.Interval), defaults.Interval, 1),
			EaseFactor: defaults.EaseFactor,
		},
		StudyCount: parseInt(h.cell(row, h.StudyCount), 0, 0),
	}
}

func splitTags(s string) flashcard.Tags {
	tags := flashcard.Tags{}
	for _, t := range strings.Split(s, ";") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func parseFloat(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// parseInt accepts integers and finite decimals (truncated). Values below lowest
// fall back too.
func parseInt(s string, fallback, lowest int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		f := parseFloat(s, math.NaN())
		if math.IsNaN(f) || f > math.MaxInt32 || f < math.MinInt32 {
			return fallback
		}
		v = int(f)
	}
	if v < lowest {
		return fallback
	}
	return v
}
