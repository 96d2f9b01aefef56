package deckcsv

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dearbones/dearbones/internal/flashcard"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    [][]string
	}{
		{
			name:    "simple rows",
			content: "Front,Back\nq,a\n",
			want:    [][]string{{"Front", "Back"}, {"q", "a"}},
		},
		{
			name:    "carriage returns are ignored",
			content: "Front,Back\r\nq,a\r\n",
			want:    [][]string{{"Front", "Back"}, {"q", "a"}},
		},
		{
			name:    "quoted comma and newline",
			content: "Front,Back\n\"a, b\",\"line1\nline2\"\n",
			want:    [][]string{{"Front", "Back"}, {"a, b", "line1\nline2"}},
		},
		{
			name:    "escaped quotes",
			content: "Front,Back\n\"say \"\"hi\"\"\",x",
			want:    [][]string{{"Front", "Back"}, {`say "hi"`, "x"}},
		},
		{
			name:    "unquoted whitespace is trimmed",
			content: "Front , Back\n  q  ,\ta\t",
			want:    [][]string{{"Front", "Back"}, {"q", "a"}},
		},
		{
			name:    "quoted whitespace is trimmed after unquoting",
			content: "Front,Back\n  \" q \"  ,a\n\"  Paris  \",\" capital \"\n\"x\",\"   \"",
			want:    [][]string{{"Front", "Back"}, {"q", "a"}, {"Paris", "capital"}, {"x", ""}},
		},
		{
			name:    "blank rows are dropped",
			content: "Front,Back\n\n , \nq,a\n\n",
			want:    [][]string{{"Front", "Back"}, {"q", "a"}},
		},
		{
			name:    "quote toggles in the middle of a field",
			content: "Front,Back\nab\"c,d\"e,f",
			want:    [][]string{{"Front", "Back"}, {"abc,de", "f"}},
		},
		{
			name:    "byte order mark is stripped",
			content: "\uFEFFFront,Back\nq,a",
			want:    [][]string{{"Front", "Back"}, {"q", "a"}},
		},
		{
			name:    "unterminated quote runs to end of file",
			content: "Front,Back\nq,\"open\nstill open",
			want:    [][]string{{"Front", "Back"}, {"q", "open\nstill open"}},
		},
		{
			name:    "ragged rows are kept as is",
			content: "Front,Back,Tags\nq,a\n",
			want:    [][]string{{"Front", "Back", "Tags"}, {"q", "a"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_TooFewRows(t *testing.T) {
	for _, content := range []string{"", "Front,Back", "Front,Back\n\n\n", " , \n"} {
		_, err := Parse(content)
		var formatErr *FormatError
		require.True(t, errors.As(err, &formatErr), "content %q", content)
		assert.Contains(t, formatErr.Error(), "header row and at least one data row")
	}
}

func TestQuote_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		field  string
		quoted string
	}{
		{name: "quotes comma and newline", field: "He said \"hi\", \nand left", quoted: "\"He said \"\"hi\"\", \nand left\""},
		{name: "only a quote", field: `5" floppy`, quoted: `"5"" floppy"`},
		{name: "plain field is raw", field: "plain text", quoted: "plain text"},
		{name: "empty", field: "", quoted: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.quoted, Quote(tt.field))
			if tt.field == "" {
				return
			}

			rows, err := Parse("Back\n" + Quote(tt.field))
			require.NoError(t, err)
			assert.Equal(t, tt.field, rows[1][0])
		})
	}
}

func TestResolveHeader(t *testing.T) {
	tests := []struct {
		name string
		row  []string
		want Header
	}{
		{
			name: "single deck export header",
			row:  deckHeader,
			want: Header{
				Type: 0, Front: 1, FrontAudioFile: 2, FrontAudioName: 3, Back: 4, Tags: 5,
				DeckName: -1, DeckEmoji: -1, Difficulty: 6, Interval: 7, StudyCount: 8,
			},
		},
		{
			name: "all decks export header",
			row:  allHeader,
			want: Header{
				Type: 2, Front: 3, FrontAudioFile: 4, FrontAudioName: 5, Back: 6, Tags: 7,
				DeckName: 0, DeckEmoji: 1, Difficulty: 8, Interval: 9, StudyCount: 10,
			},
		},
		{
			name: "any order and case",
			row:  []string{"BACK", "deck name", " Front Side "},
			want: Header{
				Type: -1, Front: 2, FrontAudioFile: -1, FrontAudioName: -1, Back: 0, Tags: -1,
				DeckName: 1, DeckEmoji: -1, Difficulty: -1, Interval: -1, StudyCount: -1,
			},
		},
		{
			name: "first matching column wins",
			row:  []string{"Back", "Back (alternate)", "Tag list", "Tags"},
			want: Header{
				Type: -1, Front: -1, FrontAudioFile: -1, FrontAudioName: -1, Back: 0, Tags: 2,
				DeckName: -1, DeckEmoji: -1, Difficulty: -1, Interval: -1, StudyCount: -1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveHeader(tt.row)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveHeader_MissingBack(t *testing.T) {
	_, err := ResolveHeader([]string{"Front", "Tags"})
	var formatErr *FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, "CSV must contain Back column", formatErr.Error())
}

func TestDecode(t *testing.T) {
	content := "Deck Name,Type,Front,Back,Tags,Difficulty,Interval,Study Count\n" +
		"Chemistry,,H2O,water,chem; ;basics;,abc,0,-2\n" +
		"Chemistry,MIXED,q,a,,1.5,3.9,4\n" +
		"Physics,text,short row\n"

	header, records, err := Decode(content)
	require.NoError(t, err)
	assert.True(t, header.HasDeckName())
	require.Len(t, records, 3)

	assert.Equal(t, Record{
		Row:        1,
		Front:      "H2O",
		Back:       "water",
		Tags:       flashcard.Tags{"chem", "basics"},
		DeckName:   "Chemistry",
		Scheduling: flashcard.Scheduling{Difficulty: 0, Interval: 1, EaseFactor: 2.5},
		StudyCount: 0,
	}, records[0])

	assert.Equal(t, 2, records[1].Row)
	assert.Equal(t, flashcard.Scheduling{Difficulty: 1.5, Interval: 3, EaseFactor: 2.5}, records[1].Scheduling)
	assert.Equal(t, 4, records[1].StudyCount)
	assert.Equal(t, flashcard.Tags{}, records[1].Tags)
	cardType, err := records[1].CardType()
	require.NoError(t, err)
	assert.Equal(t, flashcard.CardTypeMixed, cardType)

	assert.Equal(t, "short row", records[2].Front)
	assert.Empty(t, records[2].Back)
}

func TestDecode_NumericFallbacks(t *testing.T) {
	tests := []struct {
		name           string
		difficulty     string
		interval       string
		studyCount     string
		wantDifficulty float64
		wantInterval   int
		wantStudyCount int
	}{
		{name: "empty cells", wantDifficulty: 0, wantInterval: 1, wantStudyCount: 0},
		{name: "garbage", difficulty: "abc", interval: "soon", studyCount: "many", wantDifficulty: 0, wantInterval: 1, wantStudyCount: 0},
		{name: "not a number literal", difficulty: "NaN", interval: "Inf", studyCount: "1e300", wantDifficulty: 0, wantInterval: 1, wantStudyCount: 0},
		{name: "valid values", difficulty: "2.25", interval: "7", studyCount: "12", wantDifficulty: 2.25, wantInterval: 7, wantStudyCount: 12},
		{name: "out of range values", difficulty: "-1", interval: "-3", studyCount: "-1", wantDifficulty: -1, wantInterval: 1, wantStudyCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := "Back,Difficulty,Interval,Study Count\nanswer," + tt.difficulty + "," + tt.interval + "," + tt.studyCount
			_, records, err := Decode(content)
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, tt.wantDifficulty, records[0].Scheduling.Difficulty)
			assert.Equal(t, tt.wantInterval, records[0].Scheduling.Interval)
			assert.Equal(t, tt.wantStudyCount, records[0].StudyCount)
		})
	}
}

func TestDecode_FormatErrors(t *testing.T) {
	for _, content := range []string{"Front,Tags\nq,t", "Front,Back\n"} {
		_, _, err := Decode(content)
		var formatErr *FormatError
		assert.True(t, errors.As(err, &formatErr), "content %q", content)
	}
}

func TestSerialize_SingleDeck(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cards := []flashcard.Card{
		{
			ID: "c2", DeckID: "d1", CreatedAt: t0.Add(time.Minute),
			Front:      flashcard.AudioFront{Audio: flashcard.AudioRef{Path: "1700_abc.mp3", Name: "bonjour.mp3"}},
			Back:       `say "bonjour"`,
			StudyCount: 2,
			Scheduling: flashcard.Scheduling{Difficulty: 1.5, Interval: 3, EaseFactor: 2.5},
		},
		{
			ID: "c1", DeckID: "d1", CreatedAt: t0,
			Front:      flashcard.TextFront{Text: "What is H2O?"},
			Back:       "Water, of course",
			Tags:       flashcard.Tags{"chem", "basics"},
			Scheduling: flashcard.DefaultScheduling(),
		},
	}

	want := "Type,Front,Front Audio File,Front Audio Name,Back,Tags,Difficulty,Interval,Study Count\n" +
		"text,What is H2O?,,,\"Water, of course\",chem;basics,0,1,0\n" +
		"audio,,1700_abc.mp3,bonjour.mp3,\"say \"\"bonjour\"\"\",,1.5,3,2\n"

	assert.Equal(t, want, Serialize(cards, nil, ScopeDeck))
	assert.Equal(t, "c2", cards[0].ID, "input order is not modified")
}

func TestSerialize_AllDecks(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	decks := []flashcard.Deck{
		{ID: "d1", Name: "Spanish", Emoji: "🇪🇸"},
		{ID: "d2", Name: "Chemistry", Emoji: "📚"},
	}
	cards := []flashcard.Card{
		{ID: "s1", DeckID: "d1", CreatedAt: t0, Front: flashcard.TextFront{Text: "hola"}, Back: "hello", Scheduling: flashcard.DefaultScheduling()},
		{ID: "c0", DeckID: "d2", CreatedAt: t0.Add(2 * time.Minute), Front: flashcard.TextFront{Text: "NaCl"}, Back: "salt", Scheduling: flashcard.DefaultScheduling()},
		{ID: "c1", DeckID: "d2", CreatedAt: t0.Add(time.Minute), Front: flashcard.MixedFront{Text: "H2O", Audio: flashcard.AudioRef{Path: "w.wav", Name: "water"}}, Back: "water", Scheduling: flashcard.DefaultScheduling()},
	}

	want := "Deck Name,Deck Emoji,Type,Front,Front Audio File,Front Audio Name,Back,Tags,Difficulty,Interval,Study Count\n" +
		"Chemistry,📚,mixed,H2O,w.wav,water,water,,0,1,0\n" +
		"Chemistry,📚,text,NaCl,,,salt,,0,1,0\n" +
		"Spanish,🇪🇸,text,hola,,,hello,,0,1,0\n"

	assert.Equal(t, want, Serialize(cards, decks, ScopeAllDecks))
}

func TestSerialize_DecodeRoundTrip(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cards := []flashcard.Card{
		{
			DeckID: "d1", CreatedAt: t0,
			Front:      flashcard.TextFront{Text: "He said \"hi\", \nand left"},
			Back:       "multi\nline, answer",
			Tags:       flashcard.Tags{"a", "b c"},
			StudyCount: 5,
			Scheduling: flashcard.Scheduling{Difficulty: 0.75, Interval: 12, EaseFactor: 2.5},
		},
		{
			DeckID: "d1", CreatedAt: t0.Add(time.Second),
			Front:      flashcard.MixedFront{Text: "q", Audio: flashcard.AudioRef{Path: "x.ogg", Name: "x, the sound"}},
			Back:       "a",
			Scheduling: flashcard.DefaultScheduling(),
		},
	}

	_, records, err := Decode(Serialize(cards, nil, ScopeDeck))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "text", records[0].Type)
	assert.Equal(t, "He said \"hi\", \nand left", records[0].Front)
	assert.Equal(t, "multi\nline, answer", records[0].Back)
	assert.Equal(t, flashcard.Tags{"a", "b c"}, records[0].Tags)
	assert.Equal(t, cards[0].Scheduling, records[0].Scheduling)
	assert.Equal(t, 5, records[0].StudyCount)

	assert.Equal(t, "mixed", records[1].Type)
	assert.Equal(t, "x.ogg", records[1].FrontAudioFile)
	assert.Equal(t, "x, the sound", records[1].FrontAudioName)
}
