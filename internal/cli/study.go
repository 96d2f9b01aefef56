package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/dearbones/dearbones/internal/flashcard"
	"github.com/dearbones/dearbones/internal/learning"
)

// SessionRecorder stores a finished review.
type SessionRecorder interface {
	Record(ctx context.Context, session learning.StudySession) (*learning.StudySession, error)
}

// StudyCLI walks through a queue of cards: it shows the front, reveals the
// back on Enter and records the self-rated confidence.
type StudyCLI struct {
	deck      flashcard.Deck
	cards     []flashcard.Card
	recorder  SessionRecorder
	showTimer bool
	reviewed  int

	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
	now          func() time.Time
}

// NewStudyCLI creates a study loop over cards, which must belong to deck.
func NewStudyCLI(deck flashcard.Deck, cards []flashcard.Card, recorder SessionRecorder, showTimer bool, stdin io.Reader, stdout io.Writer) *StudyCLI {
	return &StudyCLI{
		deck:         deck,
		cards:        cards,
		recorder:     recorder,
		showTimer:    showTimer,
		stdinReader:  bufio.NewReader(stdin),
		stdoutWriter: stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		now:          time.Now,
	}
}

// Reviewed returns the number of cards recorded so far.
func (s *StudyCLI) Reviewed() int {
	return s.reviewed
}

func (s *StudyCLI) Session(ctx context.Context) error {
	if len(s.cards) == 0 {
		_, _ = fmt.Fprintf(s.stdoutWriter, "No more cards to study in %s %s! Reviewed %d.\n", s.deck.Emoji, s.deck.Name, s.reviewed)
		return errEnd
	}
	card := s.cards[0]

	_, _ = fmt.Fprintf(s.stdoutWriter, "[%d left] ", len(s.cards))
	_, _ = s.bold.Fprintln(s.stdoutWriter, FormatFront(card))
	_, _ = fmt.Fprint(s.stdoutWriter, "Press Enter to show the answer (q to quit): ")
	shownAt := s.now()
	line, err := s.readLine()
	if err != nil {
		return err
	}
	if isQuit(line) {
		return errEnd
	}
	elapsed := s.now().Sub(shownAt)

	_, _ = fmt.Fprintf(s.stdoutWriter, "Answer: %s\n", s.italic.Sprint(card.Back))
	if s.showTimer {
		_, _ = fmt.Fprintf(s.stdoutWriter, "Time: %.1fs\n", elapsed.Seconds())
	}

	confidence, quit, err := s.readConfidence()
	if err != nil {
		return err
	}
	if quit {
		return errEnd
	}

	if _, err := s.recorder.Record(ctx, learning.StudySession{
		DeckID:         card.DeckID,
		CardID:         card.ID,
		Confidence:     confidence,
		ResponseTimeMs: int(elapsed.Milliseconds()),
	}); err != nil {
		return fmt.Errorf("recorder.Record() > %w", err)
	}
	if confidence >= 3 {
		_, _ = color.New(color.FgGreen).Fprintf(s.stdoutWriter, "Recorded confidence %d\n\n", confidence)
	} else {
		_, _ = color.New(color.FgRed).Fprintf(s.stdoutWriter, "Recorded confidence %d\n\n", confidence)
	}

	s.reviewed++
	s.cards = s.cards[1:]
	return nil
}

func (s *StudyCLI) readConfidence() (int, bool, error) {
	for {
		_, _ = fmt.Fprint(s.stdoutWriter, "Confidence 1-5 (q to quit): ")
		line, err := s.readLine()
		if err != nil {
			return 0, false, err
		}
		if isQuit(line) {
			return 0, true, nil
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= 5 {
			return n, false, nil
		}
		_, _ = fmt.Fprintln(s.stdoutWriter, "Please enter a number from 1 to 5.")
	}
}

func (s *StudyCLI) readLine() (string, error) {
	line, err := s.stdinReader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func isQuit(line string) bool {
	return strings.EqualFold(line, "q")
}

// FormatFront renders the question side of a card on one line.
func FormatFront(card flashcard.Card) string {
	switch f := card.Front.(type) {
	case flashcard.TextFront:
		return f.Text
	case flashcard.AudioFront:
		return fmt.Sprintf("\U0001F50A %s", f.Audio.Name)
	case flashcard.MixedFront:
		return fmt.Sprintf("%s \U0001F50A %s", f.Text, f.Audio.Name)
	case nil:
		return ""
	default:
		panic(fmt.Sprintf("cli: unknown front %T", f))
	}
}
