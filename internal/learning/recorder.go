package learning

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/dearbones/dearbones/internal/flashcard"
)

// CardFinder looks cards up by id.
type CardFinder interface {
	FindByID(ctx context.Context, id string) (*flashcard.Card, error)
}

// Recorder validates and appends study sessions. It never changes the card's
// scheduling fields; how confidence should feed back into them is undecided.
type Recorder struct {
	sessions SessionRepository
	cards    CardFinder
	validate *validator.Validate
	trans    ut.Translator
	now      func() time.Time
}

// NewRecorder creates a new Recorder.
func NewRecorder(sessions SessionRepository, cards CardFinder) (*Recorder, error) {
	validate := validator.New()
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations: %w", err)
	}
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
	})
	return &Recorder{
		sessions: sessions,
		cards:    cards,
		validate: validate,
		trans:    trans,
		now:      time.Now,
	}, nil
}

// Record appends session after checking it refers to a card of its deck.
// A zero StudiedAt is set to the current time.
func (r *Recorder) Record(ctx context.Context, session StudySession) (*StudySession, error) {
	if err := r.validate.Struct(session); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return nil, fmt.Errorf("validate study session: %w", err)
		}
		msgs := make([]string, 0, len(validationErrors))
		for _, fe := range validationErrors {
			msgs = append(msgs, fe.Translate(r.trans))
		}
		return nil, fmt.Errorf("invalid study session: %s", strings.Join(msgs, "; "))
	}

	card, err := r.cards.FindByID(ctx, session.CardID)
	if err != nil {
		return nil, fmt.Errorf("find card: %w", err)
	}
	if card.DeckID != session.DeckID {
		return nil, fmt.Errorf("card %s does not belong to deck %s", session.CardID, session.DeckID)
	}

	if session.StudiedAt.IsZero() {
		session.StudiedAt = r.now()
	}
	if err := r.sessions.Create(ctx, &session); err != nil {
		return nil, fmt.Errorf("record study session: %w", err)
	}
	return &session, nil
}
