package flashcard

import (
	"fmt"
	"time"
)

// CardRecord is the flat, persisted shape of a Card.
type CardRecord struct {
	ID             string     `db:"id" yaml:"id"`
	DeckID         string     `db:"deck_id" yaml:"deck_id"`
	Type           CardType   `db:"type" yaml:"type"`
	Front          string     `db:"front" yaml:"front,omitempty"`
	FrontAudioPath string     `db:"front_audio_path" yaml:"front_audio_path,omitempty"`
	FrontAudioName string     `db:"front_audio_name" yaml:"front_audio_name,omitempty"`
	Back           string     `db:"back" yaml:"back"`
	Tags           Tags       `db:"tags" yaml:"tags"`
	CreatedAt      time.Time  `db:"created_at" yaml:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" yaml:"updated_at"`
	LastStudied    *time.Time `db:"last_studied" yaml:"last_studied,omitempty"`
	StudyCount     int        `db:"study_count" yaml:"study_count"`
	Difficulty     float64    `db:"difficulty" yaml:"difficulty"`
	IntervalDays   int        `db:"interval_days" yaml:"interval"`
	EaseFactor     float64    `db:"ease_factor" yaml:"ease_factor"`
}

// Record flattens the card for persistence.
func (c Card) Record() CardRecord {
	audio, _ := c.FrontAudio()
	tags := c.Tags
	if tags == nil {
		tags = Tags{}
	}
	return CardRecord{
		ID:             c.ID,
		DeckID:         c.DeckID,
		Type:           c.Type(),
		Front:          c.FrontText(),
		FrontAudioPath: audio.Path,
		FrontAudioName: audio.Name,
		Back:           c.Back,
		Tags:           tags,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
		LastStudied:    c.LastStudied,
		StudyCount:     c.StudyCount,
		Difficulty:     c.Scheduling.Difficulty,
		IntervalDays:   c.Scheduling.Interval,
		EaseFactor:     c.Scheduling.EaseFactor,
	}
}

// Card rebuilds the domain card from its persisted shape.
func (r CardRecord) Card() (Card, error) {
	cardType, err := ParseCardType(string(r.Type))
	if err != nil {
		return Card{}, fmt.Errorf("card %s: %w", r.ID, err)
	}
	front, err := NewFront(cardType, r.Front, AudioRef{Path: r.FrontAudioPath, Name: r.FrontAudioName})
	if err != nil {
		return Card{}, fmt.Errorf("card %s: %w", r.ID, err)
	}
	return Card{
		ID:          r.ID,
		DeckID:      r.DeckID,
		Front:       front,
		Back:        r.Back,
		Tags:        r.Tags,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		LastStudied: r.LastStudied,
		StudyCount:  r.StudyCount,
		Scheduling: Scheduling{
			Difficulty: r.Difficulty,
			Interval:   r.IntervalDays,
			EaseFactor: r.EaseFactor,
		},
	}, nil
}
