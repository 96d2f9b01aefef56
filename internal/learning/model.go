// Package learning records study sessions and orders cards for review.
package learning

import "time"

// StudySession is one review of a card. Sessions are append-only.
type StudySession struct {
	ID     string `db:"id" yaml:"id"`
	DeckID string `db:"deck_id" yaml:"deck_id" validate:"required"`
	CardID string `db:"card_id" yaml:"card_id" validate:"required"`
	// Confidence is the self-rated recall from 1 (forgot) to 5 (perfect).
	Confidence     int       `db:"confidence" yaml:"confidence" validate:"min=1,max=5"`
	ResponseTimeMs int       `db:"response_time_ms" yaml:"response_time_ms" validate:"min=0"`
	StudiedAt      time.Time `db:"studied_at" yaml:"studied_at"`
}
