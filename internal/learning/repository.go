package learning

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/learning/mock_repository.go -package=mock_learning

const sessionColumns = "id, deck_id, card_id, confidence, response_time_ms, studied_at"

// SessionRepository defines operations for the study session log.
type SessionRepository interface {
	FindAll(ctx context.Context) ([]StudySession, error)
	FindByDeck(ctx context.Context, deckID string) ([]StudySession, error)
	Create(ctx context.Context, session *StudySession) error
}

// DBSessionRepository implements SessionRepository using sqlx.
type DBSessionRepository struct {
	db *sqlx.DB
}

// NewDBSessionRepository creates a new DBSessionRepository.
func NewDBSessionRepository(db *sqlx.DB) *DBSessionRepository {
	return &DBSessionRepository{db: db}
}

// FindAll returns every session, oldest first.
func (r *DBSessionRepository) FindAll(ctx context.Context) ([]StudySession, error) {
	var sessions []StudySession
	if err := r.db.SelectContext(ctx, &sessions, "SELECT "+sessionColumns+" FROM study_sessions ORDER BY studied_at, id"); err != nil {
		return nil, fmt.Errorf("load all study sessions: %w", err)
	}
	return sessions, nil
}

// FindByDeck returns the sessions of one deck, oldest first.
func (r *DBSessionRepository) FindByDeck(ctx context.Context, deckID string) ([]StudySession, error) {
	var sessions []StudySession
	if err := r.db.SelectContext(ctx, &sessions,
		"SELECT "+sessionColumns+" FROM study_sessions WHERE deck_id = ? ORDER BY studied_at, id", deckID); err != nil {
		return nil, fmt.Errorf("load study sessions of deck %s: %w", deckID, err)
	}
	return sessions, nil
}

// Create appends a session, assigning an id when unset.
func (r *DBSessionRepository) Create(ctx context.Context, session *StudySession) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO study_sessions ("+sessionColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		session.ID, session.DeckID, session.CardID, session.Confidence, session.ResponseTimeMs, session.StudiedAt); err != nil {
		return fmt.Errorf("insert study session: %w", err)
	}
	return nil
}
