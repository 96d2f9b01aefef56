package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/settings/mock_repository.go -package=mock_settings

// Repository defines operations for stored settings.
type Repository interface {
	// Get returns ErrNotFound when nothing is stored under name.
	Get(ctx context.Context, name string) (*Setting, error)
	Set(ctx context.Context, name, value string) error
	All(ctx context.Context) ([]Setting, error)
}

// DBRepository implements Repository using sqlx.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

func (r *DBRepository) Get(ctx context.Context, name string) (*Setting, error) {
	var s Setting
	err := r.db.GetContext(ctx, &s, "SELECT name, value FROM settings WHERE name = ?", name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(setting) > %w", err)
	}
	return &s, nil
}

// Set stores value under name, replacing any previous value.
func (r *DBRepository) Set(ctx context.Context, name, value string) error {
	query := "INSERT INTO settings (name, value) VALUES (?, ?) ON DUPLICATE KEY UPDATE value = VALUES(value)"
	if r.db.DriverName() == "sqlite3" {
		query = "INSERT INTO settings (name, value) VALUES (?, ?) ON CONFLICT(name) DO UPDATE SET value = excluded.value"
	}
	if _, err := r.db.ExecContext(ctx, query, name, value); err != nil {
		return fmt.Errorf("upsert setting %s: %w", name, err)
	}
	return nil
}

// All returns every stored setting ordered by name.
func (r *DBRepository) All(ctx context.Context) ([]Setting, error) {
	var out []Setting
	if err := r.db.SelectContext(ctx, &out, "SELECT name, value FROM settings ORDER BY name"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(settings) > %w", err)
	}
	return out, nil
}
