package database

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dearbones/dearbones/internal/config"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name       string
		cfg        func(dir string) config.DatabaseConfig
		wantDriver string
		wantErr    string
	}{
		{
			name: "creates mysql connection with valid config",
			cfg: func(string) config.DatabaseConfig {
				return config.DatabaseConfig{
					Driver:   config.DriverMySQL,
					Host:     "localhost",
					Port:     3306,
					Database: "testdb",
					Username: "testuser",
					Password: "testpass",
				}
			},
			wantDriver: "mysql",
		},
		{
			name: "creates mysql connection with pool settings and params",
			cfg: func(string) config.DatabaseConfig {
				return config.DatabaseConfig{
					Driver:          config.DriverMySQL,
					Host:            "db.example.com",
					Port:            3307,
					Database:        "dearbones",
					Username:        "admin",
					Password:        "secret",
					TLS:             true,
					Params:          map[string]string{"charset": "utf8mb4"},
					MaxOpenConns:    25,
					MaxIdleConns:    5,
					ConnMaxLifetime: 300,
				}
			},
			wantDriver: "mysql",
		},
		{
			name: "creates sqlite connection and its directory",
			cfg: func(dir string) config.DatabaseConfig {
				return config.DatabaseConfig{
					Driver: config.DriverSQLite,
					Path:   filepath.Join(dir, "nested", "cards.db"),
				}
			},
			wantDriver: "sqlite3",
		},
		{
			name: "rejects sqlite without path",
			cfg: func(string) config.DatabaseConfig {
				return config.DatabaseConfig{Driver: config.DriverSQLite}
			},
			wantErr: "sqlite database path is empty",
		},
		{
			name: "rejects unknown driver",
			cfg: func(string) config.DatabaseConfig {
				return config.DatabaseConfig{Driver: "postgres"}
			},
			wantErr: `unsupported database driver "postgres"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Open(tt.cfg(t.TempDir()))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			defer got.Close()

			assert.Equal(t, tt.wantDriver, got.DriverName())
		})
	}
}

func TestPing(t *testing.T) {
	oldDelay := PingDelay
	PingDelay = 0
	defer func() { PingDelay = oldDelay }()

	tests := []struct {
		name      string
		attempts  uint
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name:     "succeeds on first ping",
			attempts: 3,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPing()
			},
		},
		{
			name:     "retries until the database answers",
			attempts: 3,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPing().WillReturnError(fmt.Errorf("connection refused"))
				mock.ExpectPing()
			},
		},
		{
			name:     "gives up after the configured attempts",
			attempts: 2,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPing().WillReturnError(fmt.Errorf("connection refused"))
				mock.ExpectPing().WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
			require.NoError(t, err)
			defer db.Close()
			tt.setupMock(mock)

			err = Ping(context.Background(), sqlx.NewDb(db, "mysql"), tt.attempts)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "connection refused")
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRunInTx(t *testing.T) {
	tests := []struct {
		name      string
		fn        func(ctx context.Context, tx *sqlx.Tx) error
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
		errMsg    string
	}{
		{
			name: "commits on success",
			fn: func(ctx context.Context, tx *sqlx.Tx) error {
				return nil
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectCommit()
			},
		},
		{
			name: "rolls back on error",
			fn: func(ctx context.Context, tx *sqlx.Tx) error {
				return fmt.Errorf("something failed")
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			wantErr: true,
			errMsg:  "something failed",
		},
		{
			name: "begin error",
			fn: func(ctx context.Context, tx *sqlx.Tx) error {
				return nil
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(fmt.Errorf("begin failed"))
			},
			wantErr: true,
			errMsg:  "begin transaction",
		},
		{
			name: "commit error",
			fn: func(ctx context.Context, tx *sqlx.Tx) error {
				return nil
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectCommit().WillReturnError(fmt.Errorf("commit failed"))
			},
			wantErr: true,
			errMsg:  "commit transaction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			sqlxDB := sqlx.NewDb(db, "mysql")
			tt.setupMock(mock)

			err = RunInTx(context.Background(), sqlxDB, tt.fn)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMigrate_UnsupportedDriver(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = Migrate(sqlx.NewDb(db, "postgres"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported database driver "postgres"`)
}

func TestMigrate_SQLite(t *testing.T) {
	db, err := Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "cards.db"),
	})
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db))
	// Second run is a no-op.
	require.NoError(t, Migrate(db))

	var tables []string
	require.NoError(t, db.Select(&tables,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('decks', 'cards', 'study_sessions', 'settings') ORDER BY name"))
	assert.Equal(t, []string{"cards", "decks", "settings", "study_sessions"}, tables)
}
