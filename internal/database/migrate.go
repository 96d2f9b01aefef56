package database

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	"github.com/dearbones/dearbones/internal/config"
	"github.com/dearbones/dearbones/schemas"
)

// Migrate applies every pending migration embedded in the schemas package.
// Each driver has its own migration directory since column types differ.
func Migrate(db *sqlx.DB) error {
	driverName := db.DriverName()

	var (
		target migratedb.Driver
		err    error
	)
	switch driverName {
	case config.DriverMySQL:
		target, err = migratemysql.WithInstance(db.DB, &migratemysql.Config{})
	case config.DriverSQLite:
		target, err = migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	default:
		return fmt.Errorf("unsupported database driver %q", driverName)
	}
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	src, err := iofs.New(schemas.Migrations, "migrations/"+driverName)
	if err != nil {
		return fmt.Errorf("iofs.New() > %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driverName, target)
	if err != nil {
		return fmt.Errorf("migrate.NewWithInstance() > %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
