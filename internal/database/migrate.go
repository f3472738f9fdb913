package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/MrJamesThe3rd/fleetledger/internal/config"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// Migrate applies all pending migrations. It uses its own connection so
// closing the migrate instance leaves the application pool untouched.
func Migrate(driver, dsn string) error {
	migrateDB, err := open(driver, dsn)
	if err != nil {
		return fmt.Errorf("opening migration database: %w", err)
	}
	defer migrateDB.Close()

	dbDriver, dir, err := migrationDriver(driver, migrateDB)
	if err != nil {
		return err
	}

	src, err := iofs.New(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("creating iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, dbDriver)
	if err != nil {
		return fmt.Errorf("creating migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

func migrationDriver(driver string, db *sql.DB) (migratedb.Driver, string, error) {
	switch driver {
	case config.DriverSQLite:
		d, err := sqlite.WithInstance(db, &sqlite.Config{})
		if err != nil {
			return nil, "", fmt.Errorf("creating sqlite driver: %w", err)
		}

		return d, "migrations/sqlite", nil
	case config.DriverPostgres:
		d, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
		if err != nil {
			return nil, "", fmt.Errorf("creating pgx driver: %w", err)
		}

		return d, "migrations/postgres", nil
	default:
		return nil, "", fmt.Errorf("unsupported driver %q", driver)
	}
}
