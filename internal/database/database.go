package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/MrJamesThe3rd/fleetledger/internal/config"
)

// sqlitePragmas are applied on every pooled connection.
const sqlitePragmas = "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

// New opens and pings the database for the given driver. For SQLite the
// parent directory of dsn is created and the pool is limited to a single
// connection so the scheduler and request handlers serialize their writes.
func New(driver, dsn string) (*sql.DB, error) {
	db, err := open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if driver == config.DriverSQLite {
		db.SetMaxOpenConns(1)

		return db, nil
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

func open(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}

		db, err := sql.Open("sqlite", dsn+sqlitePragmas)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}

		return db, nil
	case config.DriverPostgres:
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}

		return db, nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
}
