// Package dbtest provides a migrated throwaway SQLite database for store tests.
package dbtest

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fleetledger/internal/config"
	"github.com/MrJamesThe3rd/fleetledger/internal/database"
)

// New returns a database backed by a file in t.TempDir. A file is required
// because migrations run on a separate connection.
func New(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fleet.db")

	require.NoError(t, database.Migrate(config.DriverSQLite, path))

	db, err := database.New(config.DriverSQLite, path)
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	return db
}
