package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fleetledger/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "./data/fleet.db", cfg.ConnectionString())
	assert.Equal(t, "5 0 1 * *", cfg.Summary.Schedule)
	assert.Equal(t, 30*time.Second, cfg.Summary.MailTimeout)
	assert.Equal(t, "exports", cfg.Export.Dir)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLoad_Postgres(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_USER", "fleet")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "ledger")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://fleet:secret@db:5432/ledger?sslmode=disable", cfg.ConnectionString())
}

func TestLoad_InvalidDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLocation_Invalid(t *testing.T) {
	t.Setenv("SUMMARY_TIMEZONE", "Not/AZone")

	cfg, err := config.Load()
	require.NoError(t, err)

	_, err = cfg.Location()
	assert.Error(t, err)
}
