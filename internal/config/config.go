package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Fleet Ledger"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Driver   string `envconfig:"DB_DRIVER" default:"sqlite"`
		Path     string `envconfig:"DB_PATH" default:"./data/fleet.db"`
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"fleet"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Export struct {
		Dir string `envconfig:"EXPORT_DIR" default:"exports"`
	}

	Summary struct {
		SchedulerEnabled bool          `envconfig:"SCHEDULER_ENABLED" default:"true"`
		Schedule         string        `envconfig:"SUMMARY_SCHEDULE" default:"5 0 1 * *"`
		Timezone         string        `envconfig:"SUMMARY_TIMEZONE" default:"UTC"`
		JobTimeout       time.Duration `envconfig:"SUMMARY_JOB_TIMEOUT" default:"5m"`
		MailTimeout      time.Duration `envconfig:"MAIL_TIMEOUT" default:"30s"`
	}

	Auth struct {
		// Empty disables bearer-token checks on the API.
		JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}
}

// ConnectionString returns the DSN for the configured driver.
func (c *Config) ConnectionString() string {
	if c.DB.Driver == DriverPostgres {
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
	}

	return c.DB.Path
}

// Location resolves the reference timezone used by the monthly summary.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Summary.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Summary.Timezone, err)
	}

	return loc, nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	switch cfg.DB.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q: must be %q or %q", cfg.DB.Driver, DriverSQLite, DriverPostgres)
	}

	return &cfg, nil
}
