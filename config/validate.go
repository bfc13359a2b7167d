package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Inputs.Request == "" {
		return errors.New("inputs.request is required")
	}
	if c.Output == "" {
		return errors.New("output is required")
	}
	if filepath.Clean(c.Output) == filepath.Clean(c.Inputs.Request) {
		return fmt.Errorf("output %q would overwrite inputs.request", c.Output)
	}

	if c.Postgres.Enabled() {
		return c.Postgres.validate("postgres")
	}

	if c.Inputs.Plans == "" {
		return errors.New("inputs.plans is required")
	}
	if c.Inputs.Zips == "" {
		return errors.New("inputs.zips is required")
	}
	return nil
}

// Enabled reports whether a database source is configured.
func (db *PostgresConfig) Enabled() bool {
	return db.URL != "" || db.Host != ""
}

func (db *PostgresConfig) validate(prefix string) error {
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.URL != "" {
		return nil
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Port < 1 || db.Port > 65535 {
		return fmt.Errorf("%s.port must be between 1 and 65535, got %d", prefix, db.Port)
	}
	return nil
}

// ConnString returns the PostgreSQL connection string, building it from the
// individual fields when no URL is set.
func (db *PostgresConfig) ConnString() string {
	if db.URL != "" {
		return db.URL
	}

	sslMode := db.SSLMode
	if sslMode == "" {
		sslMode = DefaultDBSSLMode
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		db.User,
		url.QueryEscape(db.Password),
		db.Host,
		db.Port,
		db.Name,
		sslMode,
	)
}
