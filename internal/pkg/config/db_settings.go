package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Supported database types
const (
	SqliteDbType   = "sqlite"
	PostgresDbType = "postgres"
)

// SqliteMemoryDSN selects a private in-memory SQLite database.
const SqliteMemoryDSN = ":memory:"

// DatabaseSettings describes how to reach the relational store.
type DatabaseSettings struct {
	Type            string        `yaml:"type" validate:"required,oneof=sqlite postgres"`
	DSN             string        `yaml:"dsn" validate:"required"`
	MaxOpenConns    int           `yaml:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int           `yaml:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnectRetries  uint          `yaml:"connect_retries" validate:"gte=1,lte=20"`
	AutoMigrate     bool          `yaml:"auto_migrate"`
	Debug           bool          `yaml:"-"`
}

// Validate checks the database settings
func (s *DatabaseSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for DatabaseSettings: %w", err)
	}
	if s.MaxOpenConns > 0 && s.MaxIdleConns > s.MaxOpenConns {
		return fmt.Errorf("max idle connections (%d) exceed max open connections (%d)", s.MaxIdleConns, s.MaxOpenConns)
	}
	return nil
}

// ParseDatabaseURL turns a DATABASE_URL value into a database type and a DSN
// the gorm drivers understand.
//
//	sqlite:///./flowrisk.db       -> sqlite, ./flowrisk.db
//	sqlite:////var/lib/flowrisk.db -> sqlite, /var/lib/flowrisk.db
//	sqlite://                      -> sqlite, :memory:
//	postgresql+psycopg://u:p@h/db  -> postgres, postgres://u:p@h/db
func ParseDatabaseURL(raw string) (string, string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", errors.New("database url is empty")
	}

	if rest, ok := strings.CutPrefix(raw, "sqlite://"); ok {
		path := strings.TrimPrefix(rest, "/")
		if path == "" || path == SqliteMemoryDSN {
			path = SqliteMemoryDSN
		}
		return SqliteDbType, path, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("invalid database url: %w", err)
	}

	scheme, _, _ := strings.Cut(strings.ToLower(u.Scheme), "+")
	switch scheme {
	case "postgres", "postgresql":
		u.Scheme = "postgres"
		return PostgresDbType, u.String(), nil
	default:
		return "", "", fmt.Errorf("unsupported database url scheme: %q", u.Scheme)
	}
}
