package persistence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vsm34/FlowRisk/internal/pkg/config"
	"github.com/vsm34/FlowRisk/internal/pkg/logger"
)

const (
	initialRetryDelay = 500 * time.Millisecond
	sqliteForeignKeys = "_foreign_keys=1"
)

// NewDBConnection opens the database described by settings, retrying with exponential
// backoff while the server is unreachable, and applies the pool settings.
func NewDBConnection(ctx context.Context, settings config.DatabaseSettings, log logger.Logger) (*gorm.DB, error) {
	attempts := settings.ConnectRetries
	if attempts == 0 {
		attempts = 1
	}

	var db *gorm.DB
	err := retry.Do(
		func() error {
			var err error
			db, err = open(ctx, settings)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(initialRetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn("Database connection attempt failed", "attempt", n+1, "type", settings.Type, "error", err)
		}),
	)
	if err != nil {
		return nil, err
	}

	log.Info("Database connection established", "type", settings.Type)
	return db, nil
}

func open(ctx context.Context, settings config.DatabaseSettings) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch settings.Type {
	case config.PostgresDbType:
		dialector = postgres.Open(settings.DSN)
	case config.SqliteDbType:
		dialector = sqlite.Open(sqliteDSN(settings.DSN))
	default:
		return nil, retry.Unrecoverable(fmt.Errorf("unsupported database type: %s", settings.Type))
	}

	logLevel := gormlogger.Silent
	if settings.Debug {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", settings.Type, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get raw DB connection: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", settings.Type, err)
	}

	switch {
	case settings.Type == config.SqliteDbType && (settings.DSN == "" || settings.DSN == config.SqliteMemoryDSN):
		// every connection to :memory: opens a separate, empty database
		sqlDB.SetMaxOpenConns(1)
	case settings.MaxOpenConns > 0:
		sqlDB.SetMaxOpenConns(settings.MaxOpenConns)
	}
	if settings.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(settings.MaxIdleConns)
	}
	if settings.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(settings.ConnMaxLifetime)
	}

	return db, nil
}

// sqliteDSN enables foreign key enforcement, which SQLite leaves off per connection by default
func sqliteDSN(dsn string) string {
	if dsn == "" {
		dsn = config.SqliteMemoryDSN
	}
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + sqliteForeignKeys
	}
	return dsn + "?" + sqliteForeignKeys
}

// CloseDB closes the database connection
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}
