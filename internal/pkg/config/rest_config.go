package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment names
const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

// DefaultDatabaseURL is used when neither the config file nor the environment sets one.
const DefaultDatabaseURL = "sqlite:///./flowrisk.db"

// AuthSettings configures caller authentication
type AuthSettings struct {
	// DevBypass skips token verification outside production. Never enable it in production.
	DevBypass         bool   `yaml:"dev_bypass"`
	FirebaseProjectID string `yaml:"firebase_project_id"`
}

// RateLimitSettings bounds how fast stress-test runs may be started
type RateLimitSettings struct {
	RunsPerSecond float64 `yaml:"runs_per_second" validate:"gt=0"`
	RunsBurst     int     `yaml:"runs_burst" validate:"gte=1"`
}

// RestConfig holds the configuration of the REST API process
type RestConfig struct {
	AppName            string            `yaml:"app_name" validate:"required"`
	Environment        string            `yaml:"environment" validate:"required"`
	Debug              bool              `yaml:"debug"`
	Port               string            `yaml:"port" validate:"required,numeric"`
	DatabaseURL        string            `yaml:"database_url" validate:"required"`
	CORSAllowedOrigins []string          `yaml:"cors_allowed_origins"`
	Database           DatabaseSettings  `yaml:"database"`
	Logger             LoggerSettings    `yaml:"logger"`
	Auth               AuthSettings      `yaml:"auth"`
	RateLimit          RateLimitSettings `yaml:"rate_limit"`
}

// DefaultRestConfig returns the configuration used before any file or environment override
func DefaultRestConfig() *RestConfig {
	return &RestConfig{
		AppName:     "FlowRisk",
		Environment: EnvironmentDevelopment,
		Port:        "8000",
		DatabaseURL: DefaultDatabaseURL,
		Database: DatabaseSettings{
			MaxOpenConns:   10,
			MaxIdleConns:   5,
			ConnectRetries: 5,
			AutoMigrate:    true,
		},
		Logger: LoggerSettings{
			LogLevel: LogLevelInfo,
			LogType:  LogTypeConsole,
		},
		RateLimit: RateLimitSettings{
			RunsPerSecond: 1,
			RunsBurst:     5,
		},
	}
}

// IsProduction reports whether the process runs in the production environment
func (c *RestConfig) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), EnvironmentProduction)
}

// DevBypassActive reports whether token verification is skipped
func (c *RestConfig) DevBypassActive() bool {
	return c.Auth.DevBypass && !c.IsProduction()
}

// Validate checks the configuration and all nested settings
func (c *RestConfig) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validation failed for RestConfig: %w", err)
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	return nil
}

// InitializeRestConfig builds the configuration from defaults, the optional YAML file at path,
// a .env file in the working directory and finally the process environment.
func InitializeRestConfig(path string) (*RestConfig, error) {
	cfg := DefaultRestConfig()

	if path != "" {
		if err := loadYAML(path, cfg); err != nil {
			return nil, err
		}
	}

	// godotenv never overrides variables that are already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.resolveDatabase(); err != nil {
		return nil, err
	}

	if cfg.Logger.Format == "" {
		cfg.Logger.Format = LogFormatText
		if cfg.IsProduction() {
			cfg.Logger.Format = LogFormatJSON
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadYAML(path string, cfg *RestConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *RestConfig) resolveDatabase() error {
	dbType, dsn, err := ParseDatabaseURL(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("invalid DATABASE_URL: %w", err)
	}
	c.Database.Type = dbType
	c.Database.DSN = dsn
	c.Database.Debug = c.Debug
	return nil
}
