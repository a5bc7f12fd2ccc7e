package config

import (
	"fmt"
	"strconv"
	"strings"
)

// LookupFunc resolves an environment variable, see os.LookupEnv
type LookupFunc func(key string) (string, bool)

// Environment variable names
const (
	EnvAppName            = "APP_NAME"
	EnvEnvironment        = "ENVIRONMENT"
	EnvDebug              = "DEBUG"
	EnvPort               = "PORT"
	EnvDatabaseURL        = "DATABASE_URL"
	EnvCORSAllowedOrigins = "CORS_ALLOWED_ORIGINS"
	EnvDevBypassAuth      = "FLOWRISK_DEV_BYPASS_AUTH"
	EnvFirebaseProjectID  = "FIREBASE_PROJECT_ID"
	EnvLogLevel           = "LOG_LEVEL"
	EnvLogType            = "LOG_TYPE"
	EnvLogFilePath        = "LOG_FILE_PATH"
	EnvRunsRateLimit      = "RUNS_RATE_LIMIT"
	EnvRunsRateBurst      = "RUNS_RATE_BURST"
	EnvDBAutoMigrate      = "DB_AUTO_MIGRATE"
)

func applyEnv(cfg *RestConfig, lookup LookupFunc) error {
	setString(lookup, EnvAppName, &cfg.AppName)
	setString(lookup, EnvEnvironment, &cfg.Environment)
	setString(lookup, EnvPort, &cfg.Port)
	setString(lookup, EnvDatabaseURL, &cfg.DatabaseURL)
	setString(lookup, EnvFirebaseProjectID, &cfg.Auth.FirebaseProjectID)
	setString(lookup, EnvLogLevel, &cfg.Logger.LogLevel)
	setString(lookup, EnvLogType, &cfg.Logger.LogType)
	setString(lookup, EnvLogFilePath, &cfg.Logger.FilePath)

	if v, ok := lookup(EnvCORSAllowedOrigins); ok {
		cfg.CORSAllowedOrigins = SplitOrigins(v)
	}

	if err := setBool(lookup, EnvDebug, &cfg.Debug); err != nil {
		return err
	}
	if err := setBool(lookup, EnvDevBypassAuth, &cfg.Auth.DevBypass); err != nil {
		return err
	}
	if err := setBool(lookup, EnvDBAutoMigrate, &cfg.Database.AutoMigrate); err != nil {
		return err
	}

	if v, ok := lookup(EnvRunsRateLimit); ok && strings.TrimSpace(v) != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvRunsRateLimit, err)
		}
		cfg.RateLimit.RunsPerSecond = f
	}
	if v, ok := lookup(EnvRunsRateBurst); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvRunsRateBurst, err)
		}
		cfg.RateLimit.RunsBurst = n
	}

	return nil
}

// SplitOrigins turns a comma separated origin list into a slice, dropping blanks
func SplitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func setString(lookup LookupFunc, key string, dst *string) {
	if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

// setBool accepts 1/0, true/false, yes/no and on/off spellings
func setBool(lookup LookupFunc, key string, dst *bool) error {
	v, ok := lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "t", "yes", "y", "on":
		*dst = true
	case "0", "false", "f", "no", "n", "off":
		*dst = false
	default:
		return fmt.Errorf("invalid %s: %q is not a boolean", key, v)
	}
	return nil
}
