package commands

import (
	"fmt"
	"os"

	"github.com/vsm34/FlowRisk/internal/pkg/config"
	"github.com/vsm34/FlowRisk/internal/pkg/logger"
)

const defaultConfigPath = "configs/rest-app.yaml"

// Command output owns stdout, so logs go to stderr
func cliLoggerSettings() *config.LoggerSettings {
	return &config.LoggerSettings{
		LogLevel: config.LogLevelWarning,
		LogType:  config.LogTypeConsole,
		Format:   config.LogFormatText,
		Output:   config.LogOutputStderr,
	}
}

func setupLogger() (logger.Logger, error) {
	settings := cliLoggerSettings()

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

func loadConfig() (*config.RestConfig, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}

	cfg, err := config.InitializeRestConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
