package logger

import (
	"github.com/natefinch/lumberjack"

	"github.com/vsm34/FlowRisk/internal/pkg/config"
)

// NewFileLogger creates a JSON logger writing to a size-rotated file.
func NewFileLogger(level string, filePath string, maxSize int, maxBackups int, maxAge int) Logger {
	writer := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		Compress:   true,
	}

	return newWriterLogger(writer, level, config.LogFormatJSON)
}
