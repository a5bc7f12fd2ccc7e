package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/vsm34/FlowRisk/internal/pkg/config"
)

// NewConsoleLogger creates a logger writing to stdout, as text or JSON depending on format.
func NewConsoleLogger(level, format string) Logger {
	return newWriterLogger(os.Stdout, level, format)
}

func consoleWriter(output string) io.Writer {
	if output == config.LogOutputStderr {
		return os.Stderr
	}
	return os.Stdout
}

func newWriterLogger(w io.Writer, level, format string) Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return New(handler)
}
