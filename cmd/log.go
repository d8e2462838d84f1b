package cmd

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// newLogger creates a console logger on stderr with the specified level.
func newLogger(level string) zerolog.Logger {
	return newLoggerWithOutput(level, zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	})
}

// newLoggerWithOutput creates a logger writing to a specific output.
func newLoggerWithOutput(level string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
