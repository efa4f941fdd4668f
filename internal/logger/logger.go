// Package logger builds the process logger. Diagnostics go to stderr so
// stdout stays reserved for command results.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// debugEnv enables debug logging when set to any non-empty value.
const debugEnv = "BNA_DEBUG"

// New returns the process logger: console output on stderr, warn level by
// default, debug level when BNA_DEBUG is set.
func New() zerolog.Logger {
	level := zerolog.WarnLevel
	if os.Getenv(debugEnv) != "" {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
