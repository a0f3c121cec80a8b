package utils

import (
	"os"

	"github.com/rs/zerolog"
)

// NewLogger builds a console-formatted zerolog.Logger at the given level.
// Components derive their own sub-logger from it via
// log.With().Str("component", "podem").Logger() so every line carries which
// engine layer produced it -- this stands in for the teacher's tagged
// Algorithm/Decision/Backtrack logging methods.
func NewLogger(level zerolog.Level) zerolog.Logger {
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// Disabled returns a logger that discards everything, the default for
// library use (only cmd/atpg turns logging on).
func Disabled() zerolog.Logger {
	return NewLogger(zerolog.Disabled)
}
