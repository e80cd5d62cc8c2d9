// Package oplog is a thin zerolog wrapper shared by execctx, search, and
// cmd/optabu, centralizing the logger construction so process output stays
// consistent (level, timestamp format, destination) regardless of which
// package is logging.
package oplog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds a zerolog.Logger writing to w with the given component name
// attached to every record. If w is nil, os.Stderr is used.
func New(component string, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}

	return zerolog.New(w).With().Timestamp().Str("component", component).Logger()
}

// Console builds a human-readable console logger, the mode cmd/optabu uses
// for interactive runs (as opposed to the structured JSON mode used when
// output is redirected to a file or log aggregator).
func Console(component string) zerolog.Logger {
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}

	return zerolog.New(writer).With().Timestamp().Str("component", component).Logger()
}
