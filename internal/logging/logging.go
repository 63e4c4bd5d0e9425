// Package logging configures zerolog for the synapse CLI and provides
// component-scoped loggers for the library packages.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu   sync.RWMutex
	base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).
		Level(zerolog.InfoLevel).
		With().Timestamp().Logger()
)

// Setup configures the base logger. Level is one of debug, info, warn,
// error; unknown values fall back to info. A nil writer keeps stderr.
func Setup(level string, out io.Writer) {
	if out == nil {
		out = os.Stderr
	}
	writer := zerolog.ConsoleWriter{Out: out, NoColor: true}
	logger := zerolog.New(writer).Level(parseLevel(level)).With().Timestamp().Logger()

	mu.Lock()
	base = logger
	mu.Unlock()
}

// Component returns a logger scoped to a named component.
func Component(name string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base.With().Str("component", name).Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
