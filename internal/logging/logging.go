// Package logging configures the process-wide zerolog logger.
//
// All diagnostics go to stderr so that stdout carries only the detection
// result. Packages obtain a sub-logger through Module, which tags every
// event with a "module" field instead of prefixing messages by hand.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EnvLevel names the environment variable consulted when no explicit level
// is given on the command line.
const EnvLevel = "PHONEFINDER_LOG_LEVEL"

// DefaultLevel is used when neither the flag nor EnvLevel is set.
const DefaultLevel = "info"

// Setup installs a console logger writing to w at the given level.
//
// An empty level falls back to EnvLevel and then DefaultLevel. Unknown level
// names are reported as an error and leave the logger untouched.
func Setup(w io.Writer, level string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    true,
	}).With().Timestamp().Logger()

	return nil
}

// ParseLevel resolves a level name, applying the env/default fallback.
func ParseLevel(level string) (zerolog.Level, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		level = os.Getenv(EnvLevel)
	}
	if level == "" {
		level = DefaultLevel
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// Module returns a sub-logger carrying module=name.
//
// Call it after Setup; the returned logger copies the global logger at the
// time of the call.
func Module(name string) zerolog.Logger {
	return log.With().Str("module", name).Logger()
}
