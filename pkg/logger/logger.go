package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component is attached to every log line
const Component = "s3_uploader"

// Init initializes the global logger with the specified level and format
func Init(level, format string) {
	InitWithWriter(level, format, os.Stdout)
}

// InitWithWriter is Init with an explicit output
func InitWithWriter(level, format string, out io.Writer) {
	zerolog.SetGlobalLevel(ParseLevel(level))

	// Set output format
	if format == "console" {
		out = zerolog.ConsoleWriter{Out: out}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Str("component", Component).Logger()
}

// ParseLevel maps a configured level name to a zerolog level (defaults to info)
func ParseLevel(level string) zerolog.Level {
	switch level {
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

// Get returns a reference to the global logger
func Get() *zerolog.Logger {
	return &log.Logger
}
