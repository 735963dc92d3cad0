// Package logging builds the structured loggers used by the CLI, the Canvas
// client and the page runner.
package logging

import (
	"io"
	"strings"

	"github.com/phuslu/log"
)

// Level names accepted in configuration.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// New creates a console logger writing to w at the named level.
// Unknown level names fall back to info.
func New(level string, w io.Writer, color bool) *log.Logger {
	return &log.Logger{
		Level:      parseLevel(level),
		TimeFormat: "15:04:05",
		Writer: &log.ConsoleWriter{
			Writer:      w,
			ColorOutput: color,
		},
	}
}

// NewJSON creates a JSON-lines logger writing to w at the named level.
func NewJSON(level string, w io.Writer) *log.Logger {
	return &log.Logger{
		Level:  parseLevel(level),
		Writer: &log.IOWriter{Writer: w},
	}
}

// Silent returns a logger that discards all output.
func Silent() *log.Logger {
	return &log.Logger{
		Level:  log.ErrorLevel,
		Writer: &log.IOWriter{Writer: io.Discard},
	}
}

// ValidLevel reports whether name is an accepted level name.
func ValidLevel(name string) bool {
	switch strings.ToLower(name) {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return true
	default:
		return false
	}
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case LevelDebug:
		return log.DebugLevel
	case LevelWarn:
		return log.WarnLevel
	case LevelError:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
