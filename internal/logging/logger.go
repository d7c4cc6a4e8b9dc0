// Package logging wraps zerolog with subsystem-scoped child loggers.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a thin wrapper around zerolog that tags events with the
// owning subsystem and, where relevant, the call being handled.
type Logger struct {
	zl zerolog.Logger
}

// New creates a root logger writing to w at the given level.
// A nil writer defaults to pretty console output on stderr.
func New(w io.Writer, level string) *Logger {
	if w == nil {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	zl := zerolog.New(w).With().Timestamp().Logger()
	zl = zl.Level(parseLevel(level))
	return &Logger{zl: zl}
}

// Options describes the root logger. Console defaults to stderr.
// Style "json" emits raw JSON lines; anything else uses the pretty
// console format. File, when set, receives JSON lines as well.
type Options struct {
	Level   string
	Style   string
	File    string
	Console io.Writer
}

// NewFromOptions builds the root logger from a logging config block.
// The returned logger is always usable; a non-nil error only reports
// a log file that could not be opened.
func NewFromOptions(opts Options) (*Logger, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	var w io.Writer
	if opts.Style == "json" {
		w = console
	} else {
		w = zerolog.ConsoleWriter{Out: console, TimeFormat: time.RFC3339}
	}

	var fileErr error
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o700); err != nil {
			fileErr = err
		} else if f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600); err != nil {
			fileErr = err
		} else {
			w = zerolog.MultiLevelWriter(w, f)
		}
	}

	zl := zerolog.New(w).With().Timestamp().Logger().Level(parseLevel(opts.Level))
	return &Logger{zl: zl}, fileErr
}

// Sub returns a child logger tagged with a subsystem name.
func (l *Logger) Sub(subsystem string) *Logger {
	return &Logger{zl: l.zl.With().Str("subsystem", subsystem).Logger()}
}

// WithCall returns a child logger tagged with a call ID, so every turn of
// a conversation can be correlated in the log stream.
func (l *Logger) WithCall(callID string) *Logger {
	return &Logger{zl: l.zl.With().Str("callId", callID).Logger()}
}

// Debug logs at debug level.
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }

// Info logs at info level.
func (l *Logger) Info() *zerolog.Event { return l.zl.Info() }

// Warn logs at warn level.
func (l *Logger) Warn() *zerolog.Event { return l.zl.Warn() }

// Error logs at error level.
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }

// Fatal logs at fatal level and exits.
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// Zerolog returns the underlying zerolog.Logger for advanced use.
func (l *Logger) Zerolog() zerolog.Logger { return l.zl }

func parseLevel(s string) zerolog.Level {
	switch s {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "silent":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
