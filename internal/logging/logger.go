// Package logging provides structured logging for both CLI and GUI modes.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger wraps zerolog with mode-specific behavior.
type Logger struct {
	zlog zerolog.Logger
	mode string // "cli" or "gui"
}

// NewLogger creates a new logger for the specified mode.
func NewLogger(mode string) *Logger {
	// CLI output goes to stderr so stdout stays clean for rendered results.
	// GUI output goes to stderr for debugging.
	return newLogger(mode, os.Stderr)
}

// NewLoggerWithWriter creates a logger that writes to w.
func NewLoggerWithWriter(mode string, w io.Writer) *Logger {
	return newLogger(mode, w)
}

func newLogger(mode string, w io.Writer) *Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
	}
	return &Logger{
		zlog: zerolog.New(output).With().Timestamp().Logger(),
		mode: mode,
	}
}

// NewDefaultCLILogger creates a default CLI logger.
func NewDefaultCLILogger() *Logger {
	return NewLogger("cli")
}

// Nop returns a logger that discards everything. Used by tests and by
// components constructed without a logger.
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop(), mode: "nop"}
}

// Component returns a child logger tagged with the component name.
func (l *Logger) Component(name string) *Logger {
	return &Logger{
		zlog: l.zlog.With().Str("component", name).Logger(),
		mode: l.mode,
	}
}

// Mode returns the mode the logger was created for.
func (l *Logger) Mode() string {
	return l.mode
}

// Info returns an info level event.
func (l *Logger) Info() *zerolog.Event {
	return l.zlog.Info()
}

// Error returns an error level event.
func (l *Logger) Error() *zerolog.Event {
	return l.zlog.Error()
}

// Debug returns a debug level event.
func (l *Logger) Debug() *zerolog.Event {
	return l.zlog.Debug()
}

// Warn returns a warn level event.
func (l *Logger) Warn() *zerolog.Event {
	return l.zlog.Warn()
}

// SetGlobalLevel sets the global log level.
func SetGlobalLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}

// ParseLevel maps a verbosity flag to a zerolog level. GUI mode is quiet by
// default and only shows warnings.
func ParseLevel(mode string, verbose bool) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case mode == "gui":
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	})
}
