package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// -----------------------------------------------------------------------------

// levelSource is satisfied by models.MConfig and anything embedding it.
type levelSource interface {
	LoggingLevel() string
}

// Logger provides structured logging functionality
type Logger struct {
	name   string
	out    io.Writer
	logger zerolog.Logger
}

// -----------------------------------------------------------------------------

// NewLogger creates a new Logger instance writing to stdout
func NewLogger(config interface{}, name string) *Logger {
	return NewLoggerTo(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}, config, name)
}

// -----------------------------------------------------------------------------

// NewLoggerTo creates a Logger writing to out.
func NewLoggerTo(out io.Writer, config interface{}, name string) *Logger {
	level := zerolog.InfoLevel
	if src, ok := config.(levelSource); ok {
		level = ParseLevel(src.LoggingLevel())
	}

	return newLogger(out, level, name)
}

func newLogger(out io.Writer, level zerolog.Level, name string) *Logger {
	return &Logger{
		name:   name,
		out:    out,
		logger: zerolog.New(out).Level(level).With().Timestamp().Str("component", name).Logger(),
	}
}

// -----------------------------------------------------------------------------

// ParseLevel maps the config's log_level names to zerolog levels. Unknown
// names fall back to info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARNING", "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "CRITICAL":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// -----------------------------------------------------------------------------

// Named returns a logger for a sub component sharing the same output and level.
func (l *Logger) Named(name string) *Logger {
	return newLogger(l.out, l.logger.GetLevel(), name)
}

// Zerolog exposes the underlying logger for structured fields.
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.logger
}

// -----------------------------------------------------------------------------

// Debug logs diagnostic messages
func (l *Logger) Debug(format string, args ...interface{}) {
	l.logger.Debug().Msg(fmt.Sprintf(format, args...))
}

// -----------------------------------------------------------------------------

// Warning logs recoverable problems
func (l *Logger) Warning(format string, args ...interface{}) {
	l.logger.Warn().Msg(fmt.Sprintf(format, args...))
}

// -----------------------------------------------------------------------------

// Info logs informational messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.logger.Info().Msg(fmt.Sprintf(format, args...))
}

// -----------------------------------------------------------------------------

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.logger.Error().Msg(fmt.Sprintf(format, args...))
}

// -----------------------------------------------------------------------------

// Critical logs critical errors and exits the application
func (l *Logger) Critical(format string, args ...interface{}) {
	l.logger.Fatal().Msg(fmt.Sprintf(format, args...))
}
