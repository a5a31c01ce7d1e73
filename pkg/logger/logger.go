package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	log zerolog.Logger
	mu  sync.RWMutex
)

// Output formats
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// init sets a quiet default so packages can log before Init runs
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "time"
	zerolog.LevelFieldName = "level"
	zerolog.MessageFieldName = "message"
	set(zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.WarnLevel))
}

// Init configures level, output format and timezone.
// The CLI uses the console format on stderr so stdout stays clean for tables and CSV.
func Init(level, format, timezone string) {
	loc, err := time.LoadLocation(timezone)
	if err != nil || timezone == "" {
		loc = time.UTC
	}
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().In(loc)
	}

	var writer io.Writer = os.Stderr
	if format == FormatConsole {
		writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	}

	set(zerolog.New(writer).With().Timestamp().Logger().Level(ParseLevel(level)))
	if err != nil {
		Warn().Err(err).Str("timezone", timezone).Msg("Invalid timezone, using UTC")
	}
}

// SetOutput replaces the writer, keeping the current level. Used by tests.
func SetOutput(w io.Writer, level string) {
	set(zerolog.New(w).With().Timestamp().Logger().Level(ParseLevel(level)))
}

// ParseLevel maps a config string to a zerolog level, defaulting to info
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

func set(l zerolog.Logger) {
	mu.Lock()
	log = l
	zerolog.DefaultContextLogger = &log
	mu.Unlock()
}

func get() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return &log
}

// Debug returns a debug level log event
func Debug() *zerolog.Event {
	return get().Debug()
}

// Info returns an info level log event
func Info() *zerolog.Event {
	return get().Info()
}

// Warn returns a warning level log event
func Warn() *zerolog.Event {
	return get().Warn()
}

// Error returns an error level log event
func Error() *zerolog.Event {
	return get().Error()
}

// Fatal returns a fatal level log event
func Fatal() *zerolog.Event {
	return get().Fatal()
}

// ScopedLogger represents a logger with predefined scope
type ScopedLogger struct {
	logger zerolog.Logger
	scope  string
}

// WithScope creates a new scoped logger instance with predefined scope
func WithScope(scope string) *ScopedLogger {
	return &ScopedLogger{
		logger: get().With().Str("scope", scope).Logger(),
		scope:  scope,
	}
}

// Debug returns a debug level log event with scope
func (s *ScopedLogger) Debug() *zerolog.Event {
	return s.logger.Debug()
}

// Info returns an info level log event with scope
func (s *ScopedLogger) Info() *zerolog.Event {
	return s.logger.Info()
}

// Warn returns a warning level log event with scope
func (s *ScopedLogger) Warn() *zerolog.Event {
	return s.logger.Warn()
}

// Error returns an error level log event with scope
func (s *ScopedLogger) Error() *zerolog.Event {
	return s.logger.Error()
}

// GetScope returns the current scope name
func (s *ScopedLogger) GetScope() string {
	return s.scope
}
