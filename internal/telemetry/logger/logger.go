package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// Logger is the logging surface used across redislight.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

// DefaultMaxValueLen bounds string attributes when Config.MaxValueLen is zero.
const DefaultMaxValueLen = 256

// Config holds logger configuration.
type Config struct {
	Level  string    // debug, info, warn, error
	Format string    // text or json; anything else is text
	Output io.Writer // defaults to os.Stderr

	// MaxValueLen truncates longer string and error attributes, such as
	// the key list of a wide DEL. Negative disables truncation.
	MaxValueLen int

	AddSource bool
}

// DefaultConfig logs warnings and errors as text on stderr.
func DefaultConfig() Config {
	return Config{
		Level:  "warn",
		Format: "text",
		Output: os.Stderr,
	}
}

type slogLogger struct {
	*slog.Logger
}

func (l slogLogger) With(args ...any) Logger {
	return slogLogger{l.Logger.With(args...)}
}

// level is shared by every logger built with New so a config reload
// can change verbosity without rebuilding handlers.
var level = new(slog.LevelVar)

// New creates a logger and resets the shared level to cfg.Level.
// An unknown level is an error.
func New(cfg Config) (Logger, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	level.Set(lvl)

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	maxLen := cfg.MaxValueLen
	if maxLen == 0 {
		maxLen = DefaultMaxValueLen
	}

	opts := &slog.HandlerOptions{
		Level:       level,
		AddSource:   cfg.AddSource,
		ReplaceAttr: truncateAttr(maxLen),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return slogLogger{slog.New(handler)}, nil
}

// ParseLevel maps a level name to its slog level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// SetLevel changes the level of every logger created by New. Unknown
// names select info.
func SetLevel(s string) {
	lvl, _ := ParseLevel(s)
	level.Set(lvl)
}

// GetLevel returns the shared level as a lower-case name.
func GetLevel() string {
	return strings.ToLower(level.Level().String())
}

var defaultLogger atomic.Value // Logger

func init() {
	l, _ := New(DefaultConfig())
	defaultLogger.Store(&l)
}

// SetDefault replaces the logger returned by Default.
func SetDefault(l Logger) {
	if l != nil {
		defaultLogger.Store(&l)
	}
}

// Default returns the process-wide logger.
func Default() Logger {
	return *defaultLogger.Load().(*Logger)
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return slogLogger{slog.New(slog.NewTextHandler(io.Discard, nil))}
}
