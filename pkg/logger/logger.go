// Package logger provides the structured logging setup shared by the enderpy
// driver, checker and CLI.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu            sync.Mutex
	defaultLogger = slog.New(slog.DiscardHandler)
	logFile       *os.File
)

// LogLevel represents the logging level
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a config or flag spelling onto a LogLevel.
func ParseLevel(raw string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("logger: unknown level %q", raw)
	}
}

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Config holds logger configuration
type Config struct {
	Level     LogLevel
	Format    string // "text" or "json"
	Output    io.Writer
	AddSource bool
	LogFile   string
}

// DefaultConfig returns the default logger configuration
func DefaultConfig() Config {
	return Config{
		Level:  LevelWarn,
		Format: "text",
		Output: os.Stderr,
	}
}

// New builds a logger from cfg without touching the global one. The returned
// closer releases the log file, if any.
func New(cfg Config) (*slog.Logger, io.Closer, error) {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	var closer io.Closer = nopCloser{}
	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("logger: open %s: %w", cfg.LogFile, err)
		}
		output = file
		closer = file
	}

	opts := &slog.HandlerOptions{
		Level:     toSlogLevel(cfg.Level),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	case "", "text":
		handler = slog.NewTextHandler(output, opts)
	default:
		_ = closer.Close()
		return nil, nil, fmt.Errorf("logger: unknown format %q", cfg.Format)
	}
	return slog.New(handler), closer, nil
}

// Init initializes the global logger with the given configuration
func Init(cfg Config) error {
	l, closer, err := New(cfg)
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	if f, ok := closer.(*os.File); ok {
		logFile = f
	}
	defaultLogger = l
	slog.SetDefault(l)
	return nil
}

// InitDev initializes logging for development (debug level, text format)
func InitDev() {
	_ = Init(Config{
		Level:     LevelDebug,
		Format:    "text",
		Output:    os.Stderr,
		AddSource: true,
	})
}

// Close flushes and releases the log file opened by Init.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// Logger returns the global logger.
func Logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return defaultLogger
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func toSlogLevel(level LogLevel) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func Debug(msg string, args ...any) { Logger().Debug(msg, args...) }
func Info(msg string, args ...any)  { Logger().Info(msg, args...) }
func Warn(msg string, args ...any)  { Logger().Warn(msg, args...) }
func Error(msg string, args ...any) { Logger().Error(msg, args...) }

// With returns a new logger with the given attributes
func With(args ...any) *slog.Logger {
	return Logger().With(args...)
}

// Pipeline logging helpers

// LogPhase logs the start of a pipeline phase
func LogPhase(phase string) {
	Info("starting phase", "phase", phase)
}

// LogPhaseComplete logs the completion of a pipeline phase
func LogPhaseComplete(phase string, files int) {
	Info("completed phase", "phase", phase, "files", files)
}

// LogParsing logs parsing activity
func LogParsing(file string, nodeCount, diagnosticCount int) {
	Debug("parsed file", "file", file, "nodes", nodeCount, "diagnostics", diagnosticCount)
}

// LogFileError logs a file that could not be loaded or checked.
func LogFileError(phase, file string, err error) {
	Error("file failed", "phase", phase, "file", file, "error", err)
}
