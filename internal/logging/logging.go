// Package logging provides the structured logger shared by the store and the
// CLI. It is a thin, nil-safe wrapper around log/slog.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// LogLevel represents different logging levels
type LogLevel int

// Supported log levels.
const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// slogLevel maps a LogLevel to its slog equivalent.
func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// String returns the lowercase level name.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "debug"
	case LogLevelWarn:
		return "warn"
	case LogLevelError:
		return "error"
	default:
		return "info"
	}
}

// Format selects the slog handler used by NewLogger.
type Format string

// Supported output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// LogConfig holds configuration for NewLogger.
type LogConfig struct {
	// Level sets the minimum log level (debug, info, warn, error)
	Level LogLevel
	// Format selects text or JSON output. Empty means text.
	Format Format
	// AddSource includes file and line number in logs
	AddSource bool
	// Output receives log records. Nil means os.Stderr.
	Output io.Writer
}

// DefaultLogConfig returns a default logging configuration.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  LogLevelInfo,
		Format: FormatText,
	}
}

// Logger provides structured logging. The zero value and a nil *Logger both
// discard everything.
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates a new structured logger with the given configuration.
func NewLogger(config LogConfig) *Logger {
	out := config.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{
		Level:     config.Level.slogLevel(),
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	if config.Format == FormatJSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return &Logger{logger: slog.New(handler)}
}

// New wraps an existing slog.Logger. A nil logger yields a no-op Logger.
func New(logger *slog.Logger) *Logger {
	return &Logger{logger: logger}
}

// NewNopLogger creates a no-op logger that discards all log messages.
func NewNopLogger() *Logger {
	return &Logger{}
}

// Slog returns the underlying slog.Logger, or nil for a no-op logger.
func (l *Logger) Slog() *slog.Logger {
	if l == nil {
		return nil
	}
	return l.logger
}

// Debug logs debug-level messages
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	if l != nil && l.logger != nil {
		l.logger.DebugContext(ctx, msg, args...)
	}
}

// Info logs info-level messages
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	if l != nil && l.logger != nil {
		l.logger.InfoContext(ctx, msg, args...)
	}
}

// Warn logs warning-level messages
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	if l != nil && l.logger != nil {
		l.logger.WarnContext(ctx, msg, args...)
	}
}

// Error logs error-level messages
func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	if l != nil && l.logger != nil {
		l.logger.ErrorContext(ctx, msg, args...)
	}
}

// With returns a logger with additional context fields
func (l *Logger) With(args ...any) *Logger {
	if l == nil || l.logger == nil {
		return l
	}
	return &Logger{logger: l.logger.With(args...)}
}

// WithOperation returns a logger with operation context
func (l *Logger) WithOperation(op Operation) *Logger {
	return l.With("operation", string(op))
}

// WithPath returns a logger with path context
func (l *Logger) WithPath(path string) *Logger {
	return l.With("path", path)
}

// Operation names a store operation for logging.
type Operation string

// Store operations.
const (
	OpResolveRoot  Operation = "resolve_root"
	OpPathExists   Operation = "path_exists"
	OpCreateFolder Operation = "create_folder"
	OpRemoveFolder Operation = "remove_folder"
	OpRenameFolder Operation = "rename_folder"
	OpWriteFile    Operation = "write_file"
	OpRemoveFile   Operation = "remove_file"
	OpReadFile     Operation = "read_file"
	OpListFolders  Operation = "list_folders"
	OpPurgeAll     Operation = "purge_all"
)

// LogOperation records the outcome of a store operation at debug level.
// Extra fields are appended as-is.
func LogOperation(
	ctx context.Context,
	logger *Logger,
	operation Operation,
	duration time.Duration,
	err error,
	fields ...any,
) {
	if logger == nil {
		return
	}

	args := []any{
		"operation", string(operation),
		"duration_ms", duration.Milliseconds(),
		"success", err == nil,
	}
	args = append(args, fields...)

	if err != nil {
		args = append(args, "error", err.Error())
		logger.Debug(ctx, "store operation failed", args...)
		return
	}
	logger.Debug(ctx, "store operation completed", args...)
}

// ParseLogLevel parses a string log level into a LogLevel.
func ParseLogLevel(level string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LogLevelDebug, nil
	case "info", "":
		return LogLevelInfo, nil
	case "warn", "warning":
		return LogLevelWarn, nil
	case "error":
		return LogLevelError, nil
	default:
		return LogLevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}

// ParseFormat parses a string output format.
func ParseFormat(format string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(format))) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("invalid log format: %s", format)
	}
}
