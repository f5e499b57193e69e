// Package logger provides leveled diagnostic logging on stderr.
//
// Diagnostics are kept apart from the user-facing messages printed by the
// output package so --json output on stdout stays machine-readable.
//
// By default only Warn and Error are written; Init(true) (the --verbose
// flag) enables Debug and Info as well.
//
//	logger.Debug("Loaded host table %s", path)
//	logger.WarnFields("Site partially provisioned", logger.Fields{
//	    "site": "blog",
//	    "step": "hosts",
//	})
//
// Output format:
//
//	[WARN] 2026-10-15 09:12:44 Site partially provisioned site=blog step=hosts
package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level represents a logging severity level.
type Level int

// Log levels from least to most severe.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Fields are key/value pairs appended to a log line in key order.
type Fields map[string]any

// Logger writes leveled lines to an io.Writer.
type Logger struct {
	mu     sync.Mutex
	level  Level
	output io.Writer
	now    func() time.Time
}

var std = &Logger{
	level:  LevelWarn,
	output: os.Stderr,
	now:    time.Now,
}

// Init sets the global level from the verbose flag.
func Init(verbose bool) {
	if verbose {
		SetLevel(LevelDebug)
		return
	}
	SetLevel(LevelWarn)
}

// SetLevel sets the minimum level written by the global logger.
func SetLevel(level Level) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.level = level
}

// GetLevel returns the current global level.
func GetLevel() Level {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.level
}

// SetOutput redirects the global logger. nil restores os.Stderr.
func SetOutput(w io.Writer) {
	std.mu.Lock()
	defer std.mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	std.output = w
}

func (l *Logger) write(level Level, msg string, fields Fields) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s %s", level, l.now().Format("2006-01-02 15:04:05"), msg)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	b.WriteByte('\n')

	_, _ = io.WriteString(l.output, b.String())
}

// Debug logs a debug message.
func Debug(format string, args ...any) {
	std.write(LevelDebug, fmt.Sprintf(format, args...), nil)
}

// Info logs an informational message.
func Info(format string, args ...any) {
	std.write(LevelInfo, fmt.Sprintf(format, args...), nil)
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	std.write(LevelWarn, fmt.Sprintf(format, args...), nil)
}

// Error logs an error message.
func Error(format string, args ...any) {
	std.write(LevelError, fmt.Sprintf(format, args...), nil)
}

// DebugFields logs a debug message with structured fields.
func DebugFields(msg string, fields Fields) {
	std.write(LevelDebug, msg, fields)
}

// InfoFields logs an informational message with structured fields.
func InfoFields(msg string, fields Fields) {
	std.write(LevelInfo, msg, fields)
}

// WarnFields logs a warning message with structured fields.
func WarnFields(msg string, fields Fields) {
	std.write(LevelWarn, msg, fields)
}

// ErrorFields logs an error message with structured fields.
func ErrorFields(msg string, fields Fields) {
	std.write(LevelError, msg, fields)
}

// LogError logs err with a context message. A nil err is ignored.
func LogError(err error, msg string) {
	if err == nil {
		return
	}
	std.write(LevelError, fmt.Sprintf("%s: %v", msg, err), nil)
}
