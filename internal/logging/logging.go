// Package logging provides the small leveled logger used throughout
// changelog-gen. Messages are printed to stdout with a colored level
// prefix; anything below the configured level is dropped.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Level is a log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

// ParseLevel parses a level name, case-insensitively. "WARN" is accepted
// as an alias for "WARNING".
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARNING", "WARN":
		return LevelWarning, nil
	case "ERROR":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Logger writes leveled messages to a single writer.
type Logger struct {
	mu    sync.Mutex
	out   io.Writer
	level Level
}

// New returns a logger writing to out, dropping messages below level.
func New(out io.Writer, level Level) *Logger {
	return &Logger{out: out, level: level}
}

// SetLevel changes the minimum level that gets printed.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) logf(level Level, prefix, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level {
		return
	}
	fmt.Fprintf(l.out, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}

// Debugf logs at DEBUG level.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logf(LevelDebug, color.BlueString("DEBUG"), format, args...)
}

// Infof logs at INFO level.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logf(LevelInfo, color.GreenString("INFO"), format, args...)
}

// Warningf logs at WARNING level.
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.logf(LevelWarning, color.YellowString("WARNING"), format, args...)
}

// Errorf logs at ERROR level.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logf(LevelError, color.RedString("ERROR"), format, args...)
}

var std = New(os.Stdout, LevelInfo)

// SetLevel changes the level of the package logger.
func SetLevel(level Level) { std.SetLevel(level) }

// Debugf logs to the package logger at DEBUG level.
func Debugf(format string, args ...interface{}) { std.Debugf(format, args...) }

// Infof logs to the package logger at INFO level.
func Infof(format string, args ...interface{}) { std.Infof(format, args...) }

// Warningf logs to the package logger at WARNING level.
func Warningf(format string, args ...interface{}) { std.Warningf(format, args...) }

// Errorf logs to the package logger at ERROR level.
func Errorf(format string, args ...interface{}) { std.Errorf(format, args...) }
