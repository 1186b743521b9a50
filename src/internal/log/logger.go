package log

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Level is a logging threshold; messages below the current level are dropped.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	level       = LevelInfo
	disableLogs = false
	forceStdErr = false
	forceColor  = false
	logPrefixes = map[Level][2]string{
		LevelDebug: {"\033[37m[DBG]\033[0m", "[DBG]"}, // White
		LevelInfo:  {"\033[36m[INF]\033[0m", "[INF]"}, // Cyan
		LevelWarn:  {"\033[33m[WRN]\033[0m", "[WRN]"}, // Yellow
		LevelError: {"\033[31m[ERR]\033[0m", "[ERR]"}, // Red
	}
)

// ParseLevel converts "debug", "info", "warn" or "error" into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// SetLevel sets the minimum level that is written.
func SetLevel(l Level) {
	level = l
}

// SetVerbose sets the logging verbosity. If true, all log levels are displayed.
func SetVerbose(v bool) {
	if v {
		level = LevelDebug
	} else {
		level = LevelInfo
	}
}

// IsVerbose returns true if debug logging is enabled.
func IsVerbose() bool {
	return level <= LevelDebug
}

// DisableLogs disables all logging.
func DisableLogs() {
	disableLogs = true
}

// IsDisabled returns true if logging is disabled.
func IsDisabled() bool {
	return disableLogs
}

// SetForceStdErr sends every level to stderr, keeping stdout free for command output.
func SetForceStdErr(v bool) {
	forceStdErr = v
}

// SetForceColor enables ANSI colours even when the output is not a terminal.
func SetForceColor(v bool) {
	forceColor = v
}

// Debugf logs a debug message if debug level is enabled.
func Debugf(format string, args ...interface{}) {
	logMessage(LevelDebug, format, args...)
}

// Infof logs an info message.
func Infof(format string, args ...interface{}) {
	logMessage(LevelInfo, format, args...)
}

// Warnf logs a warning message.
func Warnf(format string, args ...interface{}) {
	logMessage(LevelWarn, format, args...)
}

// Errorf logs an error message.
func Errorf(format string, args ...interface{}) {
	logMessage(LevelError, format, args...)
}

// logMessage formats and writes a log message with the specified log level.
func logMessage(l Level, format string, args ...interface{}) {
	if disableLogs || l < level {
		return
	}

	out := os.Stdout
	if forceStdErr || l == LevelError {
		out = os.Stderr
	}

	prefix := logPrefixes[l][1]
	if forceColor || term.IsTerminal(int(out.Fd())) {
		prefix = logPrefixes[l][0]
	}

	message := fmt.Sprintf(format, args...)
	_, _ = out.WriteString(prefix + " " + message + "\n")
}
