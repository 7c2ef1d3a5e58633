// Package log writes leveled, categorized debug logs for scrollmap.
// Logging is off unless enabled with --debug or SCROLLMAP_DEBUG; the terminal
// belongs to the UI, so entries go to a file opened with tea.LogToFile.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

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

// Category groups related log messages.
type Category string

const (
	CatGeom   Category = "geom"   // highlight and scale computations
	CatDrag   Category = "drag"   // minimap drag gestures
	CatHost   Category = "host"   // scroll view offset and zoom changes
	CatThumb  Category = "thumb"  // thumbnail rendering and cache
	CatConfig Category = "config" // configuration loading/saving
	CatWatch  Category = "watch"  // file watcher events
	CatUI     Category = "ui"     // layout and input
)

// Logger is the process-wide sink. Use the package functions.
type Logger struct {
	mu       sync.Mutex
	closer   io.Closer
	writer   io.Writer
	enabled  bool
	minLevel Level
}

var (
	defaultLogger *Logger
	initMu        sync.Mutex
)

// Enabled reports whether debug logging was requested through the
// environment. The --debug flag is checked by the caller.
func Enabled() bool {
	v := strings.TrimSpace(os.Getenv("SCROLLMAP_DEBUG"))
	return v != "" && v != "0" && !strings.EqualFold(v, "false")
}

// Path returns the log file path: SCROLLMAP_LOG or "debug.log".
func Path() string {
	if p := os.Getenv("SCROLLMAP_LOG"); p != "" {
		return p
	}
	return "debug.log"
}

// Init opens path through tea.LogToFile and installs it as the global logger.
// The returned func closes the file.
func Init(path string) (func(), error) {
	f, err := tea.LogToFile(path, "scrollmap")
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	install(&Logger{closer: f, writer: f, enabled: true, minLevel: LevelDebug})
	return func() { _ = f.Close() }, nil
}

// InitWriter installs a logger that writes to w. Tests use this to capture
// output.
func InitWriter(w io.Writer) {
	install(&Logger{writer: w, enabled: true, minLevel: LevelDebug})
}

// Reset removes the global logger. Subsequent calls are no-ops.
func Reset() {
	install(nil)
}

func install(l *Logger) {
	initMu.Lock()
	defaultLogger = l
	initMu.Unlock()
}

func current() *Logger {
	initMu.Lock()
	defer initMu.Unlock()
	return defaultLogger
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	log(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	log(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	log(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	log(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	log(LevelError, cat, msg, fields...)
}

func log(level Level, cat Category, msg string, fields ...any) {
	l := current()
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || level < l.minLevel || l.writer == nil {
		return
	}

	// 2026-01-02T15:04:05 [DEBUG] [drag] begin anchor=(0,0)
	var b strings.Builder
	b.WriteString(time.Now().Format("2006-01-02T15:04:05"))
	fmt.Fprintf(&b, " [%s] [%s] %s", level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&b, " %v=<missing>", fields[len(fields)-1])
	}
	b.WriteByte('\n')

	_, _ = io.WriteString(l.writer, b.String())
}
