package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// logger writes timestamped, categorized lines to a single sink. The zero
// value discards everything.
type logger struct {
	mu       sync.Mutex
	out      io.Writer
	closer   io.Closer
	counters map[string]int
}

var std logger

// Enable starts debug logging to ~/.config/go-genseq/debug.log
func Enable() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return EnableAt(filepath.Join(homeDir, ".config", "go-genseq", "debug.log"))
}

// EnableAt starts debug logging to an explicit path, truncating it. It is a
// no-op if logging is already on.
func EnableAt(logPath string) error {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if !std.attach(f, f) {
		f.Close()
	}
	return nil
}

// SetOutput sends the log to w until Disable is called
func SetOutput(w io.Writer) {
	std.attach(w, nil)
}

// Disable stops debug logging and closes the log file
func Disable() {
	std.mu.Lock()
	defer std.mu.Unlock()
	if std.closer != nil {
		std.closer.Close()
	}
	std.out, std.closer, std.counters = nil, nil, nil
}

func (l *logger) attach(w io.Writer, c io.Closer) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.out != nil {
		return false
	}
	l.out, l.closer = w, c
	l.counters = make(map[string]int)
	l.write("debug", "=== Debug logging started ===")
	return true
}

// write expects l.mu to be held
func (l *logger) write(category, msg string) {
	fmt.Fprintf(l.out, "[%s] %-10s %s\n", time.Now().Format("15:04:05.000"), category, msg)
	// flush right away so the log survives a crash
	if f, ok := l.out.(*os.File); ok {
		f.Sync()
	}
}

// Log writes a message to the debug log
func Log(category, format string, args ...any) {
	std.mu.Lock()
	defer std.mu.Unlock()
	if std.out == nil {
		return
	}
	std.write(category, fmt.Sprintf(format, args...))
}

// Warn logs a recovered condition (bad key, unknown genre, dropped note...)
func Warn(format string, args ...any) {
	Log("warn", format, args...)
}

// LogEvery logs only every n-th call with the same category and format.
// Use it for per-pulse and per-step events.
func LogEvery(n int, category, format string, args ...any) {
	std.mu.Lock()
	defer std.mu.Unlock()
	if std.out == nil {
		return
	}
	key := category + format
	std.counters[key]++
	if count := std.counters[key]; n <= 1 || count%n == 0 {
		std.write(category, fmt.Sprintf(format, args...)+fmt.Sprintf(" (every %d, count=%d)", n, count))
	}
}
