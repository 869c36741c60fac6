// Package logger provides a minimal leveled logger for CLI output.
// Debug output is suppressed unless verbose mode is enabled.
package logger

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	verbose bool
	std     = log.New(os.Stderr, "", log.LstdFlags)
)

// SetVerbose enables or disables debug output.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// SetOutput redirects log output. Tests use this to capture messages.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// Verbose reports whether debug output is enabled.
func Verbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verbose
}

// Debugf logs a debug message. No-op unless verbose mode is enabled.
func Debugf(format string, args ...any) {
	if !Verbose() {
		return
	}
	std.Printf("DEBUG "+format, args...)
}

// Infof logs an informational message.
func Infof(format string, args ...any) {
	std.Printf("INFO "+format, args...)
}

// Errorf logs an error message.
func Errorf(format string, args ...any) {
	std.Printf("ERROR "+format, args...)
}
