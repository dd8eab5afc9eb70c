// Package internal has helpers that are only useful within the chessions runtime.
package internal

import (
	"fmt"
	"os"
	"time"
)

// FatalError logs an error and exits the program.
func FatalError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "❌ %s: %v\n", msg, err)
	os.Exit(1)
}

// Warning logs a warning.
func Warning(msg string) {
	fmt.Fprintf(os.Stderr, "⚠️  %s\n", msg)
}

// Tracef prints a timestamped diagnostic line to stderr when enabled.
// Components take the flag explicitly so tracing stays scoped to one
// invocation instead of leaking through a global.
func Tracef(enabled bool, format string, args ...any) {
	if !enabled {
		return
	}
	fmt.Fprintf(os.Stderr, "[%s] %s\n", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
}
