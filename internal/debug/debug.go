// Package debug provides an opt-in logger for tracing chunker internals.
// Logging is disabled unless the DEBUG_RABIN_CHUNKER environment variable is
// set, so the hot path pays no cost in normal operation.
package debug

import (
	"fmt"
	"log"
	"os"
)

var logger *log.Logger

func init() {
	if os.Getenv("DEBUG_RABIN_CHUNKER") == "" {
		return
	}

	logger = log.New(os.Stderr, "rabin/chunker: ", log.Lmicroseconds|log.Lshortfile)
}

// Log writes a debug message if logging has been enabled via
// DEBUG_RABIN_CHUNKER. It is a no-op otherwise.
func Log(fmtstr string, args ...interface{}) {
	if logger == nil {
		return
	}

	if !endsWithNewline(fmtstr) {
		fmtstr += "\n"
	}

	_ = logger.Output(2, fmt.Sprintf(fmtstr, args...))
}

func endsWithNewline(s string) bool {
	return len(s) > 0 && s[len(s)-1] == '\n'
}
