// Package errors holds the CLI's exit-path error handling.
package errors

import (
	"fmt"
	"os"

	"github.com/julianstephens/habitbot/internal/logger"
)

// Format renders an error with the consistent "Error: " prefix used on
// stderr.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs the error, prints it to stderr, and exits with code 1. A nil
// error is a no-op, so it can wrap the final command dispatch directly.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}
