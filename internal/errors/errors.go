package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/mixcheck/internal/lock"
	"github.com/julianstephens/mixcheck/internal/logger"
)

// ErrInvalidMix is returned by commands that refuse to work with a gas mix
// the validator rejected. The warnings are printed before it is returned.
var ErrInvalidMix = errors.New("invalid gas mix")

// Exit codes
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitInvalidMix = 2
	ExitLocked     = 3
)

// exit is swapped in tests
var exit = os.Exit

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrInvalidMix):
		return ExitInvalidMix
	case errors.Is(err, lock.ErrLocked):
		return ExitLocked
	default:
		return ExitFailure
	}
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// hint returns a follow-up line for errors the user can act on.
func hint(err error) string {
	if errors.Is(err, lock.ErrLocked) {
		return "Wait for the other mixcheck command to finish, or run 'mixcheck doctor' if none is running."
	}
	return ""
}

// Fatal logs err, prints it to stderr and exits with ExitCode(err). A nil
// error is a no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err, "exit_code", ExitCode(err))
	fmt.Fprintf(os.Stderr, "%s\n", Format(err))
	if h := hint(err); h != "" {
		fmt.Fprintln(os.Stderr, h)
	}
	exit(ExitCode(err))
}
