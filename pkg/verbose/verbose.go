// Package verbose provides debug logging for a diagnostics session.
package verbose

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
)

var (
	mu      sync.RWMutex
	enabled bool
	writer  io.Writer = os.Stderr
)

// Enable turns on verbose logging.
func Enable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
}

// Disable turns off verbose logging.
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
}

// IsEnabled returns whether verbose logging is currently enabled.
//
// Returns:
//   - bool: true if verbose logging is enabled, false otherwise
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetWriter sets the output writer for verbose messages and returns a
// function that restores the previous writer.
//
// Parameters:
//   - w: The io.Writer to use for output; if nil, the writer remains unchanged
//
// Returns:
//   - func(): Restores the writer that was active before the call
func SetWriter(w io.Writer) func() {
	mu.Lock()
	defer mu.Unlock()
	previous := writer
	if w != nil {
		writer = w
	}
	return func() {
		mu.Lock()
		defer mu.Unlock()
		writer = previous
	}
}

// output returns the writer when logging is enabled, or nil otherwise.
func output() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	if !enabled {
		return nil
	}
	return writer
}

// Printf prints a formatted verbose message if enabled.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func Printf(format string, args ...any) {
	if w := output(); w != nil {
		_, _ = fmt.Fprintf(w, "[DEBUG] "+format+"\n", args...)
	}
}

// Info prints an informational verbose message if enabled.
func Info(msg string) {
	if w := output(); w != nil {
		_, _ = fmt.Fprintf(w, "[DEBUG] %s\n", msg)
	}
}

// Infof prints a formatted informational verbose message if enabled.
func Infof(format string, args ...any) {
	Printf(format, args...)
}

// CommandExec logs command execution details if enabled.
//
// Parameters:
//   - cmd: The command string being executed
//   - workDir: The working directory path for command execution
func CommandExec(cmd, workDir string) {
	if w := output(); w != nil {
		_, _ = fmt.Fprintf(w, "[DEBUG] Executing: %s\n", cmd)
		_, _ = fmt.Fprintf(w, "        Working dir: %s\n", workDir)
	}
}

// CommandResult logs command execution results if enabled.
//
// It performs the following operations:
//   - Prints the command status (succeeded or failed) with exit code
//   - Truncates the command string to 60 display columns
//   - Prints up to 5 lines of output, each truncated to 100 display columns
//
// Package manager output is full of box-drawing characters and emoji, so
// truncation is measured in terminal cells rather than bytes.
//
// Parameters:
//   - cmd: The command string that was executed
//   - exitCode: The exit code returned by the command (0 for success)
//   - out: The combined command output
func CommandResult(cmd string, exitCode int, out string) {
	w := output()
	if w == nil {
		return
	}
	if exitCode == 0 {
		_, _ = fmt.Fprintf(w, "[DEBUG] Command succeeded: %s\n", truncate(cmd, 60))
	} else {
		_, _ = fmt.Fprintf(w, "[DEBUG] Command failed (exit %d): %s\n", exitCode, truncate(cmd, 60))
	}
	trimmed := strings.TrimSpace(out)
	if trimmed == "" {
		return
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) > 5 {
		for _, line := range lines[:3] {
			_, _ = fmt.Fprintf(w, "        | %s\n", truncate(line, 100))
		}
		_, _ = fmt.Fprintf(w, "        | ... (%d more lines)\n", len(lines)-3)
		return
	}
	for _, line := range lines {
		_, _ = fmt.Fprintf(w, "        | %s\n", truncate(line, 100))
	}
}

// ConfigLoaded logs which config file was loaded if enabled.
// An empty path means the embedded defaults are in use.
func ConfigLoaded(path string) {
	w := output()
	if w == nil {
		return
	}
	if path == "" {
		_, _ = fmt.Fprintf(w, "[DEBUG] Config loaded: built-in defaults\n")
		return
	}
	_, _ = fmt.Fprintf(w, "[DEBUG] Config loaded: %s\n", path)
}

// IssueRecorded logs an issue as soon as a check appends it.
//
// Parameters:
//   - check: Short name of the check that produced the issue
//   - issue: The issue text
func IssueRecorded(check, issue string) {
	if w := output(); w != nil {
		_, _ = fmt.Fprintf(w, "[DEBUG] Issue from %s: %s\n", check, issue)
	}
}

// truncate shortens a string to at most maxWidth terminal cells, appending
// "..." when anything was cut.
func truncate(s string, maxWidth int) string {
	return runewidth.Truncate(s, maxWidth, "...")
}
