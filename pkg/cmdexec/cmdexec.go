// Package cmdexec runs package manager commands through the user's shell and
// captures their output and exit status.
package cmdexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/ajxudir/deptherapist/pkg/verbose"
	"github.com/ajxudir/deptherapist/pkg/warnings"
)

// Result holds everything observed about one command invocation.
//
// Fields:
//   - Command: The normalized command line passed to the shell
//   - Output: Combined stdout and stderr, in the order the process wrote them
//   - Stdout: Standard output only
//   - Stderr: Standard error only
//   - ExitCode: Process exit status; -1 if the process never reported one
//   - Duration: Wall-clock time from start to exit
type Result struct {
	Command  string
	Output   []byte
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Duration time.Duration
}

// combinedBuffer interleaves writes from the stdout and stderr copiers.
type combinedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (c *combinedBuffer) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

// RunFunc is the function signature for command execution.
//
// Parameters:
//   - ctx: Context for cancellation
//   - command: Command line; backslash-continued and multiple lines are supported
//   - env: Extra environment variables layered on top of os.Environ()
//   - dir: Working directory for the command; empty means the current directory
//   - timeoutSeconds: Maximum execution time in seconds (0 for no timeout)
//
// Returns:
//   - *Result: Always non-nil once the command string is valid, even on failure
//   - error: nil on exit status 0; wraps *exec.ExitError on non-zero exit
type RunFunc func(ctx context.Context, command string, env map[string]string, dir string, timeoutSeconds int) (*Result, error)

// Run is the command execution function used throughout the application.
// Tests replace it with a fake.
var Run RunFunc = runCommand

// getShell returns the user's shell and args to run a command.
//
// SHELL is checked first so that version managers such as nvm, which only
// put npm on PATH from a login profile, keep working.
func getShell() (shell string, args []string) {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh, []string{"-l", "-c"}
	}
	return getDefaultShell()
}

// runCommand executes a command string and collects its Result.
//
// It performs the following operations:
//   - Normalizes the command (line continuations, sequential lines)
//   - Applies the timeout on top of the caller's context
//   - Starts the shell in its own process group so the whole tree can be killed
//   - Captures stdout and stderr separately and interleaved into one buffer
//   - Classifies the failure: timeout, cancellation, or non-zero exit
func runCommand(ctx context.Context, command string, env map[string]string, dir string, timeoutSeconds int) (*Result, error) {
	line := normalizeCommand(command)
	if line == "" {
		return nil, fmt.Errorf("no command provided")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runCtx := ctx
	if timeoutSeconds > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, time.Duration(timeoutSeconds)*time.Second)
		defer cancel()
	}

	shell, shellArgs := getShell()
	args := append(append([]string{}, shellArgs...), line)

	cmd := exec.CommandContext(runCtx, shell, args...)
	cmd.Env = buildEnviron(env)
	if dir != "" {
		cmd.Dir = dir
	}
	setProcGroup(cmd)
	cmd.Cancel = func() error {
		return killProcGroup(cmd)
	}
	cmd.WaitDelay = 5 * time.Second

	var stdout, stderr bytes.Buffer
	var combined combinedBuffer
	cmd.Stdout = io.MultiWriter(&stdout, &combined)
	cmd.Stderr = io.MultiWriter(&stderr, &combined)

	verbose.CommandExec(line, dir)

	start := time.Now()
	runErr := cmd.Run()
	res := &Result{
		Command:  line,
		Output:   combined.buf.Bytes(),
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: ExitCode(runErr),
		Duration: time.Since(start),
	}
	verbose.CommandResult(line, res.ExitCode, string(res.Output))

	if runErr == nil {
		return res, nil
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		warnings.Warnf("command timed out after %d seconds: %s", timeoutSeconds, line)
		res.ExitCode = -1
		return res, fmt.Errorf("command timed out after %d seconds: %w", timeoutSeconds, runErr)
	}
	if ctx.Err() != nil {
		res.ExitCode = -1
		return res, fmt.Errorf("command cancelled: %w", ctx.Err())
	}

	return res, runErr
}

// buildEnviron layers env on top of the current process environment.
// Values may reference existing variables, e.g. "$HOME/.npmrc".
func buildEnviron(env map[string]string) []string {
	environ := os.Environ()
	for key, value := range env {
		environ = append(environ, fmt.Sprintf("%s=%s", key, os.ExpandEnv(value)))
	}
	return environ
}

// normalizeCommand flattens a configured command into one shell line.
//
// It performs the following operations:
//   - Normalizes CRLF line endings
//   - Joins lines ending in a backslash with the next line
//   - Joins the remaining non-blank lines with " && " so that the first
//     failing line determines the exit status
//
// Parameters:
//   - command: Raw command text from configuration
//
// Returns:
//   - string: Single-line command, or "" if nothing remains
func normalizeCommand(command string) string {
	normalized := strings.ReplaceAll(command, "\r\n", "\n")

	var steps []string
	var current strings.Builder
	for _, raw := range strings.Split(normalized, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		if strings.HasSuffix(trimmed, "\\") {
			current.WriteString(strings.TrimSpace(strings.TrimSuffix(trimmed, "\\")))
			current.WriteString(" ")
			continue
		}
		current.WriteString(trimmed)
		steps = append(steps, current.String())
		current.Reset()
	}
	if rest := strings.TrimSpace(current.String()); rest != "" {
		steps = append(steps, rest)
	}

	return strings.Join(steps, " && ")
}

// ExitCode extracts a process exit status from an error returned by Run.
//
// Parameters:
//   - err: Error from Run or exec.Cmd.Run
//
// Returns:
//   - int: 0 for nil, the exit status for *exec.ExitError, -1 otherwise
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// Executable returns the program name a command line starts with, skipping
// leading VAR=value assignments. It returns "" for an empty command.
func Executable(command string) string {
	for _, field := range strings.Fields(normalizeCommand(command)) {
		if strings.Contains(field, "=") && !strings.HasPrefix(field, "=") {
			continue
		}
		return strings.Trim(field, `"'`)
	}
	return ""
}
