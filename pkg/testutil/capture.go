// Package testutil provides shared test helpers: output capture, manifest
// fixtures, configuration builders and a scripted package manager adapter.
package testutil

import (
	"bytes"
	"io"
	"os"
	"testing"
)

// capture redirects *target to a pipe while fn runs and returns what was
// written.
func capture(t *testing.T, target **os.File, fn func()) string {
	t.Helper()

	original := *target
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	*target = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		_ = r.Close()
		done <- buf.String()
	}()

	func() {
		defer func() {
			_ = w.Close()
			*target = original
		}()
		fn()
	}()

	return <-done
}

// CaptureStdout captures stdout during the execution of fn and returns the output as a string.
//
// The pipe is drained concurrently, so fn may print more than a pipe buffer
// holds. The original stdout is restored after fn returns.
//
// Parameters:
//   - t: Testing instance for helper marking
//   - fn: Function to execute while capturing stdout
//
// Returns:
//   - string: All content written to stdout during fn execution
func CaptureStdout(t *testing.T, fn func()) string {
	t.Helper()
	return capture(t, &os.Stdout, fn)
}

// CaptureStderr captures stderr during the execution of fn and returns the output as a string.
func CaptureStderr(t *testing.T, fn func()) string {
	t.Helper()
	return capture(t, &os.Stderr, fn)
}

// CaptureOutput captures both stdout and stderr during the execution of fn.
//
// Returns:
//   - stdout: All content written to stdout during fn execution
//   - stderr: All content written to stderr during fn execution
func CaptureOutput(t *testing.T, fn func()) (stdout, stderr string) {
	t.Helper()
	stderr = CaptureStderr(t, func() {
		stdout = CaptureStdout(t, fn)
	})
	return stdout, stderr
}
