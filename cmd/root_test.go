package cmd

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"testing"

	"github.com/ajxudir/deptherapist/pkg/diagnose"
	"github.com/ajxudir/deptherapist/pkg/errors"
	"github.com/ajxudir/deptherapist/pkg/testutil"
	"github.com/ajxudir/deptherapist/pkg/verbose"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPersistentPreRunVerbose tests the behavior of PersistentPreRun with the verbose flag.
//
// It verifies:
//   - Verbose mode is enabled when verboseFlag is true
//   - Verbose mode stays off when verboseFlag is false
func TestPersistentPreRunVerbose(t *testing.T) {
	defer func() {
		resetFlags()
		verbose.Disable()
	}()

	resetFlags()
	rootCmd.PersistentPreRun(rootCmd, []string{})
	assert.False(t, verbose.IsEnabled())

	verboseFlag = true
	rootCmd.PersistentPreRun(rootCmd, []string{})
	assert.True(t, verbose.IsEnabled())
}

// TestPersistentPreRunBuildWarnings tests the behavior of PersistentPreRun with build warnings.
//
// It verifies:
//   - Build warnings are shown when skipBuildChecksFlag is false
//   - Build warnings are skipped when skipBuildChecksFlag is true
//   - Development builds print nothing
func TestPersistentPreRunBuildWarnings(t *testing.T) {
	oldVersion := Version
	oldBuildOS := BuildOS
	oldBuildArch := BuildArch
	defer func() {
		Version = oldVersion
		BuildOS = oldBuildOS
		BuildArch = oldBuildArch
		resetFlags()
	}()
	BuildOS = ""
	BuildArch = ""

	t.Run("shows warnings when not skipped", func(t *testing.T) {
		Version = "v1.0.0-rc.1"
		resetFlags()
		skipBuildChecksFlag = false

		output := testutil.CaptureStderr(t, func() {
			rootCmd.PersistentPreRun(rootCmd, []string{})
		})
		assert.Contains(t, output, "Prerelease build: v1.0.0-rc.1")
	})

	t.Run("skips warnings when flag set", func(t *testing.T) {
		Version = "v1.0.0-rc.1"
		resetFlags()
		skipBuildChecksFlag = true

		output := testutil.CaptureStderr(t, func() {
			rootCmd.PersistentPreRun(rootCmd, []string{})
		})
		assert.Empty(t, output)
	})

	t.Run("dev build is quiet", func(t *testing.T) {
		Version = "dev"
		resetFlags()
		skipBuildChecksFlag = false

		output := testutil.CaptureStderr(t, func() {
			rootCmd.PersistentPreRun(rootCmd, []string{})
		})
		assert.Empty(t, output)
	})
}

// TestRunSession tests a bare invocation against a fake package manager.
//
// It verifies:
//   - 11 dependencies, a clean listing and "{}" print exactly one numbered issue
//   - A healthy project prints the congratulatory message
//   - The adapter is not called when package.json is missing, and the
//     error carries exit code 1 and is already reported
//   - Positional arguments are rejected
func TestRunSession(t *testing.T) {
	t.Run("end to end with fake adapter", func(t *testing.T) {
		fake := testutil.NewFakeAdapter()
		fake.Installed = testutil.Scripted{Output: "fixture@1.0.0\n"}
		fake.Outdated = testutil.Scripted{Output: "{}"}
		cliEnv(t, testutil.ProjectDir(t, 11, 2), fake)

		out, err := runCLI(t)
		require.NoError(t, err)

		assert.Contains(t, out, "1. "+diagnose.IssueTooManyDependencies)
		assert.Len(t, regexp.MustCompile(`(?m)^\d+\. `).FindAllString(out, -1), 5)
		assert.Contains(t, out, "PRESCRIPTION:")
		assert.Equal(t, []string{"list-installed", "list-outdated"}, fake.Calls)
	})

	t.Run("healthy project", func(t *testing.T) {
		cliEnv(t, testutil.ProjectDir(t, 2, 0), testutil.NewFakeAdapter())

		out, err := runCLI(t)
		require.NoError(t, err)
		assert.Contains(t, out, "Your dependencies are surprisingly well-adjusted!")
		assert.NotContains(t, out, "PRESCRIPTION")
	})

	t.Run("missing manifest", func(t *testing.T) {
		fake := testutil.NewFakeAdapter()
		cliEnv(t, t.TempDir(), fake)

		out, err := runCLI(t)
		require.Error(t, err)
		assert.Equal(t, errors.ExitManifestMissing, errors.GetExitCode(err))
		exitErr, ok := errors.IsExitError(err)
		require.True(t, ok)
		assert.True(t, exitErr.Reported)
		assert.Contains(t, out, "No package.json found.")
		assert.Empty(t, fake.Calls)
	})

	t.Run("rejects positional arguments", func(t *testing.T) {
		fake := testutil.NewFakeAdapter()
		cliEnv(t, testutil.ProjectDir(t, 1, 0), fake)

		_, err := runCLI(t, "some-package")
		require.Error(t, err)
		assert.Equal(t, errors.ExitFailure, errors.GetExitCode(err))
		assert.Empty(t, fake.Calls)
	})

	t.Run("fatal outdated exit code", func(t *testing.T) {
		fake := testutil.NewFakeAdapter()
		fake.Outdated = testutil.Scripted{ExitCode: 2}
		cliEnv(t, testutil.ProjectDir(t, 1, 0), fake)

		out, err := runCLI(t)
		require.Error(t, err)
		assert.Equal(t, errors.ExitFailure, errors.GetExitCode(err))
		assert.NotContains(t, out, "DIAGNOSIS")
	})

	t.Run("version flag", func(t *testing.T) {
		fake := testutil.NewFakeAdapter()
		cliEnv(t, testutil.ProjectDir(t, 1, 0), fake)

		out, err := runCLI(t, "--version")
		require.NoError(t, err)
		assert.Contains(t, out, "Version: "+Version)
		assert.Empty(t, fake.Calls)
	})
}

// TestRunSessionConfigErrors tests that configuration problems stop the session with exit code 3.
//
// It verifies:
//   - Unknown fields in the local file exit 3 before any command runs
//   - A missing package.json exits 1 even when the local file is broken
//   - A --config path that does not exist exits 3
func TestRunSessionConfigErrors(t *testing.T) {
	t.Run("unknown field in local config", func(t *testing.T) {
		dir := testutil.ProjectDir(t, 1, 0)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".deptherapist.yml"), []byte("managr: npm\n"), 0o644))
		fake := testutil.NewFakeAdapter()
		cliEnv(t, dir, fake)

		_, err := runCLI(t)
		require.Error(t, err)
		assert.Equal(t, errors.ExitConfigError, errors.GetExitCode(err))
		assert.Contains(t, err.Error(), "managr")
		assert.Empty(t, fake.Calls)
	})

	t.Run("missing manifest wins over broken config", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".deptherapist.yml"), []byte("managr: [npm\n"), 0o644))
		fake := testutil.NewFakeAdapter()
		cliEnv(t, dir, fake)

		out, err := runCLI(t)
		require.Error(t, err)
		assert.Equal(t, errors.ExitManifestMissing, errors.GetExitCode(err))
		assert.Contains(t, out, "No package.json found.")
		assert.Empty(t, fake.Calls)
	})

	t.Run("missing explicit config", func(t *testing.T) {
		cliEnv(t, testutil.ProjectDir(t, 1, 0), testutil.NewFakeAdapter())

		_, err := runCLI(t, "--config", filepath.Join(t.TempDir(), "absent.yml"))
		require.Error(t, err)
		assert.Equal(t, errors.ExitConfigError, errors.GetExitCode(err))
	})
}

// TestRunSessionWithShellCommands runs a full session through the real
// command executor, with configured commands standing in for npm.
func TestRunSessionWithShellCommands(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping POSIX shell test on Windows")
	}
	t.Setenv("SHELL", "")

	dir := testutil.ProjectDir(t, 3, 0)
	cfg := `manager: fakepm
list_installed:
  commands: echo "UNMET DEPENDENCY left-pad@1.0.0"
list_outdated:
  commands: echo '{"a":{"current":"1.0.0","latest":"2.0.0"},"b":{}}'
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".deptherapist.yml"), []byte(cfg), 0o644))
	cliEnv(t, dir, nil)

	out, err := runCLI(t)
	require.NoError(t, err)
	assert.Contains(t, out, "1. "+diagnose.IssueCommunicationBreakdown)
	assert.Contains(t, out, "2. "+diagnose.OutdatedIssue(2))
}

// TestRunSessionShellStderrWarnings checks that warnings the package manager
// writes to stderr do not break parsing of the outdated JSON on stdout.
func TestRunSessionShellStderrWarnings(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping POSIX shell test on Windows")
	}
	t.Setenv("SHELL", "")

	dir := testutil.ProjectDir(t, 1, 0)
	cfg := `list_installed:
  commands: echo "fixture@1.0.0"
list_outdated:
  commands: echo 'npm warn config production Use --omit=dev instead.' >&2; echo '{"a":{},"b":{}}'
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".deptherapist.yml"), []byte(cfg), 0o644))
	cliEnv(t, dir, nil)

	out, err := runCLI(t)
	require.NoError(t, err)
	assert.Contains(t, out, "1. "+diagnose.OutdatedIssue(2))
}

// TestRunSessionShellListFailure checks that a failing list command is named after the configured manager.
func TestRunSessionShellListFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping POSIX shell test on Windows")
	}
	t.Setenv("SHELL", "")

	dir := testutil.ProjectDir(t, 1, 0)
	cfg := `manager: fakepm
list_installed:
  commands: echo "UNMET DEPENDENCY x"; exit 1
list_outdated:
  commands: echo '{"a":{}}'; exit 1
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".deptherapist.yml"), []byte(cfg), 0o644))
	cliEnv(t, dir, nil)

	out, err := runCLI(t)
	require.NoError(t, err)
	assert.Contains(t, out, "1. fakepm list failed. Even fakepm is avoiding this conversation.")
	assert.Contains(t, out, "2. "+diagnose.IssueStuckInOldWays)
	assert.NotContains(t, out, diagnose.IssueCommunicationBreakdown)
}
