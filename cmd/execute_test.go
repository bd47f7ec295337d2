package cmd

import (
	"testing"

	"github.com/ajxudir/deptherapist/pkg/errors"
	"github.com/ajxudir/deptherapist/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExecuteWithExitCodes tests the behavior of Execute with different exit codes.
//
// It verifies:
//   - Successful commands do not call exitFunc
//   - Unknown arguments exit with ExitFailure and print the error
//   - A missing manifest exits with ExitManifestMissing without printing an error twice
//   - A fatal session error is printed with its hint
func TestExecuteWithExitCodes(t *testing.T) {
	oldExit := exitFunc
	defer func() { exitFunc = oldExit }()

	t.Run("help does not exit", func(t *testing.T) {
		cliEnv(t, t.TempDir(), testutil.NewFakeAdapter())
		exitCode := -1
		exitFunc = func(code int) { exitCode = code }

		rootCmd.SetArgs([]string{"--help"})
		_ = testutil.CaptureStdout(t, Execute)

		assert.Equal(t, -1, exitCode)
	})

	t.Run("unknown argument exits with failure", func(t *testing.T) {
		cliEnv(t, t.TempDir(), testutil.NewFakeAdapter())
		exitCode := -1
		exitFunc = func(code int) { exitCode = code }

		rootCmd.SetArgs([]string{"nonexistent-subcommand-xyz"})
		stderr := testutil.CaptureStderr(t, Execute)

		assert.Equal(t, errors.ExitFailure, exitCode)
		assert.Contains(t, stderr, "Error: unknown command")
	})

	t.Run("missing manifest exits with 1", func(t *testing.T) {
		cliEnv(t, t.TempDir(), testutil.NewFakeAdapter())
		exitCode := -1
		exitFunc = func(code int) { exitCode = code }

		rootCmd.SetArgs([]string{})
		stdout, stderr := testutil.CaptureOutput(t, Execute)

		assert.Equal(t, errors.ExitManifestMissing, exitCode)
		assert.Contains(t, stdout, "No package.json found.")
		assert.NotContains(t, stderr, "Error:")
	})

	t.Run("fatal error is printed with hint", func(t *testing.T) {
		dir := t.TempDir()
		testutil.WriteManifest(t, dir, `{"dependencies":`)
		cliEnv(t, dir, testutil.NewFakeAdapter())
		exitCode := -1
		exitFunc = func(code int) { exitCode = code }

		rootCmd.SetArgs([]string{})
		_, stderr := testutil.CaptureOutput(t, Execute)

		assert.Equal(t, errors.ExitFailure, exitCode)
		assert.Contains(t, stderr, "Error: failed to parse package.json")
		assert.Contains(t, stderr, "package.json is not valid JSON")
	})
}

// TestSessionRunsAfterHelp tests that a --help invocation does not leave the
// root command printing usage on the next run.
func TestSessionRunsAfterHelp(t *testing.T) {
	fake := testutil.NewFakeAdapter()
	cliEnv(t, testutil.ProjectDir(t, 1, 0), fake)

	out, err := runCLI(t, "--help")
	require.NoError(t, err)
	require.Contains(t, out, "Usage:")

	cliEnv(t, testutil.ProjectDir(t, 1, 0), fake)
	out, err = runCLI(t)
	require.NoError(t, err)
	assert.Contains(t, out, "THERAPIST'S DIAGNOSIS:")
	assert.NotContains(t, out, "Usage:")
	assert.Equal(t, []string{"list-installed", "list-outdated"}, fake.Calls)

	out, err = runCLI(t, "config", "--help")
	require.NoError(t, err)
	require.Contains(t, out, "--show-defaults")

	cliEnv(t, t.TempDir(), nil)
	out, err = runCLI(t, "config", "--show-defaults")
	require.NoError(t, err)
	assert.Contains(t, out, "Default configuration:")
	assert.NotContains(t, out, "Usage:")
}

// TestExecuteTest tests the behavior of ExecuteTest.
func TestExecuteTest(t *testing.T) {
	cliEnv(t, testutil.ProjectDir(t, 0, 0), testutil.NewFakeAdapter())

	out, err := runCLI(t, "version")
	assert.NoError(t, err)
	assert.Contains(t, out, "Version:")
}
