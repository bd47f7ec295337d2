// Package errors provides unified error types and display for deptherapist.
//
// This package consolidates all error handling into a single location:
//   - ExitError: Command exit with specific exit code
//   - ManifestMissingError: No package.json in the working directory
//   - SubcommandError: A package manager command exited non-zero or could not run
//   - ValidationError: Configuration validation failures
//
// Error Display:
//
// Fatal errors are printed with an actionable hint when one is known:
//
//	errors.PrintError(os.Stderr, err)
//
// Exit Codes:
//
// Standard exit codes are defined for scripting integration:
//   - ExitSuccess (0): Session completed, whatever the diagnosis
//   - ExitManifestMissing (1): No package.json found
//   - ExitFailure (2): Fatal error during the session
//   - ExitConfigError (3): Configuration or validation error
package errors
