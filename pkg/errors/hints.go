package errors

import (
	"strings"
)

// ErrorHint provides actionable resolution hints for common errors.
//
// Fields:
//   - Pattern: Substring to match in error message (case-insensitive)
//   - Hint: Brief description of the issue
//   - Resolution: Command or action to resolve the issue
type ErrorHint struct {
	Pattern    string
	Hint       string
	Resolution string
}

// CommandResolutionHints maps package manager binaries to installation instructions.
var CommandResolutionHints = map[string]string{
	"npm":  "Install Node.js: https://nodejs.org/",
	"npx":  "Install Node.js: https://nodejs.org/",
	"node": "Install Node.js: https://nodejs.org/",
	"yarn": "Install Yarn: https://yarnpkg.com/getting-started/install",
	"pnpm": "Install pnpm: https://pnpm.io/installation",
	"bun":  "Install Bun: https://bun.sh/docs/installation",
}

// CommonErrorHints maps error patterns to actionable hints.
// These are used by EnhanceErrorWithHint to add context to fatal errors.
var CommonErrorHints = []ErrorHint{
	{
		Pattern:    "failed to parse package.json",
		Hint:       "package.json is not valid JSON",
		Resolution: "Fix the syntax, e.g. with 'node -e \"require(\\\"./package.json\\\")\"'",
	},
	{
		Pattern:    "failed to parse outdated output",
		Hint:       "The package manager printed something other than JSON",
		Resolution: "Run the list_outdated command by hand and check its output",
	},
	{
		Pattern:    "command timed out",
		Hint:       "Package manager command took too long",
		Resolution: "Increase timeout_seconds in .deptherapist.yml or set it to 0",
	},
	{
		Pattern:    "failed to load config",
		Hint:       "Configuration file is invalid or not found",
		Resolution: "Run 'deptherapist config --validate' to check it",
	},
	{
		Pattern:    "exited with status 127",
		Hint:       "Package manager not found",
		Resolution: "Install the package manager or change the commands in .deptherapist.yml",
	},
	{
		Pattern:    "permission denied",
		Hint:       "Insufficient permissions",
		Resolution: "Check file permissions or run with appropriate privileges",
	},
	{
		Pattern:    "ENOTFOUND",
		Hint:       "DNS resolution failed",
		Resolution: "Check network connectivity and registry configuration",
	},
}

// GetHint returns an actionable hint for the given error.
//
// Parameters:
//   - err: The error to get a hint for
//
// Returns:
//   - string: The hint with resolution, or empty string if no hint found
func GetHint(err error) string {
	if err == nil {
		return ""
	}

	errStr := strings.ToLower(err.Error())
	for _, hint := range CommonErrorHints {
		if strings.Contains(errStr, strings.ToLower(hint.Pattern)) {
			return hint.Hint + ": " + hint.Resolution
		}
	}

	return ""
}

// GetHintForCommand returns the installation hint for a command.
//
// Parameters:
//   - cmd: The command name (e.g., "npm", "yarn")
//
// Returns:
//   - string: Installation hint, or empty string if unknown command
func GetHintForCommand(cmd string) string {
	return CommandResolutionHints[cmd]
}

// EnhanceErrorWithHint adds actionable hints to an error message if a matching pattern is found.
//
// Parameters:
//   - err: The error to enhance
//
// Returns:
//   - string: Error message with hint appended if found, otherwise just the error message
func EnhanceErrorWithHint(err error) string {
	if err == nil {
		return ""
	}

	if hint := GetHint(err); hint != "" {
		return err.Error() + "\n  \U0001F4A1 " + hint
	}

	return err.Error()
}
