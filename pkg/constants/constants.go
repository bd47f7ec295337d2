// Package constants provides centralized string constants used throughout the application.
// This eliminates magic strings and provides a single source of truth for icons and labels.
package constants

// Icon constants for the session narrative.
// These mark each phase of a session in CLI output.
const (
	// IconBrain opens a session.
	IconBrain = "🧠"

	// IconPackage precedes the dependency count summary.
	IconPackage = "📦"

	// IconSearch precedes each check as it starts.
	IconSearch = "🔍"

	// IconPill introduces the diagnosis.
	IconPill = "💊"

	// IconCheckmarkBox indicates a clean bill of health.
	IconCheckmarkBox = "✅"

	// IconSiren introduces the list of issues found.
	IconSiren = "🚨"

	// IconLightbulb introduces the prescription.
	IconLightbulb = "💡"

	// IconError indicates an error or failed state (red X).
	IconError = "❌"

	// IconWarn is the warning prefix for messages.
	IconWarn = "⚠️"
)

// Version bump kinds reported for outdated packages.
const (
	// BumpMajor indicates the latest version has a higher major component.
	BumpMajor = "major"

	// BumpMinor indicates the latest version has a higher minor component.
	BumpMinor = "minor"

	// BumpPatch indicates only the patch or prerelease component differs.
	BumpPatch = "patch"

	// BumpUnknown indicates either version could not be parsed as semver.
	BumpUnknown = "unknown"
)

// PlaceholderNA is used when a value is not available.
const PlaceholderNA = "#N/A"
