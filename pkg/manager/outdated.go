package manager

import (
	"bytes"
	"fmt"
	"strings"

	npmsemver "github.com/Masterminds/semver/v3"
	"github.com/ajxudir/deptherapist/pkg/constants"
	"github.com/ajxudir/deptherapist/pkg/verbose"
	"github.com/iancoleman/orderedmap"
	"golang.org/x/mod/semver"
)

// OutdatedEntry is one package reported by the outdated command.
//
// Fields other than Name are empty when the package manager omits them.
type OutdatedEntry struct {
	Name    string
	Current string
	Wanted  string
	Latest  string
}

// ParseOutdated parses outdated command output into entries.
//
// The output must be a JSON object keyed by package name, as printed by
// "npm outdated --json". Entries keep the order of the output. Workspaces
// make npm print an array of records per package; the first record is used.
// Lines a login shell profile prints before the object are skipped.
//
// Parameters:
//   - output: raw command output
//
// Returns:
//   - []OutdatedEntry: one entry per key; empty for "{}"
//   - error: "failed to parse outdated output: ..." if output is not a JSON object
func ParseOutdated(output []byte) ([]OutdatedEntry, error) {
	trimmed := skipPreamble(bytes.TrimSpace(output))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("failed to parse outdated output: expected a JSON object, got %q", preview(trimmed))
	}

	data := orderedmap.New()
	if err := data.UnmarshalJSON(trimmed); err != nil {
		return nil, fmt.Errorf("failed to parse outdated output: %w", err)
	}

	keys := data.Keys()
	entries := make([]OutdatedEntry, 0, len(keys))
	for _, name := range keys {
		raw, _ := data.Get(name)
		entry := OutdatedEntry{Name: name}
		if record, ok := firstRecord(raw); ok {
			entry.Current = stringField(record, "current")
			entry.Wanted = stringField(record, "wanted")
			entry.Latest = stringField(record, "latest")
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// skipPreamble drops whole lines before the first line that opens a JSON
// object. Output with no such line is returned unchanged.
func skipPreamble(output []byte) []byte {
	if len(output) == 0 || output[0] == '{' {
		return output
	}
	idx := bytes.Index(output, []byte("\n{"))
	if idx < 0 {
		return output
	}
	verbose.Printf("Skipping %d bytes printed before the outdated JSON", idx+1)
	return output[idx+1:]
}

// firstRecord returns the metadata object for one package.
func firstRecord(raw interface{}) (orderedmap.OrderedMap, bool) {
	switch v := raw.(type) {
	case orderedmap.OrderedMap:
		return v, true
	case map[string]interface{}:
		record := orderedmap.New()
		for key, val := range v {
			record.Set(key, val)
		}
		return *record, true
	case []interface{}:
		if len(v) > 0 {
			return firstRecord(v[0])
		}
	}
	return orderedmap.OrderedMap{}, false
}

func stringField(record orderedmap.OrderedMap, key string) string {
	v, ok := record.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// preview shortens output for error messages.
func preview(b []byte) string {
	s := string(b)
	if len(s) > 40 {
		return s[:40] + "..."
	}
	return s
}

// Bump classifies how far the latest version is ahead of the current one.
//
// Parameters:
//   - entry: outdated entry to classify
//
// Returns:
//   - string: constants.BumpMajor, BumpMinor, BumpPatch, or BumpUnknown when
//     either version is missing or not semver
func Bump(entry OutdatedEntry) string {
	current := canonicalSemver(entry.Current)
	latest := canonicalSemver(entry.Latest)
	if current == "" || latest == "" {
		return constants.BumpUnknown
	}

	switch {
	case semver.Major(current) != semver.Major(latest):
		return constants.BumpMajor
	case semver.MajorMinor(current) != semver.MajorMinor(latest):
		return constants.BumpMinor
	default:
		return constants.BumpPatch
	}
}

// canonicalSemver converts an npm version ("1.2.3", "1.2") to canonical
// "v1.2.3" form, or "" if it is not a semantic version.
func canonicalSemver(version string) string {
	cleaned := strings.TrimSpace(version)
	if cleaned == "" || cleaned == constants.PlaceholderNA || cleaned == "MISSING" {
		return ""
	}
	if !strings.HasPrefix(cleaned, "v") {
		cleaned = "v" + cleaned
	}
	if !semver.IsValid(cleaned) {
		return ""
	}
	return semver.Canonical(cleaned)
}

// Allowed reports whether version satisfies the range declared in
// package.json, e.g. whether "^17.0.0" admits "18.3.1".
//
// Parameters:
//   - declared: version range from package.json
//   - version: concrete version, usually OutdatedEntry.Latest
//
// Returns:
//   - allowed: true if version is inside the range
//   - ok: false if either side cannot be parsed (tags, git URLs, "file:" paths)
func Allowed(declared, version string) (allowed bool, ok bool) {
	declared = strings.TrimSpace(declared)
	if declared == "" {
		return false, false
	}
	constraint, err := npmsemver.NewConstraint(declared)
	if err != nil {
		return false, false
	}
	v, err := npmsemver.NewVersion(strings.TrimSpace(version))
	if err != nil {
		return false, false
	}
	return constraint.Check(v), true
}
