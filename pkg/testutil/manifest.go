package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ajxudir/deptherapist/pkg/manifest"
)

// ManifestJSON builds a package.json body with the given number of runtime
// and dev dependencies, named dep-01.. and dev-01.. in order.
//
// Parameters:
//   - deps: number of entries under "dependencies"
//   - devDeps: number of entries under "devDependencies"
//
// Returns:
//   - string: JSON document
func ManifestJSON(deps, devDeps int) string {
	return fmt.Sprintf(`{"name":"fixture","dependencies":{%s},"devDependencies":{%s}}`,
		entries("dep", deps), entries("dev", devDeps))
}

func entries(prefix string, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf(`"%s-%02d":"1.0.%d"`, prefix, i+1, i)
	}
	return strings.Join(parts, ",")
}

// WriteManifest writes content as package.json in dir.
//
// Parameters:
//   - t: Testing instance; the test fails if the file cannot be written
//   - dir: Directory to write into, usually t.TempDir()
//   - content: File body
//
// Returns:
//   - string: Path of the written file
func WriteManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, manifest.FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return path
}

// ProjectDir creates a temporary directory holding a package.json with the
// given dependency counts.
func ProjectDir(t *testing.T, deps, devDeps int) string {
	t.Helper()
	dir := t.TempDir()
	WriteManifest(t, dir, ManifestJSON(deps, devDeps))
	return dir
}
