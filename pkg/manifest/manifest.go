// Package manifest loads the package.json of the project under diagnosis.
package manifest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ajxudir/deptherapist/pkg/errors"
	"github.com/ajxudir/deptherapist/pkg/verbose"
	"github.com/iancoleman/orderedmap"
)

// FileName is the manifest file looked up in the working directory.
const FileName = "package.json"

// MaxFileSize is the largest manifest that will be read.
const MaxFileSize int64 = 10 * 1024 * 1024

// Field names read from the manifest.
const (
	FieldDependencies    = "dependencies"
	FieldDevDependencies = "devDependencies"
)

// Dependency is one declared name/version pair.
type Dependency struct {
	Name    string
	Version string
}

// Manifest is the read-only view of package.json used by a session.
//
// Dependencies and DevDependencies keep the order in which they appear in
// the file.
type Manifest struct {
	Path            string
	Dependencies    []Dependency
	DevDependencies []Dependency
}

// DependencyCount returns the number of entries under "dependencies".
func (m *Manifest) DependencyCount() int {
	return len(m.Dependencies)
}

// DevDependencyCount returns the number of entries under "devDependencies".
func (m *Manifest) DevDependencyCount() int {
	return len(m.DevDependencies)
}

// DependencyNames returns the names under "dependencies" in file order.
func (m *Manifest) DependencyNames() []string {
	return names(m.Dependencies)
}

// DevDependencyNames returns the names under "devDependencies" in file order.
func (m *Manifest) DevDependencyNames() []string {
	return names(m.DevDependencies)
}

// Declared returns the version range declared for name, looking in
// "dependencies" first and then "devDependencies".
func (m *Manifest) Declared(name string) (string, bool) {
	for _, group := range [][]Dependency{m.Dependencies, m.DevDependencies} {
		for _, d := range group {
			if d.Name == name {
				return d.Version, true
			}
		}
	}
	return "", false
}

func names(deps []Dependency) []string {
	out := make([]string, len(deps))
	for i, d := range deps {
		out[i] = d.Name
	}
	return out
}

// PathIn returns the manifest path for a working directory.
func PathIn(dir string) string {
	return filepath.Join(dir, FileName)
}

// Load reads and parses package.json from dir.
//
// It performs the following operations:
//   - Returns *errors.ManifestMissingError when the file does not exist
//   - Rejects files larger than MaxFileSize
//   - Parses the JSON with key order preserved
//
// Parameters:
//   - dir: directory expected to contain package.json
//
// Returns:
//   - *Manifest: the parsed manifest
//   - error: ManifestMissingError, a read error, or a parse error
func Load(dir string) (*Manifest, error) {
	path := PathIn(dir)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &errors.ManifestMissingError{Path: path}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}
	if info.IsDir() {
		return nil, &errors.ManifestMissingError{Path: path}
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%s too large: %d bytes (max %d bytes)", FileName, info.Size(), MaxFileSize)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	m, err := Parse(content)
	if err != nil {
		return nil, err
	}
	m.Path = path
	return m, nil
}

// Parse parses manifest content.
//
// The root must be a JSON object. A dependency field that is absent counts
// as empty; one that is present but not an object is also treated as empty
// and logged. Version values that are not strings are kept with an empty
// version, since only names and counts matter to the checks.
//
// Parameters:
//   - content: raw package.json bytes
//
// Returns:
//   - *Manifest: parsed manifest with Path unset
//   - error: "failed to parse package.json: ..." when the JSON is invalid
func Parse(content []byte) (*Manifest, error) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("failed to parse %s: root must be a JSON object", FileName)
	}

	data := orderedmap.New()
	if err := data.UnmarshalJSON(trimmed); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &Manifest{
		Dependencies:    readField(data, FieldDependencies),
		DevDependencies: readField(data, FieldDevDependencies),
	}, nil
}

// readField extracts one dependency table in declaration order.
func readField(data *orderedmap.OrderedMap, field string) []Dependency {
	raw, ok := data.Get(field)
	if !ok || raw == nil {
		return nil
	}

	var deps orderedmap.OrderedMap
	switch v := raw.(type) {
	case orderedmap.OrderedMap:
		deps = v
	case *orderedmap.OrderedMap:
		deps = *v
	default:
		verbose.Infof("Ignoring %q in %s: expected an object, got %T", field, FileName, raw)
		return nil
	}

	keys := deps.Keys()
	out := make([]Dependency, 0, len(keys))
	for _, name := range keys {
		value, _ := deps.Get(name)
		version, _ := value.(string)
		out = append(out, Dependency{Name: name, Version: version})
	}
	return out
}
