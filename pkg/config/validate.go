package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ajxudir/deptherapist/pkg/errors"
	"gopkg.in/yaml.v3"
)

// validKeys lists the accepted keys for each level of the schema.
var validKeys = map[string][]string{
	"Config":     {"manager", "list_installed", "list_outdated"},
	"CommandCfg": {"commands", "env", "timeout_seconds"},
}

// unknownFieldPattern matches yaml.v3 strict-mode errors such as
// "line 4: field timeout not found in type config.CommandCfg".
var unknownFieldPattern = regexp.MustCompile(`line (\d+): field (\S+) not found in type config\.(\w+)`)

// ValidateConfigFile validates configuration data, rejecting unknown fields.
//
// It performs the following operations:
//   - Decodes the YAML with KnownFields enabled
//   - Converts each unknown-field report into a ValidationError listing valid keys
//   - Checks that timeouts are not negative
//
// Parameters:
//   - data: raw YAML
//   - source: file name used in the error message; may be empty
//
// Returns:
//   - *errors.ValidationErrors: collected problems; use HasErrors to check
func ValidateConfigFile(data []byte, source string) *errors.ValidationErrors {
	result := &errors.ValidationErrors{Source: source}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	err := decoder.Decode(&cfg)
	if stderrors.Is(err, io.EOF) {
		return result
	}

	var typeErr *yaml.TypeError
	switch {
	case err == nil:
	case stderrors.As(err, &typeErr):
		for _, msg := range typeErr.Errors {
			result.Errors = append(result.Errors, typeErrorToValidation(msg))
		}
	default:
		result.Errors = append(result.Errors, &errors.ValidationError{
			Message: fmt.Sprintf("invalid YAML: %v", err),
		})
		return result
	}

	sections := []struct {
		name string
		cfg  CommandCfg
	}{
		{"list_installed", cfg.ListInstalled},
		{"list_outdated", cfg.ListOutdated},
	}
	for _, section := range sections {
		if section.cfg.TimeoutSeconds < 0 {
			result.Errors = append(result.Errors, &errors.ValidationError{
				Field:    section.name + ".timeout_seconds",
				Message:  "must not be negative",
				Expected: "0 (no timeout) or a positive number of seconds",
			})
		}
	}
	if cfg.Manager != "" && strings.TrimSpace(cfg.Manager) == "" {
		result.Errors = append(result.Errors, &errors.ValidationError{
			Field:   "manager",
			Message: "must not be blank",
		})
	}

	return result
}

// typeErrorToValidation converts one yaml.v3 type error line.
func typeErrorToValidation(msg string) *errors.ValidationError {
	m := unknownFieldPattern.FindStringSubmatch(msg)
	if m == nil {
		return &errors.ValidationError{Message: msg}
	}
	return &errors.ValidationError{
		Field:     m[2],
		Message:   fmt.Sprintf("unknown field (line %s)", m[1]),
		ValidKeys: validKeys[m[3]],
	}
}

// ValidateFile reads and validates the configuration that LoadConfig would use.
//
// Parameters:
//   - configPath: explicit config path, or empty to look in workDir
//   - workDir: directory searched for .deptherapist.yml
//
// Returns:
//   - string: path that was validated; empty when only defaults apply
//   - error: read failure, or *errors.ValidationErrors when the file is invalid
func ValidateFile(configPath, workDir string) (string, error) {
	path := configPath
	if path == "" {
		local := filepath.Join(workDir, LocalConfigName)
		if _, err := os.Stat(local); err != nil {
			return "", nil
		}
		path = local
	}

	data, err := readConfigFile(path)
	if err != nil {
		return path, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	if result := ValidateConfigFile(data, path); result.HasErrors() {
		return path, result
	}
	return path, nil
}
