package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ajxudir/deptherapist/pkg/verbose"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from the specified path or defaults.
//
// If configPath is provided, it loads that specific config file.
// Otherwise, it looks for .deptherapist.yml in the working directory.
// Whatever is found is overlaid on the built-in defaults, so a file only
// needs to name the settings it changes.
//
// Parameters:
//   - configPath: path to the config file, or empty to search workDir
//   - workDir: working directory commands will run in
//
// Returns:
//   - *Config: the loaded and merged configuration
//   - error: any error encountered while reading or parsing the file
func LoadConfig(configPath, workDir string) (*Config, error) {
	cfg := loadDefaultConfig()

	path := configPath
	if path == "" && workDir != "" {
		local := filepath.Join(workDir, LocalConfigName)
		if _, err := os.Stat(local); err == nil {
			verbose.Infof("Found local config: %s", local)
			path = local
		}
	}

	if path != "" {
		loaded, err := loadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
		cfg = mergeConfig(cfg, loaded)
		cfg.Source = path
	}
	verbose.ConfigLoaded(cfg.Source)

	if workDir != "" {
		cfg.WorkingDir = workDir
	} else {
		cfg.WorkingDir = "."
	}

	return cfg, nil
}

// readConfigFile reads a config file, refusing anything over the size limit.
func readConfigFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > DefaultMaxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d bytes)", info.Size(), DefaultMaxConfigFileSize)
	}
	return os.ReadFile(path)
}

// loadConfigFile reads and parses a config file without strict field checks.
func loadConfigFile(path string) (*Config, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	return loadConfigData(data)
}

// loadConfigData parses YAML configuration data.
func loadConfigData(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return &cfg, nil
}

// mergeConfig overlays the values set in override on top of base.
//
// Parameters:
//   - base: configuration supplying defaults
//   - override: configuration read from a file
//
// Returns:
//   - *Config: a new configuration; neither input is modified
func mergeConfig(base, override *Config) *Config {
	out := *base
	if override.Manager != "" {
		out.Manager = override.Manager
	}
	out.ListInstalled = base.ListInstalled.merge(override.ListInstalled)
	out.ListOutdated = base.ListOutdated.merge(override.ListOutdated)
	return &out
}
