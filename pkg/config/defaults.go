package config

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultConfigYAML string

//go:embed template.yml
var templateConfigYAML string

// loadDefaultConfig loads the embedded default configuration.
//
// The embedded file is covered by tests, so a decoding failure can only come
// from a broken build; the hardcoded npm values are returned in that case.
//
// Returns:
//   - *Config: the default configuration
func loadDefaultConfig() *Config {
	var cfg Config
	if err := yaml.Unmarshal([]byte(defaultConfigYAML), &cfg); err == nil {
		return &cfg
	}
	return &Config{
		Manager:       "npm",
		ListInstalled: CommandCfg{Commands: "npm list --depth=0"},
		ListOutdated:  CommandCfg{Commands: "npm outdated --json"},
	}
}

// GetDefaultConfig returns the embedded default configuration YAML.
func GetDefaultConfig() string {
	return defaultConfigYAML
}

// GetTemplateConfig returns the commented template written by 'config --init'.
func GetTemplateConfig() string {
	return templateConfigYAML
}
