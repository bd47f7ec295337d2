package testutil

import (
	"github.com/ajxudir/deptherapist/pkg/config"
)

// ConfigBuilder provides a fluent API for building test configurations.
type ConfigBuilder struct {
	cfg config.Config
}

// NewConfig creates a ConfigBuilder seeded with npm defaults and working
// directory ".".
//
// Returns:
//   - *ConfigBuilder: New builder instance ready for method chaining
func NewConfig() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: config.Config{
			Manager:       "npm",
			WorkingDir:    ".",
			ListInstalled: config.CommandCfg{Commands: "npm list --depth=0"},
			ListOutdated:  config.CommandCfg{Commands: "npm outdated --json"},
		},
	}
}

// WithWorkingDir sets the directory commands run in.
func (b *ConfigBuilder) WithWorkingDir(dir string) *ConfigBuilder {
	b.cfg.WorkingDir = dir
	return b
}

// WithManager sets the package manager display name.
func (b *ConfigBuilder) WithManager(name string) *ConfigBuilder {
	b.cfg.Manager = name
	return b
}

// WithListInstalled sets the list-installed command.
func (b *ConfigBuilder) WithListInstalled(commands string) *ConfigBuilder {
	b.cfg.ListInstalled.Commands = commands
	return b
}

// WithListOutdated sets the list-outdated command.
func (b *ConfigBuilder) WithListOutdated(commands string) *ConfigBuilder {
	b.cfg.ListOutdated.Commands = commands
	return b
}

// Build returns the built configuration.
//
// Returns:
//   - *config.Config: Pointer to a copy of the configuration
func (b *ConfigBuilder) Build() *config.Config {
	cfg := b.cfg
	return &cfg
}
