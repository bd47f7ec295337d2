// Package config handles loading and validating deptherapist configuration.
// Configuration only describes how to talk to the package manager; the
// manifest location and the checks themselves are fixed.
package config

// LocalConfigName is the configuration file looked up in the working directory.
const LocalConfigName = ".deptherapist.yml"

// DefaultMaxConfigFileSize is the largest configuration file that will be read.
const DefaultMaxConfigFileSize int64 = 10 * 1024 * 1024

// Config is the root configuration.
//
// Fields:
//   - Manager: Display name of the package manager, used in issue text
//   - ListInstalled: Command that lists installed top-level packages
//   - ListOutdated: Command that lists outdated packages as a JSON object
//   - WorkingDir: Directory commands run in; set by LoadConfig, never read from YAML
//   - Source: Path of the file the configuration came from; empty for defaults
type Config struct {
	Manager       string     `yaml:"manager,omitempty"`
	ListInstalled CommandCfg `yaml:"list_installed,omitempty"`
	ListOutdated  CommandCfg `yaml:"list_outdated,omitempty"`

	WorkingDir string `yaml:"-"`
	Source     string `yaml:"-"`
}

// CommandCfg describes one package manager invocation.
type CommandCfg struct {
	// Commands is the shell command line. Lines ending in a backslash are
	// joined; separate lines run in sequence and stop at the first failure.
	Commands string `yaml:"commands,omitempty"`

	// Env holds environment variables to set when executing the command.
	Env map[string]string `yaml:"env,omitempty"`

	// TimeoutSeconds sets the command execution timeout. 0 means no timeout.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`
}

// IsZero reports whether the section was left out of the YAML entirely.
func (c CommandCfg) IsZero() bool {
	return c.Commands == "" && len(c.Env) == 0 && c.TimeoutSeconds == 0
}

// merge overlays the non-empty fields of override onto c.
func (c CommandCfg) merge(override CommandCfg) CommandCfg {
	out := c
	if override.Commands != "" {
		out.Commands = override.Commands
	}
	if len(override.Env) > 0 {
		env := make(map[string]string, len(c.Env)+len(override.Env))
		for k, v := range c.Env {
			env[k] = v
		}
		for k, v := range override.Env {
			env[k] = v
		}
		out.Env = env
	}
	if override.TimeoutSeconds != 0 {
		out.TimeoutSeconds = override.TimeoutSeconds
	}
	return out
}
