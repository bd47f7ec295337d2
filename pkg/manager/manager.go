// Package manager is the adapter between a diagnostics session and the
// package manager CLI. It hides how commands are run so that the checks can
// be exercised against fakes.
package manager

import (
	"context"

	"github.com/ajxudir/deptherapist/pkg/cmdexec"
	"github.com/ajxudir/deptherapist/pkg/config"
	"github.com/ajxudir/deptherapist/pkg/errors"
)

// Result is the raw outcome of one package manager operation.
//
// Fields:
//   - Command: The command line that was run
//   - Output: Combined stdout and stderr
//   - Stdout: Standard output only; machine-readable output is parsed from here
//   - ExitCode: Process exit status; -1 if the process never reported one
type Result struct {
	Command  string
	Output   []byte
	Stdout   []byte
	ExitCode int
}

// Adapter lists installed and outdated packages.
//
// Both operations return a non-nil Result. The error is a
// *errors.SubcommandError whenever the command did not exit with status 0.
type Adapter interface {
	// Name returns the package manager's display name, e.g. "npm".
	Name() string

	// ListInstalled lists top-level installed packages as text.
	ListInstalled(ctx context.Context) (*Result, error)

	// ListOutdated lists outdated packages as a JSON object keyed by name,
	// printed on standard output.
	ListOutdated(ctx context.Context) (*Result, error)
}

// CommandAdapter runs the commands described by configuration.
type CommandAdapter struct {
	name      string
	dir       string
	installed config.CommandCfg
	outdated  config.CommandCfg
}

// New creates an adapter from configuration.
//
// Parameters:
//   - cfg: loaded configuration; WorkingDir is where the commands run
//
// Returns:
//   - *CommandAdapter: adapter ready to use
func New(cfg *config.Config) *CommandAdapter {
	return &CommandAdapter{
		name:      cfg.Manager,
		dir:       cfg.WorkingDir,
		installed: cfg.ListInstalled,
		outdated:  cfg.ListOutdated,
	}
}

// Name returns the configured package manager name.
func (a *CommandAdapter) Name() string {
	return a.name
}

// ListInstalled runs the list_installed command.
func (a *CommandAdapter) ListInstalled(ctx context.Context) (*Result, error) {
	return a.run(ctx, a.installed)
}

// ListOutdated runs the list_outdated command.
func (a *CommandAdapter) ListOutdated(ctx context.Context) (*Result, error) {
	return a.run(ctx, a.outdated)
}

// run executes one configured command and converts any failure into a
// SubcommandError carrying the exit code and captured output.
func (a *CommandAdapter) run(ctx context.Context, c config.CommandCfg) (*Result, error) {
	res, err := cmdexec.Run(ctx, c.Commands, c.Env, a.dir, c.TimeoutSeconds)
	if res == nil {
		return &Result{Command: c.Commands, ExitCode: -1}, &errors.SubcommandError{
			Command:  c.Commands,
			ExitCode: -1,
			Err:      err,
		}
	}

	out := &Result{Command: res.Command, Output: res.Output, Stdout: res.Stdout, ExitCode: res.ExitCode}
	if err != nil {
		return out, &errors.SubcommandError{
			Command:  res.Command,
			ExitCode: res.ExitCode,
			Output:   res.Output,
			Err:      err,
		}
	}
	return out, nil
}
