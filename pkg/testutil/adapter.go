package testutil

import (
	"context"
	"fmt"

	"github.com/ajxudir/deptherapist/pkg/errors"
	"github.com/ajxudir/deptherapist/pkg/manager"
)

// Scripted is the canned outcome of one fake package manager operation.
//
// Fields:
//   - Output: what the command printed on stdout
//   - Stderr: what the command printed on stderr
//   - ExitCode: exit status; non-zero makes the operation fail
//   - Err: failure without an exit status, e.g. the program was not found;
//     takes precedence over ExitCode
type Scripted struct {
	Output   string
	Stderr   string
	ExitCode int
	Err      error
}

// FakeAdapter is a manager.Adapter returning scripted results and recording
// the operations called, in order.
type FakeAdapter struct {
	ManagerName string
	Installed   Scripted
	Outdated    Scripted
	Calls       []string
}

var _ manager.Adapter = (*FakeAdapter)(nil)

// NewFakeAdapter returns an npm adapter whose commands succeed with no
// output.
func NewFakeAdapter() *FakeAdapter {
	return &FakeAdapter{ManagerName: "npm"}
}

// Name implements manager.Adapter.
func (f *FakeAdapter) Name() string {
	return f.ManagerName
}

// ListInstalled implements manager.Adapter.
func (f *FakeAdapter) ListInstalled(ctx context.Context) (*manager.Result, error) {
	f.Calls = append(f.Calls, "list-installed")
	return f.result("npm list --depth=0", f.Installed)
}

// ListOutdated implements manager.Adapter.
func (f *FakeAdapter) ListOutdated(ctx context.Context) (*manager.Result, error) {
	f.Calls = append(f.Calls, "list-outdated")
	return f.result("npm outdated --json", f.Outdated)
}

func (f *FakeAdapter) result(command string, s Scripted) (*manager.Result, error) {
	if s.Err != nil {
		return &manager.Result{Command: command, ExitCode: -1}, &errors.SubcommandError{
			Command: command, ExitCode: -1, Err: s.Err,
		}
	}

	res := &manager.Result{
		Command:  command,
		Output:   []byte(s.Output + s.Stderr),
		Stdout:   []byte(s.Output),
		ExitCode: s.ExitCode,
	}
	if s.ExitCode != 0 {
		return res, &errors.SubcommandError{
			Command:  command,
			ExitCode: s.ExitCode,
			Output:   res.Output,
			Err:      fmt.Errorf("exit status %d", s.ExitCode),
		}
	}
	return res, nil
}
