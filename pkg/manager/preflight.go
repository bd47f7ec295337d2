package manager

import (
	"os/exec"

	"github.com/ajxudir/deptherapist/pkg/cmdexec"
	"github.com/ajxudir/deptherapist/pkg/config"
	"github.com/ajxudir/deptherapist/pkg/errors"
	"github.com/ajxudir/deptherapist/pkg/verbose"
)

// lookPath is exec.LookPath, replaceable in tests.
var lookPath = exec.LookPath

// Preflight checks that the programs the configured commands start with can
// be found on PATH.
//
// A missing program is only logged: the command still runs, may still be
// found by the login shell (nvm, asdf), and its failure is part of the
// diagnosis rather than a reason to stop.
//
// Parameters:
//   - cfg: configuration whose commands are checked
//
// Returns:
//   - []string: programs not found on PATH, in check order, without duplicates
func Preflight(cfg *config.Config) []string {
	var missing []string
	seen := make(map[string]bool)

	for _, c := range []config.CommandCfg{cfg.ListInstalled, cfg.ListOutdated} {
		program := cmdexec.Executable(c.Commands)
		if program == "" || seen[program] {
			continue
		}
		seen[program] = true

		if _, err := lookPath(program); err == nil {
			verbose.Infof("Preflight: %s found on PATH", program)
			continue
		}

		missing = append(missing, program)
		if hint := errors.GetHintForCommand(program); hint != "" {
			verbose.Infof("Preflight: %s not found on PATH (%s)", program, hint)
		} else {
			verbose.Infof("Preflight: %s not found on PATH", program)
		}
	}

	return missing
}
