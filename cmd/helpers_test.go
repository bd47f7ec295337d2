package cmd

import (
	"bytes"
	"testing"

	"github.com/ajxudir/deptherapist/pkg/config"
	"github.com/ajxudir/deptherapist/pkg/manager"
	"github.com/ajxudir/deptherapist/pkg/testutil"
	"github.com/ajxudir/deptherapist/pkg/verbose"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// resetFlags restores every flag global, since cobra only writes the flags
// that appear on a command line. cobra's own help flag is stored in the flag
// set rather than a global and is reset there.
func resetFlags() {
	for _, c := range []*cobra.Command{rootCmd, versionCmd, configCmd} {
		if f := c.Flags().Lookup("help"); f != nil {
			_ = f.Value.Set("false")
			f.Changed = false
		}
	}

	verboseFlag = false
	versionFlag = false
	skipBuildChecksFlag = true
	configFlag = ""
	configShowDefaultsFlag = false
	configShowEffectiveFlag = false
	configInitFlag = false
	configValidateFlag = false
}

// cliEnv points the CLI at dir and routes the adapter to fake when it is
// non-nil. Everything is restored when the test ends.
func cliEnv(t *testing.T, dir string, fake *testutil.FakeAdapter) {
	t.Helper()

	oldGetwd := getwdFunc
	oldAdapter := newAdapterFunc
	oldNoColor := color.NoColor

	getwdFunc = func() (string, error) { return dir, nil }
	if fake != nil {
		newAdapterFunc = func(cfg *config.Config) manager.Adapter { return fake }
	}
	color.NoColor = true
	resetFlags()

	t.Cleanup(func() {
		getwdFunc = oldGetwd
		newAdapterFunc = oldAdapter
		color.NoColor = oldNoColor
		resetFlags()
		verbose.Disable()
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})
}

// runCLI runs the root command with args and returns what it printed to its
// stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := ExecuteTest()
	return out.String(), err
}
