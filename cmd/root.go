// Package cmd implements the command-line interface for deptherapist.
// A bare invocation runs a therapy session on the package.json in the
// current directory; subcommands only show version and configuration.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/ajxudir/deptherapist/pkg/config"
	"github.com/ajxudir/deptherapist/pkg/diagnose"
	"github.com/ajxudir/deptherapist/pkg/display"
	"github.com/ajxudir/deptherapist/pkg/errors"
	"github.com/ajxudir/deptherapist/pkg/manager"
	"github.com/ajxudir/deptherapist/pkg/manifest"
	"github.com/ajxudir/deptherapist/pkg/verbose"
	"github.com/spf13/cobra"
)

var exitFunc = os.Exit
var verboseFlag bool
var versionFlag bool
var skipBuildChecksFlag bool
var configFlag string

var (
	getwdFunc      = os.Getwd
	newAdapterFunc = func(cfg *config.Config) manager.Adapter { return manager.New(cfg) }
)

var rootCmd = &cobra.Command{
	Use:   "deptherapist",
	Short: "Counselling for your package.json",
	Long: `Reads package.json in the current directory, asks the package manager what is
installed and what is outdated, and tells you what is wrong with your dependencies.`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			verbose.Enable()
		}
		if !skipBuildChecksFlag {
			if warnings := GetBuildWarnings(); warnings != "" {
				fmt.Fprint(os.Stderr, warnings)
				fmt.Fprintln(os.Stderr)
			}
		}
	},
	RunE: runSession,
}

// Execute runs the root command and exits with appropriate code:
//   - 0: Session complete, whatever it found
//   - 1: No package.json in the current directory
//   - 2: Fatal error (unparseable manifest, unexpected outdated exit status)
//   - 3: Configuration or validation error
//
// Interrupt and terminate signals cancel the running package manager command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		code := errors.GetExitCode(err)
		if exitErr, ok := errors.IsExitError(err); !ok || !exitErr.Reported {
			errors.PrintError(os.Stderr, err)
		}
		verbose.Infof("Exit code %d: %v", code, err)

		stop()
		exitFunc(code)
	}
}

// ExecuteTest runs the root command for testing (returns error instead of exiting).
//
// Returns:
//   - error: Command execution error, or nil on success
func ExecuteTest() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable verbose debug output")
	rootCmd.PersistentFlags().BoolVar(&skipBuildChecksFlag, "skip-build-checks", false, "Skip build validation warnings (arch mismatch, prerelease)")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Config file path (default: .deptherapist.yml in the current directory)")

	// Local flag so that it only works on the root command.
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "v", false, "Show version information")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

// runSession runs one therapy session in the current directory.
//
// It performs the following operations:
//   - Step 0: Reports a missing package.json without reading configuration
//   - Step 1: Loads and strictly validates configuration
//   - Step 2: Checks that the configured programs are on PATH (verbose only)
//   - Step 3: Runs the session and prints its narrative to the command's stdout
//
// Parameters:
//   - cmd: Cobra command instance; its context cancels running subcommands
//   - args: Always empty; positional arguments are rejected
//
// Returns:
//   - error: nil when the session completed, whatever issues it found
func runSession(cmd *cobra.Command, args []string) error {
	if versionFlag {
		printVersionOutput(cmd.OutOrStdout())
		return nil
	}

	workDir, err := getwdFunc()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	printer := display.NewPrinter(cmd.OutOrStdout())

	// A missing package.json is reported before configuration is read; the
	// session stops at the manifest check and never reaches the adapter.
	if _, statErr := os.Stat(manifest.PathIn(workDir)); os.IsNotExist(statErr) {
		_, err := diagnose.NewSession(workDir, nil, printer).Run(ctx)
		return err
	}

	cfg, err := loadAndValidateConfig(configFlag, workDir)
	if err != nil {
		return err
	}

	if missing := manager.Preflight(cfg); len(missing) > 0 {
		verbose.Infof("Continuing without %d program(s) on PATH; the login shell may still find them", len(missing))
	}

	session := diagnose.NewSession(workDir, newAdapterFunc(cfg), printer)
	report, err := session.Run(ctx)
	if err != nil {
		return err
	}

	verbose.Infof("Session found %d issue(s)", len(report.Issues))
	return nil
}

// printVersionOutput prints version, build, and runtime information.
//
// Output includes build target platform, runtime platform (if different),
// Go version, build date, git commit, and version string.
func printVersionOutput(w io.Writer) {
	buildOS, buildArch := getBuildTarget()
	fmt.Fprintf(w, "  Build:   %s/%s\n", buildOS, buildArch)

	if buildOS != runtime.GOOS || buildArch != runtime.GOARCH {
		fmt.Fprintf(w, "  Runtime: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	}

	fmt.Fprintf(w, "  Go:      %s\n", runtime.Version())
	if BuildTime != "" {
		fmt.Fprintf(w, "  Date:    %s\n", BuildTime)
	}
	fmt.Fprintln(w)
	if GitCommit != "" {
		fmt.Fprintf(w, "  Git:     %s\n", GitCommit)
	}
	fmt.Fprintf(w, "  Version: %s\n", Version)
}
