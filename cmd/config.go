package cmd

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/ajxudir/deptherapist/pkg/config"
	"github.com/ajxudir/deptherapist/pkg/constants"
	"github.com/ajxudir/deptherapist/pkg/errors"
	"github.com/ajxudir/deptherapist/pkg/verbose"
	"github.com/spf13/cobra"
)

var (
	configShowDefaultsFlag  bool
	configShowEffectiveFlag bool
	configInitFlag          bool
	configValidateFlag      bool
)

var (
	loadConfigFunc     = config.LoadConfig
	validateConfigFunc = config.ValidateFile
	writeFileFunc      = os.WriteFile
)

// loadAndValidateConfig loads the configuration after validating it for
// unknown fields.
//
// Typos in .deptherapist.yml would otherwise be ignored silently and the
// session would run the default npm commands instead of the intended ones.
//
// Parameters:
//   - configPath: Path to custom config file, or empty for default location
//   - workDir: Working directory to search for the local config
//
// Returns:
//   - *config.Config: Loaded and validated configuration
//   - error: *errors.ExitError with ExitConfigError on any config problem
func loadAndValidateConfig(configPath, workDir string) (*config.Config, error) {
	path, err := validateConfigFunc(configPath, workDir)
	if err != nil {
		verbose.Infof("Exit code %d (config error): configuration validation failed for %s", errors.ExitConfigError, path)
		return nil, errors.NewExitError(errors.ExitConfigError, err)
	}

	cfg, err := loadConfigFunc(configPath, workDir)
	if err != nil {
		return nil, errors.NewExitError(errors.ExitConfigError, err)
	}

	return cfg, nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show, validate or create configuration",
	Long: `Show, validate or create the .deptherapist.yml file that tells the therapist
which package manager commands to run.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configShowDefaultsFlag, "show-defaults", false, "Show default configuration")
	configCmd.Flags().BoolVar(&configShowEffectiveFlag, "show-effective", false, "Show effective configuration")
	configCmd.Flags().BoolVar(&configInitFlag, "init", false, "Create .deptherapist.yml template")
	configCmd.Flags().BoolVar(&configValidateFlag, "validate", false, "Validate configuration file (rejects unknown fields)")
}

// runConfig executes the config command with the specified flags.
//
// Behavior depends on flags:
//   - --init: Creates a .deptherapist.yml template file
//   - --validate: Validates the configuration file for schema errors
//   - --show-defaults: Displays the default configuration
//   - --show-effective: Displays the effective merged configuration
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Command line arguments
//
// Returns:
//   - error: Returns error on validation or file operation failure
func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if configInitFlag {
		return createConfigTemplate(out)
	}

	if configValidateFlag {
		return validateConfig(out)
	}

	if configShowDefaultsFlag {
		fmt.Fprintln(out, "Default configuration:")
		fmt.Fprintln(out)
		fmt.Fprintln(out, config.GetDefaultConfig())
		return nil
	}

	if configShowEffectiveFlag {
		workDir, err := getwdFunc()
		if err != nil {
			return fmt.Errorf("failed to determine working directory: %w", err)
		}
		cfg, err := loadAndValidateConfig(configFlag, workDir)
		if err != nil {
			return err
		}
		printEffectiveConfig(out, cfg)
		return nil
	}

	return cmd.Help()
}

// printEffectiveConfig prints the merged configuration a session would use.
func printEffectiveConfig(w io.Writer, cfg *config.Config) {
	source := cfg.Source
	if source == "" {
		source = "built-in defaults"
	}

	fmt.Fprintln(w, "Effective configuration:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Source: %s\n", source)
	fmt.Fprintf(w, "Working Directory: %s\n", cfg.WorkingDir)
	fmt.Fprintf(w, "Manager: %s\n\n", cfg.Manager)

	for _, section := range []struct {
		name string
		cfg  config.CommandCfg
	}{
		{"list_installed", cfg.ListInstalled},
		{"list_outdated", cfg.ListOutdated},
	} {
		fmt.Fprintf(w, "%s:\n", section.name)
		fmt.Fprintf(w, "  Commands: %s\n", section.cfg.Commands)
		if section.cfg.TimeoutSeconds > 0 {
			fmt.Fprintf(w, "  Timeout: %ds\n", section.cfg.TimeoutSeconds)
		}
		if len(section.cfg.Env) > 0 {
			keys := make([]string, 0, len(section.cfg.Env))
			for k := range section.cfg.Env {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(w, "  Env: %s=%s\n", k, section.cfg.Env[k])
			}
		}
		fmt.Fprintln(w)
	}
}

// validateConfig validates the configuration file a session would use.
//
// If no path is specified via --config, validates .deptherapist.yml in the
// current working directory, and fails if there is none.
//
// Returns:
//   - error: Returns ExitError with ExitConfigError code on validation failure
func validateConfig(w io.Writer) error {
	workDir, err := getwdFunc()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	path, err := validateConfigFunc(configFlag, workDir)
	if path == "" {
		path = filepath.Join(workDir, config.LocalConfigName)
		return errors.NewExitErrorf(errors.ExitConfigError, "no configuration file to validate: %s", path)
	}
	if err == nil {
		fmt.Fprintf(w, "%s Configuration valid: %s\n", constants.IconCheckmarkBox, path)
		return nil
	}

	var all *errors.ValidationErrors
	if !stderrors.As(err, &all) {
		return errors.NewExitError(errors.ExitConfigError, err)
	}

	fmt.Fprintf(w, "%s Configuration validation failed for: %s\n\n", constants.IconError, path)
	for _, e := range all.Errors {
		fmt.Fprintf(w, "  ERROR: %s\n", e.Error())
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s Run 'deptherapist config --show-defaults' to see every valid key\n", constants.IconLightbulb)

	verbose.Infof("Exit code %d (config error): configuration validation failed for %s", errors.ExitConfigError, path)
	return &errors.ExitError{Code: errors.ExitConfigError, Err: err, Reported: true}
}

// createConfigTemplate creates a new .deptherapist.yml template file in the
// current directory. Fails if a config file already exists there.
func createConfigTemplate(w io.Writer) error {
	workDir, err := getwdFunc()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	configPath := filepath.Join(workDir, config.LocalConfigName)
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	// Owner read/write only, like other dotfiles.
	if err := writeFileFunc(configPath, []byte(config.GetTemplateConfig()), 0600); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	fmt.Fprintf(w, "Created configuration template: %s\n", configPath)
	return nil
}
