// Package cmd provides the command-line interface for tera.
//
// Configuration System:
//
//	Tool settings are read with Viper from several sources, highest priority first:
//	1. Command-line flags (--root-key, --autoescape, --engine, ...)
//	2. TERA_<KEY> environment variables (TERA_ROOT_KEY, TERA_ENGINE, ...)
//	3. The settings file: --config, then TERA_CONFIG_FILE, then .tera-cli.yml
//	4. Built-in defaults
//
// Template and context sources are only ever taken from flags.
package cmd

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/tera/internal/config"
	terrors "github.com/conneroisu/tera/internal/errors"
	"github.com/conneroisu/tera/internal/logging"
	"github.com/conneroisu/tera/internal/pipeline"
)

// ConfigFileEnv names the environment variable that points at a settings file.
const ConfigFileEnv = "TERA_CONFIG_FILE"

const defaultConfigName = ".tera-cli"

// newRootCmd builds the command tree with its own Viper instance, so every
// call starts from a clean state.
func newRootCmd() *cobra.Command {
	v := viper.New()
	flags := &renderFlags{}

	rootCmd := &cobra.Command{
		Use:   "tera",
		Short: "Render a template against a TOML, JSON, YAML, HCL or environment context",
		Long: `tera renders a single template and prints the result.

The context comes from at most one source: a TOML, JSON, YAML or HCL file, the
process environment, or nothing at all. It is nested under a root key ("c" by
default) or, with --flatten, merged into the top level.

Examples:
  tera -s '{{ c.name }}' --toml              # context from .tera.toml
  tera -f page.html --json=site.json -a      # autoescape values
  tera -s '{{ HOME }}' --env --flatten
  echo '{{ c.a }}' | tera --yaml=data.yml -o out.txt`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			// Cobra checks groups after the run hooks; reject conflicts before any I/O
			if err := cmd.ValidateFlagGroups(); err != nil {
				return terrors.Wrap(err, terrors.ErrorTypeValidation, terrors.ErrCodeConflictingSources,
					"conflicting options")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, v, flags)
		},
	}

	addTemplateFlags(rootCmd, flags)
	addContextFlags(rootCmd, flags)
	addRenderingFlags(rootCmd, flags, v)
	addToolFlags(rootCmd, flags, v)

	rootCmd.AddCommand(newVersionCmd(), newConfigCmd(v, flags))

	return rootCmd
}

// Execute runs the root command. The caller reports the error and picks the
// exit status.
func Execute() error {
	return newRootCmd().Execute()
}

func runRender(cmd *cobra.Command, v *viper.Viper, flags *renderFlags) error {
	ctx := cmd.Context()

	opts := flags.options(cmd)
	// Sources are settled before the settings file is read.
	if _, err := config.Resolve(opts, &config.Settings{RootKey: config.DefaultRootKey}); err != nil {
		return err
	}

	if err := initConfig(v, flags.configFile); err != nil {
		return err
	}

	settings, err := config.LoadSettings(v)
	if err != nil {
		return err
	}
	// An explicit root key outranks flatten from the environment or settings file
	if cmd.Flags().Changed(flagRootKey) {
		settings.Flatten = false
		if err := config.ValidateRootKey(settings.RootKey); err != nil {
			return err
		}
	}

	logCfg := settings.LoggerConfig()
	logCfg.Output = cmd.ErrOrStderr()
	logger := logging.NewLogger(logCfg)

	if used := v.ConfigFileUsed(); used != "" {
		logger.Debug(ctx, "Using settings file", "path", used)
	}

	resolved, err := config.Resolve(opts, settings)
	if err != nil {
		return err
	}

	p := &pipeline.Pipeline{
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Logger: logger,
	}
	return p.Run(ctx, resolved)
}

// initConfig wires the settings file and environment into v.
//
// Settings file priority (highest to lowest):
//  1. --config flag
//  2. TERA_CONFIG_FILE environment variable
//  3. .tera-cli.yml in the current directory, if present
//
// An explicitly named file must exist; the default one is optional.
func initConfig(v *viper.Viper, cfgFile string) error {
	explicit := true
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv(ConfigFileEnv); envConfigFile != "" {
		v.SetConfigFile(envConfigFile)
	} else {
		explicit = false
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(defaultConfigName)
	}

	config.BindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !explicit && errors.As(err, &notFound) {
			return nil
		}
		return terrors.NewConfigError(terrors.ErrCodeConfigInvalid, "failed to read settings file", err).
			WithPath(configPath(v, cfgFile))
	}

	return nil
}

func configPath(v *viper.Viper, cfgFile string) string {
	if cfgFile != "" {
		return cfgFile
	}
	if env := strings.TrimSpace(os.Getenv(ConfigFileEnv)); env != "" {
		return env
	}
	if used := v.ConfigFileUsed(); used != "" {
		return used
	}
	return defaultConfigName + ".yml"
}
