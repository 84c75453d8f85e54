package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/tera/internal/config"
	terrors "github.com/conneroisu/tera/internal/errors"
)

func newConfigCmd(v *viper.Viper, flags *renderFlags) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect tool settings",
		Long: `Inspect the settings tera resolves from TERA_* environment variables,
the settings file and built-in defaults.`,
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective settings",
		Long: `Display the settings after loading the settings file, applying
environment variable overrides and filling in defaults.

Examples:
  tera config show                  # YAML
  tera config show --format json    # JSON
  tera config show --config ci.yml  # a specific settings file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(v, flags.configFile); err != nil {
				return err
			}
			settings, err := config.LoadSettings(v)
			if err != nil {
				return err
			}
			return showSettings(cmd.OutOrStdout(), settings, format)
		},
	}
	showCmd.Flags().StringVar(&format, "format", "yaml", "Output format (yaml, json)")

	configCmd.AddCommand(showCmd)
	return configCmd
}

func showSettings(w io.Writer, settings *config.Settings, format string) error {
	switch format {
	case "yaml", "yml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(settings); err != nil {
			return terrors.NewOutputError(terrors.ErrCodeWriteFailed, "failed to encode settings", err)
		}
		return encoder.Close()
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(settings)
	default:
		return terrors.NewValidationError(terrors.ErrCodeConfigInvalid,
			fmt.Sprintf("unsupported format: %s (supported: yaml, json)", format))
	}
}
