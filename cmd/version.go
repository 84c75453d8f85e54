package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	terrors "github.com/conneroisu/tera/internal/errors"
	"github.com/conneroisu/tera/internal/renderer"
	"github.com/conneroisu/tera/internal/version"
)

func newVersionCmd() *cobra.Command {
	var (
		format string
		short  bool
	)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display version information for tera: version, git commit, build time,
Go version, platform and the available template engines.

Examples:
  tera version                 # Show version info
  tera version --short         # Show short version only
  tera version --format json   # Output as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVersion(cmd.OutOrStdout(), format, short)
		},
	}

	versionCmd.Flags().StringVar(&format, "format", "text", "Output format (text, json)")
	versionCmd.Flags().BoolVar(&short, "short", false, "Show short version only")

	return versionCmd
}

func runVersion(w io.Writer, format string, short bool) error {
	info := version.Get()
	info.Engines = renderer.Engines()

	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(info)
	case "text":
		if short {
			_, err := fmt.Fprintln(w, version.Short())
			return err
		}
		_, err := fmt.Fprintln(w, info.Detailed())
		return err
	default:
		return terrors.NewValidationError(terrors.ErrCodeConfigInvalid,
			fmt.Sprintf("unsupported format: %s (supported: text, json)", format))
	}
}
