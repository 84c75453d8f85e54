package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/conneroisu/tera/internal/config"
	"github.com/conneroisu/tera/internal/renderer"
	"github.com/conneroisu/tera/internal/structured"
)

// Flag names shared by the root command and its tests.
const (
	flagTemplateFile = "template-file"
	flagTemplate     = "template"
	flagEnv          = "env"
	flagRootKey      = "root-key"
	flagFlatten      = "flatten"
	flagAutoescape   = "autoescape"
	flagEngine       = "engine"
	flagOutput       = "output"
	flagConfig       = "config"
	flagLogLevel     = "log-level"
)

// renderFlags holds the raw command-line choices for one invocation.
type renderFlags struct {
	templateFile   string
	templateInline string
	contextFiles   map[structured.Format]*string
	env            bool
	output         string
	configFile     string
}

func addTemplateFlags(cmd *cobra.Command, f *renderFlags) {
	cmd.Flags().StringVarP(&f.templateFile, flagTemplateFile, "f", "", "Read the template from `PATH`")
	cmd.Flags().StringVarP(&f.templateInline, flagTemplate, "s", "", "Use `TEXT` as the template")
	cmd.MarkFlagsMutuallyExclusive(flagTemplateFile, flagTemplate)
}

func addContextFlags(cmd *cobra.Command, f *renderFlags) {
	f.contextFiles = make(map[structured.Format]*string)
	group := make([]string, 0, len(structured.Formats())+1)

	for _, format := range structured.Formats() {
		name := string(format)
		f.contextFiles[format] = cmd.Flags().String(name, "",
			"Load the context from a "+format.Label()+" `PATH` (bare flag: "+format.DefaultPath()+")")
		cmd.Flags().Lookup(name).NoOptDefVal = structured.DefaultPathMarker
		group = append(group, name)
	}

	cmd.Flags().BoolVarP(&f.env, flagEnv, "e", false, "Use environment variables as the context")
	group = append(group, flagEnv)

	cmd.MarkFlagsMutuallyExclusive(group...)
}

func addRenderingFlags(cmd *cobra.Command, f *renderFlags, v *viper.Viper) {
	flags := cmd.Flags()
	flags.StringP(flagRootKey, "r", config.DefaultRootKey, "Nest the context under `KEY`")
	flags.Bool(flagFlatten, false, "Merge the top-level mapping into the context instead of nesting it")
	flags.BoolP(flagAutoescape, "a", false, "HTML-escape substituted values")
	flags.String(flagEngine, renderer.DefaultEngine, "Template engine (pongo2, handlebars)")
	flags.StringVarP(&f.output, flagOutput, "o", "", "Write the result to `PATH` instead of standard output")
	cmd.MarkFlagsMutuallyExclusive(flagRootKey, flagFlatten)

	bindFlag(v, config.KeyRootKey, flags.Lookup(flagRootKey))
	bindFlag(v, config.KeyFlatten, flags.Lookup(flagFlatten))
	bindFlag(v, config.KeyAutoescape, flags.Lookup(flagAutoescape))
	bindFlag(v, config.KeyEngine, flags.Lookup(flagEngine))
}

func addToolFlags(cmd *cobra.Command, f *renderFlags, v *viper.Viper) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&f.configFile, flagConfig, "",
		"Settings file (default is .tera-cli.yml, can also use TERA_CONFIG_FILE env var)")
	flags.StringP(flagLogLevel, "l", "warn", "Log level (debug, info, warn, error)")

	bindFlag(v, config.KeyLogLevel, flags.Lookup(flagLogLevel))
}

func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	// BindPFlag only fails on a nil flag
	_ = v.BindPFlag(key, flag)
}

// options converts the flags the user actually set into config.Options.
func (f *renderFlags) options(cmd *cobra.Command) config.Options {
	flags := cmd.Flags()
	opts := config.Options{
		ContextFiles: make(map[structured.Format]string),
		ContextEnv:   f.env,
		Output:       f.output,
	}

	if flags.Changed(flagTemplateFile) {
		path := f.templateFile
		opts.TemplateFile = &path
	}
	if flags.Changed(flagTemplate) {
		text := f.templateInline
		opts.TemplateInline = &text
	}

	for format, value := range f.contextFiles {
		if flags.Changed(string(format)) {
			opts.ContextFiles[format] = *value
		}
	}

	return opts
}
