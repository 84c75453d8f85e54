package config

import (
	"fmt"
	"strings"

	terrors "github.com/conneroisu/tera/internal/errors"
	"github.com/conneroisu/tera/internal/source"
	"github.com/conneroisu/tera/internal/structured"
)

// ContextKind identifies where the template context comes from.
type ContextKind int

const (
	ContextNone ContextKind = iota
	ContextFile
	ContextEnv
)

// String returns the string representation of the kind
func (k ContextKind) String() string {
	switch k {
	case ContextNone:
		return "none"
	case ContextFile:
		return "file"
	case ContextEnv:
		return "env"
	default:
		return "unknown"
	}
}

// ContextSource is a tagged context source. Format and Path are only
// meaningful for ContextFile.
type ContextSource struct {
	Kind   ContextKind
	Format structured.Format
	Path   string
}

// NoContext selects an empty context.
func NoContext() ContextSource { return ContextSource{Kind: ContextNone} }

// EnvContext selects the process environment.
func EnvContext() ContextSource { return ContextSource{Kind: ContextEnv} }

// FileContext selects a structured file. A path of "." selects the format's default file.
func FileContext(format structured.Format, path string) ContextSource {
	return ContextSource{Kind: ContextFile, Format: format, Path: path}
}

// String describes the source for logs and diagnostics.
func (c ContextSource) String() string {
	if c.Kind == ContextFile {
		return fmt.Sprintf("%s:%s", c.Format, structured.ResolvePath(c.Format, c.Path))
	}
	return c.Kind.String()
}

// Resolved is the validated configuration of one invocation. Exactly one
// template source and one context source are active.
type Resolved struct {
	Template   source.Template
	Context    ContextSource
	RootKey    string // empty: flatten the context into the top level
	Autoescape bool
	Engine     string
	Output     string // empty: standard output
}

// Validate re-checks the invariants Resolve establishes.
func (r *Resolved) Validate() error {
	switch r.Template.Kind {
	case source.KindFile:
		if r.Template.Path == "" {
			return terrors.NewValidationError(terrors.ErrCodeConfigInvalid, "template file path is empty")
		}
	case source.KindInline, source.KindStdin:
	default:
		return terrors.NewValidationError(terrors.ErrCodeConfigInvalid,
			fmt.Sprintf("unknown template source %s", r.Template.Kind))
	}

	switch r.Context.Kind {
	case ContextFile:
		if r.Context.Path == "" {
			return terrors.NewValidationError(terrors.ErrCodeConfigInvalid, "context file path is empty")
		}
		if _, err := structured.ParseFormat(string(r.Context.Format)); err != nil {
			return err
		}
	case ContextNone, ContextEnv:
	default:
		return terrors.NewValidationError(terrors.ErrCodeConfigInvalid,
			fmt.Sprintf("unknown context source %s", r.Context.Kind))
	}

	if r.RootKey != "" {
		return ValidateRootKey(r.RootKey)
	}
	return nil
}

// Options are the raw choices collected by the command line. Nil template
// fields and absent ContextFiles entries mean "not given"; a context path of
// "." or "" selects the default file.
type Options struct {
	TemplateFile   *string
	TemplateInline *string
	ContextFiles   map[structured.Format]string
	ContextEnv     bool
	Output         string
}

// Resolve turns options plus settings into a Resolved configuration. It
// rejects conflicting sources without touching the filesystem.
func Resolve(opts Options, settings *Settings) (*Resolved, error) {
	tmpl, err := resolveTemplate(opts)
	if err != nil {
		return nil, err
	}

	ctxSource, err := resolveContext(opts)
	if err != nil {
		return nil, err
	}

	if settings == nil {
		settings = &Settings{RootKey: DefaultRootKey}
	}

	resolved := &Resolved{
		Template:   tmpl,
		Context:    ctxSource,
		RootKey:    settings.EffectiveRootKey(),
		Autoescape: settings.Autoescape,
		Engine:     settings.Engine,
		Output:     opts.Output,
	}

	if err := resolved.Validate(); err != nil {
		return nil, err
	}
	return resolved, nil
}

func resolveTemplate(opts Options) (source.Template, error) {
	if opts.TemplateFile != nil && opts.TemplateInline != nil {
		return source.Template{}, terrors.NewValidationError(terrors.ErrCodeConflictingSources,
			"only one template source may be given (template file or inline template)")
	}

	switch {
	case opts.TemplateFile != nil:
		return source.File(*opts.TemplateFile), nil
	case opts.TemplateInline != nil:
		return source.Inline(*opts.TemplateInline), nil
	default:
		return source.Stdin(), nil
	}
}

func resolveContext(opts Options) (ContextSource, error) {
	var chosen []string
	result := NoContext()

	for _, format := range structured.Formats() {
		path, ok := opts.ContextFiles[format]
		if !ok {
			continue
		}
		if path == "" {
			path = structured.DefaultPathMarker
		}
		chosen = append(chosen, string(format))
		result = FileContext(format, path)
	}

	if opts.ContextEnv {
		chosen = append(chosen, "env")
		result = EnvContext()
	}

	if len(chosen) > 1 {
		return ContextSource{}, terrors.NewValidationError(terrors.ErrCodeConflictingSources,
			fmt.Sprintf("at most one context source may be given, got %s", strings.Join(chosen, ", ")))
	}

	return result, nil
}
