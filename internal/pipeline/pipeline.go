// Package pipeline runs one invocation of tera: it resolves the context,
// reads the template, renders it and writes the result.
//
// Stages run strictly in order:
//
//	resolve-context -> read-template -> render -> write-output
//
// The first failure ends the run. Its error is tagged with the stage it came
// from and nothing is written to the destination.
package pipeline

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/conneroisu/tera/internal/config"
	terrors "github.com/conneroisu/tera/internal/errors"
	"github.com/conneroisu/tera/internal/logging"
	"github.com/conneroisu/tera/internal/output"
	"github.com/conneroisu/tera/internal/renderctx"
	"github.com/conneroisu/tera/internal/renderer"
	"github.com/conneroisu/tera/internal/source"
	"github.com/conneroisu/tera/internal/structured"
)

// Stage names used to tag errors and log records.
const (
	StageResolveContext = "resolve-context"
	StageReadTemplate   = "read-template"
	StageRender         = "render"
	StageWriteOutput    = "write-output"
)

// Pipeline holds the process resources a run needs. Zero fields fall back to
// the real filesystem, stdin, stdout and environment.
type Pipeline struct {
	Fs      afero.Fs
	Stdin   io.Reader
	Stdout  io.Writer
	Environ func() []string
	Logger  logging.Logger
}

func (p *Pipeline) applyDefaults() {
	if p.Fs == nil {
		p.Fs = afero.NewOsFs()
	}
	if p.Stdin == nil {
		p.Stdin = os.Stdin
	}
	if p.Stdout == nil {
		p.Stdout = os.Stdout
	}
	if p.Environ == nil {
		p.Environ = os.Environ
	}
	if p.Logger == nil {
		p.Logger = logging.NewNopLogger()
	}
}

// Run executes every stage for cfg.
func (p *Pipeline) Run(ctx context.Context, cfg *config.Resolved) error {
	p.applyDefaults()
	logger := p.Logger.WithComponent("pipeline")

	if cfg == nil {
		return terrors.NewValidationError(terrors.ErrCodeConfigInvalid, "no configuration to run")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	perf := logging.StartOperation(logger, "render-template")

	err := p.run(ctx, logger, cfg)
	if err != nil {
		perf.EndWithError(ctx, err)
		return err
	}

	perf.End(ctx)
	return nil
}

func (p *Pipeline) run(ctx context.Context, logger logging.Logger, cfg *config.Resolved) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	logger.Debug(ctx, "Resolving context", "stage", StageResolveContext, "source", cfg.Context.String())
	tmplCtx, err := p.ResolveContext(cfg.Context, cfg.RootKey)
	if err != nil {
		return terrors.AtStage(err, StageResolveContext)
	}

	logger.Debug(ctx, "Reading template", "stage", StageReadTemplate, "source", cfg.Template.Kind.String(),
		"path", cfg.Template.Path)
	text, err := source.NewReader(p.Fs, p.Stdin).ReadTemplate(cfg.Template)
	if err != nil {
		return terrors.AtStage(err, StageReadTemplate)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	logger.Debug(ctx, "Rendering", "stage", StageRender, "engine", cfg.Engine, "autoescape", cfg.Autoescape,
		"variables", len(tmplCtx))
	engine, err := renderer.New(cfg.Engine)
	if err != nil {
		return terrors.AtStage(err, StageRender)
	}
	rendered, err := renderer.Render(engine, text, tmplCtx, cfg.Autoescape)
	if err != nil {
		return terrors.AtStage(err, StageRender)
	}

	dest := output.For(cfg.Output, p.Stdout)
	logger.Debug(ctx, "Writing output", "stage", StageWriteOutput, "path", dest.String(), "bytes", len(rendered))
	if err := dest.Write(rendered); err != nil {
		return terrors.AtStage(err, StageWriteOutput)
	}

	return nil
}

// ResolveContext loads the configured context source and builds the template
// context from it.
func (p *Pipeline) ResolveContext(src config.ContextSource, rootKey string) (renderctx.Context, error) {
	p.applyDefaults()

	switch src.Kind {
	case config.ContextNone:
		return renderctx.Empty(rootKey), nil
	case config.ContextEnv:
		return renderctx.Build(structured.Environ(p.Environ()), rootKey)
	case config.ContextFile:
		value, err := structured.Load(p.Fs, src.Format, src.Path)
		if err != nil {
			return nil, err
		}
		ctx, err := renderctx.Build(value, rootKey)
		if err != nil {
			var te *terrors.ToolError
			if errors.As(err, &te) {
				te.WithPath(structured.ResolvePath(src.Format, src.Path))
			}
			return nil, err
		}
		return ctx, nil
	default:
		return nil, terrors.NewValidationError(terrors.ErrCodeConfigInvalid, "unknown context source "+src.Kind.String())
	}
}
