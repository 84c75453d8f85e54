// Package internal contains the implementation packages for the tera CLI.
//
// # Package Organization
//
//   - source: template text from a file, an inline string or stdin
//   - structured: TOML, JSON, YAML, HCL and environment parsing into one value tree
//   - renderctx: root-key nesting or flattening of the parsed value
//   - renderer: pongo2 and handlebars engines behind one interface
//   - config: tool settings (Viper) and the resolved per-run configuration
//   - pipeline: resolve-context, read-template, render, write-output
//   - output: stdout or atomic file destination
//   - errors: typed errors with codes, stages and exit statuses
//   - logging: slog-backed structured logging to stderr
//   - version: build information
//   - testutils: shared test fixtures
//
// # Data Flow
//
//	cmd -> config.Resolve -> pipeline.Run
//	         structured.Load -> renderctx.Build -> renderer.Render -> output.Writer
package internal
