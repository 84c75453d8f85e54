// Command overview for tera.
//
// # Usage
//
//	tera [flags]
//	tera version [--format text|json] [--short]
//
// # Template source (at most one; default is standard input)
//
//	-f, --template-file PATH
//	-s, --template TEXT
//
// # Context source (at most one; default is an empty context)
//
//	--toml[=PATH]   bare flag reads .tera.toml
//	--json[=PATH]   bare flag reads .tera.json
//	--yaml[=PATH]   bare flag reads .tera.yml
//	--hcl[=PATH]    bare flag reads .tera.hcl
//	-e, --env       process environment
//
// A path must be attached with '=' because the flags accept a bare form.
//
// # Exit status
//
//	0 success, 1 usage or settings error, 2 unreadable input,
//	3 malformed context, 4 template error, 5 output error.
package cmd
