// Package config provides configuration management for tera: tool settings
// loaded with Viper from flags, TERA_ environment variables and an optional
// settings file, and the resolved per-invocation configuration consumed by
// the rendering pipeline.
package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/viper"

	terrors "github.com/conneroisu/tera/internal/errors"
	"github.com/conneroisu/tera/internal/logging"
	"github.com/conneroisu/tera/internal/renderer"
)

// Settings keys shared by flags, environment variables and the settings file.
const (
	KeyRootKey    = "root_key"
	KeyFlatten    = "flatten"
	KeyAutoescape = "autoescape"
	KeyEngine     = "engine"
	KeyLogLevel   = "log_level"
	KeyLogFormat  = "log_format"
)

// DefaultRootKey nests the context under "c" unless told otherwise.
const DefaultRootKey = "c"

// EnvPrefix is prepended to every settings key when read from the environment.
const EnvPrefix = "TERA"

// Settings are the tool defaults that may come from outside the command line.
type Settings struct {
	RootKey    string `mapstructure:"root_key" yaml:"root_key" json:"root_key"`
	Flatten    bool   `mapstructure:"flatten" yaml:"flatten" json:"flatten"`
	Autoescape bool   `mapstructure:"autoescape" yaml:"autoescape" json:"autoescape"`
	Engine     string `mapstructure:"engine" yaml:"engine" json:"engine"`
	LogLevel   string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	LogFormat  string `mapstructure:"log_format" yaml:"log_format" json:"log_format"`
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyRootKey, DefaultRootKey)
	v.SetDefault(KeyFlatten, false)
	v.SetDefault(KeyAutoescape, false)
	v.SetDefault(KeyEngine, renderer.DefaultEngine)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "text")
}

// BindEnv makes v read TERA_<KEY> environment variables, e.g. TERA_ROOT_KEY.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// LoadSettings reads and validates settings from v.
func LoadSettings(v *viper.Viper) (*Settings, error) {
	SetDefaults(v)

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, terrors.NewConfigError(terrors.ErrCodeConfigInvalid, "failed to decode settings", err)
	}

	// Unmarshal skips values bound only through flags or the environment
	settings.RootKey = v.GetString(KeyRootKey)
	settings.Flatten = v.GetBool(KeyFlatten)
	settings.Autoescape = v.GetBool(KeyAutoescape)
	settings.Engine = strings.ToLower(v.GetString(KeyEngine))
	settings.LogLevel = v.GetString(KeyLogLevel)
	settings.LogFormat = strings.ToLower(v.GetString(KeyLogFormat))

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return &settings, nil
}

// Validate checks settings for correctness
func (s *Settings) Validate() error {
	if !s.Flatten {
		if err := ValidateRootKey(s.RootKey); err != nil {
			return err
		}
	}

	if _, err := renderer.New(s.Engine); err != nil {
		return err
	}

	if _, err := logging.ParseLevel(s.LogLevel); err != nil {
		return terrors.NewConfigError(terrors.ErrCodeConfigInvalid, "invalid log level", err)
	}

	if s.LogFormat != "text" && s.LogFormat != "json" {
		return terrors.NewConfigError(terrors.ErrCodeConfigInvalid,
			fmt.Sprintf("invalid log format %q (supported: text, json)", s.LogFormat), nil)
	}

	return nil
}

// EffectiveRootKey is the root key the context builder should use; empty
// means flatten.
func (s *Settings) EffectiveRootKey() string {
	if s.Flatten {
		return ""
	}
	return s.RootKey
}

// LoggerConfig converts the logging settings to a logger configuration.
func (s *Settings) LoggerConfig() *logging.LoggerConfig {
	cfg := logging.DefaultConfig()
	if level, err := logging.ParseLevel(s.LogLevel); err == nil {
		cfg.Level = level
	}
	cfg.Format = s.LogFormat
	return cfg
}

// ValidateRootKey checks that key can be used as a template variable name.
func ValidateRootKey(key string) error {
	if key == "" {
		return terrors.NewValidationError(terrors.ErrCodeInvalidRootKey,
			"root key cannot be empty; use --flatten to merge the context into the top level")
	}
	if !identifierPattern.MatchString(key) {
		return terrors.NewValidationError(terrors.ErrCodeInvalidRootKey,
			fmt.Sprintf("root key %q is not a valid identifier", key))
	}
	return nil
}
