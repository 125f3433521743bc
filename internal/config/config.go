package config

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/keyreg/internal/config/loader"
)

// EnvPrefix prefixes the environment variables that override settings.
const EnvPrefix = "KEYREG_"

// Config is the complete keyreg configuration.
type Config struct {
	Logging   LoggingConfig   `toml:"logging"`
	Clipboard ClipboardConfig `toml:"clipboard"`
	Plugins   PluginsConfig   `toml:"plugins"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	// File receives the log; empty means stderr.
	File string `toml:"file"`
}

// ClipboardConfig selects the clipboard provider.
type ClipboardConfig struct {
	Provider  string        `toml:"provider"`
	TimeoutMS int           `toml:"timeout_ms"`
	Command   CommandConfig `toml:"command"`
}

// CommandConfig lists the programs of the command provider.
type CommandConfig struct {
	Copy         []string `toml:"copy"`
	Paste        []string `toml:"paste"`
	PrimaryCopy  []string `toml:"primary_copy"`
	PrimaryPaste []string `toml:"primary_paste"`
}

// PluginsConfig lists Lua scripts run at startup.
type PluginsConfig struct {
	Scripts []string `toml:"scripts"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Clipboard: ClipboardConfig{
			Provider:  "auto",
			TimeoutMS: 1000,
		},
	}
}

// Timeout returns the clipboard round-trip timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Clipboard.TimeoutMS) * time.Millisecond
}

// Validate reports every setting holding an unacceptable value.
func (c *Config) Validate() error {
	var errs []error
	check := func(path string, value string, allowed ...string) {
		if !slices.Contains(allowed, value) {
			errs = append(errs, &ValidationError{
				Path:    path,
				Message: "must be one of " + strings.Join(allowed, ", "),
				Value:   value,
			})
		}
	}

	check("logging.level", c.Logging.Level, "debug", "info", "warn", "error")
	check("logging.format", c.Logging.Format, "text", "json")
	check("clipboard.provider", c.Clipboard.Provider, "auto", "command", "terminal", "memory")

	if c.Clipboard.TimeoutMS <= 0 {
		errs = append(errs, &ValidationError{
			Path:    "clipboard.timeout_ms",
			Message: "must be positive",
			Value:   c.Clipboard.TimeoutMS,
		})
	}
	if c.Clipboard.Provider == "command" {
		if len(c.Clipboard.Command.Copy) == 0 || len(c.Clipboard.Command.Paste) == 0 {
			errs = append(errs, &ValidationError{
				Path:    "clipboard.command",
				Message: "copy and paste are required by the command provider",
				Value:   c.Clipboard.Command,
			})
		}
	}
	return errors.Join(errs...)
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	fs  loader.FileSystem
	env loader.Loader
}

// WithFS reads the configuration file through fsys.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *loadOptions) { o.fs = fsys }
}

// WithEnv replaces the environment layer. A nil loader disables it.
func WithEnv(env loader.Loader) Option {
	return func(o *loadOptions) { o.env = env }
}

// Load layers the file at path and the environment over the defaults.
// An empty path or a missing file leaves the defaults in place.
func Load(path string, opts ...Option) (*Config, error) {
	o := loadOptions{
		fs:  loader.DefaultFS(),
		env: loader.NewEnvLoader(EnvPrefix, loader.WithKinds(settingKinds())),
	}
	for _, opt := range opts {
		opt(&o)
	}

	merged := make(map[string]any)
	if path != "" {
		file, err := loader.NewTOMLLoaderWithFS(o.fs, ExpandPath(path)).Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, file)
	}
	if o.env != nil {
		env, err := o.env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, env)
	}

	cfg, err := decode(merged)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// settingKinds maps the dotted path of every leaf setting to its type.
func settingKinds() map[string]loader.Kind {
	kinds := make(map[string]loader.Kind)
	collectKinds(reflect.TypeFor[Config](), "", kinds)
	return kinds
}

func collectKinds(t reflect.Type, prefix string, kinds map[string]loader.Kind) {
	for i := range t.NumField() {
		field := t.Field(i)
		name, _, _ := strings.Cut(field.Tag.Get("toml"), ",")
		if name == "" || name == "-" {
			continue
		}
		path := prefix + name

		switch ft := field.Type; ft.Kind() {
		case reflect.Struct:
			collectKinds(ft, path+".", kinds)
		case reflect.String:
			kinds[path] = loader.KindString
		case reflect.Int, reflect.Int64:
			kinds[path] = loader.KindInt
		case reflect.Bool:
			kinds[path] = loader.KindBool
		case reflect.Slice:
			if ft.Elem().Kind() == reflect.String {
				kinds[path] = loader.KindStringList
			}
		}
	}
}

// decode applies a merged settings map on top of the defaults.
func decode(settings map[string]any) (*Config, error) {
	data, err := toml.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	cfg := Default()
	if err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return cfg, nil
}

// DefaultPath returns the user configuration file under the XDG config
// directory.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "keyreg", "config.toml")
}

// ExpandPath replaces a leading ~ with the home directory. Paths it cannot
// expand are returned unchanged.
func ExpandPath(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

// ScriptPaths returns the plugin scripts with ~ expanded.
func (c *Config) ScriptPaths() []string {
	paths := make([]string, len(c.Plugins.Scripts))
	for i, p := range c.Plugins.Scripts {
		paths[i] = ExpandPath(p)
	}
	return paths
}
