// Package config manages application configuration using Viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// WorkspaceEnvVar names the directory the hooks change into before running.
const WorkspaceEnvVar = "CLAUDE_WORKSPACE_DIR"

// ErrLintNotFormattable is returned when a lint extension is missing from the format set.
var ErrLintNotFormattable = errors.New("lint extension is not a format extension")

// Config represents the application configuration.
type Config struct {
	WorkspaceDir string      `mapstructure:"workspace_dir"`
	Hooks        HooksConfig `mapstructure:"hooks"`

	// File is the config file that was read, empty when only defaults and env applied.
	File string `mapstructure:"-"`
}

// HooksConfig groups per-hook settings.
type HooksConfig struct {
	Format    FormatConfig    `mapstructure:"format"`
	Typecheck TypecheckConfig `mapstructure:"typecheck"`
}

// FormatConfig configures the format-and-lint hook.
type FormatConfig struct {
	Formatter        []string `mapstructure:"formatter"`
	Linter           []string `mapstructure:"linter"`
	TimeoutSeconds   int      `mapstructure:"timeout_seconds"`
	FormatExtensions []string `mapstructure:"format_extensions"`
	LintExtensions   []string `mapstructure:"lint_extensions"`
	Lock             bool     `mapstructure:"lock"`
	CooldownSeconds  int      `mapstructure:"cooldown_seconds"`
}

// TypecheckConfig configures the typecheck-on-stop hook.
type TypecheckConfig struct {
	Diff               []string `mapstructure:"diff"`
	Untracked          []string `mapstructure:"untracked"`
	Checker            []string `mapstructure:"checker"`
	DiffTimeoutSeconds int      `mapstructure:"diff_timeout_seconds"`
	TimeoutSeconds     int      `mapstructure:"timeout_seconds"`
	Extensions         []string `mapstructure:"extensions"`
	IncludeUntracked   bool     `mapstructure:"include_untracked"`
	Lock               bool     `mapstructure:"lock"`
	CooldownSeconds    int      `mapstructure:"cooldown_seconds"`
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("workspace_dir", "")

	v.SetDefault("hooks.format.formatter", []string{"npx", "prettier", "--write"})
	v.SetDefault("hooks.format.linter", []string{"npx", "eslint", "--fix"})
	v.SetDefault("hooks.format.timeout_seconds", 30)
	v.SetDefault("hooks.format.format_extensions", []string{".ts", ".tsx", ".js", ".jsx", ".md", ".json"})
	v.SetDefault("hooks.format.lint_extensions", []string{".ts", ".tsx", ".js", ".jsx"})
	v.SetDefault("hooks.format.lock", false)
	v.SetDefault("hooks.format.cooldown_seconds", 0)

	v.SetDefault("hooks.typecheck.diff", []string{"git", "diff", "--name-only", "HEAD"})
	v.SetDefault("hooks.typecheck.untracked", []string{"git", "ls-files", "--others", "--exclude-standard"})
	v.SetDefault("hooks.typecheck.checker", []string{"npx", "tsc", "--noEmit"})
	v.SetDefault("hooks.typecheck.diff_timeout_seconds", 10)
	v.SetDefault("hooks.typecheck.timeout_seconds", 60)
	v.SetDefault("hooks.typecheck.extensions", []string{".ts", ".tsx"})
	v.SetDefault("hooks.typecheck.include_untracked", false)
	v.SetDefault("hooks.typecheck.lock", false)
	v.SetDefault("hooks.typecheck.cooldown_seconds", 0)
}

// Default returns the built-in configuration without reading files or the environment.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// Defaults always unmarshal and validate.
		panic(err)
	}
	return cfg
}

// Load loads configuration from files and environment variables.
// It searches for config files in the following order:
// 1. /etc/cc-ts-hooks/config.{toml,yaml,yml}
// 2. $XDG_CONFIG_HOME/cc-ts-hooks/config.{toml,yaml,yml} (or ~/.config/cc-ts-hooks/)
// 3. ./config.{toml,yaml,yml}
//
// Environment variables override file settings using the prefix CC_TS_HOOKS_
// For example: CC_TS_HOOKS_HOOKS_TYPECHECK_TIMEOUT_SECONDS.
// CLAUDE_WORKSPACE_DIR is honored for workspace_dir.
func Load() (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetConfigName("config")

	v.AddConfigPath("/etc/cc-ts-hooks/")
	v.AddConfigPath(getXDGConfigPath())
	v.AddConfigPath(".")

	v.SetEnvPrefix("CC_TS_HOOKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("workspace_dir", "CC_TS_HOOKS_WORKSPACE_DIR", WorkspaceEnvVar); err != nil {
		return nil, fmt.Errorf("bind workspace env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}
	cfg.File = v.ConfigFileUsed()
	return cfg, nil
}

// LoadWithViper loads configuration using a provided Viper instance.
// This is useful for testing or when you want to configure Viper differently.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		stringToFieldsHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports settings the hooks cannot run with.
func (c *Config) Validate() error {
	f := c.Hooks.Format
	if len(f.Formatter) == 0 {
		return errors.New("hooks.format.formatter must not be empty")
	}
	if len(f.Linter) == 0 {
		return errors.New("hooks.format.linter must not be empty")
	}
	for _, ext := range f.LintExtensions {
		if !slices.Contains(f.FormatExtensions, ext) {
			return fmt.Errorf("%w: %s", ErrLintNotFormattable, ext)
		}
	}

	if f.TimeoutSeconds <= 0 {
		return fmt.Errorf("hooks.format.timeout_seconds must be positive, got %d", f.TimeoutSeconds)
	}
	if f.CooldownSeconds < 0 {
		return fmt.Errorf("hooks.format.cooldown_seconds must not be negative, got %d", f.CooldownSeconds)
	}

	tc := c.Hooks.Typecheck
	if tc.DiffTimeoutSeconds <= 0 {
		return fmt.Errorf("hooks.typecheck.diff_timeout_seconds must be positive, got %d", tc.DiffTimeoutSeconds)
	}
	if tc.TimeoutSeconds <= 0 {
		return fmt.Errorf("hooks.typecheck.timeout_seconds must be positive, got %d", tc.TimeoutSeconds)
	}
	if tc.CooldownSeconds < 0 {
		return fmt.Errorf("hooks.typecheck.cooldown_seconds must not be negative, got %d", tc.CooldownSeconds)
	}
	if len(tc.Diff) == 0 {
		return errors.New("hooks.typecheck.diff must not be empty")
	}
	if len(tc.Checker) == 0 {
		return errors.New("hooks.typecheck.checker must not be empty")
	}
	if tc.IncludeUntracked && len(tc.Untracked) == 0 {
		return errors.New("hooks.typecheck.untracked must not be empty when include_untracked is set")
	}
	return nil
}

// stringToFieldsHookFunc splits a string into whitespace-separated fields
// when the target is a string slice, so an environment variable such as
// CC_TS_HOOKS_HOOKS_FORMAT_FORMATTER="npx biome format --write" yields an argv.
func stringToFieldsHookFunc() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.Slice || to.Elem().Kind() != reflect.String {
			return data, nil
		}
		return strings.Fields(data.(string)), nil
	}
}

// normalize lower-cases extensions and ensures they carry a leading dot.
func (c *Config) normalize() {
	c.Hooks.Format.FormatExtensions = normalizeExtensions(c.Hooks.Format.FormatExtensions)
	c.Hooks.Format.LintExtensions = normalizeExtensions(c.Hooks.Format.LintExtensions)
	c.Hooks.Typecheck.Extensions = normalizeExtensions(c.Hooks.Typecheck.Extensions)
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

// getXDGConfigPath returns the XDG config directory for cc-ts-hooks.
func getXDGConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "cc-ts-hooks")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if we can't get home
		return "."
	}

	return filepath.Join(homeDir, ".config", "cc-ts-hooks")
}
