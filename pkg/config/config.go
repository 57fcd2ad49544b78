// Package config provides configuration management for narma.
// It handles loading, validating and defaulting the settings that locate the
// ACIR cache directory and the external programs narma shells out to. The
// package reads an optional YAML file and lets a few environment variables
// override individual settings.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/narma/pkg/errutils"
	"github.com/hashicorp/go-version"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Settings Settings `yaml:"settings"`
}

// Settings represents general application settings.
type Settings struct {
	// Cache settings
	CacheDir string `yaml:"cache_dir"`

	// External programs
	Compiler           string `yaml:"compiler"`
	ACIRFlag           string `yaml:"acir_flag"`
	DiffTool           string `yaml:"diff_tool"`
	CompilerConstraint string `yaml:"compiler_constraint,omitempty"` // e.g. ">= 0.30.0"

	// Output settings
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // text, json
}

// Default configuration values.
const (
	// DefaultCacheDir is relative to the working directory of the invocation.
	DefaultCacheDir = "./.narma-cache"

	DefaultCompiler = "nargo"
	DefaultACIRFlag = "--print-acir"
	DefaultDiffTool = "diff"

	// DefaultConfigFile is looked up in the working directory when NARMA_CONFIG is unset.
	DefaultConfigFile = ".narma.yaml"

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// Environment variables consulted by Load.
const (
	EnvConfig   = "NARMA_CONFIG"
	EnvCacheDir = "NARMA_CACHE_DIR"
	EnvLogLevel = "NARMA_LOG"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Settings: Settings{
			CacheDir:  DefaultCacheDir,
			Compiler:  DefaultCompiler,
			ACIRFlag:  DefaultACIRFlag,
			DiffTool:  DefaultDiffTool,
			LogLevel:  "warn",
			LogFormat: "text",
		},
	}
}

// Load resolves the config file path from the environment, loads it and
// applies environment overrides. A missing file yields the defaults.
func Load(lookup func(string) (string, bool)) (*Config, error) {
	cfg, err := LoadConfig(ConfigPath(lookup))
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnv(lookup)
	if err := cfg.Validate(); err != nil {
		return nil, errutils.Wrap(errutils.ErrConfigValidation, err.Error())
	}
	return cfg, nil
}

// ConfigPath returns the config file named by NARMA_CONFIG, or the default file.
func ConfigPath(lookup func(string) (string, bool)) string {
	if p, ok := lookup(EnvConfig); ok && p != "" {
		return p
	}
	return DefaultConfigFile
}

// LoadConfig loads configuration from a file.
func LoadConfig(path string) (*Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errutils.Wrapf(err, "invalid config file path %s", path)
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errutils.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errutils.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errutils.Wrap(errutils.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, errutils.Wrap(errutils.ErrConfigValidation, err.Error())
	}

	return &config, nil
}

// ApplyEnv overrides settings from NARMA_CACHE_DIR and NARMA_LOG.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if dir, ok := lookup(EnvCacheDir); ok && dir != "" {
		c.Settings.CacheDir = dir
	}
	if level, ok := lookup(EnvLogLevel); ok && level != "" {
		c.Settings.LogLevel = level
	}
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	var sb strings.Builder
	encoder := yaml.NewEncoder(&sb)
	encoder.SetIndent(YAMLIndent)
	if err := encoder.Encode(c); err != nil {
		return nil, errutils.Wrap(errutils.ErrConfigMarshal, err.Error())
	}
	if err := encoder.Close(); err != nil {
		return nil, errutils.Wrap(errutils.ErrConfigMarshal, err.Error())
	}
	return []byte(sb.String()), nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errutils.ErrConfigValidation
	}
	return validateSettings(c.Settings)
}

func validateSettings(s Settings) error {
	if s.CacheDir == "" {
		return errutils.ErrCacheDirectory
	}
	if s.Compiler == "" {
		return errutils.ErrEmptyProgramWithKey("compiler")
	}
	if s.DiffTool == "" {
		return errutils.ErrEmptyProgramWithKey("diff_tool")
	}
	if s.CompilerConstraint != "" {
		if _, err := version.NewConstraint(s.CompilerConstraint); err != nil {
			return errutils.Wrapf(err, "compiler_constraint %q", s.CompilerConstraint)
		}
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(s.LogLevel)] {
		return errutils.ErrInvalidLogLevelWithDetails(s.LogLevel)
	}
	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[s.LogFormat] {
		return errutils.ErrInvalidLogFormatWithDetails(s.LogFormat)
	}
	return nil
}

// GetCacheDir returns the cache directory from settings.
func (c *Config) GetCacheDir() string {
	return c.Settings.CacheDir
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Settings.CacheDir == "" {
		c.Settings.CacheDir = defaults.Settings.CacheDir
	}
	if c.Settings.Compiler == "" {
		c.Settings.Compiler = defaults.Settings.Compiler
	}
	if c.Settings.ACIRFlag == "" {
		c.Settings.ACIRFlag = defaults.Settings.ACIRFlag
	}
	if c.Settings.DiffTool == "" {
		c.Settings.DiffTool = defaults.Settings.DiffTool
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.Settings.LogLevel
	}
	if c.Settings.LogFormat == "" {
		c.Settings.LogFormat = defaults.Settings.LogFormat
	}
}
