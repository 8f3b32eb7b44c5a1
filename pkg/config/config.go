// Package config loads totxt settings from flags, environment and an
// optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/makwanadeepam/totxt/pkg/filter"
)

// DefaultFileName is searched for in the working directory and $HOME.
const DefaultFileName = ".totxt.yaml"

// configName is DefaultFileName without its extension, as viper expects.
const configName = ".totxt"

// EnvPrefix prefixes environment overrides, e.g. TOTXT_MAX_SIZE_KB.
const EnvPrefix = "TOTXT"

// Config is the effective configuration of one invocation.
type Config struct {
	MaxSizeKB  int      `mapstructure:"max_size_kb" yaml:"max_size_kb"`
	Output     string   `mapstructure:"output" yaml:"output"`
	BasePath   string   `mapstructure:"base_path" yaml:"base_path"`
	Exclude    []string `mapstructure:"exclude" yaml:"exclude"`
	Ignore     []string `mapstructure:"ignore" yaml:"ignore"`
	IgnoreFile string   `mapstructure:"ignore_file" yaml:"ignore_file"`
	Workers    int      `mapstructure:"workers" yaml:"workers"`
	Sniff      bool     `mapstructure:"sniff" yaml:"sniff"`
	CloneDepth int      `mapstructure:"clone_depth" yaml:"clone_depth"`

	// Source is the config file that was read, if any.
	Source string `mapstructure:"-" yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		MaxSizeKB:  filter.DefaultMaxFileSizeKB,
		BasePath:   ".",
		Exclude:    []string{},
		Ignore:     []string{},
		IgnoreFile: filter.DefaultIgnoreFile,
	}
}

// Load reads configuration from defaults, an optional config file and the
// environment. Precedence: env > config file > defaults. An explicit
// cfgFile must exist; the default file is optional.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("max_size_kb", d.MaxSizeKB)
	v.SetDefault("output", d.Output)
	v.SetDefault("base_path", d.BasePath)
	v.SetDefault("exclude", d.Exclude)
	v.SetDefault("ignore", d.Ignore)
	v.SetDefault("ignore_file", d.IgnoreFile)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("sniff", d.Sniff)
	v.SetDefault("clone_depth", d.CloneDepth)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Source = v.ConfigFileUsed()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects values no command can work with.
func (c *Config) Validate() error {
	if c.MaxSizeKB <= 0 {
		return fmt.Errorf("max_size_kb must be positive, got %d", c.MaxSizeKB)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.CloneDepth < 0 {
		return fmt.Errorf("clone_depth must not be negative, got %d", c.CloneDepth)
	}
	return nil
}

// FilterConfig converts c to the file selection settings. Configured
// exclusions are added to filter.DefaultExclude.
func (c *Config) FilterConfig() filter.Config {
	fc := filter.DefaultConfig()
	fc.MaxFileSize = filter.KB(c.MaxSizeKB)
	fc.Exclude = append(fc.Exclude, c.Exclude...)
	fc.IgnoreFile = c.IgnoreFile
	fc.IgnoreRules = append([]string(nil), c.Ignore...)
	fc.Workers = c.Workers
	fc.Sniff = c.Sniff
	return fc
}

// Marshal renders c as YAML.
func Marshal(c *Config) ([]byte, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	return b, nil
}

// Save writes c as YAML to path.
func Save(c *Config, path string) error {
	b, err := Marshal(c)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
