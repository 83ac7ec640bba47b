package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "ANNOVIEW_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (ANNOVIEW_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// ANNOVIEW_CHECKPOINT_DIR -> checkpoint_dir, etc.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validModes = map[Mode]bool{
	ModeCompare: true,
	ModeLegacy:  true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if !validModes[c.Mode] {
		return fmt.Errorf("invalid mode %q: must be one of compare, legacy", c.Mode)
	}

	if c.APIURL != "" {
		u, err := url.Parse(c.APIURL)
		if err != nil {
			return fmt.Errorf("invalid api_url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("invalid api_url %q: scheme must be http or https", c.APIURL)
		}
	} else if c.CheckpointDir == "" {
		return fmt.Errorf("checkpoint_dir is required when api_url is not set")
	}

	if c.FilePattern == "" {
		return fmt.Errorf("file_pattern is required")
	}
	if !doublestar.ValidatePattern(c.FilePattern) {
		return fmt.Errorf("invalid file_pattern %q", c.FilePattern)
	}

	if c.Mode == ModeLegacy && c.LegacyFile == "" && c.APIURL == "" {
		return fmt.Errorf("legacy_file is required in legacy mode")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must be non-negative")
	}

	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit must be non-negative")
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}

	return nil
}
