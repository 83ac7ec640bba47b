package config

import "time"

// Mode selects which viewer variant is served.
type Mode string

const (
	// ModeCompare serves the multi-file viewer with side-by-side comparison.
	ModeCompare Mode = "compare"
	// ModeLegacy serves a single document from /api/documents.
	ModeLegacy Mode = "legacy"
)

// Config is the top-level annoview configuration, corresponding to .annoview.yml.
type Config struct {
	CheckpointDir   string        `yaml:"checkpoint_dir" koanf:"checkpoint_dir"`
	FilePattern     string        `yaml:"file_pattern" koanf:"file_pattern"`
	LegacyFile      string        `yaml:"legacy_file" koanf:"legacy_file"`
	Mode            Mode          `yaml:"mode" koanf:"mode"`
	Port            int           `yaml:"port" koanf:"port"`
	APIURL          string        `yaml:"api_url" koanf:"api_url"`
	QuoteTerms      bool          `yaml:"quote_terms" koanf:"quote_terms"`
	CacheTTL        time.Duration `yaml:"cache_ttl" koanf:"cache_ttl"`
	Watch           bool          `yaml:"watch" koanf:"watch"`
	RateLimit       float64       `yaml:"rate_limit" koanf:"rate_limit"`
	FeedbackDB      string        `yaml:"feedback_db" koanf:"feedback_db"`
	LogLevel        string        `yaml:"log_level" koanf:"log_level"`
	LogFile         string        `yaml:"log_file" koanf:"log_file"`
	AllowAllOrigins bool          `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// Remote reports whether documents come from an external API instead of
// the local checkpoint directory.
func (c *Config) Remote() bool {
	return c.APIURL != ""
}
