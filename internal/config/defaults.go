package config

import "time"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		CheckpointDir: "checkpoints",
		FilePattern:   "*.json",
		LegacyFile:    "documents.json",
		Mode:          ModeCompare,
		Port:          8080,
		QuoteTerms:    true,
		CacheTTL:      5 * time.Minute,
		Watch:         true,
		RateLimit:     10,
		FeedbackDB:    "annoview.db",
		LogLevel:      "info",
	}
}
