package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Mode != ModeCompare {
		t.Errorf("expected default mode %q, got %q", ModeCompare, cfg.Mode)
	}
	if cfg.CheckpointDir != "checkpoints" {
		t.Errorf("expected default checkpoint_dir %q, got %q", "checkpoints", cfg.CheckpointDir)
	}
	if cfg.FilePattern != "*.json" {
		t.Errorf("expected default file_pattern %q, got %q", "*.json", cfg.FilePattern)
	}
	if !cfg.QuoteTerms {
		t.Error("expected quote_terms to default to true")
	}
	if cfg.Remote() {
		t.Error("default config should use the local checkpoint directory")
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.annoview.yml")

	original := DefaultConfig()
	original.Mode = ModeLegacy
	original.CheckpointDir = "data"
	original.LegacyFile = "documents-2024-11-01-3.json"
	original.Port = 5050
	original.CacheTTL = 90 * time.Second
	original.QuoteTerms = false

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Mode != original.Mode {
		t.Errorf("mode: got %q, want %q", loaded.Mode, original.Mode)
	}
	if loaded.CheckpointDir != original.CheckpointDir {
		t.Errorf("checkpoint_dir: got %q, want %q", loaded.CheckpointDir, original.CheckpointDir)
	}
	if loaded.LegacyFile != original.LegacyFile {
		t.Errorf("legacy_file: got %q, want %q", loaded.LegacyFile, original.LegacyFile)
	}
	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.CacheTTL != original.CacheTTL {
		t.Errorf("cache_ttl: got %v, want %v", loaded.CacheTTL, original.CacheTTL)
	}
	if loaded.QuoteTerms {
		t.Error("quote_terms: got true, want false")
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("ANNOVIEW_CHECKPOINT_DIR", "/srv/checkpoints")
	t.Setenv("ANNOVIEW_PORT", "9091")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.CheckpointDir != "/srv/checkpoints" {
		t.Errorf("env override failed: got %q", loaded.CheckpointDir)
	}
	if loaded.Port != 9091 {
		t.Errorf("env override failed: got port %d", loaded.Port)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yml")
	if err := os.WriteFile(path, []byte("mode: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateRemoteWithoutCheckpointDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckpointDir = ""
	cfg.APIURL = "http://localhost:5000"
	if err := cfg.Validate(); err != nil {
		t.Errorf("remote config should not need checkpoint_dir, got: %v", err)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"invalid mode", func(c *Config) { c.Mode = "split" }},
		{"empty checkpoint dir", func(c *Config) { c.CheckpointDir = "" }},
		{"bad api url scheme", func(c *Config) { c.APIURL = "ftp://example.com" }},
		{"empty file pattern", func(c *Config) { c.FilePattern = "" }},
		{"malformed file pattern", func(c *Config) { c.FilePattern = "[*.json" }},
		{"legacy without file", func(c *Config) { c.Mode = ModeLegacy; c.LegacyFile = "" }},
		{"port zero", func(c *Config) { c.Port = 0 }},
		{"port too high", func(c *Config) { c.Port = 70000 }},
		{"negative cache ttl", func(c *Config) { c.CacheTTL = -time.Second }},
		{"negative rate limit", func(c *Config) { c.RateLimit = -1 }},
		{"unknown log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
